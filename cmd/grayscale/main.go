package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/esimov/grayscale"
	"github.com/esimov/grayscale/utils"
)

const helpBanner = `
┌─┐┬─┐┌─┐┬ ┬┌─┐┌─┐┌─┐┬  ┌─┐
│ ┬├┬┘├─┤└┬┘└─┐│  ├─┤│  ├┤
└─┘┴└─┴ ┴ ┴ └─┘└─┘┴ ┴┴─┘└─┘

Color to grayscale image converter.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", pipeName, "Source")
	destination = flag.String("out", pipeName, "Destination")
	method      = flag.String("method", grayscale.Luminosity.String(), "Conversion method")
	quality     = flag.Int("quality", 100, "JPEG quality of the output image")
	workers     = flag.Int("conc", runtime.NumCPU(), "Number of files to process concurrently")
	rowWorkers  = flag.Int("rows", 0, "Number of goroutines converting the rows of an image (0 = number of CPUs)")
	listMethods = flag.Bool("methods", false, "List the supported conversion methods")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *listMethods {
		names := make([]string, 0, len(grayscale.Methods()))
		for _, m := range grayscale.Methods() {
			names = append(names, m.String())
		}
		fmt.Println(strings.Join(names, "\n"))
		return
	}

	m, err := grayscale.ParseMethod(*method)
	if err != nil {
		flag.Usage()
		log.Fatalf(utils.DecorateText("\n%v\n", utils.ErrorMessage), err)
	}

	proc := &grayscale.Processor{
		Method:  m,
		Workers: *rowWorkers,
		Quality: *quality,
	}

	op := &grayscale.Ops{
		Src:      *source,
		Dst:      *destination,
		PipeName: pipeName,
		Workers:  *workers,
	}

	if err := proc.Execute(op); err != nil {
		log.Fatalf(
			utils.DecorateText("\nError converting the image: %s", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}
}
