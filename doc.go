/*
Package grayscale converts color images to grayscale intensities, using one of
seven formulas: the red, green or blue channel, the average of the channels,
the lightness, the luminosity and the root mean square of the channels.

The core operation works on plain pixel grids and never reads outside of the
declared rectangle:

	gray, err := grayscale.Convert(pixels, rows, cols, grayscale.Luminosity)
	if errors.Is(err, grayscale.ErrOutOfBounds) {
		// the grid is smaller than rows x cols
	}

The values computed by the Luminosity and RootMeanSquare methods are truncated,
not rounded, so a white pixel has a luminosity of 254.

The package also provides a command line interface, which converts image files,
pipes, remote images or whole directories. To check the supported commands type:

	$ grayscale --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"github.com/esimov/grayscale"
	)

	func main() {
		p := &grayscale.Processor{
			Method: grayscale.Lightness,
		}

		if err := p.Process(in, out); err != nil {
			fmt.Printf("Error converting image: %s", err.Error())
		}
	}
*/
package grayscale
