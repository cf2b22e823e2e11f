package grayscale

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/esimov/grayscale/utils"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently processed files.
const maxWorkers = 20

var (
	// srcExtensions holds the image types accepted as source in directory mode.
	srcExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff", ".webp"}
	// dstExtensions holds the image types the converted images can be encoded to.
	dstExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".tif", ".tiff"}
)

// Ops holds the source and destination of the conversion.
// Src and Dst can be regular files, directories or the pipe name. Src can also be an URL.
type Ops struct {
	Src, Dst, PipeName string
	Workers            int
}

// result holds the relevant information about the conversion of a single file.
type result struct {
	path string
	err  error
}

// Execute executes the image conversion process. It is aborted on SIGINT or SIGTERM.
func (p *Processor) Execute(op *Ops) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return p.ExecuteContext(ctx, op)
}

// ExecuteContext is like Execute, but the process is bound to the provided context.
func (p *Processor) ExecuteContext(ctx context.Context, op *Ops) error {
	if p.Spinner == nil {
		msg := fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ GRAYSCALE", utils.StatusMessage),
			utils.DecorateText("⇢ converting image...", utils.DefaultMessage),
		)
		p.Spinner = utils.NewSpinner(msg, time.Millisecond*80, term.IsTerminal(int(os.Stderr.Fd())))
	}

	src := op.Src
	// Check if source path is a local image or URL.
	if utils.IsValidUrl(src) {
		f, err := utils.DownloadImage(ctx, src)
		if err != nil {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
		defer os.Remove(f.Name())
		if err := f.Close(); err != nil {
			return err
		}
		src = f.Name()
	}

	var (
		info os.FileInfo
		err  error
	)
	// Check if the source is a pipe name or a regular file.
	if src == op.PipeName {
		info, err = os.Stdin.Stat()
	} else {
		info, err = os.Stat(src)
	}
	if err != nil {
		return fmt.Errorf("failed to load the source image: %w", err)
	}

	now := time.Now()

	switch mode := info.Mode(); {
	case mode.IsDir():
		err = p.processDir(ctx, op, src)
	case mode.IsRegular() || mode&os.ModeNamedPipe != 0 || src == op.PipeName:
		ext := strings.ToLower(filepath.Ext(op.Dst))
		if op.Dst != op.PipeName && ext != "" && !isValidExtension(ext, dstExtensions) {
			return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
		}
		p.Spinner.Start()
		err = op.process(ctx, p, src, op.Dst)
		p.Spinner.StopMsg = stopMessage(err)
		p.Spinner.Stop()
		op.printOpStatus(op.Dst, err)
	default:
		return fmt.Errorf("unsupported source type: %s", src)
	}

	if err == nil {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	}
	return err
}

// processDir converts recursively the supported images of the src directory concurrently.
func (p *Processor) processDir(ctx context.Context, op *Ops, src string) error {
	if err := os.MkdirAll(op.Dst, 0755); err != nil {
		return fmt.Errorf("unable to create the destination directory: %w", err)
	}

	workers := op.Workers
	// Limit the concurrently running workers to maxWorkers.
	if workers <= 0 || workers > maxWorkers {
		workers = runtime.NumCPU()
	}

	p.Spinner.Start()

	g, ctx := errgroup.WithContext(ctx)
	paths := walkDir(ctx, g, src, srcExtensions)
	res := make(chan result)

	consumers, cctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		consumers.Go(func() error {
			return op.consumer(cctx, p, src, paths, res)
		})
	}

	var cerr error
	// Close the results channel after all the values are produced.
	go func() {
		defer close(res)
		cerr = consumers.Wait()
	}()

	var errs []error
	for r := range res {
		if r.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.path, r.err))
		}
		op.printOpStatus(r.path, r.err)
	}

	if cerr != nil {
		errs = append(errs, cerr)
	}
	if err := g.Wait(); err != nil && !errors.Is(err, cerr) {
		errs = append(errs, err)
	}
	err := errors.Join(errs...)
	p.Spinner.StopMsg = stopMessage(err)
	p.Spinner.Stop()

	return err
}

// consumer reads the path names from the paths channel, converts each image
// into the destination directory and sends the outcome on the res channel.
func (op *Ops) consumer(
	ctx context.Context,
	p *Processor,
	root string,
	paths <-chan string,
	res chan<- result,
) error {
	for src := range paths {
		dst, err := destPath(root, src, op.Dst)
		if err == nil {
			err = op.process(ctx, p, src, dst)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case res <- result{
			path: src,
			err:  err,
		}:
		}
	}
	return nil
}

// destPath mirrors the location of src relative to root inside the dir directory.
// Images which can't be encoded in their own format are saved as PNG.
func destPath(root, src, dir string) (string, error) {
	rel, err := filepath.Rel(root, src)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(dir, rel)
	if ext := filepath.Ext(dst); !isValidExtension(strings.ToLower(ext), dstExtensions) {
		dst = strings.TrimSuffix(dst, ext) + ".png"
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}
	return dst, nil
}

// process converts the in image and writes it into out.
func (op *Ops) process(ctx context.Context, p *Processor, in, out string) error {
	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		return err
	}

	defer closeFile(src)

	err = p.ProcessContext(ctx, src, dst)
	if f, ok := dst.(*os.File); ok && f != os.Stdout {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			// remove the generated image file in case of an error
			os.Remove(f.Name())
		}
	}
	return err
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)

	// Check if the source is a pipe name or a regular file.
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	} else {
		src, err = os.Open(in)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			closeFile(src)
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.Create(out)
		if err != nil {
			closeFile(src)
			return nil, nil, fmt.Errorf("unable to create the destination file: %w", err)
		}
	}
	return src, dst, nil
}

func closeFile(r io.Reader) {
	if f, ok := r.(*os.File); ok && f != os.Stdin {
		f.Close()
	}
}

// printOpStatus displays the relevant information about the conversion of a file.
func (op *Ops) printOpStatus(fname string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s%s",
			utils.DecorateText(fmt.Sprintf("\nError converting the image: %s", filepath.Base(fname)), utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err), utils.DefaultMessage),
		)
		return
	}
	if fname != op.PipeName {
		fmt.Fprintf(os.Stderr, "\nThe image has been saved as: %s %s\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

func stopMessage(err error) string {
	if err != nil {
		return fmt.Sprintf("%s %s %s",
			utils.DecorateText("⚡ GRAYSCALE", utils.StatusMessage),
			utils.DecorateText("converting image failed...", utils.DefaultMessage),
			utils.DecorateText("✘", utils.ErrorMessage),
		)
	}
	return fmt.Sprintf("%s %s %s",
		utils.DecorateText("⚡ GRAYSCALE", utils.StatusMessage),
		utils.DecorateText("⇢", utils.DefaultMessage),
		utils.DecorateText("the image has been converted successfully ✔", utils.SuccessMessage),
	)
}

// walkDir starts a new goroutine in g to walk the specified directory tree
// in recursive manner and sends the path of each supported file to a new channel.
// It finishes in case the context is cancelled.
func walkDir(
	ctx context.Context,
	g *errgroup.Group,
	src string,
	srcExts []string,
) <-chan string {
	pathChan := make(chan string)

	g.Go(func() error {
		// Close the paths channel after the walk returns.
		defer close(pathChan)

		return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if !isValidExtension(strings.ToLower(filepath.Ext(d.Name())), srcExts) {
				return nil
			}

			select {
			case <-ctx.Done():
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	})
	return pathChan
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	for _, ex := range extensions {
		if ex == ext {
			return true
		}
	}
	return false
}
