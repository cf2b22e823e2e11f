package grayscale

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ConvertConcurrent produces the same result as Convert, but the rows are
// distributed between a fixed number of workers. If workers is not positive
// the number of logical CPUs is used. The grid is returned only if every row
// has been converted, a cancelled context aborts the conversion with ctx.Err().
func ConvertConcurrent(ctx context.Context, img [][]Pixel, rows, cols int, m Method, workers int) ([][]int, error) {
	if err := validate(img, rows, cols, m); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > rows {
		workers = rows
	}

	gray := make([][]int, rows)
	g, ctx := errgroup.WithContext(ctx)

	rowChan := make(chan int)
	g.Go(func() error {
		defer close(rowChan)
		for r := 0; r < rows; r++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case rowChan <- r:
			}
		}
		return nil
	})

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			// Each row index is received by exactly one worker.
			for r := range rowChan {
				gray[r] = convertRow(img, r, cols, m)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return gray, nil
}
