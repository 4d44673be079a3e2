package bmp2array

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/bmp2array/pixel"
)

// OutputPath returns the path Batch writes the array for input to; the same
// path with the extension replaced by ".h".
func OutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".h"
}

// findBitmaps sends every visible .bmp file under base, in lexical order.
func findBitmaps(ctx context.Context, base string) (<-chan string, <-chan error) {
	files := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(files)
		defer close(errc)

		errc <- filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
			switch {
			case err != nil:
				return err
			case path != base && strings.HasPrefix(d.Name(), "."):
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			case !d.Type().IsRegular(), !strings.EqualFold(filepath.Ext(path), ".bmp"):
				return nil
			}

			select {
			case files <- path:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()

	return files, errc
}

func (c *Converter) convertFiles(ctx context.Context, files <-chan string, format pixel.Format, order pixel.ByteOrder) <-chan error {
	errc := make(chan error, 1)

	go func() {
		defer close(errc)

		for file := range files {
			if ctx.Err() != nil {
				return
			}

			req := &Request{
				Input:     file,
				Output:    OutputPath(file),
				Format:    format,
				ByteOrder: order,
			}

			if res := c.Convert(req, nil); !res.Success {
				errc <- fmt.Errorf("%s: %w", file, res.Err)
				return
			}

			c.logger.Printf("Converted \"%s\" to \"%s\"\n", req.Input, req.Output)
		}
	}()

	return errc
}

// firstError drains every channel and returns the first non-nil error
// received on any of them, without waiting for the others to finish.
func firstError(errcs ...<-chan error) error {
	var wg sync.WaitGroup
	merged := make(chan error, len(errcs))

	for _, errc := range errcs {
		wg.Add(1)
		go func(errc <-chan error) {
			defer wg.Done()
			for err := range errc {
				merged <- err
			}
		}(errc)
	}

	go func() {
		wg.Wait()
		close(merged)
	}()

	for err := range merged {
		if err != nil {
			return err
		}
	}

	return nil
}

// Batch converts every BMP file found under path, writing each array next to
// its image as computed by OutputPath. Up to workers files are converted at
// once. The first failure stops the batch and is returned.
func (c *Converter) Batch(path string, format pixel.Format, order pixel.ByteOrder, workers int) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if fi, err := os.Stat(dir); err != nil {
		return &InvalidArgumentError{Err: err}
	} else if !fi.IsDir() {
		return &InvalidArgumentError{Err: fmt.Errorf("%q is not a directory", path)}
	}

	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	files, walkErrc := findBitmaps(ctx, dir)

	errcs := []<-chan error{walkErrc}
	for i := 0; i < workers; i++ {
		errcs = append(errcs, c.convertFiles(ctx, files, format, order))
	}

	return firstError(errcs...)
}
