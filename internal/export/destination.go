package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// Destination is the interface for an export target (file, S3, etc.).
type Destination interface {
	// Write sends the JSONL payload to the destination.
	Write(ctx context.Context, data []byte) error
	// Name identifies the destination in logs.
	Name() string
}

// FileDestination writes the payload to a local file, replacing it atomically.
type FileDestination struct {
	Path string
}

func (d *FileDestination) Name() string { return "file:" + d.Path }

func (d *FileDestination) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(d.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".export-*.jsonl")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), d.Path); err != nil {
		return fmt.Errorf("replacing %s: %w", d.Path, err)
	}
	return nil
}

// WriterDestination copies the payload to an io.Writer such as stdout.
type WriterDestination struct {
	W     io.Writer
	Label string
}

func (d *WriterDestination) Name() string { return d.Label }

func (d *WriterDestination) Write(_ context.Context, data []byte) error {
	_, err := d.W.Write(data)
	return err
}

// WriteAll sends data to every destination concurrently. A failing
// destination does not stop the others; every failure is returned.
func WriteAll(ctx context.Context, data []byte, destinations []Destination) []error {
	errs := make([]error, len(destinations))
	var g errgroup.Group
	g.SetLimit(4)
	for i, dest := range destinations {
		g.Go(func() error {
			if err := dest.Write(ctx, data); err != nil {
				errs[i] = fmt.Errorf("%s: %w", dest.Name(), err)
			}
			return nil
		})
	}
	_ = g.Wait()

	var failed []error
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	return failed
}
