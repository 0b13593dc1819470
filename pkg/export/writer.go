package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-metawizard/pkg/hyper"
	"github.com/goliatone/go-metawizard/pkg/logger"
)

// Option configures a Writer.
type Option func(*Writer)

// WithRegistry replaces the default format registry.
func WithRegistry(r *Registry) Option {
	return func(w *Writer) {
		if r != nil {
			w.registry = r
		}
	}
}

// WithPerm sets the permission bits of written files.
func WithPerm(perm os.FileMode) Option {
	return func(w *Writer) {
		w.perm = perm
	}
}

// Writer persists exports with temp file and rename so readers never see a
// partial file.
type Writer struct {
	registry *Registry
	perm     os.FileMode
	log      *logger.Logger
}

// NewWriter returns a Writer backed by DefaultRegistry.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{
		registry: DefaultRegistry(),
		perm:     0o644,
		log:      logger.New("export:writer"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// Registry exposes the writer's format registry.
func (w *Writer) Registry() *Registry { return w.registry }

// DecisionsPath returns dir/base with the extension of the named format.
func (w *Writer) DecisionsPath(dir, base, format string) (string, error) {
	f, err := w.registry.Get(format)
	if err != nil {
		return "", err
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+f.Extension()), nil
}

// WriteDecisions encodes doc with the named format and writes it to path.
func (w *Writer) WriteDecisions(ctx context.Context, path, format string, doc Decisions) error {
	f, err := w.registry.Get(format)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := f.Encode(&buf, doc); err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrWrite, format, err)
	}
	if err := w.write(ctx, path, buf.Bytes()); err != nil {
		return err
	}
	w.log.Printf("wrote %d decisions to %s (%s)", len(doc.Records), path, format)
	return nil
}

// WriteHyper writes rec to dir/setup_hyper.csv and returns the path.
func (w *Writer) WriteHyper(ctx context.Context, dir string, rec hyper.Record) (string, error) {
	var buf bytes.Buffer
	if err := EncodeHyper(&buf, rec); err != nil {
		return "", fmt.Errorf("%w: encode hyperparameters: %v", ErrWrite, err)
	}
	path := filepath.Join(dir, HyperFile)
	if err := w.write(ctx, path, buf.Bytes()); err != nil {
		return "", err
	}
	w.log.Printf("wrote hyperparameters to %s", path)
	return path, nil
}

// WriteAlgorithm writes rec to dir/setup_algorithm.csv and returns the path.
func (w *Writer) WriteAlgorithm(ctx context.Context, dir string, rec hyper.AlgorithmRecord) (string, error) {
	var buf bytes.Buffer
	if err := EncodeAlgorithm(&buf, rec); err != nil {
		return "", fmt.Errorf("%w: encode algorithm: %v", ErrWrite, err)
	}
	path := filepath.Join(dir, AlgorithmFile)
	if err := w.write(ctx, path, buf.Bytes()); err != nil {
		return "", err
	}
	w.log.Printf("wrote %s parameters to %s", rec.Algorithm, path)
	return path, nil
}

func (w *Writer) write(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := atomicWrite(path, data, w.perm); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	return nil
}

func atomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".metawizard-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	committed = true
	return nil
}
