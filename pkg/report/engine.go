// Package report renders human readable summaries of a decision table with
// pongo2 templates. The HTML and text renderers plug into the export format
// registry.
package report

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.tpl
var embedded embed.FS

// Templates returns the built-in template files.
func Templates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Option configures an Engine.
type Option func(*config)

type config struct {
	templates fs.FS
	baseDir   string
	extension string
}

// WithFS loads templates from files instead of the built-in set.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithBaseDir loads templates from a directory on disk ahead of the built-in set.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// Engine renders named templates from a pongo2 template set.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	ext       string
}

// New constructs an Engine over the built-in templates unless overridden.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: ".tpl"}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.templates == nil {
		cfg.templates = Templates()
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("report: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))

	return &Engine{
		set:       pongo2.NewSet("metawizard", loaders...),
		templates: make(map[string]*pongo2.Template),
		ext:       cfg.extension,
	}, nil
}

// Render executes the named template and writes the result to out.
func (e *Engine) Render(name string, data pongo2.Context, out io.Writer) error {
	if e == nil || e.set == nil {
		return errors.New("report: engine is nil")
	}
	path := name
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}

	tmpl, err := e.template(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(data, &buf); err != nil {
		return fmt.Errorf("report: execute template %q: %w", path, err)
	}
	_, err = out.Write(buf.Bytes())
	return err
}

func (e *Engine) template(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("report: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}
