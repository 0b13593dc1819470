package report

import (
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-metawizard/pkg/export"
	"github.com/goliatone/go-metawizard/pkg/session"
	"github.com/goliatone/go-metawizard/pkg/testsupport"
)

func sampleDoc() export.Decisions {
	return export.Decisions{
		SessionID: "6f1c2d3e",
		Roles:     session.Roles{Outcome: "crashes", Grouping: "site", Panel: session.None},
		Records: []session.DecisionRecord{
			{
				Column:          "<b>aadt</b> & volume",
				Levels:          session.Levels{true, false, false, false, true, false},
				Distributions:   []string{"Normal", "Uniform"},
				Transformations: []string{"Log"},
			},
			{
				Column:        "length",
				Distributions: []string{"Triangular"},
			},
		},
	}
}

func TestHTMLSanitizesColumnNames(t *testing.T) {
	t.Parallel()

	out := testsupport.CaptureOutput(t, func(w io.Writer) error {
		return HTML{}.Encode(w, sampleDoc())
	})

	for _, want := range []string{
		"<td>aadt &amp; volume</td>",
		"<p class=\"run\">Run 6f1c2d3e</p>",
		"<dd>crashes</dd>",
		"<td>Normal, Uniform</td>",
		"<th title=\"Grouped Random Parameters\">Level 5</th>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "<b>") {
		t.Fatalf("markup leaked into report:\n%s", out)
	}
}

func TestTextSummary(t *testing.T) {
	t.Parallel()

	out := testsupport.CaptureOutput(t, func(w io.Writer) error {
		return Text{}.Encode(w, sampleDoc())
	})

	for _, want := range []string{
		"Column decisions (6f1c2d3e)",
		"Outcome: crashes  Grouping: site  Panel: None",
		"<b>aadt</b> & volume",
		"  levels: 1, 5",
		"  transformations: -",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestEmptyTable(t *testing.T) {
	t.Parallel()

	out := testsupport.CaptureOutput(t, func(w io.Writer) error {
		return Text{}.Encode(w, export.Decisions{Roles: session.Roles{Outcome: "y"}})
	})
	if !strings.Contains(out, "No columns processed.") {
		t.Fatalf("expected empty marker, got:\n%s", out)
	}
}

func TestEngineWithCustomTemplates(t *testing.T) {
	t.Parallel()

	engine, err := New(WithFS(fstest.MapFS{
		"hello.tpl": {Data: []byte("hello {{ name }}")},
	}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	out := testsupport.CaptureOutput(t, func(w io.Writer) error {
		return engine.Render("hello", pongo2.Context{"name": "world"}, w)
	})
	if out != "hello world" {
		t.Fatalf("unexpected output %q", out)
	}
	if err := engine.Render("missing", nil, io.Discard); err == nil {
		t.Fatalf("expected missing template error")
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	r := export.DefaultRegistry()
	if err := Register(r, nil); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	for _, name := range []string{"html", "txt"} {
		if !r.Has(name) {
			t.Fatalf("expected %s to be registered", name)
		}
	}
}
