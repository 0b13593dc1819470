package schema

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-metawizard/pkg/hyper"
	"github.com/goliatone/go-metawizard/pkg/session"
)

func TestDocumentIsValid(t *testing.T) {
	t.Parallel()

	if err := Validate(context.Background()); err != nil {
		t.Fatalf("document validation failed: %v", err)
	}
	for _, name := range []string{DecisionRecord, HyperparameterRecord, AlgorithmRecord} {
		if _, ok := Document().Components.Schemas[name]; !ok {
			t.Fatalf("missing component %s", name)
		}
	}
}

func TestRenderings(t *testing.T) {
	t.Parallel()

	raw, err := JSON()
	if err != nil {
		t.Fatalf("JSON returned error: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["openapi"] != "3.0.3" {
		t.Fatalf("unexpected openapi version %v", decoded["openapi"])
	}

	out, err := YAML()
	if err != nil {
		t.Fatalf("YAML returned error: %v", err)
	}
	if !strings.Contains(string(out), "HyperparameterRecord:") {
		t.Fatalf("yaml missing component:\n%s", out)
	}
}

func TestValidateDecision(t *testing.T) {
	t.Parallel()

	good := session.DecisionRecord{
		Column:        "aadt",
		Levels:        session.Levels{true},
		Distributions: []string{"Normal"},
	}
	if err := ValidateDecision(good); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}

	for name, rec := range map[string]session.DecisionRecord{
		"unknown distribution": {Column: "x", Distributions: []string{"Gamma"}},
		"duplicate transform":  {Column: "x", Transformations: []string{"Log", "Log"}},
		"empty column":         {Column: ""},
	} {
		if err := ValidateDecision(rec); !errors.Is(err, ErrInvalidRecord) {
			t.Fatalf("%s: expected ErrInvalidRecord, got %v", name, err)
		}
	}
}

func TestValidateHyper(t *testing.T) {
	t.Parallel()

	w := hyper.NewWizard()
	form := w.DefaultForm()
	form.ModelTypes = []string{"Poisson"}
	form.PrimaryMetric = "BIC"
	rec, err := w.Save(form)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := ValidateHyper(rec); err != nil {
		t.Fatalf("expected saved record to validate, got %v", err)
	}

	broken := rec
	aic := hyper.AIC
	broken.SecondaryMetric = &aic
	if err := ValidateHyper(broken); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected cross-field failure, got %v", err)
	}

	broken = rec
	broken.MaxIterationsWithoutImprovement = 5000
	if err := ValidateHyper(broken); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected range failure, got %v", err)
	}

	broken = rec
	broken.TestPct = 90
	if err := ValidateHyper(broken); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected split failure, got %v", err)
	}
}

func TestValidateAlgorithm(t *testing.T) {
	t.Parallel()

	rec, err := hyper.NewWizard().SaveAlgorithm(hyper.AlgorithmForm{Algorithm: "DE"})
	if err != nil {
		t.Fatalf("SaveAlgorithm returned error: %v", err)
	}
	if err := ValidateAlgorithm(rec); err != nil {
		t.Fatalf("expected valid algorithm record, got %v", err)
	}
	rec.Algorithm = "GA"
	if err := ValidateAlgorithm(rec); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}
