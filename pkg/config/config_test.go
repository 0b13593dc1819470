package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-metawizard/pkg/hyper"
	"github.com/goliatone/go-metawizard/pkg/session"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadYAMLOverlaysDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "cfg.yaml", `
transformation_default: full-set
save_enabled: always
split_policy: lenient
algorithm_wizard: true
model_types: [Poisson]
output:
  dir: out
hyper_defaults:
  iterations: 250
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	want := Default()
	want.TransformationDefault = "full-set"
	want.SaveEnabled = "always"
	want.SplitPolicy = "lenient"
	want.AlgorithmWizard = true
	want.ModelTypes = []string{"Poisson"}
	want.Output.Dir = "out"
	want.HyperDefaults.Iterations = 250
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadJSON(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "cfg.json", `{"output": {"format": "json"}, "hyper_defaults": {"max_time": 60}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Output.Format != "json" || cfg.HyperDefaults.MaxTimeSeconds != 60 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Output.DecisionsFile != "decisions.csv" {
		t.Fatalf("expected default decisions file, got %q", cfg.Output.DecisionsFile)
	}
}

func TestLoadRejects(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty file":            "   ",
		"garbage":               "{not: [valid",
		"bad save policy":       "save_enabled: sometimes",
		"bad transformation":    "transformation_default: half",
		"bad split policy":      "split_policy: loose",
		"empty model types":     "model_types: []",
		"iterations over limit": "hyper_defaults:\n  iterations: 5000",
		"bad metric":            "hyper_defaults:\n  primary_metric: MAE",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "cfg.yaml", content))
			if !errors.Is(err, ErrConfig) {
				t.Fatalf("expected ErrConfig, got %v", err)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for missing file, got %v", err)
	}
}

func TestOptionsApply(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.TransformationDefault = "full-set"
	cfg.SaveEnabled = "always"
	cfg.SplitPolicy = "lenient"
	cfg.ModelTypes = []string{"Logit"}
	cfg.HyperDefaults.Iterations = 42

	s := session.New(cfg.SessionOptions()...)
	if s == nil {
		t.Fatalf("expected session")
	}

	w := hyper.NewWizard(cfg.WizardOptions()...)
	if w.SplitPolicy() != hyper.SplitLenient {
		t.Fatalf("expected lenient split policy, got %s", w.SplitPolicy())
	}
	if diff := cmp.Diff([]string{"Logit"}, w.ModelTypes()); diff != "" {
		t.Fatalf("model types mismatch (-want +got):\n%s", diff)
	}
	if w.DefaultForm().Iterations != 42 {
		t.Fatalf("expected iterations default 42, got %d", w.DefaultForm().Iterations)
	}
}
