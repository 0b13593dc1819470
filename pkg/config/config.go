// Package config loads run settings from JSON or YAML files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-metawizard/pkg/hyper"
	"github.com/goliatone/go-metawizard/pkg/session"
)

// ErrConfig reports an unreadable or invalid configuration.
var ErrConfig = errors.New("config: invalid configuration")

// Output controls where results are written.
type Output struct {
	Dir           string `json:"dir" yaml:"dir"`
	DecisionsFile string `json:"decisions_file" yaml:"decisions_file"`
	Format        string `json:"format" yaml:"format"`
}

// HyperDefaults seeds the hyperparameter form.
type HyperDefaults struct {
	ObjectiveMode  string `json:"objective_mode" yaml:"objective_mode"`
	PrimaryMetric  string `json:"primary_metric" yaml:"primary_metric"`
	MaxTimeSeconds int    `json:"max_time" yaml:"max_time"`
	Iterations     int    `json:"iterations" yaml:"iterations"`
	TrainPct       int    `json:"train_pct" yaml:"train_pct"`
	ValidationPct  int    `json:"validation_pct" yaml:"validation_pct"`
	TestPct        int    `json:"test_pct" yaml:"test_pct"`
}

// Config holds every tunable of a run.
type Config struct {
	TransformationDefault string        `json:"transformation_default" yaml:"transformation_default"`
	SaveEnabled           string        `json:"save_enabled" yaml:"save_enabled"`
	SplitPolicy           string        `json:"split_policy" yaml:"split_policy"`
	AlgorithmWizard       bool          `json:"algorithm_wizard" yaml:"algorithm_wizard"`
	ModelTypes            []string      `json:"model_types" yaml:"model_types"`
	Output                Output        `json:"output" yaml:"output"`
	HyperDefaults         HyperDefaults `json:"hyper_defaults" yaml:"hyper_defaults"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TransformationDefault: string(session.TransformationsEmpty),
		SaveEnabled:           string(session.SaveAtLastColumn),
		SplitPolicy:           string(hyper.SplitStrict),
		ModelTypes:            hyper.DefaultModelTypes(),
		Output: Output{
			Dir:           ".",
			DecisionsFile: "decisions.csv",
			Format:        "csv",
		},
		HyperDefaults: HyperDefaults{
			ObjectiveMode:  string(hyper.Single),
			MaxTimeSeconds: hyper.DefaultMaxTimeSeconds,
			Iterations:     hyper.DefaultIterations,
			TrainPct:       hyper.DefaultTrainPct,
			ValidationPct:  hyper.DefaultValidationPct,
			TestPct:        hyper.DefaultTestPct,
		},
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: read %s: %v", ErrConfig, path, err)
	}
	if err := Parse(data, path, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes data as JSON, falling back to YAML, into cfg. Keys missing
// from data keep their current value.
func Parse(data []byte, source string, cfg *Config) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("%w: file %s is empty", ErrConfig, source)
	}

	jsonCfg := *cfg
	if err := json.Unmarshal(data, &jsonCfg); err == nil {
		*cfg = jsonCfg
		return nil
	}

	yamlCfg := *cfg
	if err := yaml.Unmarshal(data, &yamlCfg); err == nil {
		*cfg = yamlCfg
		return nil
	}

	return fmt.Errorf("%w: parse %s: invalid JSON or YAML", ErrConfig, source)
}

// Validate rejects unknown enum values and out of range defaults.
func (c Config) Validate() error {
	if _, err := session.ParseTransformationDefault(c.TransformationDefault); err != nil {
		return fmt.Errorf("%w: transformation_default: %v", ErrConfig, err)
	}
	if _, err := session.ParseSavePolicy(c.SaveEnabled); err != nil {
		return fmt.Errorf("%w: save_enabled: %v", ErrConfig, err)
	}
	if _, err := hyper.ParseSplitPolicy(c.SplitPolicy); err != nil {
		return fmt.Errorf("%w: split_policy: %v", ErrConfig, err)
	}
	if len(c.ModelTypes) == 0 {
		return fmt.Errorf("%w: model_types must not be empty", ErrConfig)
	}
	for _, mt := range c.ModelTypes {
		if strings.TrimSpace(mt) == "" {
			return fmt.Errorf("%w: model_types contains an empty entry", ErrConfig)
		}
	}
	if strings.TrimSpace(c.Output.Format) == "" {
		return fmt.Errorf("%w: output.format is required", ErrConfig)
	}
	if strings.TrimSpace(c.Output.DecisionsFile) == "" {
		return fmt.Errorf("%w: output.decisions_file is required", ErrConfig)
	}

	h := c.HyperDefaults
	if h.ObjectiveMode != "" {
		if _, err := hyper.ParseObjectiveMode(h.ObjectiveMode); err != nil {
			return fmt.Errorf("%w: hyper_defaults.objective_mode: %v", ErrConfig, err)
		}
	}
	if h.PrimaryMetric != "" {
		if _, err := hyper.ParseMetric(h.PrimaryMetric); err != nil {
			return fmt.Errorf("%w: hyper_defaults.primary_metric: %v", ErrConfig, err)
		}
	}
	if h.MaxTimeSeconds <= 0 {
		return fmt.Errorf("%w: hyper_defaults.max_time must be positive", ErrConfig)
	}
	if h.Iterations < hyper.MinIterations || h.Iterations > hyper.MaxIterations {
		return fmt.Errorf("%w: hyper_defaults.iterations must be in [%d, %d]", ErrConfig, hyper.MinIterations, hyper.MaxIterations)
	}
	for name, pct := range map[string]int{"train_pct": h.TrainPct, "validation_pct": h.ValidationPct, "test_pct": h.TestPct} {
		if pct < 0 || pct > 100 {
			return fmt.Errorf("%w: hyper_defaults.%s must be in [0, 100]", ErrConfig, name)
		}
	}
	return nil
}

// SessionOptions translates the config into session options. Call Validate
// first; invalid values fall back to the session defaults.
func (c Config) SessionOptions() []session.Option {
	var opts []session.Option
	if def, err := session.ParseTransformationDefault(c.TransformationDefault); err == nil {
		opts = append(opts, session.WithTransformationDefault(def))
	}
	if policy, err := session.ParseSavePolicy(c.SaveEnabled); err == nil {
		opts = append(opts, session.WithSavePolicy(policy))
	}
	return opts
}

// WizardOptions translates the config into hyperparameter wizard options.
func (c Config) WizardOptions() []hyper.Option {
	opts := []hyper.Option{hyper.WithModelTypes(c.ModelTypes...)}
	if policy, err := hyper.ParseSplitPolicy(c.SplitPolicy); err == nil {
		opts = append(opts, hyper.WithSplitPolicy(policy))
	}
	h := c.HyperDefaults
	opts = append(opts, hyper.WithDefaults(hyper.Form{
		ObjectiveMode:  h.ObjectiveMode,
		PrimaryMetric:  h.PrimaryMetric,
		MaxTimeSeconds: h.MaxTimeSeconds,
		Iterations:     h.Iterations,
		TrainPct:       h.TrainPct,
		ValidationPct:  h.ValidationPct,
		TestPct:        h.TestPct,
	}))
	return opts
}
