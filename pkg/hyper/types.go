package hyper

import (
	"fmt"
	"strings"
)

// ObjectiveMode selects single or multi objective search.
type ObjectiveMode string

const (
	Single ObjectiveMode = "Single"
	Multi  ObjectiveMode = "Multi"
)

// ParseObjectiveMode matches raw case-insensitively against the known modes.
func ParseObjectiveMode(raw string) (ObjectiveMode, error) {
	for _, mode := range []ObjectiveMode{Single, Multi} {
		if strings.EqualFold(strings.TrimSpace(raw), string(mode)) {
			return mode, nil
		}
	}
	return "", fmt.Errorf("%w: objective mode %q", ErrInvalidChoice, raw)
}

// Metric is an objective metric reported by the downstream search.
type Metric string

const (
	BIC  Metric = "BIC"
	AIC  Metric = "AIC"
	RMSE Metric = "RMSE"
)

// Metrics returns the closed metric set in display order.
func Metrics() []Metric { return []Metric{BIC, AIC, RMSE} }

// ParseMetric matches raw case-insensitively against Metrics.
func ParseMetric(raw string) (Metric, error) {
	for _, metric := range Metrics() {
		if strings.EqualFold(strings.TrimSpace(raw), string(metric)) {
			return metric, nil
		}
	}
	return "", fmt.Errorf("%w: metric %q", ErrInvalidChoice, raw)
}

// SplitPolicy controls how a requested validation split is checked.
type SplitPolicy string

const (
	// SplitStrict requires train+validation+test to equal 100.
	SplitStrict SplitPolicy = "strict"
	// SplitLenient keeps the supplied percentages as they are.
	SplitLenient SplitPolicy = "lenient"
)

// ParseSplitPolicy maps a config value onto a SplitPolicy. Empty means strict.
func ParseSplitPolicy(raw string) (SplitPolicy, error) {
	switch SplitPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", SplitStrict:
		return SplitStrict, nil
	case SplitLenient:
		return SplitLenient, nil
	default:
		return "", fmt.Errorf("%w: split policy %q", ErrInvalidChoice, raw)
	}
}

// Default values offered by a fresh form.
const (
	DefaultMaxTimeSeconds = 240000
	DefaultIterations     = 100
	DefaultTrainPct       = 80
	DefaultValidationPct  = 10
	DefaultTestPct        = 10

	MinIterations = 1
	MaxIterations = 1000
)

// DefaultModelTypes is the closed model type set used when none is configured.
func DefaultModelTypes() []string {
	return []string{"Poisson", "Negative Binomial"}
}

// Record is the saved hyperparameter configuration. SecondaryMetric is set
// only in Multi mode. Without a validation split ValidationPct is 0 and
// TestPct is 100.
type Record struct {
	ModelTypes                      []string      `json:"model_types"`
	ObjectiveMode                   ObjectiveMode `json:"objective_mode"`
	PrimaryMetric                   Metric        `json:"primary_metric"`
	SecondaryMetric                 *Metric       `json:"secondary_metric"`
	MaxTimeSeconds                  int           `json:"max_time_seconds"`
	MaxIterationsWithoutImprovement int           `json:"max_iterations_without_improvement"`
	HasValidationSplit              bool          `json:"has_validation_split"`
	TrainPct                        int           `json:"train_pct"`
	ValidationPct                   int           `json:"validation_pct"`
	TestPct                         int           `json:"test_pct"`
}

// SecondaryMetricName returns the secondary metric or "" when unset.
func (r Record) SecondaryMetricName() string {
	if r.SecondaryMetric == nil {
		return ""
	}
	return string(*r.SecondaryMetric)
}

func (r Record) clone() Record {
	out := r
	out.ModelTypes = append([]string(nil), r.ModelTypes...)
	if r.SecondaryMetric != nil {
		metric := *r.SecondaryMetric
		out.SecondaryMetric = &metric
	}
	return out
}
