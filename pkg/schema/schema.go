// Package schema publishes the shape of every exported record as an OpenAPI 3
// document and validates records against it.
package schema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-metawizard/pkg/hyper"
	"github.com/goliatone/go-metawizard/pkg/session"
)

// ErrInvalidRecord reports a record that does not match its schema.
var ErrInvalidRecord = errors.New("schema: invalid record")

// Component schema names.
const (
	DecisionRecord       = "DecisionRecord"
	HyperparameterRecord = "HyperparameterRecord"
	AlgorithmRecord      = "AlgorithmRecord"
)

// Version is reported in the document info block.
const Version = "1.0.0"

var (
	docOnce sync.Once
	doc     *openapi3.T
)

// Document returns the shared OpenAPI document. Callers must not mutate it.
func Document() *openapi3.T {
	docOnce.Do(func() {
		doc = build()
	})
	return doc
}

// JSON renders the document as indented JSON.
func JSON() ([]byte, error) {
	return json.MarshalIndent(Document(), "", "  ")
}

// YAML renders the document as YAML.
func YAML() ([]byte, error) {
	raw, err := json.Marshal(Document())
	if err != nil {
		return nil, err
	}
	var tree any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}
	return yaml.Marshal(tree)
}

// Validate checks the document itself.
func Validate(ctx context.Context) error {
	return Document().Validate(ctx)
}

// ValidateDecision checks rec against the DecisionRecord schema.
func ValidateDecision(rec session.DecisionRecord) error {
	if rec.Distributions == nil {
		rec.Distributions = []string{}
	}
	if rec.Transformations == nil {
		rec.Transformations = []string{}
	}
	return visit(DecisionRecord, rec)
}

// ValidateHyper checks rec against the HyperparameterRecord schema and the
// cross-field rules a schema cannot express.
func ValidateHyper(rec hyper.Record) error {
	if err := visit(HyperparameterRecord, rec); err != nil {
		return err
	}
	if (rec.ObjectiveMode == hyper.Multi) != (rec.SecondaryMetric != nil) {
		return fmt.Errorf("%w: secondary_metric must be set exactly when objective_mode is Multi", ErrInvalidRecord)
	}
	if !rec.HasValidationSplit && (rec.ValidationPct != 0 || rec.TestPct != 100) {
		return fmt.Errorf("%w: without a validation split validation_pct must be 0 and test_pct 100", ErrInvalidRecord)
	}
	return nil
}

// ValidateAlgorithm checks rec against the AlgorithmRecord schema.
func ValidateAlgorithm(rec hyper.AlgorithmRecord) error {
	return visit(AlgorithmRecord, rec)
}

func visit(name string, record any) error {
	ref, ok := Document().Components.Schemas[name]
	if !ok || ref.Value == nil {
		return fmt.Errorf("schema: component %q not found", name)
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("schema: marshal %s: %w", name, err)
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("schema: unmarshal %s: %w", name, err)
	}
	if err := ref.Value.VisitJSON(value); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidRecord, name, err)
	}
	return nil
}

func build() *openapi3.T {
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "metawizard records",
			Description: "Rows written by the column decision wizard for the downstream model search.",
			Version:     Version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				DecisionRecord:       openapi3.NewSchemaRef("", decisionSchema()),
				HyperparameterRecord: openapi3.NewSchemaRef("", hyperSchema()),
				AlgorithmRecord:      openapi3.NewSchemaRef("", algorithmSchema()),
			},
		},
	}
}

func decisionSchema() *openapi3.Schema {
	levels := openapi3.NewArraySchema()
	levels.Items = openapi3.NewSchemaRef("", openapi3.NewBoolSchema())
	levels.MinItems = session.LevelCount
	maxLevels := uint64(session.LevelCount)
	levels.MaxItems = &maxLevels
	levels.Description = "Level 1 to Level 6 permissions in order."

	s := openapi3.NewObjectSchema()
	s.Description = "One processed column."
	s.Properties = openapi3.Schemas{
		"column":          openapi3.NewSchemaRef("", nonEmptyString()),
		"levels":          openapi3.NewSchemaRef("", levels),
		"distributions":   openapi3.NewSchemaRef("", enumSet(session.DistributionChoices())),
		"transformations": openapi3.NewSchemaRef("", enumSet(session.TransformationChoices())),
	}
	s.Required = []string{"column", "levels", "distributions", "transformations"}
	return s
}

func hyperSchema() *openapi3.Schema {
	modelTypes := openapi3.NewArraySchema()
	modelTypes.Items = openapi3.NewSchemaRef("", nonEmptyString())
	modelTypes.MinItems = 1
	modelTypes.UniqueItems = true

	metrics := make([]string, 0, len(hyper.Metrics()))
	for _, m := range hyper.Metrics() {
		metrics = append(metrics, string(m))
	}
	secondary := enumString(metrics)
	secondary.Nullable = true

	s := openapi3.NewObjectSchema()
	s.Description = "Run-wide hyperparameters, written to setup_hyper.csv."
	s.Properties = openapi3.Schemas{
		"model_types":                        openapi3.NewSchemaRef("", modelTypes),
		"objective_mode":                     openapi3.NewSchemaRef("", enumString([]string{string(hyper.Single), string(hyper.Multi)})),
		"primary_metric":                     openapi3.NewSchemaRef("", enumString(metrics)),
		"secondary_metric":                   openapi3.NewSchemaRef("", secondary),
		"max_time_seconds":                   openapi3.NewSchemaRef("", intRange(1, nil)),
		"max_iterations_without_improvement": openapi3.NewSchemaRef("", intRange(hyper.MinIterations, ptr(hyper.MaxIterations))),
		"has_validation_split":               openapi3.NewSchemaRef("", openapi3.NewBoolSchema()),
		"train_pct":                          openapi3.NewSchemaRef("", intRange(0, ptr(100))),
		"validation_pct":                     openapi3.NewSchemaRef("", intRange(0, ptr(100))),
		"test_pct":                           openapi3.NewSchemaRef("", intRange(0, ptr(100))),
	}
	s.Required = []string{
		"model_types", "objective_mode", "primary_metric", "secondary_metric",
		"max_time_seconds", "max_iterations_without_improvement",
		"has_validation_split", "train_pct", "validation_pct", "test_pct",
	}
	return s
}

func algorithmSchema() *openapi3.Schema {
	codes := make([]string, 0, len(hyper.Algorithms()))
	for _, alg := range hyper.Algorithms() {
		codes = append(codes, string(alg))
	}

	param := openapi3.NewObjectSchema()
	param.Properties = openapi3.Schemas{
		"key":   openapi3.NewSchemaRef("", nonEmptyString()),
		"label": openapi3.NewSchemaRef("", openapi3.NewStringSchema()),
		"value": openapi3.NewSchemaRef("", openapi3.NewFloat64Schema()),
	}
	param.Required = []string{"key", "value"}

	params := openapi3.NewArraySchema()
	params.Items = openapi3.NewSchemaRef("", param)

	s := openapi3.NewObjectSchema()
	s.Description = "Search algorithm settings, written to setup_algorithm.csv."
	s.Properties = openapi3.Schemas{
		"algorithm": openapi3.NewSchemaRef("", enumString(codes)),
		"params":    openapi3.NewSchemaRef("", params),
	}
	s.Required = []string{"algorithm", "params"}
	return s
}

func nonEmptyString() *openapi3.Schema {
	s := openapi3.NewStringSchema()
	s.MinLength = 1
	return s
}

func enumString(values []string) *openapi3.Schema {
	s := openapi3.NewStringSchema()
	for _, v := range values {
		s.Enum = append(s.Enum, v)
	}
	return s
}

func enumSet(values []string) *openapi3.Schema {
	s := openapi3.NewArraySchema()
	s.Items = openapi3.NewSchemaRef("", enumString(values))
	s.UniqueItems = true
	return s
}

func intRange(lower int, upper *int) *openapi3.Schema {
	s := openapi3.NewIntegerSchema()
	lo := float64(lower)
	s.Min = &lo
	if upper != nil {
		hi := float64(*upper)
		s.Max = &hi
	}
	return s
}

func ptr(v int) *int { return &v }
