package hyper

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Algorithm names a metaheuristic used by the downstream model search.
type Algorithm string

const (
	SimulatedAnnealing    Algorithm = "SA"
	DifferentialEvolution Algorithm = "DE"
	HarmonySearch         Algorithm = "HS"
)

// Algorithms returns the supported algorithms in display order.
func Algorithms() []Algorithm {
	return []Algorithm{SimulatedAnnealing, DifferentialEvolution, HarmonySearch}
}

// Title returns a human readable algorithm name.
func (a Algorithm) Title() string {
	switch a {
	case SimulatedAnnealing:
		return "Simulated Annealing"
	case DifferentialEvolution:
		return "Differential Evolution"
	case HarmonySearch:
		return "Harmony Search"
	default:
		return string(a)
	}
}

// ParseAlgorithm matches raw against the algorithm codes.
func ParseAlgorithm(raw string) (Algorithm, error) {
	for _, alg := range Algorithms() {
		if strings.EqualFold(strings.TrimSpace(raw), string(alg)) {
			return alg, nil
		}
	}
	return "", fmt.Errorf("%w: algorithm %q", ErrInvalidChoice, raw)
}

// Param declares one tunable algorithm parameter.
type Param struct {
	Key     string
	Label   string
	Min     float64
	Max     float64
	Default float64
	Integer bool
}

var paramTables = map[Algorithm][]Param{
	SimulatedAnnealing: {
		{Key: "initial_solutions", Label: "Initial Number of Solutions", Min: 1, Max: 100, Default: 50, Integer: true},
		{Key: "initial_acceptance", Label: "Initial Acceptance Probability", Min: 1, Max: 100, Default: 50, Integer: true},
		{Key: "crossover_rate", Label: "Crossover Rate", Min: 0.01, Max: 1, Default: 0.3},
		{Key: "cooling_rate", Label: "Cooling Rate", Min: 0.01, Max: 1, Default: 0.95},
		{Key: "mutation_rate", Label: "Mutation Rate", Min: 0.01, Max: 1, Default: 0.2},
	},
	DifferentialEvolution: {
		{Key: "crossover_rate", Label: "Crossover Rate", Min: 0, Max: 1, Default: 0.8},
		{Key: "mutation_rate", Label: "Mutation Rate", Min: 0.01, Max: 1, Default: 0.2},
		{Key: "pitch_adjustment_range", Label: "Pitch Adjustment Range", Min: 1, Max: 5, Default: 1, Integer: true},
		{Key: "population_size", Label: "Population Size", Min: 5, Max: 100, Default: 20, Integer: true},
	},
	HarmonySearch: {
		{Key: "harmony_memory_size", Label: "Harmony Memory Size", Min: 5, Max: 100, Default: 20, Integer: true},
		{Key: "hmcr", Label: "HMCR", Min: 0, Max: 1, Default: 0.9},
		{Key: "pitch_adjustment_rate", Label: "Pitch Adjustment Rate", Min: 0, Max: 1, Default: 0.5},
		{Key: "pitch_adjustment_range", Label: "Pitch Adjustment Range", Min: 1, Max: 5, Default: 1, Integer: true},
	},
}

// Params returns the parameter table of alg, or nil for unknown algorithms.
func Params(alg Algorithm) []Param {
	return append([]Param(nil), paramTables[alg]...)
}

// AlgorithmForm holds raw algorithm input. Missing values take the default.
type AlgorithmForm struct {
	Algorithm string
	Values    map[string]float64
}

// ParamValue is one resolved algorithm parameter.
type ParamValue struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// AlgorithmRecord is a saved algorithm configuration with every parameter of
// the algorithm's table in declaration order.
type AlgorithmRecord struct {
	Algorithm Algorithm    `json:"algorithm"`
	Params    []ParamValue `json:"params"`
}

// SaveAlgorithm validates form against the algorithm's parameter table and
// stores the record, replacing any earlier one.
func (w *Wizard) SaveAlgorithm(form AlgorithmForm) (AlgorithmRecord, error) {
	alg, err := ParseAlgorithm(form.Algorithm)
	if err != nil {
		return AlgorithmRecord{}, err
	}
	table := paramTables[alg]

	known := make(map[string]struct{}, len(table))
	for _, param := range table {
		known[param.Key] = struct{}{}
	}
	var foreign []string
	for key := range form.Values {
		if _, ok := known[key]; !ok {
			foreign = append(foreign, key)
		}
	}
	if len(foreign) > 0 {
		sort.Strings(foreign)
		return AlgorithmRecord{}, fmt.Errorf("%w: %s does not take %s", ErrValidation, alg, strings.Join(foreign, ", "))
	}

	record := AlgorithmRecord{Algorithm: alg, Params: make([]ParamValue, 0, len(table))}
	for _, param := range table {
		value, ok := form.Values[param.Key]
		if !ok {
			value = param.Default
		}
		if math.IsNaN(value) || value < param.Min || value > param.Max {
			return AlgorithmRecord{}, fmt.Errorf("%w: %s must be in [%g, %g], got %g", ErrValidation, param.Key, param.Min, param.Max, value)
		}
		if param.Integer && value != math.Trunc(value) {
			return AlgorithmRecord{}, fmt.Errorf("%w: %s must be a whole number, got %g", ErrValidation, param.Key, value)
		}
		record.Params = append(record.Params, ParamValue{Key: param.Key, Label: param.Label, Value: value})
	}

	w.mu.Lock()
	stored := record.clone()
	w.algorithm = &stored
	w.mu.Unlock()

	log.Printf("saved algorithm %s with %d params", alg, len(record.Params))
	return record, nil
}

// AlgorithmRecord returns the last saved algorithm configuration.
func (w *Wizard) AlgorithmRecord() (AlgorithmRecord, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.algorithm == nil {
		return AlgorithmRecord{}, false
	}
	return w.algorithm.clone(), true
}

// Value looks up a parameter by key.
func (r AlgorithmRecord) Value(key string) (float64, bool) {
	for _, p := range r.Params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return 0, false
}

func (r AlgorithmRecord) clone() AlgorithmRecord {
	out := r
	out.Params = append([]ParamValue(nil), r.Params...)
	return out
}
