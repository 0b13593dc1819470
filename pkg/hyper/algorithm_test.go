package hyper

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSaveAlgorithmFillsDefaults(t *testing.T) {
	t.Parallel()

	w := NewWizard()
	got, err := w.SaveAlgorithm(AlgorithmForm{
		Algorithm: "hs",
		Values:    map[string]float64{"hmcr": 0.75},
	})
	if err != nil {
		t.Fatalf("SaveAlgorithm returned error: %v", err)
	}

	want := AlgorithmRecord{
		Algorithm: HarmonySearch,
		Params: []ParamValue{
			{Key: "harmony_memory_size", Label: "Harmony Memory Size", Value: 20},
			{Key: "hmcr", Label: "HMCR", Value: 0.75},
			{Key: "pitch_adjustment_rate", Label: "Pitch Adjustment Rate", Value: 0.5},
			{Key: "pitch_adjustment_range", Label: "Pitch Adjustment Range", Value: 1},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}

	stored, ok := w.AlgorithmRecord()
	if !ok {
		t.Fatalf("expected stored algorithm record")
	}
	if v, _ := stored.Value("hmcr"); v != 0.75 {
		t.Fatalf("expected stored hmcr 0.75, got %v", v)
	}
}

func TestSaveAlgorithmRejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		form AlgorithmForm
		want error
	}{
		{"unknown algorithm", AlgorithmForm{Algorithm: "GA"}, ErrInvalidChoice},
		{"foreign parameter", AlgorithmForm{Algorithm: "SA", Values: map[string]float64{"hmcr": 0.5}}, ErrValidation},
		{"below minimum", AlgorithmForm{Algorithm: "DE", Values: map[string]float64{"population_size": 2}}, ErrValidation},
		{"above maximum", AlgorithmForm{Algorithm: "SA", Values: map[string]float64{"cooling_rate": 1.5}}, ErrValidation},
		{"fractional integer", AlgorithmForm{Algorithm: "DE", Values: map[string]float64{"population_size": 20.5}}, ErrValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWizard()
			if _, err := w.SaveAlgorithm(tc.form); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if _, ok := w.AlgorithmRecord(); ok {
				t.Fatalf("failed save must not store a record")
			}
		})
	}
}

func TestParamTablesDefaultsInRange(t *testing.T) {
	t.Parallel()

	for _, alg := range Algorithms() {
		params := Params(alg)
		if len(params) == 0 {
			t.Fatalf("%s has no parameters", alg)
		}
		for _, p := range params {
			if p.Default < p.Min || p.Default > p.Max {
				t.Fatalf("%s.%s default %v outside [%v, %v]", alg, p.Key, p.Default, p.Min, p.Max)
			}
		}
	}
}
