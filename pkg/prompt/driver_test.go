package prompt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"
)

func TestTranslateSurveyErr(t *testing.T) {
	t.Parallel()

	if err := translateSurveyErr(fmt.Errorf("wrapped: %w", terminal.InterruptErr)); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	other := errors.New("eof")
	if err := translateSurveyErr(other); !errors.Is(err, other) {
		t.Fatalf("expected passthrough, got %v", err)
	}
}

func TestIndexHelpers(t *testing.T) {
	t.Parallel()

	options := []string{"Normal", "Triangular", "Uniform"}
	if got := IndexOf(options, "Uniform"); got != 2 {
		t.Fatalf("IndexOf = %d", got)
	}
	if got := IndexOf(options, "Gamma"); got != -1 {
		t.Fatalf("IndexOf missing = %d", got)
	}
	if diff := cmp.Diff([]int{0, 2}, indicesOf(options, []string{"Uniform", "Normal"})); diff != "" {
		t.Fatalf("indicesOf mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Triangular"}, defaultsFromIndices(options, []int{1, 7, -1})); diff != "" {
		t.Fatalf("defaultsFromIndices mismatch (-want +got):\n%s", diff)
	}
}

func TestSurveyInfoWritesLine(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	d := NewSurveyDriver(WithInfoWriter(&buf))
	if err := d.Info(context.Background(), "saved"); err != nil {
		t.Fatalf("Info returned error: %v", err)
	}
	if buf.String() != "saved\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := d.Input(ctx, InputConfig{Message: "x"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
