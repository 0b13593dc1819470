package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestMatch(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		pattern   string
		namespace string
		want      bool
	}{
		{name: "empty pattern", pattern: "", namespace: "session:wizard", want: false},
		{name: "wildcard", pattern: "*", namespace: "session:wizard", want: true},
		{name: "namespace wildcard", pattern: "session:*", namespace: "session:wizard", want: true},
		{name: "other namespace", pattern: "session:*", namespace: "hyper:save", want: false},
		{name: "list", pattern: "hyper:*, session:*", namespace: "session:store", want: true},
		{name: "exclusion", pattern: "*,-session:store", namespace: "session:store", want: false},
		{name: "exclusion first", pattern: "-session:store,session:*", namespace: "session:store", want: false},
		{name: "exact", pattern: "dataset:csv", namespace: "dataset:csv", want: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Match(tc.pattern, tc.namespace); got != tc.want {
				t.Fatalf("Match(%q, %q) = %v, want %v", tc.pattern, tc.namespace, got, tc.want)
			}
		})
	}
}

func TestLoggerWritesWhenEnabled(t *testing.T) {
	t.Setenv(EnvVar, "session:*")

	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)

	log := New("session:wizard")
	if !log.Enabled() {
		t.Fatalf("expected logger to be enabled")
	}
	log.Printf("advanced to %d", 3)

	if !strings.Contains(buf.String(), "advanced to 3") {
		t.Fatalf("missing message in output: %q", buf.String())
	}
}

func TestLoggerSilentWhenDisabled(t *testing.T) {
	t.Setenv(EnvVar, "")

	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)

	log := New("session:wizard")
	log.Print("nothing")

	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}
