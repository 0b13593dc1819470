// Package prompttest provides a scripted prompt.Driver for tests.
package prompttest

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-metawizard/pkg/prompt"
)

// Driver replays scripted answers in order per prompt kind. When a queue runs
// dry it returns prompt.ErrAborted so flows under test end cleanly.
type Driver struct {
	Inputs   []string
	Selects  []int
	Multi    [][]int
	Confirms []bool

	mu       sync.Mutex
	infos    []string
	asked    []string
	inputPos int
	selPos   int
	multiPos int
	confPos  int
}

var _ prompt.Driver = (*Driver)(nil)

func (d *Driver) record(msg string) {
	d.asked = append(d.asked, msg)
}

func (d *Driver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record(cfg.Message)
	if d.inputPos >= len(d.Inputs) {
		return "", fmt.Errorf("%w: no input scripted for %q", prompt.ErrAborted, cfg.Message)
	}
	val := d.Inputs[d.inputPos]
	d.inputPos++
	if cfg.Validator != nil {
		if err := cfg.Validator(val); err != nil {
			return "", fmt.Errorf("scripted input %q rejected: %w", val, err)
		}
	}
	return val, nil
}

func (d *Driver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record(cfg.Message)
	if d.confPos >= len(d.Confirms) {
		return false, fmt.Errorf("%w: no confirm scripted for %q", prompt.ErrAborted, cfg.Message)
	}
	val := d.Confirms[d.confPos]
	d.confPos++
	return val, nil
}

func (d *Driver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record(cfg.Message)
	if d.selPos >= len(d.Selects) {
		return -1, fmt.Errorf("%w: no select scripted for %q", prompt.ErrAborted, cfg.Message)
	}
	val := d.Selects[d.selPos]
	d.selPos++
	return val, nil
}

func (d *Driver) MultiSelect(_ context.Context, cfg prompt.SelectConfig) ([]int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record(cfg.Message)
	if d.multiPos >= len(d.Multi) {
		return nil, fmt.Errorf("%w: no multiselect scripted for %q", prompt.ErrAborted, cfg.Message)
	}
	val := d.Multi[d.multiPos]
	d.multiPos++
	return val, nil
}

func (d *Driver) Info(_ context.Context, msg string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.infos = append(d.infos, msg)
	return nil
}

// Infos returns every Info message received.
func (d *Driver) Infos() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.infos...)
}

// Asked returns the prompt messages in the order they were shown.
func (d *Driver) Asked() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.asked...)
}

// Exhausted reports whether every scripted answer was consumed.
func (d *Driver) Exhausted() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inputPos == len(d.Inputs) && d.selPos == len(d.Selects) &&
		d.multiPos == len(d.Multi) && d.confPos == len(d.Confirms)
}
