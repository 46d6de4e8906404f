package main

import (
	"fmt"
	"os"
	"strings"
)

// spinnerMode is the parsed --ui setting.
type spinnerMode uint8

const (
	spinnerOnTTY spinnerMode = iota
	spinnerAlways
	spinnerNever
)

var spinnerModes = map[string]spinnerMode{
	"":     spinnerOnTTY,
	"auto": spinnerOnTTY,
	"on":   spinnerAlways,
	"off":  spinnerNever,
}

func parseSpinnerMode(value string) (spinnerMode, error) {
	mode, ok := spinnerModes[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return 0, fmt.Errorf("invalid --ui value %q: the checker spinner is auto, on or off", value)
	}
	return mode, nil
}

// showSpinner reports whether the checker spinner is drawn. It renders on
// stderr, so only stderr needs to be a terminal.
func (m spinnerMode) showSpinner() bool {
	switch m {
	case spinnerAlways:
		return true
	case spinnerNever:
		return false
	default:
		return isTerminal(os.Stderr)
	}
}
