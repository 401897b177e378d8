package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode selects the bubbletea progress view for `glslx expand`.
type uiMode uint8

const (
	uiModeAuto uiMode = iota
	uiModeOn
	uiModeOff
)

var uiModeNames = map[string]uiMode{
	"":     uiModeAuto,
	"auto": uiModeAuto,
	"on":   uiModeOn,
	"off":  uiModeOff,
}

func (m uiMode) String() string {
	return [...]string{"auto", "on", "off"}[m]
}

func readUIMode(value string) (uiMode, error) {
	m, ok := uiModeNames[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return uiModeAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return m, nil
}

// shouldUseTUI: the view draws on stderr, so auto wants a terminal there
// and more than one entry to show.
func shouldUseTUI(mode uiMode, entries int) bool {
	if mode != uiModeAuto {
		return mode == uiModeOn
	}
	return entries > 1 && isTerminal(os.Stderr)
}
