package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode is the --ui setting of bench.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

var uiModes = map[string]uiMode{
	"":     uiModeAuto,
	"auto": uiModeAuto,
	"on":   uiModeOn,
	"off":  uiModeOff,
}

func readUIMode(value string) (uiMode, error) {
	mode, ok := uiModes[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return mode, nil
}

// wantsTUI decides without touching the terminal; auto needs a tty and a
// report that does not share stdout with the progress view.
func (m uiMode) wantsTUI(reportToStdout, stdoutIsTTY bool) bool {
	if m == uiModeAuto {
		return stdoutIsTTY && !reportToStdout
	}
	return m == uiModeOn
}

func shouldUseTUI(mode uiMode, reportToStdout bool) bool {
	return mode.wantsTUI(reportToStdout, isTerminal(os.Stdout))
}
