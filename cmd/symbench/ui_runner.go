package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sympool/internal/bench"
	"sympool/internal/ui"
)

type benchOutcome struct {
	report *bench.Report
	err    error
}

func runBenchWithUI(ctx context.Context, title string, req bench.Request) (*bench.Report, error) {
	events := make(chan bench.Event, 256)
	outcomeCh := make(chan benchOutcome, 1)

	go func() {
		reqCopy := req
		reqCopy.Progress = bench.ChannelSink{Ch: events}
		rep, err := bench.Run(ctx, reqCopy)
		outcomeCh <- benchOutcome{report: rep, err: err}
		close(events)
	}()

	names := make([]string, len(req.Cases))
	for i, c := range req.Cases {
		names[i] = c.Name()
	}
	model := ui.NewProgressModel(title, names, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep the runner unblocked once nobody reads progress
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.report, uiErr
	}
	return outcome.report, outcome.err
}
