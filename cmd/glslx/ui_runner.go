package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"glslx/internal/driver"
	"glslx/internal/ui"
)

type expandOutcome struct {
	batch *driver.Batch
	err   error
}

func runExpandWithUI(ctx context.Context, title string, entries []string, opts driver.Options) (*driver.Batch, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan expandOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = driver.ChannelSink{Ch: events}
		batch, err := driver.ExpandFiles(ctx, entries, optsCopy)
		outcomeCh <- expandOutcome{batch: batch, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, opts.Root, entries, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// UI мог выйти раньше: не даём воркерам заблокироваться на канале
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.batch, uiErr
	}
	return outcome.batch, outcome.err
}
