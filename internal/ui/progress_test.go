package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"glslx/internal/driver"
)

func TestTruncateKeepsTail(t *testing.T) {
	if got := truncate("short.glsl", 20); got != "short.glsl" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("shaders/lighting/pbr.glsl", 12); got != "...pbr.glsl" && got != ".../pbr.glsl" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("abcdef", 3); got != "abc" {
		t.Fatalf("got %q", got)
	}
	// широкие руны считаются по ширине
	if got := truncate("шейдеры/光照.glsl", 10); len([]rune(got)) > 10 {
		t.Fatalf("got %q", got)
	}
}

func TestApplyEventProgress(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("expand", "/s", []string{"/s/a.glsl", "/s/b.glsl"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "/s/a.glsl", Stage: driver.StageExpand, Status: driver.StatusWorking})
	if got := m.percent(); got != 0.25 {
		t.Fatalf("percent = %v", got)
	}
	m.applyEvent(driver.Event{File: "/s/a.glsl", Stage: driver.StageExpand, Status: driver.StatusDone, Elapsed: time.Millisecond})
	m.applyEvent(driver.Event{File: "/s/b.glsl", Stage: driver.StageExpand, Status: driver.StatusError, Err: errors.New("boom")})
	if got := m.percent(); got != 1 {
		t.Fatalf("percent = %v", got)
	}
	if m.failed != 1 {
		t.Fatalf("failed = %d", m.failed)
	}
	m.applyEvent(driver.Event{File: "unknown.glsl", Status: driver.StatusDone})

	m.done = true
	view := m.View()
	if !strings.Contains(view, "1 failed") || !strings.Contains(view, "a.glsl") || !strings.Contains(view, "boom") {
		t.Fatalf("view:\n%s", view)
	}
}

func TestBatchStageLabel(t *testing.T) {
	m := NewProgressModel("expand", "", []string{"a.glsl"}, nil).(*progressModel)
	m.applyEvent(driver.Event{Stage: driver.StageWrite, Status: driver.StatusWorking})
	if !strings.Contains(m.View(), "(write)") {
		t.Fatalf("view:\n%s", m.View())
	}
}
