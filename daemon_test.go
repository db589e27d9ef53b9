package main

import (
	"strings"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/lcd-pulse/config"
	"gitlab.com/tinyland/lab/lcd-pulse/metrics"
)

func TestBuildScheduleFollowsConfiguredOrder(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Schedule.Frames = []string{"temperature", "cpu", "temperature"}

	entries, err := buildSchedule(cfg, metrics.NewMock(), nil)
	if err != nil {
		t.Fatalf("buildSchedule: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	for i, want := range []string{"temperature", "cpu", "temperature"} {
		if got := entries[i].Builder.Name(); got != want {
			t.Errorf("entry %d = %s, want %s", i, got, want)
		}
	}
	for i, e := range entries {
		if e.Dwell != 3*time.Second {
			t.Errorf("entry %d dwell = %v, want 3s", i, e.Dwell)
		}
	}
}

func TestBuildScheduleRejectsUnknownFrame(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Schedule.Frames = []string{"gpu"}

	if _, err := buildSchedule(cfg, metrics.NewMock(), nil); err == nil {
		t.Fatal("expected error for unknown frame")
	}
}

func TestResolveConfigPath(t *testing.T) {
	if got := resolveConfigPath("/etc/lcd-pulse.yaml"); got != "/etc/lcd-pulse.yaml" {
		t.Errorf("explicit path = %s", got)
	}

	got := resolveConfigPath("")
	if got != "" && !strings.HasSuffix(got, "/.config/lcd-pulse/config.yaml") {
		t.Errorf("default path = %s", got)
	}
}
