package display

import (
	"errors"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/lcd-pulse/metrics"
)

func testSensors() TemperatureSensors {
	return TemperatureSensors{CPU: "k10temp", Mobo: "thinkpad"}
}

func mustBuilder(t *testing.T, name string, provider metrics.Provider, now func() time.Time) Builder {
	t.Helper()
	b, err := NewBuilder(name, provider, testSensors(), now, nil)
	if err != nil {
		t.Fatalf("NewBuilder(%q): %v", name, err)
	}
	return b
}

func TestNewBuilderUnknownFrame(t *testing.T) {
	_, err := NewBuilder("gpu", metrics.NewMock(), testSensors(), nil, nil)
	if err == nil {
		t.Fatal("expected error for unknown frame type")
	}
}

func TestKnownFrame(t *testing.T) {
	for _, name := range FrameNames {
		if !KnownFrame(name) {
			t.Errorf("KnownFrame(%q) = false", name)
		}
	}
	if KnownFrame("gpu") {
		t.Error("KnownFrame(gpu) = true")
	}
}

// Every builder must emit 16-character rows, with healthy readings, with a
// failing provider, and with missing sensors.
func TestBuildersRowWidthInvariant(t *testing.T) {
	providers := []struct {
		label    string
		provider metrics.Provider
	}{
		{"healthy", metrics.NewMock()},
		{"all readings fail", &metrics.Mock{Err: errors.New("telemetry offline")}},
		{"sensors missing", &metrics.Mock{Sensors: nil}},
	}

	for _, tc := range providers {
		for _, name := range FrameNames {
			b := mustBuilder(t, name, tc.provider, nil)
			frame := b.Build()
			if len(frame.Row1) != RowWidth {
				t.Errorf("%s/%s: Row1 length = %d (%q)", tc.label, name, len(frame.Row1), frame.Row1)
			}
			if len(frame.Row2) != RowWidth {
				t.Errorf("%s/%s: Row2 length = %d (%q)", tc.label, name, len(frame.Row2), frame.Row2)
			}
		}
	}
}

func TestCPUUsageFrame(t *testing.T) {
	b := mustBuilder(t, "cpu", metrics.NewMock(), nil)

	frame := b.Build()
	if frame.Row1 != "   CPU  Usage   " {
		t.Errorf("Row1 = %q", frame.Row1)
	}
	if frame.Row2 != "2894.5MHz  23.4%" {
		t.Errorf("Row2 = %q", frame.Row2)
	}
}

func TestLoadAverageFrame(t *testing.T) {
	b := mustBuilder(t, "load", metrics.NewMock(), nil)

	frame := b.Build()
	if frame.Row1 != "    Load AVG    " {
		t.Errorf("Row1 = %q", frame.Row1)
	}
	if frame.Row2 != " 0.52  0.48  0.3" {
		t.Errorf("Row2 = %q", frame.Row2)
	}
}

func TestMemoryUsageFrame(t *testing.T) {
	mock := metrics.NewMock()
	mock.UsedBytes = 6 << 30 // exactly 6 GiB
	mock.UsedPercent = 41.2

	b := mustBuilder(t, "memory", mock, nil)

	frame := b.Build()
	if frame.Row1 != "   MEM  Usage   " {
		t.Errorf("Row1 = %q", frame.Row1)
	}
	if frame.Row2 != " 6.000GiB  41.2%" {
		t.Errorf("Row2 = %q", frame.Row2)
	}
}

func TestUptimeFrame(t *testing.T) {
	booted := time.Date(2026, 8, 20, 6, 0, 0, 0, time.UTC)
	mock := metrics.NewMock()
	mock.Booted = booted

	now := func() time.Time {
		return booted.Add(3*24*time.Hour + 7*time.Hour + 42*time.Minute + 30*time.Second)
	}

	b := mustBuilder(t, "uptime", mock, now)

	frame := b.Build()
	if frame.Row1 != "     Uptime     " {
		t.Errorf("Row1 = %q", frame.Row1)
	}
	// Seconds truncate; they never round the minute up.
	if frame.Row2 != "   3 d  7 h 42 m" {
		t.Errorf("Row2 = %q", frame.Row2)
	}
}

func TestTemperatureFrame(t *testing.T) {
	b := mustBuilder(t, "temperature", metrics.NewMock(), nil)

	frame := b.Build()
	if frame.Row1 != "CPU  Temp  54.3C" {
		t.Errorf("Row1 = %q", frame.Row1)
	}
	if frame.Row2 != "MoBo Temp  47.8C" {
		t.Errorf("Row2 = %q", frame.Row2)
	}
}

// A missing sensor degrades its slot to the NaN placeholder; the frame is
// still emitted with full-width rows.
func TestTemperatureFrameMissingSensor(t *testing.T) {
	mock := metrics.NewMock()
	delete(mock.Sensors, "thinkpad")

	b := mustBuilder(t, "temperature", mock, nil)

	frame := b.Build()
	if frame.Row1 != "CPU  Temp  54.3C" {
		t.Errorf("Row1 = %q", frame.Row1)
	}
	if frame.Row2 != "MoBo Temp   NaNC" {
		t.Errorf("Row2 = %q", frame.Row2)
	}
}

func TestUptimeFrameBootTimeUnavailable(t *testing.T) {
	mock := &metrics.Mock{Err: errors.New("no btime")}

	b := mustBuilder(t, "uptime", mock, nil)

	frame := b.Build()
	if frame.Row2 != "      NaN       " {
		t.Errorf("Row2 = %q", frame.Row2)
	}
}
