package display

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"gitlab.com/tinyland/lab/lcd-pulse/internal/format"
	"gitlab.com/tinyland/lab/lcd-pulse/metrics"
)

// Builder produces one telemetry frame. Build never fails: a builder that
// cannot take a reading substitutes the NaN placeholder and logs a
// diagnostic, so a flaky sensor degrades one frame instead of stopping the
// transmission cycle.
type Builder interface {
	// Name returns the frame type identifier used in configuration
	// ("cpu", "load", "memory", "uptime", "temperature").
	Name() string

	// Build reads the provider and composes the frame.
	Build() Frame
}

// FrameNames lists the frame type identifiers accepted in configuration, in
// the reference transmission order.
var FrameNames = []string{"cpu", "load", "memory", "uptime", "temperature"}

// KnownFrame reports whether name is a valid frame type identifier.
func KnownFrame(name string) bool {
	for _, n := range FrameNames {
		if n == name {
			return true
		}
	}
	return false
}

// TemperatureSensors names the two hwmon chips shown on the temperature
// frame, e.g. "k10temp" for the CPU and "thinkpad" for the mainboard.
type TemperatureSensors struct {
	CPU  string
	Mobo string
}

// NewBuilder constructs the builder for a frame type identifier. The now
// func feeds the uptime frame and may be nil for time.Now. Unknown names
// are a configuration error.
func NewBuilder(name string, provider metrics.Provider, sensors TemperatureSensors, now func() time.Time, logger *slog.Logger) (Builder, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if now == nil {
		now = time.Now
	}

	switch name {
	case "cpu":
		return &cpuUsageBuilder{provider: provider, logger: logger}, nil
	case "load":
		return &loadAverageBuilder{provider: provider, logger: logger}, nil
	case "memory":
		return &memoryUsageBuilder{provider: provider, logger: logger}, nil
	case "uptime":
		return &uptimeBuilder{provider: provider, now: now, logger: logger}, nil
	case "temperature":
		return &temperatureBuilder{provider: provider, sensors: sensors, logger: logger}, nil
	default:
		return nil, fmt.Errorf("display: unknown frame type %q", name)
	}
}

// nanField renders the placeholder for a reading that could not be taken,
// space-padded to the same width the numeric field would occupy.
func nanField(spec FieldSpec) string {
	return format.PadLeft("NaN", spec.Width())
}

// cpuUsageBuilder renders the CPU frequency and utilization frame:
//
//	   CPU  Usage
//	XXXX.XMHz XXX.X%
type cpuUsageBuilder struct {
	provider metrics.Provider
	logger   *slog.Logger
}

func (b *cpuUsageBuilder) Name() string { return "cpu" }

func (b *cpuUsageBuilder) Build() Frame {
	freqSpec := FieldSpec{IntDigits: 4, DecDigits: 1}
	pctSpec := FieldSpec{IntDigits: 3, DecDigits: 1}

	freqText := nanField(freqSpec)
	if freq, err := b.provider.CPUFrequencyMHz(); err != nil {
		b.logger.Warn("cpu frequency unavailable", "error", err)
	} else {
		freqText = freqSpec.Format(freq)
	}

	pctText := nanField(pctSpec)
	if pct, err := b.provider.CPUPercent(); err != nil {
		b.logger.Warn("cpu utilization unavailable", "error", err)
	} else {
		pctText = pctSpec.Format(pct)
	}

	return NewFrame(
		format.Center("CPU  Usage", RowWidth),
		fmt.Sprintf("%sMHz %s%%", freqText, pctText),
	)
}

// loadAverageBuilder renders the load average frame:
//
//	    Load AVG
//	XX.XX XX.XX XX.X
type loadAverageBuilder struct {
	provider metrics.Provider
	logger   *slog.Logger
}

func (b *loadAverageBuilder) Name() string { return "load" }

func (b *loadAverageBuilder) Build() Frame {
	longSpec := FieldSpec{IntDigits: 2, DecDigits: 2}
	shortSpec := FieldSpec{IntDigits: 2, DecDigits: 1}

	var row2 string
	load1, load5, load15, err := b.provider.LoadAverage()
	if err != nil {
		b.logger.Warn("load average unavailable", "error", err)
		row2 = fmt.Sprintf("%s %s %s", nanField(longSpec), nanField(longSpec), nanField(shortSpec))
	} else {
		row2 = fmt.Sprintf("%s %s %s",
			longSpec.Format(load1),
			longSpec.Format(load5),
			shortSpec.Format(load15),
		)
	}

	return NewFrame(format.Center("Load AVG", RowWidth), row2)
}

// memoryUsageBuilder renders the memory usage frame:
//
//	   MEM  Usage
//	XX.XXXGiB XXX.X%
type memoryUsageBuilder struct {
	provider metrics.Provider
	logger   *slog.Logger
}

func (b *memoryUsageBuilder) Name() string { return "memory" }

func (b *memoryUsageBuilder) Build() Frame {
	usedSpec := FieldSpec{IntDigits: 2, DecDigits: 3}
	pctSpec := FieldSpec{IntDigits: 3, DecDigits: 1}

	usedText := nanField(usedSpec)
	pctText := nanField(pctSpec)

	if usedBytes, percent, err := b.provider.MemoryUsage(); err != nil {
		b.logger.Warn("memory usage unavailable", "error", err)
	} else {
		usedGiB := float64(usedBytes) / (1 << 30)
		usedText = usedSpec.Format(usedGiB)
		pctText = pctSpec.Format(percent)
	}

	return NewFrame(
		format.Center("MEM  Usage", RowWidth),
		fmt.Sprintf("%sGiB %s%%", usedText, pctText),
	)
}

// uptimeBuilder renders the uptime frame:
//
//	     Uptime
//	XXXX d XX h XX m
//
// Days, hours, and minutes come from truncating decomposition of the time
// since boot; seconds never round a minute up.
type uptimeBuilder struct {
	provider metrics.Provider
	now      func() time.Time
	logger   *slog.Logger
}

func (b *uptimeBuilder) Name() string { return "uptime" }

func (b *uptimeBuilder) Build() Frame {
	row1 := format.Center("Uptime", RowWidth)

	booted, err := b.provider.BootTime()
	if err != nil {
		b.logger.Warn("boot time unavailable", "error", err)
		return NewFrame(row1, format.Center("NaN", RowWidth))
	}

	days, hours, minutes := format.DecomposeDuration(b.now().Sub(booted))
	row2 := fmt.Sprintf("%s d %s h %s m",
		format.PadLeft(strconv.Itoa(days), 4),
		format.PadLeft(strconv.Itoa(hours), 2),
		format.PadLeft(strconv.Itoa(minutes), 2),
	)

	return NewFrame(row1, row2)
}

// temperatureBuilder renders the two-sensor temperature frame:
//
//	CPU  Temp XXX.XC
//	MoBo Temp XXX.XC
//
// An absent sensor shows the NaN placeholder in its slot; the frame is
// always emitted.
type temperatureBuilder struct {
	provider metrics.Provider
	sensors  TemperatureSensors
	logger   *slog.Logger
}

func (b *temperatureBuilder) Name() string { return "temperature" }

func (b *temperatureBuilder) Build() Frame {
	spec := FieldSpec{IntDigits: 3, DecDigits: 1}

	return NewFrame(
		fmt.Sprintf("CPU  Temp %sC", b.sensorField(b.sensors.CPU, spec)),
		fmt.Sprintf("MoBo Temp %sC", b.sensorField(b.sensors.Mobo, spec)),
	)
}

func (b *temperatureBuilder) sensorField(name string, spec FieldSpec) string {
	reading := b.provider.SensorTemperature(name)
	if !reading.OK {
		b.logger.Warn("temperature sensor absent", "sensor", name)
		return nanField(spec)
	}
	return spec.Format(reading.Value)
}
