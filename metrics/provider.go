// Package metrics supplies the raw host telemetry consumed by the frame
// builders: CPU frequency and utilization, load averages, memory usage,
// boot time, and named temperature sensors.
package metrics

import "time"

// SensorReading is an optional temperature value. OK is false when the
// named hardware sensor is not present on this host; Value is only
// meaningful when OK is true.
type SensorReading struct {
	Value float64
	OK    bool
}

// Provider is the telemetry source for frame builders. Implementations
// return errors for readings they could not take; builders degrade to
// placeholder output rather than propagating failures.
type Provider interface {
	// CPUFrequencyMHz returns the current CPU clock in MHz.
	CPUFrequencyMHz() (float64, error)

	// CPUPercent returns CPU utilization since the previous call, 0-100.
	// The first call seeds internal counters and reports 0.
	CPUPercent() (float64, error)

	// LoadAverage returns the 1, 5, and 15 minute load averages.
	LoadAverage() (load1, load5, load15 float64, err error)

	// MemoryUsage returns used bytes and used percentage of total memory.
	MemoryUsage() (usedBytes uint64, percent float64, err error)

	// BootTime returns the time the host booted.
	BootTime() (time.Time, error)

	// SensorTemperature looks up a named temperature sensor and returns
	// its current reading in degrees Celsius. A missing sensor is not an
	// error; the reading comes back with OK set to false.
	SensorTemperature(name string) SensorReading
}
