package metrics

import "time"

// Mock is a deterministic Provider for tests and for preview mode on hosts
// without /proc. Zero-value fields read as zero; Sensors maps sensor names
// to readings, and lookups of unlisted names report an absent sensor.
type Mock struct {
	FrequencyMHz float64
	Percent      float64
	Load1        float64
	Load5        float64
	Load15       float64
	UsedBytes    uint64
	UsedPercent  float64
	Booted       time.Time
	Sensors      map[string]float64

	// Err, when set, is returned by every reading except sensor lookups.
	Err error
}

// NewMock returns a Mock with plausible steady-state readings and the two
// sensor names the default configuration expects.
func NewMock() *Mock {
	return &Mock{
		FrequencyMHz: 2894.5,
		Percent:      23.4,
		Load1:        0.52,
		Load5:        0.48,
		Load15:       0.31,
		UsedBytes:    6871947673, // ~6.4 GiB
		UsedPercent:  41.2,
		Booted:       time.Now().Add(-(26*time.Hour + 13*time.Minute)),
		Sensors: map[string]float64{
			"k10temp":  54.3,
			"thinkpad": 47.8,
		},
	}
}

func (m *Mock) CPUFrequencyMHz() (float64, error) { return m.FrequencyMHz, m.Err }

func (m *Mock) CPUPercent() (float64, error) { return m.Percent, m.Err }

func (m *Mock) LoadAverage() (float64, float64, float64, error) {
	return m.Load1, m.Load5, m.Load15, m.Err
}

func (m *Mock) MemoryUsage() (uint64, float64, error) {
	return m.UsedBytes, m.UsedPercent, m.Err
}

func (m *Mock) BootTime() (time.Time, error) { return m.Booted, m.Err }

func (m *Mock) SensorTemperature(name string) SensorReading {
	value, ok := m.Sensors[name]
	return SensorReading{Value: value, OK: ok}
}

// Compile-time interface compliance check.
var _ Provider = (*Mock)(nil)
