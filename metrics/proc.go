package metrics

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ProcProvider reads telemetry from the Linux /proc and /sys filesystems.
// CPU utilization is computed as an idle/total delta between successive
// calls, so the first CPUPercent call seeds the counters and reports 0.
//
// File access goes through overridable opener funcs so tests can feed
// canned /proc contents without a Linux host.
type ProcProvider struct {
	logger *slog.Logger

	// prevIdle and prevTotal track the last CPU sample for delta computation.
	prevIdle  uint64
	prevTotal uint64

	// hwmonRoot is the sysfs hwmon directory, normally /sys/class/hwmon.
	hwmonRoot string

	// Overridable file openers for testing.
	openProcStat    func() (io.ReadCloser, error)
	openProcCPUInfo func() (io.ReadCloser, error)
	openProcMeminfo func() (io.ReadCloser, error)
	openProcLoadavg func() (io.ReadCloser, error)
}

// NewProcProvider creates a ProcProvider reading from the standard /proc
// and /sys paths. If logger is nil, a no-op logger is used.
func NewProcProvider(logger *slog.Logger) *ProcProvider {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &ProcProvider{
		logger:    logger,
		hwmonRoot: "/sys/class/hwmon",
		openProcStat: func() (io.ReadCloser, error) {
			return os.Open("/proc/stat")
		},
		openProcCPUInfo: func() (io.ReadCloser, error) {
			return os.Open("/proc/cpuinfo")
		},
		openProcMeminfo: func() (io.ReadCloser, error) {
			return os.Open("/proc/meminfo")
		},
		openProcLoadavg: func() (io.ReadCloser, error) {
			return os.Open("/proc/loadavg")
		},
	}
}

// CPUFrequencyMHz reads the first "cpu MHz" line from /proc/cpuinfo.
func (p *ProcProvider) CPUFrequencyMHz() (float64, error) {
	f, err := p.openProcCPUInfo()
	if err != nil {
		return 0, fmt.Errorf("metrics: open /proc/cpuinfo: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "cpu MHz") {
			continue
		}

		_, value, found := strings.Cut(line, ":")
		if !found {
			return 0, fmt.Errorf("metrics: malformed cpu MHz line: %q", line)
		}

		mhz, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, fmt.Errorf("metrics: parse cpu MHz: %w", err)
		}
		return mhz, nil
	}

	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("metrics: read /proc/cpuinfo: %w", err)
	}
	return 0, fmt.Errorf("metrics: cpu MHz not found in /proc/cpuinfo")
}

// CPUPercent reads /proc/stat and computes utilization as the delta against
// the previous reading. The first call seeds the counters and returns 0.
func (p *ProcProvider) CPUPercent() (float64, error) {
	f, err := p.openProcStat()
	if err != nil {
		return 0, fmt.Errorf("metrics: open /proc/stat: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			return 0, fmt.Errorf("metrics: /proc/stat cpu line too short: %q", line)
		}

		// Fields: cpu user nice system idle iowait irq softirq steal ...
		var total, idle uint64
		for i := 1; i < len(fields); i++ {
			val, err := strconv.ParseUint(fields[i], 10, 64)
			if err != nil {
				return 0, fmt.Errorf("metrics: parse /proc/stat field %d: %w", i, err)
			}
			total += val
			if i == 4 { // idle field
				idle = val
			}
		}

		// First reading: seed counters, report 0.
		if p.prevTotal == 0 {
			p.prevIdle = idle
			p.prevTotal = total
			return 0, nil
		}

		deltaTotal := total - p.prevTotal
		deltaIdle := idle - p.prevIdle
		p.prevIdle = idle
		p.prevTotal = total

		if deltaTotal == 0 {
			return 0, nil
		}

		pct := (1.0 - float64(deltaIdle)/float64(deltaTotal)) * 100.0
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		return pct, nil
	}

	return 0, fmt.Errorf("metrics: cpu line not found in /proc/stat")
}

// LoadAverage reads the first three fields of /proc/loadavg.
func (p *ProcProvider) LoadAverage() (float64, float64, float64, error) {
	f, err := p.openProcLoadavg()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("metrics: open /proc/loadavg: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return 0, 0, 0, fmt.Errorf("metrics: /proc/loadavg is empty")
	}

	fields := strings.Fields(scanner.Text())
	if len(fields) < 3 {
		return 0, 0, 0, fmt.Errorf("metrics: /proc/loadavg too few fields: %q", scanner.Text())
	}

	loads := make([]float64, 3)
	for i := 0; i < 3; i++ {
		val, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("metrics: parse loadavg field %d: %w", i, err)
		}
		loads[i] = val
	}

	return loads[0], loads[1], loads[2], nil
}

// MemoryUsage reads MemTotal and MemAvailable from /proc/meminfo and
// returns used bytes plus used percentage.
func (p *ProcProvider) MemoryUsage() (uint64, float64, error) {
	f, err := p.openProcMeminfo()
	if err != nil {
		return 0, 0, fmt.Errorf("metrics: open /proc/meminfo: %w", err)
	}
	defer f.Close()

	var memTotal, memAvailable uint64
	var foundTotal, foundAvailable bool

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "MemTotal:") {
			val, err := parseMemInfoLine(line)
			if err != nil {
				return 0, 0, fmt.Errorf("metrics: parse MemTotal: %w", err)
			}
			memTotal = val
			foundTotal = true
		} else if strings.HasPrefix(line, "MemAvailable:") {
			val, err := parseMemInfoLine(line)
			if err != nil {
				return 0, 0, fmt.Errorf("metrics: parse MemAvailable: %w", err)
			}
			memAvailable = val
			foundAvailable = true
		}

		if foundTotal && foundAvailable {
			break
		}
	}

	if !foundTotal {
		return 0, 0, fmt.Errorf("metrics: MemTotal not found in /proc/meminfo")
	}
	if !foundAvailable {
		return 0, 0, fmt.Errorf("metrics: MemAvailable not found in /proc/meminfo")
	}
	if memTotal == 0 {
		return 0, 0, fmt.Errorf("metrics: MemTotal is zero")
	}

	usedKB := memTotal - memAvailable
	percent := float64(usedKB) / float64(memTotal) * 100.0
	return usedKB * 1024, percent, nil
}

// parseMemInfoLine extracts the numeric kB value from a /proc/meminfo line.
// Format: "MemTotal:       16384000 kB"
func parseMemInfoLine(line string) (uint64, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, fmt.Errorf("too few fields: %q", line)
	}
	return strconv.ParseUint(fields[1], 10, 64)
}

// BootTime reads the btime line from /proc/stat.
func (p *ProcProvider) BootTime() (time.Time, error) {
	f, err := p.openProcStat()
	if err != nil {
		return time.Time{}, fmt.Errorf("metrics: open /proc/stat: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "btime ") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return time.Time{}, fmt.Errorf("metrics: malformed btime line: %q", line)
		}

		epoch, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("metrics: parse btime: %w", err)
		}
		return time.Unix(epoch, 0), nil
	}

	return time.Time{}, fmt.Errorf("metrics: btime not found in /proc/stat")
}

// SensorTemperature scans the hwmon tree for a chip whose name file matches
// the given sensor name and reads its first temperature input
// (temp1_input, reported in millidegrees Celsius). A chip that is absent or
// unreadable yields a reading with OK set to false.
func (p *ProcProvider) SensorTemperature(name string) SensorReading {
	entries, err := os.ReadDir(p.hwmonRoot)
	if err != nil {
		p.logger.Debug("hwmon tree unavailable", "root", p.hwmonRoot, "error", err)
		return SensorReading{}
	}

	for _, entry := range entries {
		chipDir := filepath.Join(p.hwmonRoot, entry.Name())

		chipName, err := readSysfsString(filepath.Join(chipDir, "name"))
		if err != nil || chipName != name {
			continue
		}

		raw, err := readSysfsString(filepath.Join(chipDir, "temp1_input"))
		if err != nil {
			p.logger.Debug("sensor has no temp1_input", "sensor", name, "error", err)
			return SensorReading{}
		}

		millideg, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			p.logger.Debug("sensor value not numeric", "sensor", name, "value", raw)
			return SensorReading{}
		}

		return SensorReading{Value: float64(millideg) / 1000.0, OK: true}
	}

	return SensorReading{}
}

// readSysfsString reads a single-value sysfs file and trims the trailing newline.
func readSysfsString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Compile-time interface compliance check.
var _ Provider = (*ProcProvider)(nil)
