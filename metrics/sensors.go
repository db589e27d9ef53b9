package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// SensorInput is one temperature channel of a hwmon chip.
type SensorInput struct {
	// Label is the channel label when the chip provides one (tempN_label),
	// otherwise the raw channel name (tempN).
	Label string

	// Celsius is the current reading.
	Celsius float64
}

// SensorChip is a hwmon chip and its temperature channels. The chip Name is
// what the temperature frame's sensor configuration refers to.
type SensorChip struct {
	Name   string
	Inputs []SensorInput
}

// ListSensorChips enumerates every hwmon chip with at least one temperature
// input. It backs the -sensors diagnostic used to pick the CPU and
// mainboard sensor names for the configuration file.
func (p *ProcProvider) ListSensorChips() ([]SensorChip, error) {
	entries, err := os.ReadDir(p.hwmonRoot)
	if err != nil {
		return nil, fmt.Errorf("metrics: read %s: %w", p.hwmonRoot, err)
	}

	var chips []SensorChip
	for _, entry := range entries {
		chipDir := filepath.Join(p.hwmonRoot, entry.Name())

		chipName, err := readSysfsString(filepath.Join(chipDir, "name"))
		if err != nil {
			continue
		}

		inputs, err := readTempInputs(chipDir)
		if err != nil || len(inputs) == 0 {
			continue
		}

		chips = append(chips, SensorChip{Name: chipName, Inputs: inputs})
	}

	sort.Slice(chips, func(i, j int) bool { return chips[i].Name < chips[j].Name })
	return chips, nil
}

// readTempInputs collects tempN_input channels of one chip directory.
func readTempInputs(chipDir string) ([]SensorInput, error) {
	files, err := os.ReadDir(chipDir)
	if err != nil {
		return nil, err
	}

	var inputs []SensorInput
	for _, f := range files {
		name := f.Name()
		if !strings.HasPrefix(name, "temp") || !strings.HasSuffix(name, "_input") {
			continue
		}

		raw, err := readSysfsString(filepath.Join(chipDir, name))
		if err != nil {
			continue
		}
		millideg, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}

		channel := strings.TrimSuffix(name, "_input")
		label, err := readSysfsString(filepath.Join(chipDir, channel+"_label"))
		if err != nil || label == "" {
			label = channel
		}

		inputs = append(inputs, SensorInput{
			Label:   label,
			Celsius: float64(millideg) / 1000.0,
		})
	}

	sort.Slice(inputs, func(i, j int) bool { return inputs[i].Label < inputs[j].Label })
	return inputs, nil
}
