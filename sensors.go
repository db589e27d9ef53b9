package main

import (
	"fmt"
	"io"

	"gitlab.com/tinyland/lab/lcd-pulse/metrics"
)

// listSensors prints every hwmon chip with temperature inputs so users can
// pick the sensors.cpu and sensors.mobo names for their configuration.
func listSensors(w io.Writer) error {
	provider := metrics.NewProcProvider(nil)

	chips, err := provider.ListSensorChips()
	if err != nil {
		return err
	}

	if len(chips) == 0 {
		fmt.Fprintln(w, "No temperature sensors found.")
		return nil
	}

	fmt.Fprintln(w, "Available temperature sensors:")
	fmt.Fprintln(w)
	for _, chip := range chips {
		fmt.Fprintf(w, "  %s\n", chip.Name)
		for _, input := range chip.Inputs {
			fmt.Fprintf(w, "    %-12s %6.1f C\n", input.Label, input.Celsius)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Set the chip names under 'sensors:' in the configuration file.")
	fmt.Fprintln(w, "The temperature frame reads each chip's first input (temp1).")

	return nil
}
