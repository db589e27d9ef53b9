// lcd-pulse streams host telemetry to a microcontroller-driven 16x2
// character LCD over a serial link.
//
// It polls CPU usage and frequency, load averages, memory usage, uptime,
// and temperature sensors, formats each category as a two-row fixed-width
// frame, and transmits the frames round-robin at a fixed cadence. The
// receiving device renders the 32-byte payloads verbatim.
//
// Usage:
//
//	lcd-pulse [flags]
//
// Flags:
//
//	-daemon          Run the transmission daemon
//	-preview         Preview the frame cycle in the terminal (no hardware needed)
//	-mock            Use mock telemetry in preview mode
//	-sensors         List available temperature sensors and exit
//	-config string   Path to configuration file (default: ~/.config/lcd-pulse/config.yaml)
//	-verbose         Enable verbose logging
//	-version         Print version and exit
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gitlab.com/tinyland/lab/lcd-pulse/config"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file (default: ~/.config/lcd-pulse/config.yaml)")
		runDaemon   = flag.Bool("daemon", false, "Run the transmission daemon")
		runPreview  = flag.Bool("preview", false, "Preview the frame cycle in the terminal")
		useMock     = flag.Bool("mock", false, "Use mock telemetry in preview mode")
		runSensors  = flag.Bool("sensors", false, "List available temperature sensors and exit")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("lcd-pulse %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if *runSensors {
		if err := listSensors(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "lcd-pulse: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	cfg, err := config.Load(resolveConfigPath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "lcd-pulse: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "lcd-pulse: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *runPreview:
		if err := runPreviewMode(cfg, *useMock, *verbose); err != nil {
			fmt.Fprintf(os.Stderr, "lcd-pulse: %v\n", err)
			os.Exit(1)
		}

	case *runDaemon:
		if err := runDaemonMode(cfg, *verbose); err != nil {
			fmt.Fprintf(os.Stderr, "lcd-pulse: %v\n", err)
			os.Exit(1)
		}

	default:
		flag.Usage()
		os.Exit(2)
	}
}

// resolveConfigPath returns the explicit path when given, otherwise the
// default location under the user config directory.
func resolveConfigPath(path string) string {
	if path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lcd-pulse", "config.yaml")
}
