package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"gitlab.com/tinyland/lab/lcd-pulse/config"
	"gitlab.com/tinyland/lab/lcd-pulse/display"
	"gitlab.com/tinyland/lab/lcd-pulse/metrics"
	"gitlab.com/tinyland/lab/lcd-pulse/sched"
	"gitlab.com/tinyland/lab/lcd-pulse/serial"
	"gitlab.com/tinyland/lab/lcd-pulse/tui"
)

// daemon owns the wiring from configuration to the running scheduler:
// logger, metrics provider, frame builders, serial link, and the PID file
// that enforces a single instance per host (the serial device is an
// exclusive resource).
type daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	logFile *os.File
	pidFile string
}

// runDaemonMode builds and runs the daemon until SIGINT/SIGTERM.
func runDaemonMode(cfg *config.Config, verbose bool) error {
	d, err := newDaemon(cfg, verbose)
	if err != nil {
		return err
	}
	defer d.close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return d.run(ctx)
}

// runPreviewMode renders the frame cycle in the terminal instead of
// transmitting it. With mock telemetry it works on any host.
func runPreviewMode(cfg *config.Config, useMock, verbose bool) error {
	logger := newLogger(io.Discard, verbose)

	var provider metrics.Provider
	if useMock {
		provider = metrics.NewMock()
	} else {
		provider = metrics.NewProcProvider(logger)
	}

	entries, err := buildSchedule(cfg, provider, logger)
	if err != nil {
		return err
	}

	return tui.Run(entries)
}

func newDaemon(cfg *config.Config, verbose bool) (*daemon, error) {
	d := &daemon{
		cfg:     cfg,
		pidFile: filepath.Join(os.TempDir(), "lcd-pulse.pid"),
	}

	logDest := io.Writer(os.Stderr)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		d.logFile = f
		logDest = f
	}
	d.logger = newLogger(logDest, verbose)

	return d, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (d *daemon) close() {
	if d.logFile != nil {
		d.logFile.Close()
	}
}

// buildSchedule maps the configured frame list to schedule entries, all
// sharing the global dwell.
func buildSchedule(cfg *config.Config, provider metrics.Provider, logger *slog.Logger) ([]sched.Entry, error) {
	dwell, err := cfg.Dwell()
	if err != nil {
		return nil, err
	}

	sensors := display.TemperatureSensors{
		CPU:  cfg.Sensors.CPU,
		Mobo: cfg.Sensors.Mobo,
	}

	entries := make([]sched.Entry, 0, len(cfg.Schedule.Frames))
	for _, name := range cfg.Schedule.Frames {
		builder, err := display.NewBuilder(name, provider, sensors, nil, logger)
		if err != nil {
			return nil, err
		}
		entries = append(entries, sched.Entry{Builder: builder, Dwell: dwell})
	}

	return entries, nil
}

// run opens the serial link and drives the scheduler until the context is
// cancelled or a write fails. Transport failures are fatal; recovery is
// left to the process supervisor.
func (d *daemon) run(ctx context.Context) error {
	if running, pid := d.isRunning(); running {
		return fmt.Errorf("daemon already running (PID %d)", pid)
	}
	if err := d.writePIDFile(); err != nil {
		return err
	}
	defer d.removePIDFile()

	provider := metrics.NewProcProvider(d.logger)

	entries, err := buildSchedule(d.cfg, provider, d.logger)
	if err != nil {
		return err
	}

	warmUp, err := d.cfg.WarmUp()
	if err != nil {
		return err
	}

	port, err := serial.Open(d.cfg.Serial.Device, d.cfg.Serial.Baud)
	if err != nil {
		return err
	}
	defer port.Close()

	d.logger.Info("serial link open",
		"device", d.cfg.Serial.Device,
		"baud", d.cfg.Serial.Baud,
		"frames", strings.Join(d.cfg.Schedule.Frames, ","),
	)

	scheduler, err := sched.New(port, entries, warmUp, d.logger)
	if err != nil {
		return err
	}

	if err := scheduler.Run(ctx); err != nil {
		if ctx.Err() != nil {
			d.logger.Info("daemon shut down gracefully")
			return nil
		}
		return err
	}
	return nil
}

// writePIDFile writes the current process PID for singleton enforcement.
func (d *daemon) writePIDFile() error {
	pid := os.Getpid()
	if err := os.WriteFile(d.pidFile, []byte(strconv.Itoa(pid)), 0o644); err != nil {
		return fmt.Errorf("write PID file: %w", err)
	}
	d.logger.Info("wrote PID file", "path", d.pidFile, "pid", pid)
	return nil
}

// removePIDFile removes the PID file on shutdown.
func (d *daemon) removePIDFile() {
	if err := os.Remove(d.pidFile); err != nil && !os.IsNotExist(err) {
		d.logger.Error("failed to remove PID file", "path", d.pidFile, "error", err)
		return
	}
	d.logger.Info("removed PID file", "path", d.pidFile)
}

// isRunning checks for another instance by reading the PID file and
// probing the process with signal 0. Stale or corrupt PID files are
// cleaned up.
func (d *daemon) isRunning() (bool, int) {
	data, err := os.ReadFile(d.pidFile)
	if err != nil {
		return false, 0
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		d.logger.Warn("corrupt PID file, removing", "path", d.pidFile, "content", string(data))
		os.Remove(d.pidFile)
		return false, 0
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		// On Unix, FindProcess never returns an error, but handle it anyway.
		os.Remove(d.pidFile)
		return false, 0
	}

	if err := process.Signal(syscall.Signal(0)); err != nil {
		d.logger.Warn("stale PID file, removing", "path", d.pidFile, "pid", pid)
		os.Remove(d.pidFile)
		return false, 0
	}

	return true, pid
}
