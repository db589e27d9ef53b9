// Package serial opens and configures the byte-oriented serial link to the
// display device. It talks termios directly via golang.org/x/sys/unix and
// is Linux-only, matching the daemon's /proc and /sys metric sources.
//
// The link is write-only from the daemon's perspective: the display renders
// received bytes verbatim and never talks back, so there is no read path,
// no flow control, and no framing beyond the fixed 32-byte payload the
// receiver expects.
package serial

import (
	"fmt"
	"sort"

	"golang.org/x/sys/unix"
)

// baudRates maps configurable baud rates to their termios speed constants.
var baudRates = map[int]uint32{
	1200:   unix.B1200,
	2400:   unix.B2400,
	4800:   unix.B4800,
	9600:   unix.B9600,
	19200:  unix.B19200,
	38400:  unix.B38400,
	57600:  unix.B57600,
	115200: unix.B115200,
}

// SupportedBaud reports whether the given baud rate can be configured.
func SupportedBaud(baud int) bool {
	_, ok := baudRates[baud]
	return ok
}

// SupportedBauds returns the configurable baud rates in ascending order.
func SupportedBauds() []int {
	rates := make([]int, 0, len(baudRates))
	for baud := range baudRates {
		rates = append(rates, baud)
	}
	sort.Ints(rates)
	return rates
}

// Port is an exclusively-owned open serial connection.
type Port struct {
	fd     int
	device string
}

// Open opens the serial device and configures it for raw 8N1 output at the
// given baud rate. Raw mode matters: with line discipline processing left
// on, the kernel would translate or buffer frame bytes and the display
// would render garbage.
func Open(device string, baud int) (*Port, error) {
	speed, ok := baudRates[baud]
	if !ok {
		return nil, fmt.Errorf("serial: unsupported baud rate %d (supported: %v)", baud, SupportedBauds())
	}

	fd, err := unix.Open(device, unix.O_RDWR|unix.O_NOCTTY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", device, err)
	}

	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("serial: get termios for %s: %w", device, err)
	}

	// Raw mode, 8 data bits, no parity, one stop bit, receiver enabled,
	// modem control lines ignored.
	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CSIZE | unix.PARENB | unix.CSTOPB
	t.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL

	t.Cflag = (t.Cflag &^ unix.CBAUD) | speed
	t.Ispeed = speed
	t.Ospeed = speed

	// Non-blocking reads; the daemon never reads, but a sane VMIN/VTIME
	// keeps diagnostic tools from hanging on the same settings.
	t.Cc[unix.VMIN] = 0
	t.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, t); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("serial: set termios for %s: %w", device, err)
	}

	return &Port{fd: fd, device: device}, nil
}

// Write writes the whole buffer to the port, retrying short writes. There
// is no write timeout: an unresponsive device blocks the caller
// indefinitely (see the sched package docs).
func (p *Port) Write(buf []byte) (int, error) {
	written := 0
	for written < len(buf) {
		n, err := unix.Write(p.fd, buf[written:])
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return written, fmt.Errorf("serial: write %s: %w", p.device, err)
		}
		written += n
	}
	return written, nil
}

// Close closes the underlying file descriptor.
func (p *Port) Close() error {
	if err := unix.Close(p.fd); err != nil {
		return fmt.Errorf("serial: close %s: %w", p.device, err)
	}
	return nil
}

// Device returns the device path the port was opened with.
func (p *Port) Device() string {
	return p.device
}
