// ABOUTME: Serial link to the playback device
// ABOUTME: Opens ports at 115200 baud and writes whole PCM chunks
package transport

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

const (
	// BaudRate of the device's UART.
	BaudRate = 115200

	// ReadTimeout bounds blocking reads on the open port.
	ReadTimeout = 1000 * time.Millisecond
)

// Port is an open connection to the playback device. The device has no
// flow control; it consumes bytes at its fixed sample clock and all
// pacing happens on the sending side.
type Port interface {
	// WriteAll writes the entire buffer or returns an error.
	WriteAll(p []byte) error
	Close() error
}

type serialPort struct {
	port serial.Port
	name string
}

// Open opens the named serial port at the device baud rate.
func Open(name string) (Port, error) {
	mode := &serial.Mode{BaudRate: BaudRate}
	p, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	if err := p.SetReadTimeout(ReadTimeout); err != nil {
		p.Close()
		return nil, fmt.Errorf("configure %s: %w", name, err)
	}

	return &serialPort{port: p, name: name}, nil
}

func (s *serialPort) WriteAll(buf []byte) error {
	for len(buf) > 0 {
		n, err := s.port.Write(buf)
		if err != nil {
			return fmt.Errorf("write %s: %w", s.name, err)
		}
		buf = buf[n:]
	}
	return nil
}

func (s *serialPort) Close() error {
	return s.port.Close()
}

// ListPorts returns the serial ports present on the system.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}
	return ports, nil
}
