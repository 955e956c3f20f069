// Synopsys DesignWare USB 2.0 OTG device-mode driver
// https://github.com/albru123/synopsys-usb-otg
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package critical provides the mutual-exclusion primitive the bus
// controller uses to serialize MMIO and endpoint-buffer access between the
// upper USB stack and the interrupt context that drains the RX FIFO.
//
// spec.md treats this as an external collaborator ("interrupt::free") out
// of scope for the driver itself. This package models it as a narrow
// interface so the driver can run either on single-core bare metal, where
// disabling IRQs is the real primitive (see irq.go), or under `go test`,
// where a mutex is the correct stand-in.
package critical

import "sync"

// Section serializes access to shared hardware/software state. Nesting is
// flat: a Section implementation need not support reentrant Do calls from
// within another Do on the same goroutine.
type Section interface {
	Do(func())
}

// Mutex is a portable Section backed by a standard mutex. It is the correct
// choice for any target with true preemption, and is what tests use.
type Mutex struct {
	mu sync.Mutex
}

// NewMutex returns a ready-to-use Mutex section.
func NewMutex() *Mutex {
	return &Mutex{}
}

// Do runs fn with exclusive access held.
func (m *Mutex) Do(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn()
}
