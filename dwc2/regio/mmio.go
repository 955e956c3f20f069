// Synopsys DesignWare USB 2.0 OTG device-mode driver
// https://github.com/albru123/synopsys-usb-otg
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build dwc2mmio

package regio

import (
	"sync"
	"unsafe"

	"github.com/usbarmory/tamago/arm"
)

// cpu provides the cache maintenance operation MMIO needs ahead of every
// access, as peripheral space is not cache-coherent on these cores.
var cpu = &arm.CPU{}

// MMIO is the real hardware register map: direct, absolute-address,
// 32-bit word access, following the same shape as tamago's internal/reg
// package (mutex-protected, with a cache flush ahead of every access).
type MMIO struct {
	mutex sync.Mutex
}

// Read implements Map.
func (m *MMIO) Read(addr uint32) uint32 {
	r := (*uint32)(unsafe.Pointer(uintptr(addr)))

	m.mutex.Lock()
	defer m.mutex.Unlock()

	cpu.CacheFlushData()
	return *r
}

// Write implements Map.
func (m *MMIO) Write(addr uint32, val uint32) {
	r := (*uint32)(unsafe.Pointer(uintptr(addr)))

	m.mutex.Lock()
	defer m.mutex.Unlock()

	cpu.CacheFlushData()
	*r = val
}
