// Synopsys DesignWare USB 2.0 OTG device-mode driver
// https://github.com/albru123/synopsys-usb-otg
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build dwc2hs

package dwc2

// High-speed build configuration (spec.md §6).
const (
	highSpeed      = true
	turnaroundTime = 0x9
	fifoDepthWords = 1024
	rxFIFOSlack    = 30
)
