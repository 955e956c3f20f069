// Synopsys DesignWare USB 2.0 OTG device-mode driver
// https://github.com/albru123/synopsys-usb-otg
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build !dwc2hs

package dwc2

// Full-speed build configuration (spec.md §6). This is the default variant
// when neither dwc2fs nor dwc2hs is given.
const (
	highSpeed      = false
	turnaroundTime = 0x6
	fifoDepthWords = 320
	rxFIFOSlack    = 20
)
