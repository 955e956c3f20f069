// Synopsys DesignWare USB 2.0 OTG device-mode driver
// https://github.com/albru123/synopsys-usb-otg
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package dwc2

// Direction distinguishes IN (device->host) from OUT (host->device)
// endpoints. A given endpoint number has one independent slot per
// direction.
type Direction int

const (
	// Out is host -> device.
	Out Direction = iota
	// In is device -> host.
	In
)

// TransferType is the USB endpoint transfer type (USB2.0 Table 9-13).
type TransferType int

const (
	TransferControl TransferType = iota
	TransferIsochronous
	TransferBulk
	TransferInterrupt
)

// Address identifies one logical endpoint: a number in 0..3 paired with a
// direction. IN and OUT with the same number are distinct endpoints.
type Address struct {
	Number    uint8
	Direction Direction
}

// EndpointConfig is the immutable-after-initialize configuration requested
// at alloc time (spec.md §3).
type EndpointConfig struct {
	// Number requests a specific endpoint number; nil scans for the
	// first free slot in 1..3 (endpoint 0 is reserved for the control
	// stack to request explicitly).
	Number *uint8

	Type          TransferType
	MaxPacketSize uint16
	Interval      uint8

	// IsAudioStreaming marks the audio-class streaming extension; its
	// presence is surfaced via Descriptor but otherwise has no effect
	// on the hardware programming sequence.
	IsAudioStreaming bool
}

// AudioStreamingExtension marks an endpoint as belonging to an audio
// streaming interface.
type AudioStreamingExtension struct {
	// SynchronizationAddress optionally names the companion
	// synchronization endpoint. Descriptor always leaves it nil:
	// EndpointConfig has no field to set it.
	SynchronizationAddress *Address
}

// EndpointDescriptor is what Endpoint.Descriptor returns.
type EndpointDescriptor struct {
	Address       Address
	Type          TransferType
	MaxPacketSize uint16
	Interval      uint8
	AudioStreaming *AudioStreamingExtension
}
