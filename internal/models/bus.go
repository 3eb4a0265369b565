package models

import "fmt"

type Bus struct {
	Name           string    `json:"name"`
	HostController string    `json:"host_controller"`
	PCIVendor      *uint16   `json:"pci_vendor,omitempty"`
	PCIDevice      *uint16   `json:"pci_device,omitempty"`
	PCIRevision    *uint16   `json:"pci_revision,omitempty"`
	Number         uint8     `json:"usb_bus_number"`
	Devices        []*Device `json:"devices,omitempty"`
}

func (b *Bus) Path() string {
	return fmt.Sprintf("%d-0", b.Number)
}

func (b *Bus) HasDevices() bool {
	return len(b.Devices) > 0
}

func (b *Bus) HasEmptyHubs() bool {
	for _, d := range b.Devices {
		if d.HasEmptyHubs() {
			return true
		}
	}
	return false
}

// FlattenDevices returns every device on the bus in depth first order
// without modifying the tree.
func (b *Bus) FlattenDevices() []*Device {
	var out []*Device
	for _, d := range b.Devices {
		out = appendFlattened(out, d)
	}
	return out
}

// Flatten replaces the bus device tree with the flat depth first list,
// clearing every device's children.
func (b *Bus) Flatten() {
	flat := b.FlattenDevices()
	for _, d := range flat {
		d.Devices = nil
	}
	b.Devices = flat
}

func appendFlattened(out []*Device, d *Device) []*Device {
	out = append(out, d)
	for _, child := range d.Devices {
		out = appendFlattened(out, child)
	}
	return out
}

// Tree is the whole inventory: every bus with its device hierarchy.
type Tree struct {
	Buses []*Bus `json:"buses"`
}

func (t *Tree) Flatten() {
	for _, b := range t.Buses {
		b.Flatten()
	}
}

func (t *Tree) FlattenDevices() []*Device {
	var out []*Device
	for _, b := range t.Buses {
		out = append(out, b.FlattenDevices()...)
	}
	return out
}

// FindBus returns the bus with the given number, nil if absent.
func (t *Tree) FindBus(number uint8) *Bus {
	for _, b := range t.Buses {
		if b.Number == number {
			return b
		}
	}
	return nil
}
