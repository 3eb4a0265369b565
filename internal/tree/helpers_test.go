package tree

import (
	"strings"

	"github.com/stegmannb/usbtree/internal/models"
)

func u16(v uint16) *uint16 { return &v }

// sampleTree is bus 1 holding a hub on port 1 with a keyboard and a mouse
// below it, plus an empty bus 2.
func sampleTree() *models.Tree {
	hub := models.ClassHub
	keyboard := &models.Device{
		Name:      "Keyboard",
		VendorID:  u16(0x046d),
		ProductID: u16(0xc31c),
		Serial:    "KB01",
		Location:  models.Location{Bus: 1, Number: 3, TreePositions: []uint8{1, 1}},
	}
	mouse := &models.Device{
		Name:      "Mouse",
		VendorID:  u16(0x046d),
		ProductID: u16(0xc077),
		Serial:    "MS01",
		Location:  models.Location{Bus: 1, Number: 4, TreePositions: []uint8{1, 2}},
	}
	usbHub := &models.Device{
		Name:      "Hub",
		VendorID:  u16(0x05e3),
		ProductID: u16(0x0608),
		Class:     &hub,
		Location:  models.Location{Bus: 1, Number: 2, TreePositions: []uint8{1}},
	}
	usbHub.AddChild(mouse)
	usbHub.AddChild(keyboard)

	return &models.Tree{Buses: []*models.Bus{
		{Name: "Bus 1", HostController: "xHCI", Number: 1, Devices: []*models.Device{usbHub}},
		{Name: "Bus 2", HostController: "xHCI", Number: 2},
	}}
}

// describedDevice has a configuration with one interface and one IN
// endpoint.
func describedDevice() *models.Device {
	return &models.Device{
		Name:      "Keyboard",
		VendorID:  u16(0x046d),
		ProductID: u16(0xc31c),
		Location:  models.Location{Bus: 1, Number: 3, TreePositions: []uint8{1}},
		Extra: &models.DeviceExtra{
			Configurations: []models.Configuration{{
				Name:     "Config",
				Number:   1,
				MaxPower: 100,
				Interfaces: []models.Interface{{
					Name:  "HID",
					Path:  "1-1:1.0",
					Class: models.ClassHID,
					Endpoints: []models.Endpoint{{
						Address:       models.NewEndpointAddress(0x81),
						TransferType:  models.TransferInterrupt,
						MaxPacketSize: 8,
						Interval:      10,
					}},
				}},
			}},
		},
	}
}

func lines(out string) []string {
	return strings.Split(strings.TrimRight(out, "\n"), "\n")
}
