package usb

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/stegmannb/usbtree/internal/models"
)

var ErrUnsupported = errors.New("USB enumeration is not supported on this platform")

type Detector interface {
	GetTree() (*models.Tree, error)
}

func NewDetector(logger *zap.Logger) Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return newPlatformDetector(logger)
}

// assemble hangs every device below the hub whose tree positions are its
// own minus the last port. Devices whose parent was not enumerated go on
// the bus directly. Buses are created for devices on unknown buses.
func assemble(buses []*models.Bus, devices []*models.Device) *models.Tree {
	t := &models.Tree{Buses: buses}

	slices.SortStableFunc(devices, func(a, b *models.Device) int {
		return cmp.Compare(a.Depth(), b.Depth())
	})

	index := make(map[string]*models.Device, len(devices))
	for _, d := range devices {
		index[d.PortPath()] = d

		bus := t.FindBus(d.Location.Bus)
		if bus == nil {
			bus = &models.Bus{
				Name:   fmt.Sprintf("USB Bus %03d", d.Location.Bus),
				Number: d.Location.Bus,
			}
			t.Buses = append(t.Buses, bus)
		}

		positions := d.Location.TreePositions
		if len(positions) > 1 {
			parentKey := (&models.Device{Location: models.Location{
				Bus:           d.Location.Bus,
				TreePositions: positions[:len(positions)-1],
			}}).PortPath()
			if parent, ok := index[parentKey]; ok {
				parent.AddChild(d)
				continue
			}
		}
		bus.Devices = append(bus.Devices, d)
	}

	slices.SortStableFunc(t.Buses, func(a, b *models.Bus) int {
		return cmp.Compare(a.Number, b.Number)
	})
	return t
}

func sortEndpoints(endpoints []models.Endpoint) {
	slices.SortFunc(endpoints, func(a, b models.Endpoint) int {
		return cmp.Compare(a.Address.Address, b.Address.Address)
	})
}
