package tree

import (
	"fmt"

	"github.com/stegmannb/usbtree/internal/colour"
	"github.com/stegmannb/usbtree/internal/models"
)

type BusBlock int

const (
	BusNumber BusBlock = iota
	BusPortPath
	BusPCIVendor
	BusPCIDevice
	BusPCIRevision
	BusName
	BusHostController
	BusIcon
)

var busBlockNames = []string{
	"bus-number", "port-path", "pci-vendor", "pci-device", "pci-revision",
	"name", "host-controller", "icon",
}

func (b BusBlock) String() string { return enumName(busBlockNames, int(b)) }

func AllBusBlocks() []BusBlock {
	out := make([]BusBlock, len(busBlockNames))
	for i := range out {
		out[i] = BusBlock(i)
	}
	return out
}

func ParseBusBlocks(names []string) ([]BusBlock, error) {
	return parseBlocks(AllBusBlocks(), names)
}

func DefaultBusBlocks(verbose bool) []BusBlock {
	if verbose {
		return []BusBlock{
			BusIcon, BusPortPath, BusName, BusHostController,
			BusPCIVendor, BusPCIDevice, BusPCIRevision,
		}
	}
	return []BusBlock{BusName, BusHostController}
}

func (b BusBlock) isIcon() bool { return b == BusIcon }

func (b BusBlock) ValueIsString() bool {
	switch b {
	case BusName, BusHostController, BusPortPath:
		return true
	default:
		return false
	}
}

func (b BusBlock) Heading(pad map[BusBlock]int) string {
	switch b {
	case BusNumber:
		return "Bus"
	case BusPortPath:
		return centre("PortPath", pad[b])
	case BusPCIVendor:
		return centre("VID", 6)
	case BusPCIDevice:
		return centre("PID", 6)
	case BusPCIRevision:
		return centre("Rev", 6)
	case BusName:
		return centre("Name", pad[b])
	case BusHostController:
		return centre("Host Controller", pad[b])
	case BusIcon:
		return iconHeading
	default:
		return ""
	}
}

func (b BusBlock) text(bus *models.Bus) string {
	switch b {
	case BusPortPath:
		return bus.Path()
	case BusName:
		return bus.Name
	case BusHostController:
		return bus.HostController
	default:
		return ""
	}
}

func (b BusBlock) FormatValue(bus *models.Bus, pad map[BusBlock]int, s *PrintSettings) (string, bool) {
	switch b {
	case BusNumber:
		return fmt.Sprintf("%3d", bus.Number), true
	case BusPCIVendor:
		return optU16(bus.PCIVendor, s), true
	case BusPCIDevice:
		return optU16(bus.PCIDevice, s), true
	case BusPCIRevision:
		return optU16(bus.PCIRevision, s), true
	case BusIcon:
		if s.Icons == nil {
			return "", false
		}
		return s.Icons.Bus(bus), true
	case BusPortPath, BusName, BusHostController:
		return padRight(b.text(bus), pad[b]), true
	default:
		return "", false
	}
}

func (b BusBlock) Colour(v string, ct *colour.Theme) string {
	switch b {
	case BusNumber:
		return colour.Apply(ct.Location, v)
	case BusPCIVendor:
		return colour.Apply(ct.VID, v)
	case BusPCIDevice:
		return colour.Apply(ct.PID, v)
	case BusName:
		return colour.Apply(ct.Name, v)
	case BusHostController:
		return colour.Apply(ct.Serial, v)
	case BusPCIRevision:
		return colour.Apply(ct.Number, v)
	case BusIcon:
		return colour.Apply(ct.Icon, v)
	case BusPortPath:
		return colour.Apply(ct.Path, v)
	default:
		return v
	}
}
