package tree

import (
	"fmt"

	"github.com/stegmannb/usbtree/internal/colour"
	"github.com/stegmannb/usbtree/internal/models"
)

type DeviceBlock int

const (
	DeviceBusNumber DeviceBlock = iota
	DeviceNumber
	DeviceBranchPosition
	DevicePortPath
	DeviceSysPath
	DeviceDriver
	DeviceIcon
	DeviceVendorID
	DeviceProductID
	DeviceName
	DeviceManufacturer
	DeviceProductName
	DeviceVendorName
	DeviceSerial
	DeviceSpeed
	DeviceTreePositions
	DeviceBusPower
	DeviceBusPowerUsed
	DeviceExtraCurrentUsed
	DeviceBcdDevice
	DeviceBcdUSB
	DeviceClassCode
	DeviceSubClass
	DeviceProtocol
)

var deviceBlockNames = []string{
	"bus-number", "device-number", "branch-position", "port-path", "sys-path",
	"driver", "icon", "vendor-id", "product-id", "name", "manufacturer",
	"product-name", "vendor-name", "serial", "speed", "tree-positions",
	"bus-power", "bus-power-used", "extra-current-used", "bcd-device",
	"bcd-usb", "class-code", "sub-class", "protocol",
}

func (b DeviceBlock) String() string { return enumName(deviceBlockNames, int(b)) }

func AllDeviceBlocks() []DeviceBlock {
	out := make([]DeviceBlock, len(deviceBlockNames))
	for i := range out {
		out[i] = DeviceBlock(i)
	}
	return out
}

func ParseDeviceBlocks(names []string) ([]DeviceBlock, error) {
	return parseBlocks(AllDeviceBlocks(), names)
}

func DefaultDeviceBlocks(verbose bool) []DeviceBlock {
	if verbose {
		return []DeviceBlock{
			DeviceBusNumber, DeviceNumber, DeviceTreePositions, DevicePortPath,
			DeviceIcon, DeviceVendorID, DeviceProductID, DeviceBcdDevice,
			DeviceBcdUSB, DeviceClassCode, DeviceSubClass, DeviceProtocol,
			DeviceName, DeviceManufacturer, DeviceSerial, DeviceDriver, DeviceSpeed,
		}
	}
	return []DeviceBlock{
		DeviceBusNumber, DeviceNumber, DeviceIcon, DeviceVendorID,
		DeviceProductID, DeviceName, DeviceSerial, DeviceSpeed,
	}
}

// DefaultDeviceTreeBlocks drops bus and speed, the tree already shows where
// a device sits.
func DefaultDeviceTreeBlocks() []DeviceBlock {
	return []DeviceBlock{
		DeviceIcon, DeviceNumber, DeviceVendorID, DeviceProductID, DeviceName, DeviceSerial,
	}
}

func (b DeviceBlock) isIcon() bool { return b == DeviceIcon }

func (b DeviceBlock) ValueIsString() bool {
	switch b {
	case DevicePortPath, DeviceSysPath, DeviceDriver, DeviceName, DeviceManufacturer,
		DeviceProductName, DeviceVendorName, DeviceSerial, DeviceTreePositions, DeviceClassCode:
		return true
	default:
		return false
	}
}

func (b DeviceBlock) Heading(pad map[DeviceBlock]int) string {
	switch b {
	case DeviceBusNumber:
		return "Bus"
	case DeviceNumber:
		return " # "
	case DeviceBranchPosition:
		return "Prt"
	case DevicePortPath:
		return centre("PPath", pad[b])
	case DeviceSysPath:
		return centre("SPath", pad[b])
	case DeviceDriver:
		return centre("Driver", pad[b])
	case DeviceIcon:
		return iconHeading
	case DeviceVendorID:
		return centre("VID", 6)
	case DeviceProductID:
		return centre("PID", 6)
	case DeviceName:
		return centre("Name", pad[b])
	case DeviceManufacturer:
		return centre("Manufacturer", pad[b])
	case DeviceProductName:
		return centre("PName", pad[b])
	case DeviceVendorName:
		return centre("VName", pad[b])
	case DeviceSerial:
		return centre("Serial", pad[b])
	case DeviceSpeed:
		return centre("Speed", 10)
	case DeviceTreePositions:
		return centre("TPos", pad[b])
	case DeviceBusPower:
		return centre("PBus", 6)
	case DeviceBusPowerUsed:
		return centre("PUsd", 6)
	case DeviceExtraCurrentUsed:
		return centre("PExr", 6)
	case DeviceBcdDevice:
		return "Dev V"
	case DeviceBcdUSB:
		return "USB V"
	case DeviceClassCode:
		return centre("Class", pad[b])
	case DeviceSubClass:
		return "SubC"
	case DeviceProtocol:
		return "Pcol"
	default:
		return ""
	}
}

func (b DeviceBlock) text(d *models.Device) string {
	switch b {
	case DevicePortPath:
		return d.PortPath()
	case DeviceSysPath:
		if d.Extra == nil {
			return "-"
		}
		return orDash(d.Extra.SysPath)
	case DeviceDriver:
		if d.Extra == nil {
			return "-"
		}
		return orDash(d.Extra.Driver)
	case DeviceName:
		return d.Name
	case DeviceManufacturer:
		return orDash(d.Manufacturer)
	case DeviceProductName:
		if d.Extra == nil {
			return "-"
		}
		return orDash(d.Extra.ProductName)
	case DeviceVendorName:
		if d.Extra == nil {
			return "-"
		}
		return orDash(d.Extra.Vendor)
	case DeviceSerial:
		return orDash(d.Serial)
	case DeviceTreePositions:
		return orDash(d.TreePositionsString())
	case DeviceClassCode:
		if d.Class == nil {
			return "-"
		}
		return d.Class.String()
	default:
		return ""
	}
}

func (b DeviceBlock) FormatValue(d *models.Device, pad map[DeviceBlock]int, s *PrintSettings) (string, bool) {
	switch b {
	case DeviceBusNumber:
		return fmt.Sprintf("%3d", d.Location.Bus), true
	case DeviceNumber:
		return fmt.Sprintf("%3d", d.Location.Number), true
	case DeviceBranchPosition:
		return fmt.Sprintf("%3d", d.BranchPosition()), true
	case DeviceIcon:
		if s.Icons == nil {
			return "", false
		}
		return s.Icons.Device(d), true
	case DeviceVendorID:
		return optU16(d.VendorID, s), true
	case DeviceProductID:
		return optU16(d.ProductID, s), true
	case DeviceSpeed:
		if d.Speed == nil {
			return padLeft("-", 10), true
		}
		return padLeft(d.Speed.String(), 10), true
	case DeviceBusPower:
		return optPower(d.BusPower), true
	case DeviceBusPowerUsed:
		return optPower(d.BusPowerUsed), true
	case DeviceExtraCurrentUsed:
		return optPower(d.ExtraCurrentUsed), true
	case DeviceBcdDevice:
		return optVersion(d.BcdDevice), true
	case DeviceBcdUSB:
		return optVersion(d.BcdUSB), true
	case DeviceSubClass:
		return optU8(d.SubClass, s), true
	case DeviceProtocol:
		return optU8(d.Protocol, s), true
	case DevicePortPath, DeviceSysPath, DeviceDriver, DeviceName, DeviceManufacturer,
		DeviceProductName, DeviceVendorName, DeviceSerial, DeviceTreePositions, DeviceClassCode:
		return padRight(b.text(d), pad[b]), true
	default:
		return "", false
	}
}

func (b DeviceBlock) Colour(v string, ct *colour.Theme) string {
	switch b {
	case DeviceBcdUSB, DeviceBcdDevice, DeviceNumber:
		return colour.Apply(ct.Number, v)
	case DeviceBusNumber, DeviceBranchPosition, DeviceTreePositions:
		return colour.Apply(ct.Location, v)
	case DeviceIcon:
		return colour.Apply(ct.Icon, v)
	case DevicePortPath, DeviceSysPath:
		return colour.Apply(ct.Path, v)
	case DeviceVendorID:
		return colour.Apply(ct.VID, v)
	case DeviceProductID:
		return colour.Apply(ct.PID, v)
	case DeviceName, DeviceProductName:
		return colour.Apply(ct.Name, v)
	case DeviceSerial:
		return colour.Apply(ct.Serial, v)
	case DeviceManufacturer, DeviceVendorName:
		return colour.Apply(ct.Manufacturer, v)
	case DeviceDriver:
		return colour.Apply(ct.Driver, v)
	case DeviceSpeed:
		return colour.Apply(ct.Speed, v)
	case DeviceBusPower, DeviceBusPowerUsed, DeviceExtraCurrentUsed:
		return colour.Apply(ct.Power, v)
	case DeviceClassCode:
		return colour.Apply(ct.ClassCode, v)
	case DeviceSubClass:
		return colour.Apply(ct.SubCode, v)
	case DeviceProtocol:
		return colour.Apply(ct.Protocol, v)
	default:
		return v
	}
}

func optU16(v *uint16, s *PrintSettings) string {
	if v == nil {
		return padLeft("-", 6)
	}
	return FormatBaseU16(*v, s)
}

func optU8(v *uint8, s *PrintSettings) string {
	if v == nil {
		if s.Decimal {
			return padLeft("-", 3)
		}
		return padLeft("-", 4)
	}
	return FormatBaseU8(*v, s)
}

func optPower(v *uint16) string {
	if v == nil {
		return padLeft("-", 6)
	}
	return fmt.Sprintf("%3d mA", *v)
}

func optVersion(v *models.Version) string {
	if v == nil {
		return padLeft("-", 5)
	}
	return padRight(v.String(), 5)
}
