package models

import (
	"fmt"
	"strconv"
	"strings"
)

type Speed string

const (
	SpeedUnknown       Speed = "unknown"
	SpeedLow           Speed = "low_speed"
	SpeedFull          Speed = "full_speed"
	SpeedHigh          Speed = "high_speed"
	SpeedSuper         Speed = "super_speed"
	SpeedSuperPlus     Speed = "super_speed_plus"
	SpeedSuperPlusDual Speed = "super_speed_plus_x2"
)

func (s Speed) String() string {
	switch s {
	case SpeedLow:
		return "1.5 Mb/s"
	case SpeedFull:
		return "12 Mb/s"
	case SpeedHigh:
		return "480 Mb/s"
	case SpeedSuper:
		return "5 Gb/s"
	case SpeedSuperPlus:
		return "10 Gb/s"
	case SpeedSuperPlusDual:
		return "20 Gb/s"
	default:
		return "unknown"
	}
}

// Version is a binary coded decimal release number such as bcdUSB.
type Version struct {
	Major    uint8 `json:"major"`
	Minor    uint8 `json:"minor"`
	SubMinor uint8 `json:"sub_minor"`
}

// VersionFromBCD decodes a descriptor bcd field, 0x0210 being 2.10.
func VersionFromBCD(bcd uint16) Version {
	return Version{
		Major:    uint8(bcd>>12)*10 + uint8(bcd>>8)&0x0f,
		Minor:    uint8(bcd>>4) & 0x0f,
		SubMinor: uint8(bcd) & 0x0f,
	}
}

func (v Version) String() string {
	return fmt.Sprintf("%2d.%d%d", v.Major, v.Minor, v.SubMinor)
}

// Location is where a device sits: its bus, the port on each hub from the
// root down to it, and the number the bus assigned it.
type Location struct {
	Bus           uint8   `json:"bus"`
	Number        uint8   `json:"number"`
	TreePositions []uint8 `json:"tree_positions,omitempty"`
}

type DeviceExtra struct {
	MaxPacketSize  uint8           `json:"max_packet_size"`
	Driver         string          `json:"driver,omitempty"`
	SysPath        string          `json:"syspath,omitempty"`
	Vendor         string          `json:"vendor,omitempty"`
	ProductName    string          `json:"product_name,omitempty"`
	Configurations []Configuration `json:"configurations"`
}

type Device struct {
	Name             string       `json:"name"`
	VendorID         *uint16      `json:"vendor_id,omitempty"`
	ProductID        *uint16      `json:"product_id,omitempty"`
	Location         Location     `json:"location_id"`
	Manufacturer     string       `json:"manufacturer,omitempty"`
	Serial           string       `json:"serial_num,omitempty"`
	Speed            *Speed       `json:"device_speed,omitempty"`
	BcdDevice        *Version     `json:"bcd_device,omitempty"`
	BcdUSB           *Version     `json:"bcd_usb,omitempty"`
	Class            *ClassCode   `json:"class,omitempty"`
	SubClass         *uint8       `json:"sub_class,omitempty"`
	Protocol         *uint8       `json:"protocol,omitempty"`
	BusPower         *uint16      `json:"bus_power,omitempty"`
	BusPowerUsed     *uint16      `json:"bus_power_used,omitempty"`
	ExtraCurrentUsed *uint16      `json:"extra_current_used,omitempty"`
	Devices          []*Device    `json:"devices,omitempty"`
	Extra            *DeviceExtra `json:"extra,omitempty"`
}

func (d *Device) AddChild(child *Device) {
	d.Devices = append(d.Devices, child)
}

// GetDisplayName falls back to the manufacturer for devices without a
// product string.
func (d *Device) GetDisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	if d.Manufacturer != "" {
		return d.Manufacturer
	}
	return "Unknown Device"
}

func (d *Device) GetIDString() string {
	var vid, pid uint16
	if d.VendorID != nil {
		vid = *d.VendorID
	}
	if d.ProductID != nil {
		pid = *d.ProductID
	}
	return fmt.Sprintf("%04x:%04x", vid, pid)
}

// BranchPosition is the port on the parent hub, 0 for devices on the root.
func (d *Device) BranchPosition() uint8 {
	if n := len(d.Location.TreePositions); n > 0 {
		return d.Location.TreePositions[n-1]
	}
	return 0
}

func (d *Device) Depth() int {
	return len(d.Location.TreePositions)
}

// PortPath is the Linux style bus-port.port path, 1-2.3 for port 3 of the
// hub on port 2 of bus 1.
func (d *Device) PortPath() string {
	if len(d.Location.TreePositions) == 0 {
		return fmt.Sprintf("%d-0", d.Location.Bus)
	}
	return fmt.Sprintf("%d-%s", d.Location.Bus, joinPositions(d.Location.TreePositions, "."))
}

func (d *Device) TreePositionsString() string {
	return joinPositions(d.Location.TreePositions, "-")
}

func (d *Device) IsHub() bool {
	if d.Class != nil {
		return *d.Class == ClassHub
	}
	return strings.Contains(strings.ToLower(d.Name), "hub")
}

func (d *Device) IsRootHub() bool {
	return len(d.Location.TreePositions) == 0 && d.IsHub()
}

func (d *Device) HasDevices() bool {
	return len(d.Devices) > 0
}

// HasEmptyHubs reports whether d or any descendant is a hub with nothing
// attached to it.
func (d *Device) HasEmptyHubs() bool {
	if d.IsHub() && !d.HasDevices() {
		return true
	}
	for _, child := range d.Devices {
		if child.HasEmptyHubs() {
			return true
		}
	}
	return false
}

func joinPositions(positions []uint8, sep string) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = strconv.Itoa(int(p))
	}
	return strings.Join(parts, sep)
}
