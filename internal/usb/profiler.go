package usb

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/stegmannb/usbtree/internal/models"
)

// system_profiler SPUSBDataType -json output. Numbers arrive as strings,
// often with trailing text such as "0x05ac  (Apple Inc.)".
type spData struct {
	SPUSBDataType []spBus `json:"SPUSBDataType"`
}

type spBus struct {
	Name           string     `json:"_name"`
	HostController string     `json:"host_controller,omitempty"`
	PCIDevice      string     `json:"pci_device,omitempty"`
	PCIVendor      string     `json:"pci_vendor,omitempty"`
	PCIRevision    string     `json:"pci_revision,omitempty"`
	BusNumber      string     `json:"usb_bus_number,omitempty"`
	Items          []spDevice `json:"_items,omitempty"`
}

type spDevice struct {
	Name             string     `json:"_name"`
	VendorID         string     `json:"vendor_id,omitempty"`
	ProductID        string     `json:"product_id,omitempty"`
	Manufacturer     string     `json:"manufacturer,omitempty"`
	SerialNum        string     `json:"serial_num,omitempty"`
	Speed            string     `json:"device_speed,omitempty"`
	LocationID       string     `json:"location_id,omitempty"`
	BcdDevice        string     `json:"bcd_device,omitempty"`
	BusPower         string     `json:"bus_power,omitempty"`
	BusPowerUsed     string     `json:"bus_power_used,omitempty"`
	ExtraCurrentUsed string     `json:"extra_current_used,omitempty"`
	Items            []spDevice `json:"_items,omitempty"`
}

// ParseSystemProfiler builds the tree from system_profiler JSON. Hubs are
// nested in the output so the hierarchy is taken as is.
func ParseSystemProfiler(data []byte) (*models.Tree, error) {
	var sp spData
	if err := json.Unmarshal(data, &sp); err != nil {
		return nil, fmt.Errorf("failed to parse system_profiler output: %w", err)
	}

	t := &models.Tree{}
	for i, b := range sp.SPUSBDataType {
		bus := &models.Bus{
			Name:           b.Name,
			HostController: b.HostController,
			PCIVendor:      parseHexID(b.PCIVendor),
			PCIDevice:      parseHexID(b.PCIDevice),
			PCIRevision:    parseHexID(b.PCIRevision),
			Number:         uint8(i + 1),
		}
		if n := parseHexID(b.BusNumber); n != nil {
			bus.Number = uint8(*n)
		}
		for _, item := range b.Items {
			bus.Devices = append(bus.Devices, convertProfilerDevice(item, bus.Number))
		}
		t.Buses = append(t.Buses, bus)
	}
	return t, nil
}

func convertProfilerDevice(item spDevice, busNumber uint8) *models.Device {
	device := &models.Device{
		Name:             item.Name,
		VendorID:         parseHexID(item.VendorID),
		ProductID:        parseHexID(item.ProductID),
		Manufacturer:     item.Manufacturer,
		Serial:           item.SerialNum,
		BusPower:         parseMilliamps(item.BusPower),
		BusPowerUsed:     parseMilliamps(item.BusPowerUsed),
		ExtraCurrentUsed: parseMilliamps(item.ExtraCurrentUsed),
	}

	if loc, err := ParseLocationID(item.LocationID); err == nil {
		device.Location = loc
	} else {
		device.Location = models.Location{Bus: busNumber}
	}
	if item.Speed != "" {
		speed := parseSpeed(item.Speed)
		device.Speed = &speed
	}
	if v, err := parseVersion(item.BcdDevice); err == nil {
		device.BcdDevice = &v
	}

	for _, child := range item.Items {
		device.AddChild(convertProfilerDevice(child, busNumber))
	}
	return device
}

// ParseLocationID reads "0x14100000 / 3": the top byte is the bus, each
// following nibble a port until the first zero, and the number after the
// slash is the device number.
func ParseLocationID(s string) (models.Location, error) {
	id, number, ok := strings.Cut(s, "/")
	if !ok {
		return models.Location{}, fmt.Errorf("invalid location id %q", s)
	}
	hex := strings.TrimPrefix(strings.TrimSpace(id), "0x")
	if len(hex) != 8 {
		return models.Location{}, fmt.Errorf("invalid location id %q", s)
	}

	bus, err := strconv.ParseUint(hex[:2], 16, 8)
	if err != nil {
		return models.Location{}, fmt.Errorf("invalid bus in location id %q: %w", s, err)
	}
	n, err := strconv.ParseUint(strings.TrimSpace(number), 10, 8)
	if err != nil {
		return models.Location{}, fmt.Errorf("invalid device number in location id %q: %w", s, err)
	}

	var positions []uint8
	for _, c := range hex[2:] {
		p, err := strconv.ParseUint(string(c), 16, 8)
		if err != nil {
			return models.Location{}, fmt.Errorf("invalid port in location id %q: %w", s, err)
		}
		if p == 0 {
			break
		}
		positions = append(positions, uint8(p))
	}

	return models.Location{Bus: uint8(bus), Number: uint8(n), TreePositions: positions}, nil
}

func parseHexID(s string) *uint16 {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(fields[0], "0x"), 16, 16)
	if err != nil {
		return nil
	}
	id := uint16(v)
	return &id
}

func parseMilliamps(s string) *uint16 {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	v, err := strconv.ParseUint(fields[0], 10, 16)
	if err != nil {
		return nil
	}
	ma := uint16(v)
	return &ma
}

func parseSpeed(s string) models.Speed {
	switch speed := models.Speed(strings.TrimSpace(s)); speed {
	case models.SpeedLow, models.SpeedFull, models.SpeedHigh, models.SpeedSuper,
		models.SpeedSuperPlus, models.SpeedSuperPlusDual:
		return speed
	default:
		return models.SpeedUnknown
	}
}

// parseVersion reads "2.10" style release numbers.
func parseVersion(s string) (models.Version, error) {
	major, minor, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok {
		return models.Version{}, fmt.Errorf("invalid version %q", s)
	}
	ma, err := strconv.ParseUint(major, 10, 8)
	if err != nil {
		return models.Version{}, fmt.Errorf("invalid version %q: %w", s, err)
	}
	v := models.Version{Major: uint8(ma)}
	if len(minor) > 0 {
		v.Minor = minor[0] - '0'
	}
	if len(minor) > 1 {
		v.SubMinor = minor[1] - '0'
	}
	if v.Minor > 9 || v.SubMinor > 9 {
		return models.Version{}, fmt.Errorf("invalid version %q", s)
	}
	return v, nil
}
