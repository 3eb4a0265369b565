//go:build linux

package usb

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/google/gousb"
	"go.uber.org/zap"

	"github.com/stegmannb/usbtree/internal/models"
)

const sysfsDevices = "/sys/bus/usb/devices"

type linuxDetector struct {
	logger *zap.Logger
}

func newPlatformDetector(logger *zap.Logger) Detector {
	return &linuxDetector{logger: logger}
}

func (d *linuxDetector) GetTree() (*models.Tree, error) {
	usbCtx := gousb.NewContext()
	defer usbCtx.Close()

	var descs []*gousb.DeviceDesc
	opened, err := usbCtx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		descs = append(descs, desc)
		return true
	})
	defer func() {
		for _, dev := range opened {
			dev.Close()
		}
	}()
	if err != nil && len(descs) == 0 {
		return nil, fmt.Errorf("failed to enumerate devices: %w", err)
	}
	if err != nil {
		// devices we may not open still have descriptors, only strings are lost
		d.logger.Warn("some devices could not be opened", zap.Error(err))
	}

	handles := make(map[*gousb.DeviceDesc]*gousb.Device, len(opened))
	for _, dev := range opened {
		handles[dev.Desc] = dev
	}

	var buses []*models.Bus
	var devices []*models.Device
	for _, desc := range descs {
		dev := handles[desc]
		if len(desc.Path) == 0 {
			buses = append(buses, d.newBus(desc, dev))
			continue
		}
		devices = append(devices, d.newDevice(desc, dev))
	}

	return assemble(buses, devices), nil
}

func (d *linuxDetector) newBus(desc *gousb.DeviceDesc, dev *gousb.Device) *models.Bus {
	bus := &models.Bus{
		Name:   fmt.Sprintf("USB Bus %03d", desc.Bus),
		Number: uint8(desc.Bus),
	}
	if dev != nil {
		if product, err := dev.Product(); err == nil && product != "" {
			bus.Name = product
		}
		if manufacturer, err := dev.Manufacturer(); err == nil {
			bus.HostController = manufacturer
		}
	}

	// the controller's PCI ids sit next to the root hub in sysfs
	pci := filepath.Join(sysfsDevices, fmt.Sprintf("usb%d", desc.Bus), "..")
	bus.PCIVendor = readSysfsHex(filepath.Join(pci, "vendor"))
	bus.PCIDevice = readSysfsHex(filepath.Join(pci, "device"))
	bus.PCIRevision = readSysfsHex(filepath.Join(pci, "revision"))
	return bus
}

func (d *linuxDetector) newDevice(desc *gousb.DeviceDesc, dev *gousb.Device) *models.Device {
	vid, pid := uint16(desc.Vendor), uint16(desc.Product)
	class := models.ClassCode(desc.Class)
	subClass, protocol := uint8(desc.SubClass), uint8(desc.Protocol)
	speed := convertSpeed(desc.Speed)
	bcdDevice := models.VersionFromBCD(uint16(desc.Device))
	bcdUSB := models.VersionFromBCD(uint16(desc.Spec))

	positions := make([]uint8, len(desc.Path))
	for i, p := range desc.Path {
		positions[i] = uint8(p)
	}

	device := &models.Device{
		VendorID:  &vid,
		ProductID: &pid,
		Location: models.Location{
			Bus:           uint8(desc.Bus),
			Number:        uint8(desc.Address),
			TreePositions: positions,
		},
		Speed:     &speed,
		BcdDevice: &bcdDevice,
		BcdUSB:    &bcdUSB,
		Class:     &class,
		SubClass:  &subClass,
		Protocol:  &protocol,
	}

	if dev == nil {
		d.logger.Debug("device not opened, skipping strings and configurations",
			zap.String("port_path", device.PortPath()))
		device.Name = class.String()
		return device
	}

	if manufacturer, err := dev.Manufacturer(); err == nil {
		device.Manufacturer = manufacturer
	}
	if product, err := dev.Product(); err == nil {
		device.Name = product
	}
	if serial, err := dev.SerialNumber(); err == nil {
		device.Serial = serial
	}

	sysPath := filepath.Join(sysfsDevices, device.PortPath())
	device.Extra = &models.DeviceExtra{
		MaxPacketSize:  uint8(desc.MaxControlPacketSize),
		Driver:         readDriver(sysPath),
		SysPath:        sysPath,
		Vendor:         device.Manufacturer,
		ProductName:    device.Name,
		Configurations: d.configurations(desc, dev, device.PortPath()),
	}
	return device
}

func (d *linuxDetector) configurations(desc *gousb.DeviceDesc, dev *gousb.Device, portPath string) []models.Configuration {
	numbers := make([]int, 0, len(desc.Configs))
	for n := range desc.Configs {
		numbers = append(numbers, n)
	}
	slices.Sort(numbers)

	configs := make([]models.Configuration, 0, len(numbers))
	for _, n := range numbers {
		cfg := desc.Configs[n]
		config := models.Configuration{
			Number:   uint8(cfg.Number),
			MaxPower: uint16(cfg.MaxPower),
		}
		if name, err := dev.ConfigDescription(cfg.Number); err == nil {
			config.Name = name
		}
		if cfg.SelfPowered {
			config.Attributes = append(config.Attributes, models.SelfPowered)
		}
		if cfg.RemoteWakeup {
			config.Attributes = append(config.Attributes, models.RemoteWakeup)
		}

		for _, intf := range cfg.Interfaces {
			for _, alt := range intf.AltSettings {
				config.Interfaces = append(config.Interfaces, d.newInterface(dev, cfg.Number, portPath, alt))
			}
		}
		configs = append(configs, config)
	}
	return configs
}

func (d *linuxDetector) newInterface(dev *gousb.Device, config int, portPath string, alt gousb.InterfaceSetting) models.Interface {
	path := fmt.Sprintf("%s:%d.%d", portPath, config, alt.Number)
	sysPath := filepath.Join(sysfsDevices, path)

	intf := models.Interface{
		Number:     uint8(alt.Number),
		Path:       path,
		Class:      models.ClassCode(alt.Class),
		SubClass:   uint8(alt.SubClass),
		Protocol:   uint8(alt.Protocol),
		AltSetting: uint8(alt.Alternate),
		Driver:     readDriver(sysPath),
		SysPath:    sysPath,
	}
	if name, err := dev.InterfaceDescription(config, alt.Number, alt.Alternate); err == nil {
		intf.Name = name
	}

	for _, ep := range alt.Endpoints {
		intf.Endpoints = append(intf.Endpoints, convertEndpoint(ep))
	}
	sortEndpoints(intf.Endpoints)
	return intf
}

func convertEndpoint(ep gousb.EndpointDesc) models.Endpoint {
	out := models.Endpoint{
		Address:       models.NewEndpointAddress(uint8(ep.Address)),
		MaxPacketSize: uint16(ep.MaxPacketSize),
		Interval:      uint8(min(ep.PollInterval.Milliseconds(), 255)),
	}

	switch ep.TransferType {
	case gousb.TransferTypeControl:
		out.TransferType = models.TransferControl
	case gousb.TransferTypeIsochronous:
		out.TransferType = models.TransferIsochronous
	case gousb.TransferTypeBulk:
		out.TransferType = models.TransferBulk
	case gousb.TransferTypeInterrupt:
		out.TransferType = models.TransferInterrupt
	}

	switch ep.IsoSyncType {
	case gousb.IsoSyncTypeAsync:
		out.SyncType = models.SyncAsynchronous
	case gousb.IsoSyncTypeAdaptive:
		out.SyncType = models.SyncAdaptive
	case gousb.IsoSyncTypeSync:
		out.SyncType = models.SyncSynchronous
	default:
		out.SyncType = models.SyncNone
	}

	switch ep.UsageType {
	case gousb.IsoUsageTypeFeedback:
		out.UsageType = models.UsageFeedback
	case gousb.IsoUsageTypeImplicit:
		out.UsageType = models.UsageFeedbackData
	default:
		out.UsageType = models.UsageData
	}
	return out
}

func convertSpeed(speed gousb.Speed) models.Speed {
	switch speed {
	case gousb.SpeedLow:
		return models.SpeedLow
	case gousb.SpeedFull:
		return models.SpeedFull
	case gousb.SpeedHigh:
		return models.SpeedHigh
	case gousb.SpeedSuper:
		return models.SpeedSuper
	default:
		return models.SpeedUnknown
	}
}

func readDriver(sysPath string) string {
	target, err := os.Readlink(filepath.Join(sysPath, "driver"))
	if err != nil {
		return ""
	}
	return filepath.Base(target)
}

func readSysfsHex(path string) *uint16 {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(string(data)), "0x"), 16, 16)
	if err != nil {
		return nil
	}
	id := uint16(v)
	return &id
}
