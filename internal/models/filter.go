package models

import "strings"

// Filter selects devices. Unset fields match everything; Name and Serial are
// case insensitive substring matches.
type Filter struct {
	VendorID  *uint16
	ProductID *uint16
	Bus       *uint8
	Number    *uint8
	Name      string
	Serial    string
	Class     *ClassCode
	// ExcludeEmptyHub drops hubs that have nothing attached once filtered.
	ExcludeEmptyHub bool
	// NoExcludeRootHub keeps root hubs even when they do not match.
	NoExcludeRootHub bool
}

func (f *Filter) IsMatch(d *Device) bool {
	if f.VendorID != nil && (d.VendorID == nil || *d.VendorID != *f.VendorID) {
		return false
	}
	if f.ProductID != nil && (d.ProductID == nil || *d.ProductID != *f.ProductID) {
		return false
	}
	if f.Bus != nil && d.Location.Bus != *f.Bus {
		return false
	}
	if f.Number != nil && d.Location.Number != *f.Number {
		return false
	}
	if f.Name != "" && !containsFold(d.Name, f.Name) && !containsFold(d.Manufacturer, f.Name) {
		return false
	}
	if f.Serial != "" && !containsFold(d.Serial, f.Serial) {
		return false
	}
	if f.Class != nil && (d.Class == nil || *d.Class != *f.Class) {
		return false
	}
	if f.ExcludeEmptyHub && d.IsHub() && !d.HasDevices() {
		return false
	}
	return true
}

// RetainDevices keeps devices that match or have a matching descendant,
// pruning each kept device's children the same way.
func (f *Filter) RetainDevices(devices []*Device) []*Device {
	var kept []*Device
	for _, d := range devices {
		d.Devices = f.RetainDevices(d.Devices)
		if d.IsRootHub() && f.NoExcludeRootHub {
			kept = append(kept, d)
			continue
		}
		if f.IsMatch(d) || d.HasDevices() {
			kept = append(kept, d)
		}
	}
	return kept
}

func (f *Filter) RetainBuses(buses []*Bus) {
	for _, b := range buses {
		b.Devices = f.RetainDevices(b.Devices)
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
