package models

import (
	"encoding/json"
	"testing"
)

func u16(v uint16) *uint16 { return &v }

func TestDevice_AddChild(t *testing.T) {
	parent := &Device{
		VendorID:  u16(0x1234),
		ProductID: u16(0x5678),
		Name:      "Parent Device",
	}

	child := &Device{
		VendorID:  u16(0xABCD),
		ProductID: u16(0xEF01),
		Name:      "Child Device",
	}

	parent.AddChild(child)

	if len(parent.Devices) != 1 {
		t.Errorf("Expected 1 child, got %d", len(parent.Devices))
	}

	if parent.Devices[0] != child {
		t.Error("Child was not added correctly")
	}

	if !parent.HasDevices() {
		t.Error("Device should have children after adding one")
	}
}

func TestDevice_GetDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		device   *Device
		expected string
	}{
		{
			name:     "Name available",
			device:   &Device{Name: "My USB Device", Manufacturer: "My Vendor"},
			expected: "My USB Device",
		},
		{
			name:     "Only manufacturer available",
			device:   &Device{Manufacturer: "My Vendor"},
			expected: "My Vendor",
		},
		{
			name:     "No names available",
			device:   &Device{},
			expected: "Unknown Device",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.device.GetDisplayName()
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestDevice_GetIDString(t *testing.T) {
	device := &Device{VendorID: u16(0x05AC), ProductID: u16(0x1234)}

	if got := device.GetIDString(); got != "05ac:1234" {
		t.Errorf("Expected %q, got %q", "05ac:1234", got)
	}
}

func TestDevice_Location(t *testing.T) {
	tests := []struct {
		name      string
		location  Location
		portPath  string
		treePos   string
		branchPos uint8
	}{
		{
			name:      "root",
			location:  Location{Bus: 1, Number: 1},
			portPath:  "1-0",
			treePos:   "",
			branchPos: 0,
		},
		{
			name:      "nested",
			location:  Location{Bus: 2, Number: 7, TreePositions: []uint8{1, 4, 2}},
			portPath:  "2-1.4.2",
			treePos:   "1-4-2",
			branchPos: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Device{Location: tt.location}
			if got := d.PortPath(); got != tt.portPath {
				t.Errorf("Expected port path %q, got %q", tt.portPath, got)
			}
			if got := d.TreePositionsString(); got != tt.treePos {
				t.Errorf("Expected tree positions %q, got %q", tt.treePos, got)
			}
			if got := d.BranchPosition(); got != tt.branchPos {
				t.Errorf("Expected branch position %d, got %d", tt.branchPos, got)
			}
		})
	}
}

func TestDevice_HasEmptyHubs(t *testing.T) {
	hub := ClassHub
	empty := &Device{Name: "Hub", Class: &hub}
	if !empty.HasEmptyHubs() {
		t.Error("Hub without devices should be reported empty")
	}

	empty.AddChild(&Device{Name: "Keyboard"})
	if empty.HasEmptyHubs() {
		t.Error("Hub with a device should not be reported empty")
	}

	nested := &Device{Name: "Hub", Class: &hub}
	empty.AddChild(nested)
	if !empty.HasEmptyHubs() {
		t.Error("Empty nested hub should be found")
	}
}

func TestVersionFromBCD(t *testing.T) {
	v := VersionFromBCD(0x0210)
	if v.Major != 2 || v.Minor != 1 || v.SubMinor != 0 {
		t.Errorf("Expected 2.1.0, got %d.%d.%d", v.Major, v.Minor, v.SubMinor)
	}
	if got := v.String(); got != " 2.10" {
		t.Errorf("Expected %q, got %q", " 2.10", got)
	}

	if got := VersionFromBCD(0x1100).Major; got != 11 {
		t.Errorf("Expected major 11, got %d", got)
	}
}

func TestEndpoint_MaxPacketString(t *testing.T) {
	tests := []struct {
		size     uint16
		expected string
	}{
		{64, "1x 64"},
		{0x1400, "3x 1024"},
	}

	for _, tt := range tests {
		e := &Endpoint{MaxPacketSize: tt.size}
		if got := e.MaxPacketString(); got != tt.expected {
			t.Errorf("Expected %q, got %q", tt.expected, got)
		}
	}
}

func TestNewEndpointAddress(t *testing.T) {
	a := NewEndpointAddress(0x81)
	if a.Number != 1 || a.Direction != DirectionIn {
		t.Errorf("Expected IN endpoint 1, got %s endpoint %d", a.Direction, a.Number)
	}

	a = NewEndpointAddress(0x02)
	if a.Number != 2 || a.Direction != DirectionOut {
		t.Errorf("Expected OUT endpoint 2, got %s endpoint %d", a.Direction, a.Number)
	}
}

func TestParseClassCode(t *testing.T) {
	tests := []struct {
		input    string
		expected ClassCode
		wantErr  bool
	}{
		{"hub", ClassHub, false},
		{"Mass Storage", ClassMassStorage, false},
		{"0xff", ClassVendorSpecific, false},
		{"03", ClassHID, false},
		{"not-a-class", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClassCode(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Expected error for %q", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unexpected error for %q: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("Expected %s for %q, got %s", tt.expected, tt.input, got)
		}
	}
}

func TestDevice_JSONMarshaling(t *testing.T) {
	speed := SpeedHigh
	device := &Device{
		VendorID:     u16(0x05AC),
		ProductID:    u16(0x1234),
		Manufacturer: "Apple Inc.",
		Name:         "USB Keyboard",
		Location:     Location{Bus: 1, Number: 3, TreePositions: []uint8{2}},
		Serial:       "ABC123",
		Speed:        &speed,
	}
	device.AddChild(&Device{Name: "USB Receiver"})

	data, err := json.Marshal(device)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded Device
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded.Serial != "ABC123" || *decoded.VendorID != 0x05AC || *decoded.Speed != SpeedHigh {
		t.Errorf("Decoded device does not match: %+v", decoded)
	}
	if len(decoded.Devices) != 1 || decoded.Devices[0].Name != "USB Receiver" {
		t.Errorf("Expected child device to survive, got %+v", decoded.Devices)
	}
}
