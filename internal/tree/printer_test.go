package tree

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/stegmannb/usbtree/internal/colour"
	"github.com/stegmannb/usbtree/internal/icon"
	"github.com/stegmannb/usbtree/internal/models"
)

func render(t *testing.T, tree *models.Tree, s *PrintSettings) string {
	t.Helper()
	var buf bytes.Buffer
	if err := NewPrinter(&buf, s, zap.NewNop()).Print(tree); err != nil {
		t.Fatalf("Print returned error: %v", err)
	}
	return buf.String()
}

func TestPrinter_Tree(t *testing.T) {
	out := render(t, sampleTree(), &PrintSettings{Tree: true, Icons: icon.NewTheme(nil)})
	got := lines(out)

	expected := []string{
		"\u25cf Bus 1",
		"\u2514\u2500\u2500\u25cb ",
		"   \u251c\u2500\u2500\u25cb ",
		"   \u2514\u2500\u2500\u25cb ",
		"",
		"\u25cf Bus 2",
	}
	if len(got) != len(expected) {
		t.Fatalf("Expected %d lines, got %d:\n%s", len(expected), len(got), out)
	}
	for i, prefix := range expected {
		if !strings.HasPrefix(got[i], prefix) {
			t.Errorf("Line %d: expected prefix %q, got %q", i, prefix, got[i])
		}
	}
	if !strings.Contains(got[2], "Keyboard") || !strings.Contains(got[3], "Mouse") {
		t.Errorf("Expected children sorted by port, got:\n%s", out)
	}
}

func TestPrinter_TreeAscii(t *testing.T) {
	out := render(t, sampleTree(), &PrintSettings{Tree: true})
	got := lines(out)

	if !strings.HasPrefix(got[0], "/: Bus 1") {
		t.Errorf("Expected ASCII bus start, got %q", got[0])
	}
	if !strings.HasPrefix(got[1], "|__O   2 0x05e3 0x0608 Hub") {
		t.Errorf("Unexpected hub line %q", got[1])
	}
	if !strings.HasPrefix(got[2], "   |__O   3 0x046d 0xc31c Keyboard") {
		t.Errorf("Unexpected keyboard line %q", got[2])
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("Output should not be coloured without a colour theme")
	}
}

func TestPrinter_Headings(t *testing.T) {
	out := render(t, sampleTree(), &PrintSettings{Tree: true, Headings: true})
	got := lines(out)

	if !strings.HasPrefix(got[0], "   Name") {
		t.Errorf("Expected bus heading aligned after the bus glyph, got %q", got[0])
	}
	if !strings.HasPrefix(got[2], "      # ") || !strings.Contains(got[2], "VID") {
		t.Errorf("Expected device heading aligned with values, got %q", got[2])
	}
}

func TestPrinter_FlatVerbosity(t *testing.T) {
	tree := &models.Tree{Buses: []*models.Bus{{Number: 1, Devices: []*models.Device{describedDevice()}}}}
	out := render(t, tree, &PrintSettings{Verbosity: 3})
	got := lines(out)

	if len(got) != 4 {
		t.Fatalf("Expected device, configuration, interface and endpoint lines, got:\n%s", out)
	}
	if !strings.HasPrefix(got[0], "  1   3 0x046d 0xc31c Keyboard") {
		t.Errorf("Unexpected device line %q", got[0])
	}
	if got[1] != "   1 100 mA Config" {
		t.Errorf("Unexpected configuration line %q", got[1])
	}
	if !strings.HasPrefix(got[2], "    1-1:1.0     0 HID   0x00 0x00 HID") {
		t.Errorf("Unexpected interface line %q", got[2])
	}
	if !strings.HasPrefix(got[3], "       1 IN  Interrupt None  Data   1x 8") {
		t.Errorf("Unexpected endpoint line %q", got[3])
	}
}

func TestPrinter_VerbosityThresholds(t *testing.T) {
	tests := []struct {
		verbosity uint8
		expected  int
	}{
		{0, 1},
		{1, 2},
		{2, 3},
		{3, 4},
	}

	for _, tt := range tests {
		tree := &models.Tree{Buses: []*models.Bus{{Number: 1, Devices: []*models.Device{describedDevice()}}}}
		got := lines(render(t, tree, &PrintSettings{Verbosity: tt.verbosity}))
		if len(got) != tt.expected {
			t.Errorf("Verbosity %d: expected %d lines, got %d", tt.verbosity, tt.expected, len(got))
		}
	}
}

func TestPrinter_TreeConfigurationsShareBranch(t *testing.T) {
	d := describedDevice()
	d.AddChild(&models.Device{Name: "Child", Location: models.Location{Bus: 1, Number: 5, TreePositions: []uint8{1, 1}}})
	tree := &models.Tree{Buses: []*models.Bus{{Number: 1, Devices: []*models.Device{d}}}}

	got := lines(render(t, tree, &PrintSettings{Tree: true, Verbosity: 1, Icons: icon.NewTheme(nil)}))
	if len(got) != 4 {
		t.Fatalf("Expected bus, device, configuration and child lines, got %q", got)
	}

	// the configuration is followed by the child device so it is not last
	if !strings.HasPrefix(got[2], "   \u251c\u2500\u2500\u2022") {
		t.Errorf("Expected an edge before the configuration, got %q", got[2])
	}
	if !strings.HasPrefix(got[3], "   \u2514\u2500\u2500\u25cb") || !strings.Contains(got[3], "Child") {
		t.Errorf("Expected a corner before the child device, got %q", got[3])
	}
}

func TestPrinter_MissingExtraIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	tree := &models.Tree{Buses: []*models.Bus{{Number: 1, Devices: []*models.Device{
		{Manufacturer: "Acme", VendorID: u16(0x1234), Location: models.Location{Bus: 1, Number: 2, TreePositions: []uint8{1}}},
	}}}}

	var buf bytes.Buffer
	if err := NewPrinter(&buf, &PrintSettings{Verbosity: 1}, zap.New(core)).Print(tree); err != nil {
		t.Fatalf("Print returned error: %v", err)
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 warning, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["name"] != "Acme" {
		t.Errorf("Expected the manufacturer as display name, got %v", fields["name"])
	}
	if fields["id"] != "1234:0000" {
		t.Errorf("Expected id 1234:0000, got %v", fields["id"])
	}
}

func TestPrinter_Colour(t *testing.T) {
	old := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = old }()

	out := render(t, sampleTree(), &PrintSettings{Tree: true, Colours: colour.Default()})
	if !strings.Contains(out, "\x1b[") {
		t.Error("Expected escape sequences with a colour theme")
	}
}

func TestPrinter_GroupBus(t *testing.T) {
	tree := sampleTree()
	s := &PrintSettings{GroupDevices: GroupBus, HideBuses: true}
	Prepare(tree, nil, s)

	got := lines(render(t, tree, s))
	expected := []string{"Bus 1", "  1   2", "  1   3", "  1   4"}
	if len(got) != len(expected) {
		t.Fatalf("Expected %d lines, got %d: %q", len(expected), len(got), got)
	}
	for i, prefix := range expected {
		if !strings.HasPrefix(got[i], prefix) {
			t.Errorf("Line %d: expected prefix %q, got %q", i, prefix, got[i])
		}
	}
}

func TestPrinter_JSON(t *testing.T) {
	var devices []models.Device
	out := render(t, sampleTree(), &PrintSettings{JSON: true})
	if err := json.Unmarshal([]byte(out), &devices); err != nil {
		t.Fatalf("Flat JSON did not decode: %v", err)
	}
	if len(devices) != 3 {
		t.Errorf("Expected 3 devices, got %d", len(devices))
	}

	var tree models.Tree
	out = render(t, sampleTree(), &PrintSettings{JSON: true, Tree: true})
	if err := json.Unmarshal([]byte(out), &tree); err != nil {
		t.Fatalf("Tree JSON did not decode: %v", err)
	}
	if len(tree.Buses) != 2 || len(tree.Buses[0].Devices[0].Devices) != 2 {
		t.Errorf("Expected the tree to survive the round trip, got %+v", tree)
	}
}

func TestPrinter_NoDevices(t *testing.T) {
	out := render(t, &models.Tree{}, &PrintSettings{})
	if out != "No USB devices found\n" {
		t.Errorf("Expected no devices notice, got %q", out)
	}
}
