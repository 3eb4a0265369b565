package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stegmannb/usbtree/internal/models"
	"github.com/stegmannb/usbtree/internal/tree"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "usbtree.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	v, err := Load(writeConfig(t, `{}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	c, err := Decode(v)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if c.Tree || c.Verbose != 0 || c.SortDevices != "branch-position" || c.GroupDevices != "no-group" {
		t.Errorf("Unexpected defaults %+v", c)
	}
	if v.GetString("logging.level") != "warn" {
		t.Errorf("Expected warn log level, got %s", v.GetString("logging.level"))
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `{
  "tree": true,
  "verbose": 2,
  "sort-devices": "device-number",
  "blocks": ["name", "vendor-id"],
  "icons": {"vid:046d": "L"},
  "colours": {"name": "red"}
}`)

	v, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c, err := Decode(v)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !c.Tree || c.Verbose != 2 || c.SortDevices != "device-number" {
		t.Errorf("Expected file values, got %+v", c)
	}
	if len(c.Blocks) != 2 || c.Blocks[1] != "vendor-id" {
		t.Errorf("Expected blocks from file, got %v", c.Blocks)
	}
	if c.Icons["vid:046d"] != "L" {
		t.Errorf("Expected icon override, got %v", c.Icons)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("USBTREE_TREE", "true")
	t.Setenv("USBTREE_SORT_DEVICES", "no-sort")

	v, err := Load(writeConfig(t, `{}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c, err := Decode(v)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !c.Tree || c.SortDevices != "no-sort" {
		t.Errorf("Expected environment overrides, got tree=%v sort=%s", c.Tree, c.SortDevices)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	if _, err := Load(writeConfig(t, `{not json`)); err == nil {
		t.Error("Expected an error for a malformed config file")
	}
}

func TestConfig_PrintSettings(t *testing.T) {
	c := &Config{
		Tree:        true,
		Verbose:     9,
		SortDevices: "device-number",
		MaskSerials: "replace",
		Blocks:      []string{"name", "serial"},
		ASCII:       true,
		NoColour:    true,
	}

	s, err := c.PrintSettings()
	if err != nil {
		t.Fatalf("PrintSettings: %v", err)
	}
	if s.Verbosity != tree.MaxVerbosity {
		t.Errorf("Expected verbosity capped at %d, got %d", tree.MaxVerbosity, s.Verbosity)
	}
	if s.SortDevices != tree.SortDeviceNumber {
		t.Errorf("Expected device-number sort, got %s", s.SortDevices)
	}
	if s.MaskSerials == nil || *s.MaskSerials != tree.MaskReplace {
		t.Error("Expected replace mask")
	}
	if len(s.DeviceBlocks) != 2 || s.DeviceBlocks[0] != tree.DeviceName {
		t.Errorf("Expected parsed blocks, got %v", s.DeviceBlocks)
	}
	if s.Icons != nil || s.Colours != nil {
		t.Error("ASCII and no-colour should leave both themes unset")
	}

	c = &Config{}
	s, err = c.PrintSettings()
	if err != nil {
		t.Fatalf("PrintSettings: %v", err)
	}
	if s.Icons == nil || s.Colours == nil {
		t.Error("Expected icon and colour themes by default")
	}
}

func TestConfig_PrintSettingsErrors(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"sort", Config{SortDevices: "sideways"}},
		{"group", Config{GroupDevices: "vendor"}},
		{"mask", Config{MaskSerials: "blur"}},
		{"blocks", Config{Blocks: []string{"colour"}}},
		{"endpoint blocks", Config{EndpointBlocks: []string{"name"}}},
		{"colours", Config{Colours: map[string]string{"name": "chartreuse"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.config.PrintSettings(); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestConfig_Filter(t *testing.T) {
	f, err := (&Config{}).Filter()
	if err != nil || f != nil {
		t.Errorf("Expected no filter without options, got %+v (%v)", f, err)
	}

	f, err = (&Config{VID: "0x046D", Bus: 1, FilterClass: "hid", HideHubs: true}).Filter()
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if f.VendorID == nil || *f.VendorID != 0x046d {
		t.Error("Expected vendor id 0x046d")
	}
	if f.Bus == nil || *f.Bus != 1 {
		t.Error("Expected bus 1")
	}
	if f.Class == nil || *f.Class != models.ClassHID {
		t.Error("Expected HID class")
	}
	if !f.ExcludeEmptyHub {
		t.Error("Expected hide-hubs to exclude empty hubs")
	}

	if _, err := (&Config{PID: "xyz"}).Filter(); err == nil {
		t.Error("Expected an error for an invalid product id")
	}
}
