package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stegmannb/usbtree/internal/models"
)

const dump = `{"buses": [
  {"name": "Bus 1", "host_controller": "xhci", "usb_bus_number": 1, "devices": [
    {"name": "Hub", "class": 9, "location_id": {"bus": 1, "number": 2, "tree_positions": [1]}, "devices": [
      {"name": "Keyboard", "vendor_id": 1133, "serial_num": "KB01", "location_id": {"bus": 1, "number": 3, "tree_positions": [1, 1]}}
    ]}
  ]},
  {"name": "Bus 2", "host_controller": "xhci", "usb_bus_number": 2}
]}`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	dumpPath := filepath.Join(dir, "dump.json")
	configPath := filepath.Join(dir, "usbtree.json")
	if err := os.WriteFile(dumpPath, []byte(dump), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configPath, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs(append([]string{"--from-json", dumpPath, "--config", configPath, "--no-colour"}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func TestRoot_Tree(t *testing.T) {
	out, err := execute(t, "--tree", "--ascii")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "/: Bus 1") || !strings.Contains(out, "   |__O   3 0x046d") {
		t.Errorf("Unexpected tree output:\n%s", out)
	}
}

func TestRoot_FilterHideBuses(t *testing.T) {
	out, err := execute(t, "--filter-name", "keyboard", "--hide-buses", "--ascii")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.Contains(out, "Hub") || !strings.Contains(out, "Keyboard") {
		t.Errorf("Expected only the keyboard, got:\n%s", out)
	}
}

func TestRoot_JSONMasked(t *testing.T) {
	out, err := execute(t, "--json", "--mask-serials", "hide")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var devices []models.Device
	if err := json.Unmarshal([]byte(out), &devices); err != nil {
		t.Fatalf("Output is not a device list: %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("Expected 2 devices, got %d", len(devices))
	}
	if devices[1].Serial != "****" {
		t.Errorf("Expected masked serial, got %q", devices[1].Serial)
	}
}

func TestRoot_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown block", []string{"--blocks", "colour"}},
		{"unknown sort", []string{"--sort-devices", "sideways"}},
		{"bad vid", []string{"--vid", "zz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
