package usb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/stegmannb/usbtree/internal/models"
)

type fileDetector struct {
	path string
}

// NewFileDetector reads a saved dump instead of the live bus: the tree or
// flat device list written with --json, or system_profiler JSON.
func NewFileDetector(path string) Detector {
	return &fileDetector{path: path}
}

func (f *fileDetector) GetTree() (*models.Tree, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	return ParseDump(data)
}

func ParseDump(data []byte) (*models.Tree, error) {
	data = bytes.TrimSpace(data)

	if bytes.HasPrefix(data, []byte("[")) {
		var devices []*models.Device
		if err := json.Unmarshal(data, &devices); err != nil {
			return nil, fmt.Errorf("failed to parse device list: %w", err)
		}
		flat := make([]*models.Device, 0, len(devices))
		for _, d := range devices {
			flat = appendAll(flat, d)
		}
		return assemble(nil, flat), nil
	}

	var probe struct {
		SPUSBDataType json.RawMessage `json:"SPUSBDataType"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse dump: %w", err)
	}
	if probe.SPUSBDataType != nil {
		return ParseSystemProfiler(data)
	}

	var t models.Tree
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse tree: %w", err)
	}
	return &t, nil
}

// appendAll adds d and everything below it with their child lists cleared
// so assemble can rebuild the hierarchy from tree positions.
func appendAll(out []*models.Device, d *models.Device) []*models.Device {
	children := d.Devices
	d.Devices = nil
	out = append(out, d)
	for _, c := range children {
		out = appendAll(out, c)
	}
	return out
}
