//go:build darwin

package usb

import (
	"fmt"
	"os/exec"

	"go.uber.org/zap"

	"github.com/stegmannb/usbtree/internal/models"
)

type darwinDetector struct {
	logger *zap.Logger
}

func newPlatformDetector(logger *zap.Logger) Detector {
	return &darwinDetector{logger: logger}
}

func (d *darwinDetector) GetTree() (*models.Tree, error) {
	cmd := exec.Command("system_profiler", "SPUSBDataType", "-json")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to run system_profiler: %w", err)
	}
	d.logger.Debug("system_profiler finished", zap.Int("bytes", len(output)))

	return ParseSystemProfiler(output)
}
