//go:build !linux && !darwin

package usb

import (
	"go.uber.org/zap"

	"github.com/stegmannb/usbtree/internal/models"
)

type unsupportedDetector struct{}

func newPlatformDetector(*zap.Logger) Detector {
	return unsupportedDetector{}
}

func (unsupportedDetector) GetTree() (*models.Tree, error) {
	return nil, ErrUnsupported
}
