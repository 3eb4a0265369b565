package tree

import (
	"cmp"
	"math/rand"
	"slices"
	"strings"

	"github.com/stegmannb/usbtree/internal/models"
)

// Prepare runs the passes that change the tree before printing: flatten,
// filter, hide empty buses (and buses with empty hubs when the filter
// excludes them), sort buses and mask serials. filter may be nil.
func Prepare(t *models.Tree, filter *models.Filter, s *PrintSettings) {
	if !s.Tree && (filter != nil || s.GroupDevices == GroupBus || s.JSON) {
		t.Flatten()
	}

	if filter != nil {
		filter.RetainBuses(t.Buses)
	}

	if s.HideBuses {
		if filter != nil && filter.ExcludeEmptyHub {
			t.Buses = slices.DeleteFunc(t.Buses, func(b *models.Bus) bool {
				return b.HasEmptyHubs()
			})
		}
		t.Buses = slices.DeleteFunc(t.Buses, func(b *models.Bus) bool {
			return !b.HasDevices()
		})
	}

	if s.SortBuses {
		slices.SortStableFunc(t.Buses, func(a, b *models.Bus) int {
			return cmp.Compare(a.Number, b.Number)
		})
	}

	if s.MaskSerials != nil {
		for _, bus := range t.Buses {
			for _, d := range bus.Devices {
				MaskSerial(d, *s.MaskSerials, true)
			}
		}
	}
}

// Devices returns a sorted copy of devices, leaving the input alone.
func (s Sort) Devices(devices []*models.Device) []*models.Device {
	out := slices.Clone(devices)
	switch s {
	case SortBranchPosition:
		slices.SortStableFunc(out, func(a, b *models.Device) int {
			return cmp.Compare(a.BranchPosition(), b.BranchPosition())
		})
	case SortDeviceNumber:
		slices.SortStableFunc(out, func(a, b *models.Device) int {
			return cmp.Compare(a.Location.Number, b.Location.Number)
		})
	case SortNone:
	}
	return out
}

const replaceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// MaskSerial hides the serial of d and, when recursive, of every device
// below it. The masked serial keeps its length in runes.
func MaskSerial(d *models.Device, mask Mask, recursive bool) {
	d.Serial = maskString(d.Serial, mask)
	if !recursive {
		return
	}
	for _, child := range d.Devices {
		MaskSerial(child, mask, true)
	}
}

func maskString(serial string, mask Mask) string {
	if serial == "" {
		return serial
	}
	runes := []rune(serial)
	var b strings.Builder
	for range runes {
		switch mask {
		case MaskScramble:
			b.WriteRune(runes[rand.Intn(len(runes))])
		case MaskReplace:
			b.WriteByte(replaceAlphabet[rand.Intn(len(replaceAlphabet))])
		case MaskHide:
			b.WriteByte('*')
		}
	}
	return b.String()
}
