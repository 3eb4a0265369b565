package tree

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/stegmannb/usbtree/internal/colour"
	"github.com/stegmannb/usbtree/internal/models"
)

const iconHeading = "I"

// Block is one selectable column for entities of type T. Each column type
// is a closed enum B and every method switches over all of its values.
type Block[B comparable, T any] interface {
	comparable
	fmt.Stringer
	// Heading is the column label, centred to the padding of text columns.
	Heading(pad map[B]int) string
	// ValueIsString marks left aligned text columns whose width comes from
	// the padding table; the others have a fixed width.
	ValueIsString() bool
	// FormatValue renders the cell for d, false when the column does not
	// apply at all.
	FormatValue(d *T, pad map[B]int, s *PrintSettings) (string, bool)
	Colour(v string, ct *colour.Theme) string

	// text is the unpadded value of a text column.
	text(d *T) string
	isIcon() bool
}

type headed[B comparable] interface {
	comparable
	Heading(pad map[B]int) string
}

// generatePadding measures the text columns in blocks across one batch of
// siblings: the wider of the heading and the widest value.
func generatePadding[T any, B Block[B, T]](blocks []B, items []*T) map[B]int {
	pad := make(map[B]int)
	for _, b := range blocks {
		if !b.ValueIsString() {
			continue
		}
		width := runewidth.StringWidth(b.Heading(nil))
		for _, d := range items {
			width = max(width, runewidth.StringWidth(b.text(d)))
		}
		pad[b] = width
	}
	return pad
}

func renderValue[T any, B Block[B, T]](d *T, blocks []B, pad map[B]int, s *PrintSettings) []string {
	var ret []string
	for _, b := range blocks {
		v, ok := b.FormatValue(d, pad, s)
		if !ok {
			continue
		}
		if s.Colours != nil {
			v = b.Colour(v, s.Colours)
		}
		ret = append(ret, v)
	}
	return ret
}

func renderHeading[B headed[B]](blocks []B, pad map[B]int) []string {
	ret := make([]string, 0, len(blocks))
	for _, b := range blocks {
		ret = append(ret, b.Heading(pad))
	}
	return ret
}

// visible drops icon columns when no icon theme is set so headings and
// values stay in step.
func visible[B interface{ isIcon() bool }](blocks []B, s *PrintSettings) []B {
	if s.Icons != nil {
		return blocks
	}
	out := make([]B, 0, len(blocks))
	for _, b := range blocks {
		if !b.isIcon() {
			out = append(out, b)
		}
	}
	return out
}

func parseBlocks[B fmt.Stringer](all []B, names []string) ([]B, error) {
	out := make([]B, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		found := false
		for _, b := range all {
			if strings.EqualFold(b.String(), name) {
				out = append(out, b)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown block %q", name)
		}
	}
	return out, nil
}

// FormatBaseU16 renders 16 bit ids such as VID as 0x%04x, or right aligned
// in six columns when decimal is set.
func FormatBaseU16(v uint16, s *PrintSettings) string {
	if s.Decimal {
		return fmt.Sprintf("%6d", v)
	}
	return fmt.Sprintf("0x%04x", v)
}

// FormatBaseU8 renders 8 bit codes as 0x%02x or %3d.
func FormatBaseU8(v uint8, s *PrintSettings) string {
	if s.Decimal {
		return fmt.Sprintf("%3d", v)
	}
	return fmt.Sprintf("0x%02x", v)
}

func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}

// centre puts the extra space on the right when it does not split evenly.
func centre(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func ptrs[T any](s []T) []*T {
	out := make([]*T, len(s))
	for i := range s {
		out[i] = &s[i]
	}
	return out
}

func DevicePadding(devices []*models.Device) map[DeviceBlock]int {
	return generatePadding(AllDeviceBlocks(), devices)
}

func BusPadding(buses []*models.Bus) map[BusBlock]int {
	return generatePadding(AllBusBlocks(), buses)
}

func ConfigurationPadding(configs []*models.Configuration) map[ConfigurationBlock]int {
	return generatePadding(AllConfigurationBlocks(), configs)
}

func InterfacePadding(interfaces []*models.Interface) map[InterfaceBlock]int {
	return generatePadding(AllInterfaceBlocks(), interfaces)
}

func EndpointPadding(endpoints []*models.Endpoint) map[EndpointBlock]int {
	return generatePadding(AllEndpointBlocks(), endpoints)
}
