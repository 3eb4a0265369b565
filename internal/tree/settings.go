package tree

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/stegmannb/usbtree/internal/colour"
	"github.com/stegmannb/usbtree/internal/icon"
)

var (
	_ pflag.Value = (*Sort)(nil)
	_ pflag.Value = (*Group)(nil)
	_ pflag.Value = (*Mask)(nil)
)

// MaxVerbosity prints everything with the verbose default blocks.
const MaxVerbosity = 4

type Sort int

const (
	SortBranchPosition Sort = iota
	SortDeviceNumber
	SortNone
)

var sortNames = []string{"branch-position", "device-number", "no-sort"}

func (s Sort) String() string { return enumName(sortNames, int(s)) }

func (s *Sort) Set(v string) error { return setEnum(s, sortNames, v) }

func (s *Sort) Type() string { return "sort" }

type Group int

const (
	GroupNone Group = iota
	GroupBus
)

var groupNames = []string{"no-group", "bus"}

func (g Group) String() string { return enumName(groupNames, int(g)) }

func (g *Group) Set(v string) error { return setEnum(g, groupNames, v) }

func (g *Group) Type() string { return "group" }

// Mask is how serial numbers are hidden when sharing output.
type Mask int

const (
	MaskHide Mask = iota
	MaskScramble
	MaskReplace
)

var maskNames = []string{"hide", "scramble", "replace"}

func (m Mask) String() string { return enumName(maskNames, int(m)) }

func (m *Mask) Set(v string) error { return setEnum(m, maskNames, v) }

func (m *Mask) Type() string { return "mask" }

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("unknown(%d)", i)
	}
	return names[i]
}

func setEnum[E ~int](e *E, names []string, v string) error {
	for i, name := range names {
		if strings.EqualFold(name, v) {
			*e = E(i)
			return nil
		}
	}
	return fmt.Errorf("%q is not one of %s", v, strings.Join(names, ", "))
}

// PrintSettings is built once per run and only read while printing.
type PrintSettings struct {
	NoPadding    bool
	Decimal      bool
	Tree         bool
	HideBuses    bool
	SortDevices  Sort
	SortBuses    bool
	GroupDevices Group
	Headings     bool
	Verbosity    uint8
	More         bool
	JSON         bool
	// MaskSerials is nil when serials are printed as they are.
	MaskSerials *Mask

	// nil block lists use the defaults for the verbosity
	DeviceBlocks    []DeviceBlock
	BusBlocks       []BusBlock
	ConfigBlocks    []ConfigurationBlock
	InterfaceBlocks []InterfaceBlock
	EndpointBlocks  []EndpointBlock

	// Icons nil prints no icons and ASCII tree glyphs.
	Icons *icon.Theme
	// Colours nil prints without colour.
	Colours *colour.Theme
}

func (s *PrintSettings) verbose() bool {
	return s.Verbosity >= MaxVerbosity || s.More
}

func (s *PrintSettings) treeIcon(k icon.Kind) string {
	if s.Icons == nil {
		return icon.AsciiTree(k)
	}
	return s.Icons.Tree(k)
}

func (s *PrintSettings) deviceBlocks() []DeviceBlock {
	if s.DeviceBlocks != nil {
		return visible(s.DeviceBlocks, s)
	}
	if !s.verbose() && s.Tree {
		return visible(DefaultDeviceTreeBlocks(), s)
	}
	return visible(DefaultDeviceBlocks(s.verbose()), s)
}

// flatDeviceBlocks ignores the tree defaults, flattened lists always use
// the list columns.
func (s *PrintSettings) flatDeviceBlocks() []DeviceBlock {
	if s.DeviceBlocks != nil {
		return visible(s.DeviceBlocks, s)
	}
	return visible(DefaultDeviceBlocks(s.verbose()), s)
}

func (s *PrintSettings) busBlocks() []BusBlock {
	if s.BusBlocks != nil {
		return visible(s.BusBlocks, s)
	}
	return visible(DefaultBusBlocks(s.verbose()), s)
}

func (s *PrintSettings) configBlocks() []ConfigurationBlock {
	if s.ConfigBlocks != nil {
		return visible(s.ConfigBlocks, s)
	}
	return visible(DefaultConfigurationBlocks(s.verbose()), s)
}

func (s *PrintSettings) interfaceBlocks() []InterfaceBlock {
	if s.InterfaceBlocks != nil {
		return visible(s.InterfaceBlocks, s)
	}
	return visible(DefaultInterfaceBlocks(s.verbose()), s)
}

func (s *PrintSettings) endpointBlocks() []EndpointBlock {
	if s.EndpointBlocks != nil {
		return visible(s.EndpointBlocks, s)
	}
	return visible(DefaultEndpointBlocks(s.verbose()), s)
}
