package tree

import (
	"fmt"

	"github.com/stegmannb/usbtree/internal/colour"
	"github.com/stegmannb/usbtree/internal/models"
)

type InterfaceBlock int

const (
	InterfaceNumber InterfaceBlock = iota
	InterfaceName
	InterfaceNumEndpoints
	InterfacePortPath
	InterfaceSysPath
	InterfaceDriver
	InterfaceClassCode
	InterfaceSubClass
	InterfaceProtocol
	InterfaceAltSetting
	InterfaceIcon
)

var interfaceBlockNames = []string{
	"number", "name", "num-endpoints", "port-path", "sys-path", "driver",
	"class-code", "sub-class", "protocol", "alt-setting", "icon",
}

func (b InterfaceBlock) String() string { return enumName(interfaceBlockNames, int(b)) }

func AllInterfaceBlocks() []InterfaceBlock {
	out := make([]InterfaceBlock, len(interfaceBlockNames))
	for i := range out {
		out[i] = InterfaceBlock(i)
	}
	return out
}

func ParseInterfaceBlocks(names []string) ([]InterfaceBlock, error) {
	return parseBlocks(AllInterfaceBlocks(), names)
}

func DefaultInterfaceBlocks(verbose bool) []InterfaceBlock {
	if verbose {
		return []InterfaceBlock{
			InterfacePortPath, InterfaceIcon, InterfaceAltSetting, InterfaceClassCode,
			InterfaceSubClass, InterfaceProtocol, InterfaceName, InterfaceDriver,
			InterfaceNumEndpoints,
		}
	}
	return []InterfaceBlock{
		InterfacePortPath, InterfaceIcon, InterfaceAltSetting, InterfaceClassCode,
		InterfaceSubClass, InterfaceProtocol, InterfaceName,
	}
}

func (b InterfaceBlock) isIcon() bool { return b == InterfaceIcon }

func (b InterfaceBlock) ValueIsString() bool {
	switch b {
	case InterfaceName, InterfacePortPath, InterfaceSysPath, InterfaceDriver, InterfaceClassCode:
		return true
	default:
		return false
	}
}

func (b InterfaceBlock) Heading(pad map[InterfaceBlock]int) string {
	switch b {
	case InterfaceNumber:
		return " #"
	case InterfaceName:
		return centre("Name", pad[b])
	case InterfaceNumEndpoints:
		return "E#"
	case InterfacePortPath:
		return centre("PortPath", pad[b])
	case InterfaceSysPath:
		return centre("SysPath", pad[b])
	case InterfaceDriver:
		return centre("Driver", pad[b])
	case InterfaceClassCode:
		return centre("Class", pad[b])
	case InterfaceSubClass:
		return "SubC"
	case InterfaceProtocol:
		return "Pcol"
	case InterfaceAltSetting:
		return "Alt#"
	case InterfaceIcon:
		return iconHeading
	default:
		return ""
	}
}

func (b InterfaceBlock) text(i *models.Interface) string {
	switch b {
	case InterfaceName:
		return i.Name
	case InterfacePortPath:
		return orDash(i.Path)
	case InterfaceSysPath:
		return orDash(i.SysPath)
	case InterfaceDriver:
		return orDash(i.Driver)
	case InterfaceClassCode:
		return i.Class.String()
	default:
		return ""
	}
}

func (b InterfaceBlock) FormatValue(i *models.Interface, pad map[InterfaceBlock]int, s *PrintSettings) (string, bool) {
	switch b {
	case InterfaceNumber:
		return fmt.Sprintf("%2d", i.Number), true
	case InterfaceNumEndpoints:
		return fmt.Sprintf("%2d", len(i.Endpoints)), true
	case InterfaceSubClass:
		return FormatBaseU8(i.SubClass, s), true
	case InterfaceProtocol:
		return FormatBaseU8(i.Protocol, s), true
	case InterfaceAltSetting:
		return fmt.Sprintf("%4d", i.AltSetting), true
	case InterfaceIcon:
		if s.Icons == nil {
			return "", false
		}
		return s.Icons.Classifier(i.Class, i.SubClass, i.Protocol), true
	case InterfaceName, InterfacePortPath, InterfaceSysPath, InterfaceDriver, InterfaceClassCode:
		return padRight(b.text(i), pad[b]), true
	default:
		return "", false
	}
}

func (b InterfaceBlock) Colour(v string, ct *colour.Theme) string {
	switch b {
	case InterfaceNumber, InterfaceAltSetting, InterfaceNumEndpoints:
		return colour.Apply(ct.Number, v)
	case InterfaceName:
		return colour.Apply(ct.Name, v)
	case InterfacePortPath, InterfaceSysPath:
		return colour.Apply(ct.Path, v)
	case InterfaceIcon:
		return colour.Apply(ct.Icon, v)
	case InterfaceClassCode:
		return colour.Apply(ct.ClassCode, v)
	case InterfaceSubClass:
		return colour.Apply(ct.SubCode, v)
	case InterfaceProtocol:
		return colour.Apply(ct.Protocol, v)
	case InterfaceDriver:
		return colour.Apply(ct.Driver, v)
	default:
		return v
	}
}
