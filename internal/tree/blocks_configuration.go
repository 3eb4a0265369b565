package tree

import (
	"fmt"
	"strings"

	"github.com/stegmannb/usbtree/internal/colour"
	"github.com/stegmannb/usbtree/internal/models"
)

type ConfigurationBlock int

const (
	ConfigNumber ConfigurationBlock = iota
	ConfigNumInterfaces
	ConfigAttributes
	ConfigIconAttributes
	ConfigMaxPower
	ConfigName
)

var configBlockNames = []string{
	"number", "num-interfaces", "attributes", "icon-attributes", "max-power", "name",
}

func (b ConfigurationBlock) String() string { return enumName(configBlockNames, int(b)) }

func AllConfigurationBlocks() []ConfigurationBlock {
	out := make([]ConfigurationBlock, len(configBlockNames))
	for i := range out {
		out[i] = ConfigurationBlock(i)
	}
	return out
}

func ParseConfigurationBlocks(names []string) ([]ConfigurationBlock, error) {
	return parseBlocks(AllConfigurationBlocks(), names)
}

func DefaultConfigurationBlocks(verbose bool) []ConfigurationBlock {
	if verbose {
		return []ConfigurationBlock{
			ConfigNumber, ConfigIconAttributes, ConfigAttributes,
			ConfigNumInterfaces, ConfigMaxPower, ConfigName,
		}
	}
	return []ConfigurationBlock{ConfigNumber, ConfigIconAttributes, ConfigMaxPower, ConfigName}
}

func (b ConfigurationBlock) isIcon() bool { return b == ConfigIconAttributes }

func (b ConfigurationBlock) ValueIsString() bool {
	switch b {
	case ConfigName, ConfigAttributes:
		return true
	default:
		return false
	}
}

func (b ConfigurationBlock) Heading(pad map[ConfigurationBlock]int) string {
	switch b {
	case ConfigNumber:
		return " #"
	case ConfigNumInterfaces:
		return "I#"
	case ConfigMaxPower:
		return centre("PMax", 6)
	case ConfigName:
		return centre("Name", pad[b])
	case ConfigAttributes:
		return centre("Attributes", pad[b])
	case ConfigIconAttributes:
		return centre(iconHeading, 3)
	default:
		return ""
	}
}

func (b ConfigurationBlock) text(c *models.Configuration) string {
	switch b {
	case ConfigName:
		return c.Name
	case ConfigAttributes:
		return orDash(c.AttributesString())
	default:
		return ""
	}
}

func (b ConfigurationBlock) FormatValue(c *models.Configuration, pad map[ConfigurationBlock]int, s *PrintSettings) (string, bool) {
	switch b {
	case ConfigNumber:
		return fmt.Sprintf("%2d", c.Number), true
	case ConfigNumInterfaces:
		return fmt.Sprintf("%2d", len(c.Interfaces)), true
	case ConfigMaxPower:
		return fmt.Sprintf("%3d mA", c.MaxPower), true
	case ConfigIconAttributes:
		if s.Icons == nil {
			return "", false
		}
		var icons strings.Builder
		for _, a := range c.Attributes {
			icons.WriteString(s.Icons.Attribute(a))
		}
		return padRight(icons.String(), 3), true
	case ConfigName, ConfigAttributes:
		return padRight(b.text(c), pad[b]), true
	default:
		return "", false
	}
}

func (b ConfigurationBlock) Colour(v string, ct *colour.Theme) string {
	switch b {
	case ConfigNumber:
		return colour.Apply(ct.Location, v)
	case ConfigNumInterfaces:
		return colour.Apply(ct.Number, v)
	case ConfigMaxPower:
		return colour.Apply(ct.Power, v)
	case ConfigName:
		return colour.Apply(ct.Name, v)
	case ConfigAttributes:
		return colour.Apply(ct.Attributes, v)
	case ConfigIconAttributes:
		return colour.Apply(ct.Icon, v)
	default:
		return v
	}
}
