// Package colour holds the colour theme applied to printed blocks.
package colour

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var names = map[string]color.Attribute{
	"black":          color.FgBlack,
	"red":            color.FgRed,
	"green":          color.FgGreen,
	"yellow":         color.FgYellow,
	"blue":           color.FgBlue,
	"magenta":        color.FgMagenta,
	"cyan":           color.FgCyan,
	"white":          color.FgWhite,
	"bright-black":   color.FgHiBlack,
	"bright-red":     color.FgHiRed,
	"bright-green":   color.FgHiGreen,
	"bright-yellow":  color.FgHiYellow,
	"bright-blue":    color.FgHiBlue,
	"bright-magenta": color.FgHiMagenta,
	"bright-cyan":    color.FgHiCyan,
	"bright-white":   color.FgHiWhite,
}

// Parse turns a name like "bright-blue" into a colour. An empty name or
// "none" gives nil, meaning uncoloured.
func Parse(name string) (*color.Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "none" {
		return nil, nil
	}
	attr, ok := names[strings.ReplaceAll(name, "_", "-")]
	if !ok {
		return nil, fmt.Errorf("unknown colour %q", name)
	}
	return color.New(attr), nil
}

// Theme has one colour per semantic role; a nil role prints plain text.
type Theme struct {
	Name         *color.Color
	Serial       *color.Color
	Manufacturer *color.Color
	Driver       *color.Color
	Icon         *color.Color
	Location     *color.Color
	Path         *color.Color
	Number       *color.Color
	Speed        *color.Color
	VID          *color.Color
	PID          *color.Color
	ClassCode    *color.Color
	SubCode      *color.Color
	Protocol     *color.Color
	Attributes   *color.Color
	Power        *color.Color

	Tree                        *color.Color
	TreeBusStart                *color.Color
	TreeBusTerminator           *color.Color
	TreeConfigurationTerminator *color.Color
	TreeInterfaceTerminator     *color.Color
	TreeEndpointIn              *color.Color
	TreeEndpointOut             *color.Color
}

func Default() *Theme {
	return &Theme{
		Name:         color.New(color.FgHiBlue),
		Serial:       color.New(color.FgGreen),
		Manufacturer: color.New(color.FgBlue),
		Driver:       color.New(color.FgHiMagenta),
		Icon:         nil,
		Location:     color.New(color.FgMagenta),
		Path:         color.New(color.FgCyan),
		Number:       color.New(color.FgCyan),
		Speed:        color.New(color.FgMagenta),
		VID:          color.New(color.FgHiYellow),
		PID:          color.New(color.FgYellow),
		ClassCode:    color.New(color.FgHiYellow),
		SubCode:      color.New(color.FgYellow),
		Protocol:     color.New(color.FgYellow),
		Attributes:   color.New(color.FgMagenta),
		Power:        color.New(color.FgRed),

		Tree:                        color.New(color.FgHiBlack),
		TreeBusStart:                color.New(color.FgHiCyan),
		TreeBusTerminator:           color.New(color.FgHiBlue),
		TreeConfigurationTerminator: color.New(color.FgHiYellow),
		TreeInterfaceTerminator:     color.New(color.FgHiYellow),
		TreeEndpointIn:              color.New(color.FgYellow),
		TreeEndpointOut:             color.New(color.FgMagenta),
	}
}

// Overrides applies role names from configuration, e.g. {"name": "red"}.
func (t *Theme) Overrides(roles map[string]string) error {
	for role, name := range roles {
		c, err := Parse(name)
		if err != nil {
			return fmt.Errorf("colour for %s: %w", role, err)
		}
		slot := t.slot(role)
		if slot == nil {
			return fmt.Errorf("unknown colour role %q", role)
		}
		*slot = c
	}
	return nil
}

func (t *Theme) slot(role string) **color.Color {
	switch strings.ReplaceAll(strings.ToLower(role), "_", "-") {
	case "name":
		return &t.Name
	case "serial":
		return &t.Serial
	case "manufacturer":
		return &t.Manufacturer
	case "driver":
		return &t.Driver
	case "icon":
		return &t.Icon
	case "location":
		return &t.Location
	case "path":
		return &t.Path
	case "number":
		return &t.Number
	case "speed":
		return &t.Speed
	case "vid":
		return &t.VID
	case "pid":
		return &t.PID
	case "class-code":
		return &t.ClassCode
	case "sub-code":
		return &t.SubCode
	case "protocol":
		return &t.Protocol
	case "attributes":
		return &t.Attributes
	case "power":
		return &t.Power
	case "tree":
		return &t.Tree
	case "tree-bus-start":
		return &t.TreeBusStart
	case "tree-bus-terminator":
		return &t.TreeBusTerminator
	case "tree-configuration-terminator":
		return &t.TreeConfigurationTerminator
	case "tree-interface-terminator":
		return &t.TreeInterfaceTerminator
	case "tree-endpoint-in":
		return &t.TreeEndpointIn
	case "tree-endpoint-out":
		return &t.TreeEndpointOut
	default:
		return nil
	}
}

// Apply colours s with c, or returns it unchanged when c is nil.
func Apply(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}
