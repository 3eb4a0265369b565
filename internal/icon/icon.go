// Package icon maps devices, buses and tree glyphs to printable icons.
package icon

import (
	"fmt"

	"github.com/stegmannb/usbtree/internal/models"
)

// Kind names a glyph used to draw the tree.
type Kind int

const (
	TreeEdge Kind = iota
	TreeLine
	TreeCorner
	TreeBlank
	TreeBusStart
	TreeDeviceTerminator
	TreeConfigurationTerminator
	TreeInterfaceTerminator
	EndpointIn
	EndpointOut
)

var kindKeys = map[Kind]string{
	TreeEdge:                    "tree-edge",
	TreeLine:                    "tree-line",
	TreeCorner:                  "tree-corner",
	TreeBlank:                   "tree-blank",
	TreeBusStart:                "tree-bus-start",
	TreeDeviceTerminator:        "tree-device-terminator",
	TreeConfigurationTerminator: "tree-configuration-terminator",
	TreeInterfaceTerminator:     "tree-interface-terminator",
	EndpointIn:                  "endpoint-in",
	EndpointOut:                 "endpoint-out",
}

func (k Kind) String() string {
	return kindKeys[k]
}

var asciiTree = map[Kind]string{
	TreeEdge:                    "|__",
	TreeLine:                    "|  ",
	TreeCorner:                  "|__",
	TreeBlank:                   "   ",
	TreeBusStart:                "/:",
	TreeDeviceTerminator:        "O",
	TreeConfigurationTerminator: "o",
	TreeInterfaceTerminator:     ".",
	EndpointIn:                  ">",
	EndpointOut:                 "<",
}

var utf8Tree = map[Kind]string{
	TreeEdge:                    "\u251c\u2500\u2500",
	TreeLine:                    "\u2502  ",
	TreeCorner:                  "\u2514\u2500\u2500",
	TreeBlank:                   "   ",
	TreeBusStart:                "\u25cf",
	TreeDeviceTerminator:        "\u25cb",
	TreeConfigurationTerminator: "\u2022",
	TreeInterfaceTerminator:     "\u25e6",
	EndpointIn:                  "\u2192",
	EndpointOut:                 "\u2190",
}

// nerd font glyphs
var defaultIcons = map[string]string{
	"unknown-vendor":   "\uf287",
	"classifier:hub":   "\uf126",
	"classifier:hid":   "\uf11c",
	"classifier:mass":  "\uf0a0",
	"classifier:audio": "\uf025",
	"classifier:video": "\uf03d",
	"vid:1d6b":         "\uf17c",
	"vid:05ac":         "\uf179",
	"vid:046d":         "\uf8cc",
	"bus:usb":          "\uf287",

	"attribute:self-powered":  "\uf1e6",
	"attribute:remote-wakeup": "\uf0e7",
}

// AsciiTree is the glyph used when no icon theme is active.
func AsciiTree(k Kind) string {
	return asciiTree[k]
}

// Theme holds user supplied icons which take precedence over the defaults.
// Keys are "vid:xxxx", "vid-pid:xxxx:xxxx", "classifier:name",
// "unknown-vendor" or a tree glyph name such as "tree-edge".
type Theme struct {
	User map[string]string `json:"user,omitempty"`
}

func NewTheme(user map[string]string) *Theme {
	return &Theme{User: user}
}

func (t *Theme) lookup(key string) (string, bool) {
	if t != nil {
		if v, ok := t.User[key]; ok {
			return v, true
		}
	}
	v, ok := defaultIcons[key]
	return v, ok
}

func (t *Theme) Tree(k Kind) string {
	if t != nil {
		if v, ok := t.User[k.String()]; ok {
			return v
		}
	}
	return utf8Tree[k]
}

func (t *Theme) Device(d *models.Device) string {
	if d.VendorID != nil {
		if d.ProductID != nil {
			if v, ok := t.lookup(fmt.Sprintf("vid-pid:%04x:%04x", *d.VendorID, *d.ProductID)); ok {
				return v
			}
		}
		if v, ok := t.lookup(fmt.Sprintf("vid:%04x", *d.VendorID)); ok {
			return v
		}
	}
	if d.Class != nil {
		if v, ok := t.lookup(classifierKey(*d.Class)); ok {
			return v
		}
	}
	v, _ := t.lookup("unknown-vendor")
	return v
}

func (t *Theme) Bus(b *models.Bus) string {
	if b.PCIVendor != nil {
		if v, ok := t.lookup(fmt.Sprintf("vid:%04x", *b.PCIVendor)); ok {
			return v
		}
	}
	v, _ := t.lookup("bus:usb")
	return v
}

func (t *Theme) Classifier(class models.ClassCode, subClass, protocol uint8) string {
	if v, ok := t.lookup(fmt.Sprintf("classifier:%02x:%02x:%02x", uint8(class), subClass, protocol)); ok {
		return v
	}
	if v, ok := t.lookup(classifierKey(class)); ok {
		return v
	}
	v, _ := t.lookup("unknown-vendor")
	return v
}

// Attribute is the glyph for a configuration attribute, empty if unknown.
func (t *Theme) Attribute(a models.ConfigAttribute) string {
	var key string
	switch a {
	case models.SelfPowered:
		key = "attribute:self-powered"
	case models.RemoteWakeup:
		key = "attribute:remote-wakeup"
	default:
		return ""
	}
	v, _ := t.lookup(key)
	return v
}

func classifierKey(class models.ClassCode) string {
	switch class {
	case models.ClassHub:
		return "classifier:hub"
	case models.ClassHID:
		return "classifier:hid"
	case models.ClassMassStorage:
		return "classifier:mass"
	case models.ClassAudio:
		return "classifier:audio"
	case models.ClassVideo:
		return "classifier:video"
	default:
		return fmt.Sprintf("classifier:%02x", uint8(class))
	}
}
