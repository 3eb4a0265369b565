package tree

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/stegmannb/usbtree/internal/colour"
	"github.com/stegmannb/usbtree/internal/icon"
	"github.com/stegmannb/usbtree/internal/models"
)

type Printer struct {
	w        io.Writer
	settings *PrintSettings
	logger   *zap.Logger
	err      error
}

func NewPrinter(w io.Writer, settings *PrintSettings, logger *zap.Logger) *Printer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Printer{w: w, settings: settings, logger: logger}
}

// BusDevices pairs a bus with the devices printed under it when grouping by
// bus.
type BusDevices struct {
	Bus     *models.Bus
	Devices []*models.Device
}

func GroupByBus(t *models.Tree) []BusDevices {
	groups := make([]BusDevices, 0, len(t.Buses))
	for _, bus := range t.Buses {
		groups = append(groups, BusDevices{Bus: bus, Devices: bus.Devices})
	}
	return groups
}

// Print writes the prepared tree in the mode the settings ask for and
// returns the first write error.
func (p *Printer) Print(t *models.Tree) error {
	s := p.settings
	if s.JSON {
		return p.printJSON(t)
	}

	if len(t.FlattenDevices()) == 0 && (!s.Tree || len(t.Buses) == 0) {
		p.printNoDevices()
		return p.err
	}

	switch {
	case s.Tree:
		p.PrintTree(t)
	case s.GroupDevices == GroupBus:
		p.PrintBusGrouped(GroupByBus(t))
	default:
		p.PrintFlattenedDevices(t.FlattenDevices())
	}
	return p.err
}

func (p *Printer) printJSON(t *models.Tree) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")

	var v any = t
	if !p.settings.Tree && p.settings.GroupDevices != GroupBus {
		v = t.FlattenDevices()
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func (p *Printer) printNoDevices() {
	p.println(p.paint(color.New(color.FgYellow), "No USB devices found"))
}

// PrintTree draws every bus with its devices below it.
func (p *Printer) PrintTree(t *models.Tree) {
	start := glyph{p.settings.treeIcon(icon.TreeBusStart), p.role(func(ct *colour.Theme) *color.Color { return ct.TreeBusStart })}
	blocks := p.settings.busBlocks()
	pad := padding(p.settings, blocks, t.Buses)

	for i, bus := range t.Buses {
		printRows(p, []*models.Bus{bus}, blocks, pad, TreeData{}, 0,
			func(*models.Bus) glyph { return start },
			func(_ int, bus *models.Bus) {
				if bus.HasDevices() {
					p.PrintDevices(bus.Devices, TreeData{}.next(p.settings, len(bus.Devices), i))
				}
			})
		p.println("")
	}
}

// PrintBusGrouped prints each bus as its own block, followed by its devices
// as a tree or a flat list.
func (p *Printer) PrintBusGrouped(groups []BusDevices) {
	buses := make([]*models.Bus, len(groups))
	for i, g := range groups {
		buses[i] = g.Bus
	}
	blocks := p.settings.busBlocks()
	pad := padding(p.settings, blocks, buses)
	start := glyph{p.settings.treeIcon(icon.TreeBusStart), p.role(func(ct *colour.Theme) *color.Color { return ct.TreeBusStart })}

	for i, g := range groups {
		printRows(p, []*models.Bus{g.Bus}, blocks, pad, TreeData{}, 0,
			func(*models.Bus) glyph { return start },
			func(int, *models.Bus) {
				if len(g.Devices) == 0 {
					return
				}
				if p.settings.Tree {
					p.PrintDevices(g.Devices, TreeData{}.next(p.settings, len(g.Devices), i))
				} else {
					p.PrintFlattenedDevices(g.Devices)
				}
			})
		p.println("")
	}
}

// PrintDevices prints one batch of sibling devices and recurses into their
// configurations and child devices.
func (p *Printer) PrintDevices(devices []*models.Device, td TreeData) {
	s := p.settings
	devices = s.SortDevices.Devices(devices)
	blocks := s.deviceBlocks()
	pad := padding(s, blocks, devices)

	printRows(p, devices, blocks, pad, td, 0, p.deviceGlyph, func(i int, d *models.Device) {
		if s.Verbosity >= 1 {
			if d.Extra != nil {
				configs := d.Extra.Configurations
				// configurations and child devices share one branch
				itemsBelow := len(configs) + len(d.Devices)
				p.printConfigurations(configs, td.next(s, itemsBelow, i))
			} else {
				p.missingExtra(d)
			}
		}
		if d.HasDevices() {
			p.PrintDevices(d.Devices, td.next(s, len(d.Devices), i))
		}
	})
}

// PrintFlattenedDevices prints devices as one list without descending into
// their children.
func (p *Printer) PrintFlattenedDevices(devices []*models.Device) {
	s := p.settings
	devices = s.SortDevices.Devices(devices)
	blocks := s.flatDeviceBlocks()
	pad := padding(s, blocks, devices)

	printRows(p, devices, blocks, pad, TreeData{}, 0, p.deviceGlyph, func(i int, d *models.Device) {
		if s.Verbosity < 1 {
			return
		}
		if d.Extra == nil {
			p.missingExtra(d)
			return
		}
		configs := d.Extra.Configurations
		p.printConfigurations(configs, TreeData{}.next(s, len(configs), i))
	})
}

func (p *Printer) missingExtra(d *models.Device) {
	p.logger.Warn("no descriptor details for device, configurations not shown",
		zap.String("port_path", d.PortPath()),
		zap.String("id", d.GetIDString()),
		zap.String("name", d.GetDisplayName()))
}

func (p *Printer) printConfigurations(configs []models.Configuration, td TreeData) {
	s := p.settings
	blocks := s.configBlocks()
	items := ptrs(configs)
	pad := padding(s, blocks, items)
	term := glyph{s.treeIcon(icon.TreeConfigurationTerminator), p.role(func(ct *colour.Theme) *color.Color { return ct.TreeConfigurationTerminator })}

	printRows(p, items, blocks, pad, td, 2, func(*models.Configuration) glyph { return term },
		func(i int, c *models.Configuration) {
			if s.Verbosity >= 2 {
				p.printInterfaces(c.Interfaces, td.next(s, len(c.Interfaces), i))
			}
		})
}

func (p *Printer) printInterfaces(interfaces []models.Interface, td TreeData) {
	s := p.settings
	blocks := s.interfaceBlocks()
	items := ptrs(interfaces)
	pad := padding(s, blocks, items)
	term := glyph{s.treeIcon(icon.TreeInterfaceTerminator), p.role(func(ct *colour.Theme) *color.Color { return ct.TreeInterfaceTerminator })}

	printRows(p, items, blocks, pad, td, 4, func(*models.Interface) glyph { return term },
		func(i int, intf *models.Interface) {
			if s.Verbosity >= 3 {
				p.printEndpoints(intf.Endpoints, td.next(s, len(intf.Endpoints), i))
			}
		})
}

func (p *Printer) printEndpoints(endpoints []models.Endpoint, td TreeData) {
	s := p.settings
	blocks := s.endpointBlocks()
	items := ptrs(endpoints)
	pad := padding(s, blocks, items)

	printRows(p, items, blocks, pad, td, 6, func(e *models.Endpoint) glyph {
		if e.Address.Direction == models.DirectionIn {
			return glyph{s.treeIcon(icon.EndpointIn), p.role(func(ct *colour.Theme) *color.Color { return ct.TreeEndpointIn })}
		}
		return glyph{s.treeIcon(icon.EndpointOut), p.role(func(ct *colour.Theme) *color.Color { return ct.TreeEndpointOut })}
	}, nil)
}

func (p *Printer) deviceGlyph(*models.Device) glyph {
	return glyph{
		p.settings.treeIcon(icon.TreeDeviceTerminator),
		p.role(func(ct *colour.Theme) *color.Color { return ct.TreeBusTerminator }),
	}
}

// glyph is a tree terminator with the colour it is drawn in.
type glyph struct {
	text   string
	colour *color.Color
}

func padding[T any, B Block[B, T]](s *PrintSettings, blocks []B, items []*T) map[B]int {
	if s.NoPadding {
		return map[B]int{}
	}
	return generatePadding(blocks, items)
}

// printRows writes one batch: the heading before the first item, then a
// row per item followed by whatever descend prints below it. In tree mode
// rows carry the connector and terminator, otherwise they are indented.
func printRows[T any, B Block[B, T]](p *Printer, items []*T, blocks []B, pad map[B]int, td TreeData, indent int, term func(*T) glyph, descend func(int, *T)) {
	s := p.settings
	p.logger.Debug("printing batch",
		zap.Int("depth", td.Depth),
		zap.Int("items", len(items)),
		zap.Int("padded_columns", len(pad)))

	for i, item := range items {
		values := strings.Join(renderValue(item, blocks, pad, s), " ")

		if s.Tree {
			lead := td.connector(s, i)
			g := term(item)
			if i == 0 && s.Headings {
				width := runewidth.StringWidth(lead) - runewidth.StringWidth(td.Prefix) + runewidth.StringWidth(g.text) + 1
				p.println(p.treePaint(td.Prefix) + strings.Repeat(" ", width) + headingLine(p, blocks, pad))
			}
			p.println(p.treePaint(lead) + p.paint(g.colour, g.text) + " " + values)
		} else {
			spaces := strings.Repeat(" ", indent)
			if i == 0 && s.Headings {
				p.println(spaces + headingLine(p, blocks, pad))
			}
			p.println(spaces + values)
		}

		if descend != nil {
			descend(i, item)
		}
	}
}

func headingLine[B headed[B]](p *Printer, blocks []B, pad map[B]int) string {
	h := strings.Join(renderHeading(blocks, pad), " ")
	if p.settings.Colours == nil {
		return h
	}
	return color.New(color.Bold, color.Underline).Sprint(h)
}

func (p *Printer) role(pick func(*colour.Theme) *color.Color) *color.Color {
	if p.settings.Colours == nil {
		return nil
	}
	return pick(p.settings.Colours)
}

func (p *Printer) paint(c *color.Color, s string) string {
	if p.settings.Colours == nil {
		return s
	}
	return colour.Apply(c, s)
}

func (p *Printer) treePaint(s string) string {
	if s == "" {
		return s
	}
	return p.paint(p.role(func(ct *colour.Theme) *color.Color { return ct.Tree }), s)
}

func (p *Printer) println(line string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, line)
}
