package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stegmannb/usbtree/internal/config"
	"github.com/stegmannb/usbtree/internal/tree"
	"github.com/stegmannb/usbtree/internal/usb"
)

// flags that mirror config keys, bound to viper so they override the file
var boundFlags = []string{
	"tree", "verbose", "more", "blocks", "bus-blocks", "config-blocks",
	"interface-blocks", "endpoint-blocks", "sort-devices", "sort-buses",
	"group-devices", "hide-buses", "hide-hubs", "decimal", "no-padding",
	"ascii", "no-colour", "headings", "json", "mask-serials",
	"vid", "pid", "bus", "device", "filter-name", "filter-serial", "filter-class",
}

type options struct {
	configPath string
	fromJSON   string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	var sortDevices tree.Sort
	var groupDevices tree.Group

	cmd := &cobra.Command{
		Use:   "usbtree",
		Short: "Display USB devices in a tree view",
		Long: `USBTree lists connected USB buses and devices as an aligned table or a
tree, down to configurations, interfaces and endpoints with -v, -vv and
-vvv. It works on both macOS and Linux systems.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return run(cmd, opts)
	}

	f := cmd.Flags()
	f.BoolP("tree", "t", false, "Show devices as a tree")
	f.CountP("verbose", "v", "Show configurations, interfaces and endpoints (repeat up to 4 times)")
	f.BoolP("more", "m", false, "Use the verbose block lists")
	f.StringSlice("blocks", nil, "Device blocks to show, e.g. name,vendor-id")
	f.StringSlice("bus-blocks", nil, "Bus blocks to show")
	f.StringSlice("config-blocks", nil, "Configuration blocks to show")
	f.StringSlice("interface-blocks", nil, "Interface blocks to show")
	f.StringSlice("endpoint-blocks", nil, "Endpoint blocks to show")
	f.Var(&sortDevices, "sort-devices", "Sort devices by branch-position, device-number or no-sort")
	f.Bool("sort-buses", false, "Sort buses by number")
	f.Var(&groupDevices, "group-devices", "Group devices: no-group or bus")
	f.Bool("hide-buses", false, "Hide buses without devices")
	f.Bool("hide-hubs", false, "Hide hubs with nothing attached")
	f.BoolP("decimal", "d", false, "Show ids and codes in decimal")
	f.Bool("no-padding", false, "Do not align columns")
	f.Bool("ascii", false, "Draw the tree with ASCII and show no icons")
	f.Bool("no-colour", false, "Disable colour output")
	f.BoolP("headings", "H", false, "Show column headings")
	f.BoolP("json", "j", false, "Output in JSON format")
	f.String("mask-serials", "", "Mask serial numbers: hide, scramble or replace")
	f.String("vid", "", "Filter by vendor id (hex)")
	f.String("pid", "", "Filter by product id (hex)")
	f.Uint8("bus", 0, "Filter by bus number")
	f.Uint8("device", 0, "Filter by device number")
	f.StringP("filter-name", "f", "", "Filter devices by name or manufacturer")
	f.String("filter-serial", "", "Filter devices by serial number")
	f.String("filter-class", "", "Filter devices by class name or code")

	f.StringVar(&opts.fromJSON, "from-json", "", "Read devices from a JSON dump instead of the system")
	f.StringVar(&opts.configPath, "config", "", "Config file (default usbtree.json in the user config directory)")
	f.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	v, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	for _, name := range boundFlags {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	if opts.debug {
		v.Set("logging.level", "debug")
	}

	logger, err := config.NewLogger(v)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := config.Decode(v)
	if err != nil {
		return err
	}
	settings, err := cfg.PrintSettings()
	if err != nil {
		return err
	}
	if cfg.NoColour {
		color.NoColor = true
	}
	filter, err := cfg.Filter()
	if err != nil {
		return err
	}

	detector := usb.NewDetector(logger)
	if opts.fromJSON != "" {
		detector = usb.NewFileDetector(opts.fromJSON)
	}

	devices, err := detector.GetTree()
	if err != nil {
		return fmt.Errorf("failed to get USB devices: %w", err)
	}

	tree.Prepare(devices, filter, settings)

	return tree.NewPrinter(cmd.OutOrStdout(), settings, logger).Print(devices)
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
