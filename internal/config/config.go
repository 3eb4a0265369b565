// Package config loads usbtree settings from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/stegmannb/usbtree/internal/colour"
	"github.com/stegmannb/usbtree/internal/icon"
	"github.com/stegmannb/usbtree/internal/models"
	"github.com/stegmannb/usbtree/internal/tree"
)

// Load reads the config file at path, or usbtree.{json,yaml,toml} from the
// user config directory and the working directory when path is empty. A
// missing file is not an error.
func Load(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("usbtree")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "usbtree"))
		}
		v.AddConfigPath(".")
	}

	// USBTREE_SORT_DEVICES=device-number
	v.SetEnvPrefix("USBTREE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")

	v.SetDefault("tree", false)
	v.SetDefault("verbose", 0)
	v.SetDefault("more", false)
	v.SetDefault("hide-buses", false)
	v.SetDefault("hide-hubs", false)
	v.SetDefault("decimal", false)
	v.SetDefault("no-padding", false)
	v.SetDefault("ascii", false)
	v.SetDefault("no-colour", false)
	v.SetDefault("headings", false)
	v.SetDefault("json", false)
	v.SetDefault("sort-devices", tree.SortBranchPosition.String())
	v.SetDefault("sort-buses", false)
	v.SetDefault("group-devices", tree.GroupNone.String())
	v.SetDefault("mask-serials", "")

	v.SetDefault("blocks", []string{})
	v.SetDefault("bus-blocks", []string{})
	v.SetDefault("config-blocks", []string{})
	v.SetDefault("interface-blocks", []string{})
	v.SetDefault("endpoint-blocks", []string{})

	v.SetDefault("vid", "")
	v.SetDefault("pid", "")
	v.SetDefault("bus", 0)
	v.SetDefault("device", 0)
	v.SetDefault("filter-name", "")
	v.SetDefault("filter-serial", "")
	v.SetDefault("filter-class", "")

	v.SetDefault("icons", map[string]string{})
	v.SetDefault("colours", map[string]string{})
}

type Config struct {
	Tree         bool   `mapstructure:"tree"`
	Verbose      uint8  `mapstructure:"verbose"`
	More         bool   `mapstructure:"more"`
	HideBuses    bool   `mapstructure:"hide-buses"`
	HideHubs     bool   `mapstructure:"hide-hubs"`
	Decimal      bool   `mapstructure:"decimal"`
	NoPadding    bool   `mapstructure:"no-padding"`
	ASCII        bool   `mapstructure:"ascii"`
	NoColour     bool   `mapstructure:"no-colour"`
	Headings     bool   `mapstructure:"headings"`
	JSON         bool   `mapstructure:"json"`
	SortDevices  string `mapstructure:"sort-devices"`
	SortBuses    bool   `mapstructure:"sort-buses"`
	GroupDevices string `mapstructure:"group-devices"`
	MaskSerials  string `mapstructure:"mask-serials"`

	Blocks          []string `mapstructure:"blocks"`
	BusBlocks       []string `mapstructure:"bus-blocks"`
	ConfigBlocks    []string `mapstructure:"config-blocks"`
	InterfaceBlocks []string `mapstructure:"interface-blocks"`
	EndpointBlocks  []string `mapstructure:"endpoint-blocks"`

	VID          string `mapstructure:"vid"`
	PID          string `mapstructure:"pid"`
	Bus          uint8  `mapstructure:"bus"`
	Device       uint8  `mapstructure:"device"`
	FilterName   string `mapstructure:"filter-name"`
	FilterSerial string `mapstructure:"filter-serial"`
	FilterClass  string `mapstructure:"filter-class"`

	Icons   map[string]string `mapstructure:"icons"`
	Colours map[string]string `mapstructure:"colours"`
}

func Decode(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &c, nil
}

func (c *Config) PrintSettings() (*tree.PrintSettings, error) {
	s := &tree.PrintSettings{
		NoPadding: c.NoPadding,
		Decimal:   c.Decimal,
		Tree:      c.Tree,
		HideBuses: c.HideBuses,
		SortBuses: c.SortBuses,
		Headings:  c.Headings,
		Verbosity: min(c.Verbose, tree.MaxVerbosity),
		More:      c.More,
		JSON:      c.JSON,
	}

	if c.SortDevices != "" {
		if err := s.SortDevices.Set(c.SortDevices); err != nil {
			return nil, fmt.Errorf("sort-devices: %w", err)
		}
	}
	if c.GroupDevices != "" {
		if err := s.GroupDevices.Set(c.GroupDevices); err != nil {
			return nil, fmt.Errorf("group-devices: %w", err)
		}
	}
	if c.MaskSerials != "" {
		var m tree.Mask
		if err := m.Set(c.MaskSerials); err != nil {
			return nil, fmt.Errorf("mask-serials: %w", err)
		}
		s.MaskSerials = &m
	}

	var err error
	if len(c.Blocks) > 0 {
		if s.DeviceBlocks, err = tree.ParseDeviceBlocks(c.Blocks); err != nil {
			return nil, fmt.Errorf("blocks: %w", err)
		}
	}
	if len(c.BusBlocks) > 0 {
		if s.BusBlocks, err = tree.ParseBusBlocks(c.BusBlocks); err != nil {
			return nil, fmt.Errorf("bus-blocks: %w", err)
		}
	}
	if len(c.ConfigBlocks) > 0 {
		if s.ConfigBlocks, err = tree.ParseConfigurationBlocks(c.ConfigBlocks); err != nil {
			return nil, fmt.Errorf("config-blocks: %w", err)
		}
	}
	if len(c.InterfaceBlocks) > 0 {
		if s.InterfaceBlocks, err = tree.ParseInterfaceBlocks(c.InterfaceBlocks); err != nil {
			return nil, fmt.Errorf("interface-blocks: %w", err)
		}
	}
	if len(c.EndpointBlocks) > 0 {
		if s.EndpointBlocks, err = tree.ParseEndpointBlocks(c.EndpointBlocks); err != nil {
			return nil, fmt.Errorf("endpoint-blocks: %w", err)
		}
	}

	if !c.ASCII {
		s.Icons = icon.NewTheme(c.Icons)
	}
	if !c.NoColour {
		ct := colour.Default()
		if err := ct.Overrides(c.Colours); err != nil {
			return nil, fmt.Errorf("colours: %w", err)
		}
		s.Colours = ct
	}

	return s, nil
}

// Filter returns nil when no filter option is set.
func (c *Config) Filter() (*models.Filter, error) {
	f := &models.Filter{
		Name:            c.FilterName,
		Serial:          c.FilterSerial,
		ExcludeEmptyHub: c.HideHubs,
	}
	set := c.FilterName != "" || c.FilterSerial != "" || c.HideHubs

	if c.VID != "" {
		vid, err := parseID(c.VID)
		if err != nil {
			return nil, fmt.Errorf("vid: %w", err)
		}
		f.VendorID = &vid
		set = true
	}
	if c.PID != "" {
		pid, err := parseID(c.PID)
		if err != nil {
			return nil, fmt.Errorf("pid: %w", err)
		}
		f.ProductID = &pid
		set = true
	}
	if c.Bus != 0 {
		bus := c.Bus
		f.Bus = &bus
		set = true
	}
	if c.Device != 0 {
		number := c.Device
		f.Number = &number
		set = true
	}
	if c.FilterClass != "" {
		class, err := models.ParseClassCode(c.FilterClass)
		if err != nil {
			return nil, fmt.Errorf("filter-class: %w", err)
		}
		f.Class = &class
		set = true
	}

	if !set {
		return nil, nil
	}
	return f, nil
}

func parseID(s string) (uint16, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return uint16(v), nil
}
