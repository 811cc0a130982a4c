package config

import (
	"fmt"

	"github.com/swoga/cpehal/dsl"
	"github.com/swoga/cpehal/platform"
	"github.com/swoga/cpehal/qos"
)

type Config struct {
	Listen      string             `yaml:"listen"`
	ProbePath   string             `yaml:"probe_path"`
	MetricsPath string             `yaml:"metrics_path"`
	APIPath     string             `yaml:"api_path"`
	Timeout     float64            `yaml:"timeout"`
	Platform    string             `yaml:"platform"`
	ProcMount   string             `yaml:"proc_mount"`
	SysMount    string             `yaml:"sys_mount"`
	DSL         DSL                `yaml:"dsl"`
	QoS         QoS                `yaml:"qos"`
	Targets     map[string]*Target `yaml:"targets"`
	Global      Global             `yaml:"global"`
}

func DefaultConfig() Config {
	limits := dsl.DefaultLimits()
	return Config{
		Listen:      ":9778",
		ProbePath:   "/probe",
		MetricsPath: "/metrics",
		APIPath:     "/api/",
		Timeout:     30,
		Platform:    platform.Test,
		ProcMount:   "/proc",
		SysMount:    "/sys",
		DSL: DSL{
			Lines:    limits.Lines,
			Channels: limits.Channels,
			ATMLinks: limits.ATMLinks,
			PTMLinks: limits.PTMLinks,
		},
		Global: Global{
			Options: DefaultOptions(),
		},
	}
}

func DefaultOptions() Options {
	return Options{
		ExportDSL:      true,
		ExportEthernet: true,
		ExportQoS:      true,
		ExportRMON:     false,
	}
}

func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*c = DefaultConfig()

	type plain Config
	if err := unmarshal((*plain)(c)); err != nil {
		return err
	}

	if !validPlatform(c.Platform) {
		return fmt.Errorf("unknown platform %q, expected one of %v", c.Platform, platform.Names)
	}

	for name, target := range c.Targets {
		if target == nil {
			return fmt.Errorf("target %s: empty definition", name)
		}
		if target.Options == nil {
			target.Options = &c.Global.Options
		}
		for _, q := range target.Queues {
			if q < 0 || q >= qos.MaxQueues {
				return fmt.Errorf("target %s: queue %d out of range [0, %d)", name, q, qos.MaxQueues)
			}
		}
	}

	return nil
}

func validPlatform(name string) bool {
	for _, n := range platform.Names {
		if n == name {
			return true
		}
	}
	return false
}

// PlatformOptions converts the hardware related settings.
func (c *Config) PlatformOptions() platform.Options {
	return platform.Options{
		Limits: dsl.Limits{
			Lines:    c.DSL.Lines,
			Channels: c.DSL.Channels,
			ATMLinks: c.DSL.ATMLinks,
			PTMLinks: c.DSL.PTMLinks,
		},
		BCM63138:  c.DSL.BCM63138,
		Archer:    c.QoS.Archer,
		ProcMount: c.ProcMount,
		SysMount:  c.SysMount,
	}
}

type DSL struct {
	Lines    int  `yaml:"lines"`
	Channels int  `yaml:"channels"`
	ATMLinks int  `yaml:"atm_links"`
	PTMLinks int  `yaml:"ptm_links"`
	BCM63138 bool `yaml:"bcm63138"`
}

type QoS struct {
	Archer bool `yaml:"archer"`
}

type Global struct {
	Options Options `yaml:"options"`
}

type Options struct {
	ExportDSL      bool `yaml:"export_dsl"`
	ExportEthernet bool `yaml:"export_ethernet"`
	ExportQoS      bool `yaml:"export_qos"`
	ExportRMON     bool `yaml:"export_rmon"`
}

func (o *Options) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*o = DefaultOptions()

	type plain Options
	if err := unmarshal((*plain)(o)); err != nil {
		return err
	}

	return nil
}

// Target is a set of interfaces and queues scraped by one probe.
type Target struct {
	Interfaces []string `yaml:"interfaces"`
	Queues     []int    `yaml:"queues"`
	Options    *Options `yaml:"options"`
}
