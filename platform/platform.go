// Package platform assembles the DSL, Ethernet and QoS backends of one
// hardware platform.
package platform

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/swoga/cpehal/dsl"
	dslbroadcom "github.com/swoga/cpehal/dsl/broadcom"
	dslstub "github.com/swoga/cpehal/dsl/stub"
	"github.com/swoga/cpehal/ethernet"
	ethbroadcom "github.com/swoga/cpehal/ethernet/broadcom"
	etheconet "github.com/swoga/cpehal/ethernet/econet"
	"github.com/swoga/cpehal/ethernet/ipq95xx"
	"github.com/swoga/cpehal/ethernet/linuxeth"
	ethstub "github.com/swoga/cpehal/ethernet/stub"
	"github.com/swoga/cpehal/qos"
	qosbroadcom "github.com/swoga/cpehal/qos/broadcom"
	qoseconet "github.com/swoga/cpehal/qos/econet"
	"github.com/swoga/cpehal/qos/linuxqos"
	qosstub "github.com/swoga/cpehal/qos/stub"
)

const (
	Broadcom = "broadcom"
	Econet   = "econet"
	IPQ95xx  = "ipq95xx"
	Linux    = "linux"
	Test     = "test"
)

// Names lists the supported platforms.
var Names = []string{Broadcom, Econet, IPQ95xx, Linux, Test}

type Options struct {
	Limits dsl.Limits
	// BCM63138 restricts the G.fast profiles on Broadcom.
	BCM63138 bool
	// Archer reads Broadcom queue counters from the Archer driver instead
	// of the Runner.
	Archer    bool
	ProcMount string
	SysMount  string
}

func DefaultOptions() Options {
	return Options{
		Limits:    dsl.DefaultLimits(),
		ProcMount: "/proc",
		SysMount:  "/sys",
	}
}

// Platform holds the accessors of one platform. DSL is nil on platforms
// without a DSL modem. A Platform keeps no open handles, every accessor
// opens and closes its own, so it can be dropped while calls are in flight.
type Platform struct {
	Name     string
	DSL      *dsl.HAL
	Ethernet *ethernet.Dispatcher
	QoS      *qos.Dispatcher
}

// New builds the backends of the named platform.
func New(name string, opts Options, log zerolog.Logger) (*Platform, error) {
	p := &Platform{Name: name}
	var err error
	switch name {
	case Broadcom:
		err = p.broadcom(opts, log)
	case Econet:
		err = p.econet(opts, log)
	case IPQ95xx:
		err = p.ipq95xx(opts, log)
	case Linux:
		err = p.linux(opts, log)
	case Test:
		p.test(opts, log)
	default:
		return nil, fmt.Errorf("unknown platform %q", name)
	}
	if err != nil {
		return nil, fmt.Errorf("platform %s: %w", name, err)
	}
	log.Debug().Str("platform", name).Bool("dsl", p.DSL != nil).Msg("platform initialized")
	return p, nil
}

func (p *Platform) linkState(opts Options) (*ethernet.Sysfs, *ethernet.NetDev, error) {
	links, err := ethernet.NewSysfs(opts.SysMount)
	if err != nil {
		return nil, nil, err
	}
	counters, err := ethernet.NewNetDev(opts.ProcMount)
	if err != nil {
		return nil, nil, err
	}
	return links, counters, nil
}

func (p *Platform) broadcom(opts Options, log zerolog.Logger) error {
	links, _, err := p.linkState(opts)
	if err != nil {
		return err
	}
	mii := ethernet.MIIBus{}

	p.DSL = dsl.New(dslbroadcom.New(dslbroadcom.Open, log, dslbroadcom.Options{BCM63138: opts.BCM63138}), opts.Limits)

	eth := ethbroadcom.New(ethbroadcom.IoctlSwitch{}, links, mii, log)
	p.Ethernet = ethernet.NewDispatcher([]ethernet.Backend{eth}, links, mii, log, ethernet.Options{BridgeFallback: true})

	var q qos.Backend
	if opts.Archer {
		q = qosbroadcom.NewArcher(qosbroadcom.DeviceArcher{}, log)
	} else {
		q = qosbroadcom.NewRunner(qosbroadcom.DeviceRDPA{}, qosbroadcom.DeviceBoard{}, log)
	}
	p.QoS = qos.NewDispatcher([]qos.Backend{q}, log)
	return nil
}

func (p *Platform) econet(opts Options, log zerolog.Logger) error {
	links, _, err := p.linkState(opts)
	if err != nil {
		return err
	}
	eth := etheconet.New(etheconet.LibSwitchManager{}, log)
	p.Ethernet = ethernet.NewDispatcher([]ethernet.Backend{eth}, links, ethernet.MIIBus{}, log, ethernet.Options{})
	p.QoS = qos.NewDispatcher([]qos.Backend{qoseconet.New(qoseconet.Klog{}, log)}, log)
	return nil
}

func (p *Platform) ipq95xx(opts Options, log zerolog.Logger) error {
	links, counters, err := p.linkState(opts)
	if err != nil {
		return err
	}
	mii := ethernet.MIIBus{}
	eth := ipq95xx.New(ipq95xx.Open, counters, mii, log)
	p.Ethernet = ethernet.NewDispatcher([]ethernet.Backend{eth}, links, mii, log, ethernet.Options{})
	p.QoS = qos.NewDispatcher([]qos.Backend{linuxqos.New(linuxqos.RouteDumper{}, "eth", log)}, log)
	return nil
}

func (p *Platform) linux(opts Options, log zerolog.Logger) error {
	links, counters, err := p.linkState(opts)
	if err != nil {
		return err
	}
	eth := linuxeth.New(linuxeth.Open, counters, log)
	p.Ethernet = ethernet.NewDispatcher([]ethernet.Backend{eth}, links, ethernet.MIIBus{}, log, ethernet.Options{})
	p.QoS = qos.NewDispatcher([]qos.Backend{linuxqos.New(linuxqos.RouteDumper{}, "lan", log)}, log)
	return nil
}

// test wires the stub backends. Link state is left out so the platform
// works without /sys.
func (p *Platform) test(opts Options, log zerolog.Logger) {
	p.DSL = dsl.New(dslstub.New(log), opts.Limits)
	p.Ethernet = ethernet.NewDispatcher([]ethernet.Backend{ethstub.New(log)}, nil, nil, log, ethernet.Options{})
	p.QoS = qos.NewDispatcher([]qos.Backend{qosstub.New()}, log)
}
