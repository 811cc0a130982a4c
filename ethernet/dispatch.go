package ethernet

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/model"
)

type Options struct {
	// BridgeFallback routes bridge interfaces without a matching prefix to
	// the first backend, which then aggregates the member ports.
	BridgeFallback bool
}

// Dispatcher resolves an interface name to a backend and calls it.
type Dispatcher struct {
	backends []Backend
	links    Links
	mii      MII
	log      zerolog.Logger
	opts     Options
}

func NewDispatcher(backends []Backend, links Links, mii MII, log zerolog.Logger, opts Options) *Dispatcher {
	return &Dispatcher{
		backends: backends,
		links:    links,
		mii:      mii,
		log:      log.With().Str("component", "ethernet").Logger(),
		opts:     opts,
	}
}

// Resolve returns the first backend with a prefix of ifname.
func (d *Dispatcher) Resolve(ifname string) (Backend, bool) {
	for _, b := range d.backends {
		for _, p := range b.Prefixes() {
			if strings.HasPrefix(ifname, p) {
				return b, true
			}
		}
	}
	if d.opts.BridgeFallback && len(d.backends) > 0 && d.links != nil && d.links.IsBridge(ifname) {
		return d.backends[0], true
	}
	return nil, false
}

func noBackend(op, ifname string) error {
	return halerr.Errorf(halerr.NotSupported, op, "no backend for %s", ifname)
}

func unsupported(op, ifname string) error {
	return halerr.Errorf(halerr.NotSupported, op, "not implemented for %s", ifname)
}

func (d *Dispatcher) Up(ctx context.Context, ifname string) error {
	const op = "ethernet.Up"
	b, ok := d.Resolve(ifname)
	if !ok {
		return noBackend(op, ifname)
	}
	u, ok := b.(Uplinker)
	if !ok {
		return unsupported(op, ifname)
	}
	return u.Up(ctx, ifname)
}

func (d *Dispatcher) Down(ctx context.Context, ifname string) error {
	const op = "ethernet.Down"
	b, ok := d.Resolve(ifname)
	if !ok {
		return noBackend(op, ifname)
	}
	u, ok := b.(Uplinker)
	if !ok {
		return unsupported(op, ifname)
	}
	return u.Down(ctx, ifname)
}

func (d *Dispatcher) LinkSettings(ctx context.Context, ifname string) (model.EthLink, error) {
	const op = "ethernet.LinkSettings"
	b, ok := d.Resolve(ifname)
	if !ok {
		return model.EthLink{}, noBackend(op, ifname)
	}
	r, ok := b.(LinkReader)
	if !ok {
		return model.EthLink{}, unsupported(op, ifname)
	}
	return r.LinkSettings(ctx, ifname)
}

func (d *Dispatcher) SetLinkSettings(ctx context.Context, ifname string, link model.EthLink) error {
	const op = "ethernet.SetLinkSettings"
	b, ok := d.Resolve(ifname)
	if !ok {
		return noBackend(op, ifname)
	}
	w, ok := b.(LinkWriter)
	if !ok {
		return unsupported(op, ifname)
	}
	return w.SetLinkSettings(ctx, ifname, link)
}

// OperState reads the kernel operational state and needs no backend.
func (d *Dispatcher) OperState(ctx context.Context, ifname string) (model.OperState, error) {
	const op = "ethernet.OperState"
	if d.links == nil {
		return model.OperUnknown, halerr.New(halerr.NotSupported, op, nil)
	}
	s, err := d.links.OperState(ifname)
	if err != nil {
		d.log.Error().Err(err).Str("ifname", ifname).Msg("failed to read operstate")
		return model.OperUnknown, halerr.New(halerr.Query, op, err)
	}
	return s, nil
}

// SetOperState is not available on any platform.
func (d *Dispatcher) SetOperState(ctx context.Context, ifname string, s model.OperState) error {
	return halerr.New(halerr.NotSupported, "ethernet.SetOperState", nil)
}

// ResetPHY uses the backend reset when there is one and a BMCR reset over
// MII otherwise.
func (d *Dispatcher) ResetPHY(ctx context.Context, ifname string, phyID int) error {
	if b, ok := d.Resolve(ifname); ok {
		if r, ok := b.(PHYResetter); ok {
			return r.ResetPHY(ctx, ifname, phyID)
		}
	}
	if d.mii == nil {
		return unsupported("ethernet.ResetPHY", ifname)
	}
	return d.mii.ResetPHY(ifname, phyID)
}

func (d *Dispatcher) PHYID(ctx context.Context, ifname string, port int) (int, error) {
	if b, ok := d.Resolve(ifname); ok {
		if r, ok := b.(PHYIdentifier); ok {
			return r.PHYID(ctx, ifname, port)
		}
	}
	if d.mii == nil {
		return 0, unsupported("ethernet.PHYID", ifname)
	}
	return d.mii.PHYID(ifname, port)
}

func (d *Dispatcher) PowerOnPHY(ctx context.Context, ifname string, phy model.EthPHY) error {
	const op = "ethernet.PowerOnPHY"
	b, ok := d.Resolve(ifname)
	if !ok {
		return noBackend(op, ifname)
	}
	p, ok := b.(PHYPower)
	if !ok {
		return unsupported(op, ifname)
	}
	return p.PowerOnPHY(ctx, ifname, phy)
}

func (d *Dispatcher) PowerOffPHY(ctx context.Context, ifname string, phy model.EthPHY) error {
	const op = "ethernet.PowerOffPHY"
	b, ok := d.Resolve(ifname)
	if !ok {
		return noBackend(op, ifname)
	}
	p, ok := b.(PHYPower)
	if !ok {
		return unsupported(op, ifname)
	}
	return p.PowerOffPHY(ctx, ifname, phy)
}

func (d *Dispatcher) Stats(ctx context.Context, ifname string) (model.EthStats, error) {
	b, ok := d.Resolve(ifname)
	if !ok {
		return model.EthStats{}, noBackend("ethernet.Stats", ifname)
	}
	return b.Stats(ctx, ifname)
}

func (d *Dispatcher) RMONStats(ctx context.Context, ifname string, txq int) (model.RMONStats, error) {
	const op = "ethernet.RMONStats"
	b, ok := d.Resolve(ifname)
	if !ok {
		return model.RMONStats{}, noBackend(op, ifname)
	}
	r, ok := b.(RMONReader)
	if !ok {
		return model.RMONStats{}, unsupported(op, ifname)
	}
	return r.RMONStats(ctx, ifname, txq)
}

func (d *Dispatcher) Info(ctx context.Context, ifname string) (model.EthInfo, error) {
	const op = "ethernet.Info"
	b, ok := d.Resolve(ifname)
	if !ok {
		return model.EthInfo{}, noBackend(op, ifname)
	}
	r, ok := b.(InfoReader)
	if !ok {
		return model.EthInfo{}, unsupported(op, ifname)
	}
	return r.Info(ctx, ifname)
}
