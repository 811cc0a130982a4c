// Package broadcom implements the DSL backend for Broadcom xDSL chipsets.
package broadcom

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/swoga/cpehal/halerr"
)

type Options struct {
	// BCM63138 disables the G.fast profiles that chip cannot run.
	BCM63138 bool
}

type Backend struct {
	open Opener
	log  zerolog.Logger
	opts Options
}

func New(open Opener, log zerolog.Logger, opts Options) *Backend {
	return &Backend{
		open: open,
		log:  log.With().Str("backend", "broadcom-dsl").Logger(),
		opts: opts,
	}
}

// withDevice runs fn on a freshly opened Device and always closes it.
func (b *Backend) withDevice(ctx context.Context, op string, fn func(Device) error) error {
	if err := ctx.Err(); err != nil {
		return halerr.New(halerr.Query, op, err)
	}
	dev, err := b.open()
	if err != nil {
		b.log.Error().Err(err).Str("op", op).Msg("failed to open DSL device")
		if halerr.KindOf(err) == halerr.Unknown {
			err = halerr.New(halerr.HandleOpen, op, err)
		}
		return err
	}
	defer dev.Close()

	err = fn(dev)
	if err != nil {
		b.log.Error().Err(err).Str("op", op).Msg("DSL query failed")
		if halerr.KindOf(err) == halerr.Unknown {
			err = halerr.New(halerr.Query, op, err)
		}
	}
	return err
}

func (b *Backend) SetOEMParameter(ctx context.Context, id int, value []byte) error {
	return b.withDevice(ctx, "broadcom.SetOEMParameter", func(dev Device) error {
		return dev.SetOEMParameter(id, value)
	})
}

// parseUint behaves like strtoul with base 0: it accepts a leading numeric
// prefix in decimal, octal or hex and returns 0 when there is none.
func parseUint(s string) uint32 {
	s = strings.TrimSpace(s)
	base := 10
	digits := s
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		base, digits = 16, s[2:]
	case strings.HasPrefix(s, "0") && len(s) > 1:
		base, digits = 8, s[1:]
	}
	end := 0
	for end < len(digits) {
		if _, err := strconv.ParseUint(digits[end:end+1], base, 8); err != nil {
			break
		}
		end++
	}
	if end == 0 {
		return 0
	}
	v, err := strconv.ParseUint(digits[:end], base, 32)
	if err != nil {
		return 0
	}
	return uint32(v)
}
