// Package dsl exposes xDSL, G.fast, ATM and PTM line accessors over a vendor backend.
package dsl

import (
	"context"

	"github.com/swoga/cpehal/model"
)

// Backend is implemented by every DSL platform.
type Backend interface {
	LineInfo(ctx context.Context, line int) (model.Line, error)
	LineStats(ctx context.Context, line int) (model.LineChannelStats, error)
	LineStatsInterval(ctx context.Context, line int, t model.StatsType) (model.LineStatsInterval, error)
	ChannelInfo(ctx context.Context, channel int) (model.Channel, error)
	ChannelStats(ctx context.Context, channel int) (model.LineChannelStats, error)
	ChannelStatsInterval(ctx context.Context, channel int, t model.StatsType) (model.ChannelStatsInterval, error)
}

type FastBackend interface {
	FastLineInfo(ctx context.Context, line int) (model.FastLine, error)
	FastLineStats(ctx context.Context, line int) (model.LineChannelStats, error)
	FastLineStatsInterval(ctx context.Context, line int, t model.StatsType) (model.FastLineStatsInterval, error)
}

type FastTestParamsReader interface {
	FastLineTestParams(ctx context.Context, line int) (model.FastLineTestParams, error)
}

type TestParamsReader interface {
	LineTestParams(ctx context.Context, line int) (model.LineTestParams, error)
	DataGathering(ctx context.Context, line int) (model.DataGathering, error)
}

// LineTester runs ADSL line diagnostics.
type LineTester interface {
	LineTest(ctx context.Context, line int, start bool) error
	LineTestResults(ctx context.Context, line int) (model.ADSLLineTest, model.DiagState, error)
}

type SELTTester interface {
	SELTUERTest(ctx context.Context, line int, cfg model.SELTUER, start bool) error
	SELTUERResults(ctx context.Context, line int) (model.SELTUER, model.DiagState, error)
	SELTQLNTest(ctx context.Context, line int, cfg model.SELTQLN, start bool) error
	SELTQLNResults(ctx context.Context, line int) (model.SELTQLN, model.DiagState, error)
	SELTPTest(ctx context.Context, line int, cfg model.SELTP, start bool) error
	SELTPResults(ctx context.Context, line int) (model.SELTP, model.DiagState, error)
}

type Configurer interface {
	Configure(ctx context.Context, line int, params model.ConfigParams) error
}

type OEMParameterSetter interface {
	SetOEMParameter(ctx context.Context, id int, value []byte) error
}

type ATMBackend interface {
	ATMConfigure(ctx context.Context, link int, cfg model.ATMLink, qos model.ATMLinkQoS) error
	ATMLinkInfo(ctx context.Context, link int) (model.ATMLink, model.ATMLinkQoS, error)
	ATMLinkStats(ctx context.Context, link int) (model.ATMLinkStats, error)
	ATMLoopbackTest(ctx context.Context, link int, cfg model.ATMDiagLoopback, start bool) error
	ATMLoopbackResults(ctx context.Context, link int) (model.ATMDiagLoopback, model.DiagState, error)
}

type PTMBackend interface {
	PTMLinkInfo(ctx context.Context, link int) (model.PTMLink, error)
}
