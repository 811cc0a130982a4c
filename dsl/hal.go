package dsl

import (
	"context"

	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/model"
)

// Limits holds the number of lines, channels and XTM links of a platform.
type Limits struct {
	Lines    int
	Channels int
	ATMLinks int
	PTMLinks int
}

func DefaultLimits() Limits {
	return Limits{Lines: 1, Channels: 1, ATMLinks: 1, PTMLinks: 1}
}

// HAL validates indexes against Limits before any backend call and reports
// NotSupported for capabilities the backend does not implement.
type HAL struct {
	backend Backend
	limits  Limits
}

func New(backend Backend, limits Limits) *HAL {
	return &HAL{backend: backend, limits: limits}
}

func (h *HAL) Lines() int    { return h.limits.Lines }
func (h *HAL) Channels() int { return h.limits.Channels }

func checkIndex(op string, n int, max int) error {
	if n < 0 || n >= max {
		return halerr.Errorf(halerr.InvalidArgument, op, "index %d out of range [0, %d)", n, max)
	}
	return nil
}

func checkStatsType(op string, t model.StatsType) error {
	if !t.Valid() {
		return halerr.Errorf(halerr.InvalidArgument, op, "unknown interval type %d", t)
	}
	return nil
}

func notSupported(op string) error {
	return halerr.New(halerr.NotSupported, op, nil)
}

func (h *HAL) LineInfo(ctx context.Context, line int) (model.Line, error) {
	if err := checkIndex("dsl.LineInfo", line, h.limits.Lines); err != nil {
		return model.Line{}, err
	}
	return h.backend.LineInfo(ctx, line)
}

func (h *HAL) LineStats(ctx context.Context, line int) (model.LineChannelStats, error) {
	if err := checkIndex("dsl.LineStats", line, h.limits.Lines); err != nil {
		return model.LineChannelStats{}, err
	}
	return h.backend.LineStats(ctx, line)
}

func (h *HAL) LineStatsInterval(ctx context.Context, line int, t model.StatsType) (model.LineStatsInterval, error) {
	const op = "dsl.LineStatsInterval"
	if err := checkIndex(op, line, h.limits.Lines); err != nil {
		return model.LineStatsInterval{}, err
	}
	if err := checkStatsType(op, t); err != nil {
		return model.LineStatsInterval{}, err
	}
	return h.backend.LineStatsInterval(ctx, line, t)
}

func (h *HAL) ChannelInfo(ctx context.Context, channel int) (model.Channel, error) {
	if err := checkIndex("dsl.ChannelInfo", channel, h.limits.Channels); err != nil {
		return model.Channel{}, err
	}
	return h.backend.ChannelInfo(ctx, channel)
}

func (h *HAL) ChannelStats(ctx context.Context, channel int) (model.LineChannelStats, error) {
	if err := checkIndex("dsl.ChannelStats", channel, h.limits.Channels); err != nil {
		return model.LineChannelStats{}, err
	}
	return h.backend.ChannelStats(ctx, channel)
}

func (h *HAL) ChannelStatsInterval(ctx context.Context, channel int, t model.StatsType) (model.ChannelStatsInterval, error) {
	const op = "dsl.ChannelStatsInterval"
	if err := checkIndex(op, channel, h.limits.Channels); err != nil {
		return model.ChannelStatsInterval{}, err
	}
	if err := checkStatsType(op, t); err != nil {
		return model.ChannelStatsInterval{}, err
	}
	return h.backend.ChannelStatsInterval(ctx, channel, t)
}

func (h *HAL) FastLineInfo(ctx context.Context, line int) (model.FastLine, error) {
	const op = "dsl.FastLineInfo"
	if err := checkIndex(op, line, h.limits.Lines); err != nil {
		return model.FastLine{}, err
	}
	b, ok := h.backend.(FastBackend)
	if !ok {
		return model.FastLine{}, notSupported(op)
	}
	return b.FastLineInfo(ctx, line)
}

func (h *HAL) FastLineStats(ctx context.Context, line int) (model.LineChannelStats, error) {
	const op = "dsl.FastLineStats"
	if err := checkIndex(op, line, h.limits.Lines); err != nil {
		return model.LineChannelStats{}, err
	}
	b, ok := h.backend.(FastBackend)
	if !ok {
		return model.LineChannelStats{}, notSupported(op)
	}
	return b.FastLineStats(ctx, line)
}

func (h *HAL) FastLineStatsInterval(ctx context.Context, line int, t model.StatsType) (model.FastLineStatsInterval, error) {
	const op = "dsl.FastLineStatsInterval"
	if err := checkIndex(op, line, h.limits.Lines); err != nil {
		return model.FastLineStatsInterval{}, err
	}
	if err := checkStatsType(op, t); err != nil {
		return model.FastLineStatsInterval{}, err
	}
	b, ok := h.backend.(FastBackend)
	if !ok {
		return model.FastLineStatsInterval{}, notSupported(op)
	}
	return b.FastLineStatsInterval(ctx, line, t)
}

func (h *HAL) FastLineTestParams(ctx context.Context, line int) (model.FastLineTestParams, error) {
	const op = "dsl.FastLineTestParams"
	if err := checkIndex(op, line, h.limits.Lines); err != nil {
		return model.FastLineTestParams{}, err
	}
	b, ok := h.backend.(FastTestParamsReader)
	if !ok {
		return model.FastLineTestParams{}, notSupported(op)
	}
	return b.FastLineTestParams(ctx, line)
}

func (h *HAL) LineTestParams(ctx context.Context, line int) (model.LineTestParams, error) {
	const op = "dsl.LineTestParams"
	if err := checkIndex(op, line, h.limits.Lines); err != nil {
		return model.LineTestParams{}, err
	}
	b, ok := h.backend.(TestParamsReader)
	if !ok {
		return model.LineTestParams{}, notSupported(op)
	}
	return b.LineTestParams(ctx, line)
}

func (h *HAL) DataGathering(ctx context.Context, line int) (model.DataGathering, error) {
	const op = "dsl.DataGathering"
	if err := checkIndex(op, line, h.limits.Lines); err != nil {
		return model.DataGathering{}, err
	}
	b, ok := h.backend.(TestParamsReader)
	if !ok {
		return model.DataGathering{}, notSupported(op)
	}
	return b.DataGathering(ctx, line)
}

func (h *HAL) LineTest(ctx context.Context, line int, start bool) error {
	const op = "dsl.LineTest"
	if err := checkIndex(op, line, h.limits.Lines); err != nil {
		return err
	}
	b, ok := h.backend.(LineTester)
	if !ok {
		return notSupported(op)
	}
	return b.LineTest(ctx, line, start)
}

func (h *HAL) LineTestResults(ctx context.Context, line int) (model.ADSLLineTest, model.DiagState, error) {
	const op = "dsl.LineTestResults"
	if err := checkIndex(op, line, h.limits.Lines); err != nil {
		return model.ADSLLineTest{}, model.DiagErrorOther, err
	}
	b, ok := h.backend.(LineTester)
	if !ok {
		return model.ADSLLineTest{}, model.DiagErrorOther, notSupported(op)
	}
	return b.LineTestResults(ctx, line)
}

func (h *HAL) selt(op string, line int) (SELTTester, error) {
	if err := checkIndex(op, line, h.limits.Lines); err != nil {
		return nil, err
	}
	b, ok := h.backend.(SELTTester)
	if !ok {
		return nil, notSupported(op)
	}
	return b, nil
}

func (h *HAL) SELTUERTest(ctx context.Context, line int, cfg model.SELTUER, start bool) error {
	b, err := h.selt("dsl.SELTUERTest", line)
	if err != nil {
		return err
	}
	return b.SELTUERTest(ctx, line, cfg, start)
}

func (h *HAL) SELTUERResults(ctx context.Context, line int) (model.SELTUER, model.DiagState, error) {
	b, err := h.selt("dsl.SELTUERResults", line)
	if err != nil {
		return model.SELTUER{}, model.DiagErrorOther, err
	}
	return b.SELTUERResults(ctx, line)
}

func (h *HAL) SELTQLNTest(ctx context.Context, line int, cfg model.SELTQLN, start bool) error {
	b, err := h.selt("dsl.SELTQLNTest", line)
	if err != nil {
		return err
	}
	return b.SELTQLNTest(ctx, line, cfg, start)
}

func (h *HAL) SELTQLNResults(ctx context.Context, line int) (model.SELTQLN, model.DiagState, error) {
	b, err := h.selt("dsl.SELTQLNResults", line)
	if err != nil {
		return model.SELTQLN{}, model.DiagErrorOther, err
	}
	return b.SELTQLNResults(ctx, line)
}

func (h *HAL) SELTPTest(ctx context.Context, line int, cfg model.SELTP, start bool) error {
	b, err := h.selt("dsl.SELTPTest", line)
	if err != nil {
		return err
	}
	return b.SELTPTest(ctx, line, cfg, start)
}

func (h *HAL) SELTPResults(ctx context.Context, line int) (model.SELTP, model.DiagState, error) {
	b, err := h.selt("dsl.SELTPResults", line)
	if err != nil {
		return model.SELTP{}, model.DiagErrorOther, err
	}
	return b.SELTPResults(ctx, line)
}

func (h *HAL) Configure(ctx context.Context, line int, params model.ConfigParams) error {
	const op = "dsl.Configure"
	if err := checkIndex(op, line, h.limits.Lines); err != nil {
		return err
	}
	b, ok := h.backend.(Configurer)
	if !ok {
		return notSupported(op)
	}
	return b.Configure(ctx, line, params)
}

func (h *HAL) SetOEMParameter(ctx context.Context, id int, value []byte) error {
	b, ok := h.backend.(OEMParameterSetter)
	if !ok {
		return notSupported("dsl.SetOEMParameter")
	}
	return b.SetOEMParameter(ctx, id, value)
}

func (h *HAL) atm(op string, link int) (ATMBackend, error) {
	if err := checkIndex(op, link, h.limits.ATMLinks); err != nil {
		return nil, err
	}
	b, ok := h.backend.(ATMBackend)
	if !ok {
		return nil, notSupported(op)
	}
	return b, nil
}

func (h *HAL) ATMConfigure(ctx context.Context, link int, cfg model.ATMLink, qos model.ATMLinkQoS) error {
	b, err := h.atm("atm.Configure", link)
	if err != nil {
		return err
	}
	return b.ATMConfigure(ctx, link, cfg, qos)
}

func (h *HAL) ATMLinkInfo(ctx context.Context, link int) (model.ATMLink, model.ATMLinkQoS, error) {
	b, err := h.atm("atm.LinkInfo", link)
	if err != nil {
		return model.ATMLink{}, model.ATMLinkQoS{}, err
	}
	return b.ATMLinkInfo(ctx, link)
}

func (h *HAL) ATMLinkStats(ctx context.Context, link int) (model.ATMLinkStats, error) {
	b, err := h.atm("atm.LinkStats", link)
	if err != nil {
		return model.ATMLinkStats{}, err
	}
	return b.ATMLinkStats(ctx, link)
}

func (h *HAL) ATMLoopbackTest(ctx context.Context, link int, cfg model.ATMDiagLoopback, start bool) error {
	b, err := h.atm("atm.LoopbackTest", link)
	if err != nil {
		return err
	}
	return b.ATMLoopbackTest(ctx, link, cfg, start)
}

func (h *HAL) ATMLoopbackResults(ctx context.Context, link int) (model.ATMDiagLoopback, model.DiagState, error) {
	b, err := h.atm("atm.LoopbackResults", link)
	if err != nil {
		return model.ATMDiagLoopback{}, model.DiagErrorOther, err
	}
	return b.ATMLoopbackResults(ctx, link)
}

func (h *HAL) PTMLinkInfo(ctx context.Context, link int) (model.PTMLink, error) {
	const op = "ptm.LinkInfo"
	if err := checkIndex(op, link, h.limits.PTMLinks); err != nil {
		return model.PTMLink{}, err
	}
	b, ok := h.backend.(PTMBackend)
	if !ok {
		return model.PTMLink{}, notSupported(op)
	}
	return b.PTMLinkInfo(ctx, link)
}
