package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swoga/cpehal/model"
	"github.com/swoga/cpehal/platform"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	p, err := platform.New(platform.Test, platform.DefaultOptions(), zerolog.Nop())
	require.NoError(t, err)
	return New("/api", func() *platform.Platform { return p }, zerolog.Nop())
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestStatusCodes(t *testing.T) {
	h := newHandler(t)
	tests := []struct {
		path string
		code int
	}{
		{"/api/ethernet/eth0/stats", http.StatusOK},
		{"/api/ethernet/eth0/link", http.StatusOK},
		{"/api/ethernet/eth0/rmon?txq=2", http.StatusOK},
		{"/api/ethernet/eth0/rmon?txq=x", http.StatusBadRequest},
		{"/api/ethernet/eth0/operstate", http.StatusNotImplemented},
		{"/api/ethernet/wl0/stats", http.StatusNotImplemented},
		{"/api/ethernet/eth0/unknown", http.StatusNotFound},
		{"/api/qos/eth0/3", http.StatusOK},
		{"/api/qos/eth0/8", http.StatusBadRequest},
		{"/api/qos/eth0", http.StatusNotFound},
		{"/api/dsl/line/0", http.StatusOK},
		{"/api/dsl/line/0/stats", http.StatusOK},
		{"/api/dsl/line/1", http.StatusBadRequest},
		{"/api/dsl/channel/0", http.StatusOK},
		{"/api/dsl/vdsl/0", http.StatusNotFound},
		{"/api/gpon", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.code, get(h, tt.path).Code)
		})
	}
}

func TestEthernetStats(t *testing.T) {
	rec := get(newHandler(t), "/api/ethernet/eth0/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var s model.EthStats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&s))
	assert.Equal(t, uint64(1200), s.RxBytes)
}

func TestQueueStats(t *testing.T) {
	rec := get(newHandler(t), "/api/qos/eth1/0/")
	require.Equal(t, http.StatusOK, rec.Code)

	var s model.QueueStats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&s))
	assert.Equal(t, uint64(1000), s.TxPackets)
	assert.True(t, s.ReadAndReset)
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(t).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/qos/eth0/0", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestNoPlatform(t *testing.T) {
	h := New("/api/", func() *platform.Platform { return nil }, zerolog.Nop())
	assert.Equal(t, http.StatusServiceUnavailable, get(h, "/api/qos/eth0/0").Code)
}

func post(h http.Handler, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	return rec
}

func TestConfigure(t *testing.T) {
	h := newHandler(t)
	tests := []struct {
		name string
		path string
		body string
		code int
	}{
		{"line", "/api/dsl/line/0/configure", `{"xtse":[1,59],"vdsl2_profiles":"8a, 17A,35b","fast_profiles":"106a"}`, http.StatusNoContent},
		{"line without profiles", "/api/dsl/line/0/configure", `{"xtse":[1]}`, http.StatusBadRequest},
		{"unknown profile", "/api/dsl/line/0/configure", `{"xtse":[1],"vdsl2_profiles":"17a,99z"}`, http.StatusBadRequest},
		{"xtse bit out of range", "/api/dsl/line/0/configure", `{"xtse":[0],"vdsl2_profiles":"17a"}`, http.StatusBadRequest},
		{"unknown field", "/api/dsl/line/0/configure", `{"profiles":"17a"}`, http.StatusBadRequest},
		{"line out of range", "/api/dsl/line/3/configure", `{"xtse":[1],"vdsl2_profiles":"17a"}`, http.StatusBadRequest},
		{"atm", "/api/dsl/atm/0/configure", `{"link_type":"EoA","vpi":8,"vci":35,"encapsulation":"llc","qos_class":"ubr"}`, http.StatusNoContent},
		{"atm unknown class", "/api/dsl/atm/0/configure", `{"link_type":"eoa","vpi":8,"vci":35,"encapsulation":"llc","qos_class":"vbr"}`, http.StatusBadRequest},
		{"atm unknown link type", "/api/dsl/atm/0/configure", `{"link_type":"mpoa","vpi":8,"vci":35,"encapsulation":"llc","qos_class":"ubr"}`, http.StatusBadRequest},
		{"atm incomplete", "/api/dsl/atm/0/configure", `{"link_type":"eoa","encapsulation":"vcmux","qos_class":"cbr"}`, http.StatusBadRequest},
		{"unknown object", "/api/dsl/channel/0/configure", `{}`, http.StatusNotFound},
		{"not dsl", "/api/qos/eth0/configure", `{}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, post(h, tt.path, tt.body).Code)
		})
	}

	assert.Equal(t, http.StatusMethodNotAllowed, get(h, "/api/dsl/line/0/configure").Code)
}

func TestLineConfigParams(t *testing.T) {
	c := lineConfig{XTSE: []int{1, 59}, VDSL2Profiles: "8a,35b", FastProfiles: "212a", LimitMask: 3}
	p, err := c.params()
	require.NoError(t, err)
	assert.True(t, p.XTSE.Has(1))
	assert.True(t, p.XTSE.Has(59))
	assert.Equal(t, model.VDSL2Profile8a|model.VDSL2Profile35b, p.VDSL2Profiles)
	assert.Equal(t, model.FastProfile212a, p.FastProfiles)
	assert.Equal(t, uint32(3), p.LimitMask)
}
