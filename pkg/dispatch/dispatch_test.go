package dispatch_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeq/pkg/dispatch"
	"timeq/pkg/laptimer"
	"timeq/pkg/socket"
	"timeq/pkg/timeops"
	"timeq/pkg/wire"
)

var peer = socket.Endpoint{Addr: 0x7F000001, Port: 54321}

func newHandler(at time.Time) (*dispatch.Handler, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClockAt(at)
	h := dispatch.New(clock, dispatch.NewMonotonicTicks(clock), laptimer.New(0), timeops.DefaultZones())
	return h, clock
}

func handle(t *testing.T, h *dispatch.Handler, req wire.Request) wire.Payload {
	t.Helper()
	payload, ok := h.Handle(req, peer)
	require.True(t, ok)
	return payload
}

func TestTextResponses(t *testing.T) {
	h, _ := newHandler(time.Date(2024, time.January, 7, 12, 0, 0, 0, time.UTC))

	assert.Equal(t, wire.Text("07/01/2024 12:00:00"), handle(t, h, wire.Request{Code: wire.GetTime}))
	assert.Equal(t, wire.Text("12:00:00"), handle(t, h, wire.Request{Code: wire.GetTimeWithoutDate}))
	assert.Equal(t, wire.Text("12:00"), handle(t, h, wire.Request{Code: wire.GetTimeWithoutDateOrSeconds}))
	assert.Equal(t, wire.Text("2024"), handle(t, h, wire.Request{Code: wire.GetYear}))
	assert.Equal(t, wire.Text("07/01"), handle(t, h, wire.Request{Code: wire.GetMonthAndDay}))
	assert.Equal(t, wire.Text("0"), handle(t, h, wire.Request{Code: wire.GetDaylightSavings}))
}

func TestIntegerResponses(t *testing.T) {
	h, _ := newHandler(time.Date(2024, time.January, 7, 12, 0, 0, 0, time.UTC))

	epoch := handle(t, h, wire.Request{Code: wire.GetTimeSinceEpoch})
	assert.Equal(t, wire.Uint(1704628800), epoch)
	out, err := epoch.Encode()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x65, 0x95, 0x96, 0x80}, out)

	assert.Equal(t, wire.Uint(6*86400+12*3600), handle(t, h, wire.Request{Code: wire.GetSecondsSinceBeginningOfMonth}))
	assert.Equal(t, wire.Uint(1), handle(t, h, wire.Request{Code: wire.GetWeekOfYear}))
}

func TestPong(t *testing.T) {
	h, _ := newHandler(time.Date(2024, time.January, 7, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, wire.Pong{}, handle(t, h, wire.Request{Code: wire.MeasureRTT}))
}

func TestTicks(t *testing.T) {
	h, clock := newHandler(time.Date(2024, time.January, 7, 12, 0, 0, 0, time.UTC))

	assert.Equal(t, wire.Uint(0), handle(t, h, wire.Request{Code: wire.GetClientToServerDelayEstimation}))
	clock.Advance(250 * time.Millisecond)
	assert.Equal(t, wire.Uint(250), handle(t, h, wire.Request{Code: wire.GetClientToServerDelayEstimation}))
}

func TestCityRequest(t *testing.T) {
	h, _ := newHandler(time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC))

	req := wire.Request{Code: wire.GetTimeWithoutDateInCity, Params: []string{"berlin"}}
	assert.Equal(t, wire.Text("14:00:00"), handle(t, h, req))

	// no parameter falls back to UTC instead of failing
	req = wire.Request{Code: wire.GetTimeWithoutDateInCity}
	assert.Equal(t, wire.Text("12:00:00"), handle(t, h, req))

	req = wire.Request{Code: wire.GetTimeWithoutDateInCity, Params: []string{"Tokyo"}}
	assert.Equal(t, wire.Text("12:00:00"), handle(t, h, req))
}

func TestLapSequence(t *testing.T) {
	h, clock := newHandler(time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC))
	req := wire.Request{Code: wire.MeasureTimeLap}

	assert.Equal(t, wire.Text("Timer started"), handle(t, h, req))

	clock.Advance(150 * time.Second)
	assert.Equal(t, wire.Text("02:30"), handle(t, h, req))

	clock.Advance(250 * time.Second)
	assert.Equal(t, wire.Text("Timer started"), handle(t, h, req))
}

func TestLapEndpointsIndependent(t *testing.T) {
	h, clock := newHandler(time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC))
	other := socket.Endpoint{Addr: 0x7F000001, Port: 11111}
	req := wire.Request{Code: wire.MeasureTimeLap}

	p, ok := h.Handle(req, peer)
	require.True(t, ok)
	assert.Equal(t, wire.Text("Timer started"), p)

	clock.Advance(30 * time.Second)
	p, ok = h.Handle(req, other)
	require.True(t, ok)
	assert.Equal(t, wire.Text("Timer started"), p)

	clock.Advance(30 * time.Second)
	p, ok = h.Handle(req, peer)
	require.True(t, ok)
	assert.Equal(t, wire.Text("01:00"), p)
}

func TestNoResponseForUnknownCodes(t *testing.T) {
	h, _ := newHandler(time.Date(2024, time.January, 7, 12, 0, 0, 0, time.UTC))

	for _, frame := range [][]byte{{0xFF}, {0x00}, {42}, nil} {
		req := wire.DecodeRequest(frame)
		_, ok := h.Handle(req, peer)
		assert.False(t, ok, "frame %v must not produce a response", frame)
	}
}
