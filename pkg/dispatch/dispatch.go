// Package dispatch maps decoded request codes to their handlers and
// produces the response payload, or reports that no response should be
// sent at all.
package dispatch

import (
	"time"

	"github.com/jonboulle/clockwork"

	"timeq/pkg/laptimer"
	"timeq/pkg/socket"
	"timeq/pkg/timeops"
	"timeq/pkg/wire"
)

// TickSource yields a monotonically increasing 32-bit counter. Only
// differences between readings carry meaning; the absolute value does
// not relate to wall-clock time.
type TickSource interface {
	Ticks() uint32
}

// MonotonicTicks counts milliseconds since its construction.
type MonotonicTicks struct {
	clock clockwork.Clock
	start time.Time
}

func NewMonotonicTicks(clock clockwork.Clock) *MonotonicTicks {
	return &MonotonicTicks{clock: clock, start: clock.Now()}
}

func (m *MonotonicTicks) Ticks() uint32 {
	return uint32(m.clock.Since(m.start) / time.Millisecond)
}

// Handler resolves requests against the injected clock, tick source,
// lap table and city zone table.
type Handler struct {
	clock clockwork.Clock
	ticks TickSource
	laps  *laptimer.Table
	zones timeops.ZoneTable
}

func New(clock clockwork.Clock, ticks TickSource, laps *laptimer.Table, zones timeops.ZoneTable) *Handler {
	return &Handler{clock: clock, ticks: ticks, laps: laps, zones: zones}
}

// Handle maps a decoded request to its response payload. The second
// return is false when the code has no handler; the caller then sends
// nothing back.
func (h *Handler) Handle(req wire.Request, from socket.Endpoint) (wire.Payload, bool) {
	now := h.clock.Now()
	switch req.Code {
	case wire.GetTime:
		return wire.Text(timeops.DateTime(now)), true
	case wire.GetTimeWithoutDate:
		return wire.Text(timeops.TimeOfDay(now)), true
	case wire.GetTimeSinceEpoch:
		return wire.Uint(timeops.EpochSeconds(now)), true
	case wire.GetClientToServerDelayEstimation:
		return wire.Uint(h.ticks.Ticks()), true
	case wire.MeasureRTT:
		return wire.Pong{}, true
	case wire.GetTimeWithoutDateOrSeconds:
		return wire.Text(timeops.HourMinute(now)), true
	case wire.GetYear:
		return wire.Text(timeops.Year(now)), true
	case wire.GetMonthAndDay:
		return wire.Text(timeops.MonthDay(now)), true
	case wire.GetSecondsSinceBeginningOfMonth:
		return wire.Uint(timeops.SecondsIntoMonth(now)), true
	case wire.GetWeekOfYear:
		return wire.Uint(timeops.WeekOfYear(now)), true
	case wire.GetDaylightSavings:
		if timeops.InDaylightSavings(now) {
			return wire.Text("1"), true
		}
		return wire.Text("0"), true
	case wire.GetTimeWithoutDateInCity:
		// a request without a city parameter resolves to UTC
		city := "utc"
		if len(req.Params) > 0 {
			city = req.Params[0]
		}
		return wire.Text(h.zones.TimeInCity(now, city)), true
	case wire.MeasureTimeLap:
		return wire.Text(h.laps.Touch(from, now).String()), true
	}
	return nil, false
}
