package wire

import "fmt"

// Code identifies the operation a datagram requests. It travels as the
// first byte of every request frame; responses carry no code. The wire
// byte is interpreted as a signed value, so 0xFF decodes to Error.
type Code int8

const (
	Error   Code = -1
	Default Code = 0 // reserved, never dispatched
)

const (
	GetTime Code = iota + 1
	GetTimeWithoutDate
	GetTimeSinceEpoch
	GetClientToServerDelayEstimation
	MeasureRTT
	GetTimeWithoutDateOrSeconds
	GetYear
	GetMonthAndDay
	GetSecondsSinceBeginningOfMonth
	GetWeekOfYear
	GetDaylightSavings
	GetTimeWithoutDateInCity
	MeasureTimeLap
)

// Known reports whether c is a dispatchable request code.
func Known(c Code) bool {
	return c >= GetTime && c <= MeasureTimeLap
}

func (c Code) String() string {
	switch c {
	case Error:
		return "Error"
	case Default:
		return "Default"
	case GetTime:
		return "GetTime"
	case GetTimeWithoutDate:
		return "GetTimeWithoutDate"
	case GetTimeSinceEpoch:
		return "GetTimeSinceEpoch"
	case GetClientToServerDelayEstimation:
		return "GetClientToServerDelayEstimation"
	case MeasureRTT:
		return "MeasureRTT"
	case GetTimeWithoutDateOrSeconds:
		return "GetTimeWithoutDateOrSeconds"
	case GetYear:
		return "GetYear"
	case GetMonthAndDay:
		return "GetMonthAndDay"
	case GetSecondsSinceBeginningOfMonth:
		return "GetSecondsSinceBeginningOfMonth"
	case GetWeekOfYear:
		return "GetWeekOfYear"
	case GetDaylightSavings:
		return "GetDaylightSavings"
	case GetTimeWithoutDateInCity:
		return "GetTimeWithoutDateInCity"
	case MeasureTimeLap:
		return "MeasureTimeLap"
	}
	return fmt.Sprintf("Unknown(%d)", int8(c))
}
