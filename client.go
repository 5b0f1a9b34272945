package main

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"

	"timeq/pkg/socket"
	"timeq/pkg/stats"
	"timeq/pkg/timeops"
	"timeq/pkg/wire"
)

var errServerReported = errors.New("server reported an error")

type client struct {
	fd         int
	buf        []byte
	clock      clockwork.Clock
	iterations int
	zones      timeops.ZoneTable
	in         *bufio.Scanner
}

// Client connects the UDP socket to the server and runs the menu loop.
func Client(conf Config) error {
	addr, err := net.ResolveUDPAddr("udp", conf.Endpoint)
	if err != nil {
		return fmt.Errorf("resolve addr: %w", err)
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0)
	if err != nil {
		return fmt.Errorf("socket: %w", err)
	}
	defer unix.Close(fd)

	if err = unix.Connect(fd, socket.Addr(addr)); err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	if conf.RecvTimeoutMs > 0 {
		tv := unix.NsecToTimeval(int64(conf.RecvTimeoutMs) * int64(time.Millisecond))
		if err = unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
			return fmt.Errorf("setsockopt SO_RCVTIMEO: %w", err)
		}
	}

	log.Info().Str("server", conf.Endpoint).Msg("connected")

	c := &client{
		fd:         fd,
		buf:        make([]byte, wire.MaxDatagram),
		clock:      clockwork.NewRealClock(),
		iterations: conf.Iterations,
		zones:      conf.Zones,
		in:         bufio.NewScanner(os.Stdin),
	}
	return c.run()
}

func (c *client) run() error {
	for {
		printMenu()
		choice, ok := c.promptChoice()
		if !ok {
			continue
		}
		if choice == 0 {
			fmt.Println("Time Client: closing connection.")
			return nil
		}
		if err := c.dispatch(wire.Code(choice)); err != nil {
			fmt.Printf("Request failed: %v\n", err)
		}
	}
}

func (c *client) dispatch(code wire.Code) error {
	switch code {
	case wire.GetTime:
		return c.textRequest(code, "The time and date are: %s\n")
	case wire.GetTimeWithoutDate:
		return c.textRequest(code, "The time is: %s\n")
	case wire.GetTimeSinceEpoch:
		return c.uintRequest(code, "Seconds since epoch: %d\n")
	case wire.GetClientToServerDelayEstimation:
		return c.estimateDelay()
	case wire.MeasureRTT:
		return c.measureRTT()
	case wire.GetTimeWithoutDateOrSeconds:
		return c.textRequest(code, "The time is: %s\n")
	case wire.GetYear:
		return c.textRequest(code, "The year is: %s\n")
	case wire.GetMonthAndDay:
		return c.textRequest(code, "The month and day are: %s\n")
	case wire.GetSecondsSinceBeginningOfMonth:
		return c.uintRequest(code, "Seconds since beginning of month: %d\n")
	case wire.GetWeekOfYear:
		return c.uintRequest(code, "Week of the year: %d\n")
	case wire.GetDaylightSavings:
		return c.daylightSavings()
	case wire.GetTimeWithoutDateInCity:
		return c.timeInCity()
	case wire.MeasureTimeLap:
		return c.measureLap()
	}
	return fmt.Errorf("no handler for request code %d", int8(code))
}

func (c *client) send(code wire.Code, params ...string) error {
	frame, err := wire.EncodeRequest(code, params...)
	if err != nil {
		return err
	}
	if err = unix.Sendto(c.fd, frame, 0, nil); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}

func (c *client) receive() ([]byte, error) {
	for {
		n, err := unix.Read(c.fd, c.buf)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("recv: %w", err)
		}
		resp := c.buf[:n]
		if wire.IsErrorResponse(resp) {
			return nil, errServerReported
		}
		return resp, nil
	}
}

func (c *client) roundTrip(code wire.Code, params ...string) ([]byte, error) {
	if err := c.send(code, params...); err != nil {
		return nil, err
	}
	return c.receive()
}

func (c *client) textRequest(code wire.Code, format string) error {
	resp, err := c.roundTrip(code)
	if err != nil {
		return err
	}
	fmt.Printf(format, string(resp))
	return nil
}

func (c *client) uintRequest(code wire.Code, format string) error {
	resp, err := c.roundTrip(code)
	if err != nil {
		return err
	}
	v, err := wire.DecodeUint(resp)
	if err != nil {
		return err
	}
	fmt.Printf(format, v)
	return nil
}

func (c *client) daylightSavings() error {
	resp, err := c.roundTrip(wire.GetDaylightSavings)
	if err != nil {
		return err
	}
	name := "Standard Time"
	if string(resp) == "1" {
		name = "Daylight Saving Time"
	}
	fmt.Printf("It is currently %s.\n", name)
	return nil
}

func (c *client) timeInCity() error {
	city := c.promptCity()
	resp, err := c.roundTrip(wire.GetTimeWithoutDateInCity, city)
	if err != nil {
		return err
	}
	fmt.Printf("The time in %s is: %s\n", city, string(resp))
	return nil
}

func (c *client) measureLap() error {
	resp, err := c.roundTrip(wire.MeasureTimeLap)
	if err != nil {
		return err
	}
	if string(resp) == "Timer started" {
		fmt.Println("Timer started. Send the same request again to stop the timer.")
	} else {
		fmt.Printf("Time elapsed since the timer was started: %s\n", string(resp))
	}
	return nil
}

// estimateDelay fires a burst of tick-count requests and reports the
// mean of the differences between consecutive samples. Ticks are a
// relative signal, so only the deltas carry information.
func (c *client) estimateDelay() error {
	for i := 0; i < c.iterations; i++ {
		if err := c.send(wire.GetClientToServerDelayEstimation); err != nil {
			return err
		}
	}

	deltas := stats.NewDeltaMean[int64](c.iterations)
	for i := 0; i < c.iterations; i++ {
		resp, err := c.receive()
		if err != nil {
			return err
		}
		sample, err := wire.DecodeUint(resp)
		if err != nil {
			return err
		}
		deltas.Add(int64(sample))
	}

	fmt.Printf("Average client-to-server delay: %d ms\n", deltas.Mean())
	return nil
}

// measureRTT times iterations of ping/pong exchanges and reports the
// mean round trip.
func (c *client) measureRTT() error {
	rtt := stats.New[time.Duration](c.iterations)
	for i := 0; i < c.iterations; i++ {
		t0 := c.clock.Now()
		if _, err := c.roundTrip(wire.MeasureRTT); err != nil {
			return err
		}
		rtt.Add(c.clock.Since(t0))
	}

	fmt.Printf("Average round-trip time (RTT): %v (stddev %v, %d samples)\n",
		rtt.Mean(), rtt.StdDev(), rtt.Count())
	return nil
}
