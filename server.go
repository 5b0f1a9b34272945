package main

import (
	"fmt"
	"net"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"

	"timeq/pkg/dispatch"
	"timeq/pkg/laptimer"
	"timeq/pkg/socket"
	"timeq/pkg/wire"
)

// Server binds the UDP endpoint and answers requests one datagram at a
// time: receive, decode, dispatch, respond. Requests the dispatcher
// has no handler for are dropped without a reply.
func Server(conf Config) error {
	addr, err := net.ResolveUDPAddr("udp", conf.Endpoint)
	if err != nil {
		return fmt.Errorf("net.ResolveUDPAddr: %w", err)
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0)
	if err != nil {
		return fmt.Errorf("socket: %w", err)
	}
	defer unix.Close(fd)

	localAddr := socket.Addr(addr)
	if err = unix.Bind(fd, localAddr); err != nil {
		return fmt.Errorf("bind: %w", err)
	}

	log.Info().Str("addr", socket.AddrToString(localAddr)).Msg("listening")

	clock := clockwork.NewRealClock()
	handler := dispatch.New(
		clock,
		dispatch.NewMonotonicTicks(clock),
		laptimer.New(time.Duration(conf.LapExpirySec)*time.Second),
		conf.Zones,
	)

	buf := make([]byte, wire.MaxDatagram)
	for {
		n, from, err := unix.Recvfrom(fd, buf, 0)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			log.Error().Err(err).Msg("recvfrom")
			continue
		}

		req := wire.DecodeRequest(buf[:n])
		peer, _ := socket.EndpointOf(from)
		log.Info().
			Int("bytes", n).
			Stringer("code", req.Code).
			Strs("params", req.Params).
			Str("peer", socket.AddrToString(from)).
			Msg("request")

		payload, ok := handler.Handle(req, peer)
		if !ok {
			log.Warn().Stringer("code", req.Code).Msg("no handler, dropping request")
			continue
		}

		out, err := payload.Encode()
		if err != nil {
			log.Error().Err(err).Msg("encode response")
			continue
		}
		if err = unix.Sendto(fd, out, 0, from); err != nil {
			log.Error().Err(err).Msg("sendto")
			continue
		}
		log.Info().Int("bytes", len(out)).Msg("response sent")
	}
}
