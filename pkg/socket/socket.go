// Package socket bridges net addresses and the raw unix sockaddr types
// used on the datagram path, and derives the endpoint identity that
// keys per-client state.
package socket

import (
	"encoding/binary"
	"fmt"
	"net"

	"golang.org/x/sys/unix"
)

// Endpoint identifies a peer as a 32-bit IPv4 address plus port.
// Equality is exact field match, which makes it usable as a map key.
type Endpoint struct {
	Addr uint32
	Port uint16
}

func (e Endpoint) String() string {
	return fmt.Sprintf("%d.%d.%d.%d:%d",
		byte(e.Addr>>24), byte(e.Addr>>16), byte(e.Addr>>8), byte(e.Addr), e.Port)
}

// EndpointOf extracts the IPv4 identity of a peer. The second return
// is false for non-IPv4 peers, which then share the zero Endpoint.
func EndpointOf(sa unix.Sockaddr) (Endpoint, bool) {
	v, ok := sa.(*unix.SockaddrInet4)
	if !ok {
		return Endpoint{}, false
	}
	return Endpoint{
		Addr: binary.BigEndian.Uint32(v.Addr[:]),
		Port: uint16(v.Port),
	}, true
}

func Addr(x *net.UDPAddr) unix.Sockaddr {
	res := &unix.SockaddrInet4{
		Port: x.Port,
	}
	copy(res.Addr[:], x.IP.To4())
	return res
}

func AddrToString(sa unix.Sockaddr) string {
	switch v := sa.(type) {
	case *unix.SockaddrInet4:
		ip := net.IP(v.Addr[:])
		return fmt.Sprintf("%s:%d", ip, v.Port)
	case *unix.SockaddrInet6:
		ip := net.IP(v.Addr[:])
		return fmt.Sprintf("[%s]:%d", ip, v.Port)
	case *unix.SockaddrUnix:
		return v.Name
	default:
		return fmt.Sprintf("<%T>", v)
	}
}
