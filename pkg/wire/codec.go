// Package wire frames requests and responses of the UDP time protocol:
// a one-byte request code with null-separated ASCII parameters on the
// way in, and raw text, a leading-zero-elided big-endian uint32 or a
// single-byte pong on the way out.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// MaxDatagram is the largest frame either side sends or accepts.
	MaxDatagram = 255
	// DefaultPort is the server's default UDP port.
	DefaultPort = 27015
)

var (
	ErrMalformedResponse = errors.New("malformed response")
	ErrFrameTooLong      = errors.New("frame exceeds max datagram size")
)

// Request is a decoded request frame.
type Request struct {
	Code   Code
	Params []string
}

// EncodeRequest builds a request frame: the code byte, then each
// parameter preceded by a single null byte. There is no terminator
// after the last parameter.
func EncodeRequest(code Code, params ...string) ([]byte, error) {
	buf := []byte{byte(code)}
	for _, p := range params {
		buf = append(buf, 0)
		buf = append(buf, p...)
	}
	if len(buf) > MaxDatagram {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLong, len(buf))
	}
	return buf, nil
}

// DecodeRequest parses a request frame. An empty frame decodes to the
// Error code. Parameters are the non-empty runs between null bytes
// after the code byte, in the order encountered; a frame holding only
// the code byte yields no parameters.
func DecodeRequest(buf []byte) Request {
	if len(buf) == 0 {
		return Request{Code: Error}
	}
	req := Request{Code: Code(buf[0])}
	i := 1
	for i < len(buf) {
		if buf[i] != 0 {
			i++
			continue
		}
		i++
		start := i
		for i < len(buf) && buf[i] != 0 {
			i++
		}
		if i > start {
			req.Params = append(req.Params, string(buf[start:i]))
		}
	}
	return req
}

// Payload is a response value with a wire encoding. The shape is fixed
// per request code, so the decoder always knows which to expect.
type Payload interface {
	Encode() ([]byte, error)
}

// Text is an ASCII response; the datagram is the string itself.
type Text string

func (t Text) Encode() ([]byte, error) {
	if len(t) > MaxDatagram {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLong, len(t))
	}
	return []byte(t), nil
}

// Uint is a 32-bit response sent big-endian with leading zero bytes
// stripped; the zero value still occupies one byte.
type Uint uint32

func (u Uint) Encode() ([]byte, error) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(u))
	i := 0
	for i < 3 && b[i] == 0 {
		i++
	}
	return b[i:], nil
}

// Pong is the fixed single-byte reply to MeasureRTT.
type Pong struct{}

func (Pong) Encode() ([]byte, error) {
	return []byte{0}, nil
}

// DecodeUint reverses Uint.Encode: the buffer is left-padded to four
// bytes and read big-endian. Empty or overlong buffers are rejected.
func DecodeUint(buf []byte) (uint32, error) {
	if len(buf) == 0 || len(buf) > 4 {
		return 0, fmt.Errorf("%w: %d bytes for uint32", ErrMalformedResponse, len(buf))
	}
	var b [4]byte
	copy(b[4-len(buf):], buf)
	return binary.BigEndian.Uint32(b[:]), nil
}

// IsErrorResponse reports whether a received datagram signals a failed
// request: empty, or a first byte that reads as the Error code.
func IsErrorResponse(buf []byte) bool {
	return len(buf) == 0 || Code(buf[0]) == Error
}
