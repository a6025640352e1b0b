// Package poll implements the resumable packet reader shared by the v3
// and v5 codecs. The reader is a two-state machine (header, body) that
// is driven against a byte source and yields one decoded packet per
// completion. A transient source error (a read deadline, a would-block
// condition) leaves the accumulated state intact so the same call can
// be retried; protocol errors and end-of-stream abandon the packet in
// progress.
package poll

import (
	"errors"
	"io"

	"github.com/axmq/wire/buffer"
	"github.com/axmq/wire/encoding"
)

// Header is the per-version fixed header handed back by a ParseHeader
// function. P is the version's packet type.
type Header[P any] interface {
	// RemainingLen is the declared body length in bytes.
	RemainingLen() uint32
	// EmptyPacket returns the packet for kinds that carry no body,
	// and false for kinds that require one.
	EmptyPacket() (P, bool)
	// DecodeBody runs the synchronous body decoder over a fully-read
	// body buffer. It must consume the buffer exactly.
	DecodeBody(body []byte) (P, error)
}

// ParseHeader validates a control byte and remaining length.
type ParseHeader[H any] func(control byte, remainingLen uint32) (H, error)

type state uint8

const (
	stateHeader state = iota
	stateBody
)

// Reader drives reads against a byte source until one packet is
// complete. It must be driven by one goroutine at a time; there is no
// internal locking.
type Reader[H Header[P], P any] struct {
	parse ParseHeader[H]
	pool  buffer.Provider

	st         state
	control    byte
	hasControl bool
	vbiIdx     int
	vbiAcc     uint32

	header H
	total  int
	filled int
	chunk  int
	buf    []byte
}

// NewReader builds a reader that parses headers with parse and takes
// body buffers from pool.
func NewReader[H Header[P], P any](parse ParseHeader[H], pool buffer.Provider) *Reader[H, P] {
	return &Reader[H, P]{parse: parse, pool: pool}
}

// Reset discards any packet in progress, returning the body buffer to
// the pool.
func (r *Reader[H, P]) Reset() {
	if r.buf != nil {
		r.pool.Release(r.buf)
	}
	var zero H
	r.st = stateHeader
	r.hasControl = false
	r.vbiIdx = 0
	r.vbiAcc = 0
	r.header = zero
	r.total = 0
	r.filled = 0
	r.chunk = 0
	r.buf = nil
}

// ReadPacket reads from src until a packet is complete and returns the
// packet together with the total number of bytes it occupied on the
// wire. If src returns a transient error the state is retained and
// ReadPacket may be called again to resume; end-of-stream and protocol
// errors abandon the packet in progress and reset the reader.
func (r *Reader[H, P]) ReadPacket(src io.Reader) (P, int, error) {
	var zero P
	for {
		switch r.st {
		case stateHeader:
			done, err := r.fillHeader(src)
			if err != nil {
				return zero, 0, err
			}
			if !done {
				continue
			}

			header, err := r.parse(r.control, r.vbiAcc)
			if err != nil {
				r.Reset()
				return zero, 0, err
			}
			if pkt, ok := header.EmptyPacket(); ok {
				if header.RemainingLen() != 0 {
					r.Reset()
					return zero, 0, encoding.ErrInvalidRemainingLength
				}
				r.Reset()
				return pkt, 2, nil
			}
			remaining := int(header.RemainingLen())
			if remaining == 0 {
				r.Reset()
				return zero, 0, encoding.ErrInvalidRemainingLength
			}
			r.header = header
			r.total = 1 + (r.vbiIdx + 1) + remaining
			r.buf = r.pool.Acquire(remaining)
			r.chunk = r.pool.ReadStrategy(remaining).Chunk
			r.filled = 0
			r.st = stateBody

		case stateBody:
			end := len(r.buf)
			if r.chunk > 0 && r.filled+r.chunk < end {
				end = r.filled + r.chunk
			}
			n, err := src.Read(r.buf[r.filled:end])
			r.filled += n
			if r.filled < len(r.buf) {
				if err == nil {
					continue
				}
				if errors.Is(err, io.EOF) {
					r.Reset()
					return zero, 0, &encoding.IOError{Err: io.ErrUnexpectedEOF}
				}
				// transient; resume later from the same state
				return zero, 0, &encoding.IOError{Err: err}
			}

			pkt, err := r.header.DecodeBody(r.buf)
			total := r.total
			r.Reset()
			if err != nil {
				if encoding.IsEOF(err) {
					// the body's fields run past the declared remaining length
					return zero, 0, encoding.ErrInvalidRemainingLength
				}
				return zero, 0, err
			}
			return pkt, total, nil
		}
	}
}

// fillHeader consumes header bytes one at a time. It returns true once
// the control byte and the remaining-length field are complete.
func (r *Reader[H, P]) fillHeader(src io.Reader) (bool, error) {
	var b [1]byte
	for {
		n, err := src.Read(b[:])
		if n == 0 {
			if err == nil {
				continue
			}
			if errors.Is(err, io.EOF) {
				r.Reset()
				return false, &encoding.IOError{Err: io.ErrUnexpectedEOF}
			}
			return false, &encoding.IOError{Err: err}
		}

		byteVal := b[0]
		if !r.hasControl {
			r.control = byteVal
			r.hasControl = true
			continue
		}
		r.vbiAcc |= (uint32(byteVal) & 0x7F) << (7 * r.vbiIdx)
		if byteVal&0x80 == 0 {
			return true, nil
		}
		if r.vbiIdx < 3 {
			r.vbiIdx++
			continue
		}
		r.Reset()
		return false, encoding.ErrInvalidVarByteInt
	}
}
