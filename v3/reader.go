package v3

import (
	"bytes"

	"github.com/axmq/wire/buffer"
	"github.com/axmq/wire/encoding"
	"github.com/axmq/wire/poll"
)

// pollHeader adapts Header to the generic reader.
type pollHeader struct {
	h Header
}

func (p pollHeader) RemainingLen() uint32 {
	return p.h.RemainingLen
}

func (p pollHeader) EmptyPacket() (Packet, bool) {
	switch p.h.Type {
	case PINGREQ:
		return &Pingreq{}, true
	case PINGRESP:
		return &Pingresp{}, true
	case DISCONNECT:
		return &Disconnect{}, true
	default:
		return nil, false
	}
}

func (p pollHeader) DecodeBody(body []byte) (Packet, error) {
	br := bytes.NewReader(body)
	pkt, err := decodeBody(br, p.h)
	if err != nil {
		return nil, err
	}
	if br.Len() > 0 {
		return nil, encoding.ErrInvalidRemainingLength
	}
	return pkt, nil
}

// PacketReader is the resumable v3 packet reader.
type PacketReader = poll.Reader[pollHeader, Packet]

// NewPacketReader builds a reader that takes body buffers from pool.
func NewPacketReader(pool buffer.Provider) *PacketReader {
	return poll.NewReader[pollHeader, Packet](func(control byte, remainingLen uint32) (pollHeader, error) {
		h, err := ParseHeader(control, remainingLen)
		if err != nil {
			return pollHeader{}, err
		}
		return pollHeader{h: h}, nil
	}, pool)
}
