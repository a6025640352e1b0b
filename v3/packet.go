// Package v3 implements the MQTT 3.1 / 3.1.1 control packet codec.
package v3

import (
	"bytes"
	"io"

	"github.com/axmq/wire/encoding"
)

// PacketType identifies an MQTT v3.x control packet kind, encoded in
// the high nibble of the control byte.
type PacketType byte

const (
	CONNECT     PacketType = 1
	CONNACK     PacketType = 2
	PUBLISH     PacketType = 3
	PUBACK      PacketType = 4
	PUBREC      PacketType = 5
	PUBREL      PacketType = 6
	PUBCOMP     PacketType = 7
	SUBSCRIBE   PacketType = 8
	SUBACK      PacketType = 9
	UNSUBSCRIBE PacketType = 10
	UNSUBACK    PacketType = 11
	PINGREQ     PacketType = 12
	PINGRESP    PacketType = 13
	DISCONNECT  PacketType = 14
)

// String returns the packet type name.
func (t PacketType) String() string {
	names := [...]string{
		CONNECT:     "CONNECT",
		CONNACK:     "CONNACK",
		PUBLISH:     "PUBLISH",
		PUBACK:      "PUBACK",
		PUBREC:      "PUBREC",
		PUBREL:      "PUBREL",
		PUBCOMP:     "PUBCOMP",
		SUBSCRIBE:   "SUBSCRIBE",
		SUBACK:      "SUBACK",
		UNSUBSCRIBE: "UNSUBSCRIBE",
		UNSUBACK:    "UNSUBACK",
		PINGREQ:     "PINGREQ",
		PINGRESP:    "PINGRESP",
		DISCONNECT:  "DISCONNECT",
	}
	if int(t) >= 1 && int(t) < len(names) {
		return names[t]
	}
	return "UNKNOWN"
}

// Header is the decoded fixed header.
type Header struct {
	Type         PacketType
	Dup          bool
	QoS          encoding.QoS
	Retain       bool
	RemainingLen uint32
}

// ParseHeader validates the control byte against the v3 flag table and
// decodes the PUBLISH dup/qos/retain bits. The low nibble of every
// non-PUBLISH kind is mandated: 0010 for PUBREL, SUBSCRIBE and
// UNSUBSCRIBE, 0000 for everything else.
func ParseHeader(control byte, remainingLen uint32) (Header, error) {
	h := Header{Type: PacketType(control >> 4), RemainingLen: remainingLen}
	flags := control & 0x0F

	switch h.Type {
	case PUBLISH:
		qos, err := encoding.NewQoS((flags & 0b0110) >> 1)
		if err != nil {
			return Header{}, err
		}
		h.Dup = flags&0b1000 != 0
		h.QoS = qos
		h.Retain = flags&0b0001 != 0
	case PUBREL, SUBSCRIBE, UNSUBSCRIBE:
		if flags != 0b0010 {
			return Header{}, encoding.ErrInvalidHeader
		}
	case CONNECT, CONNACK, PUBACK, PUBREC, PUBCOMP, SUBACK,
		UNSUBACK, PINGREQ, PINGRESP, DISCONNECT:
		if flags != 0 {
			return Header{}, encoding.ErrInvalidHeader
		}
	default:
		return Header{}, encoding.ErrInvalidHeader
	}
	return h, nil
}

// Packet is an MQTT v3.x control packet.
type Packet interface {
	// Type returns the packet kind.
	Type() PacketType
	// Encode produces the canonical wire form.
	Encode() (encoding.VarBytes, error)
	// EncodeLen returns the total encoded size in bytes.
	EncodeLen() (int, error)
}

// EncodeTo writes the canonical wire form of p to w.
func EncodeTo(p Packet, w io.Writer) error {
	vb, err := p.Encode()
	if err != nil {
		return err
	}
	if _, err := w.Write(vb.Bytes()); err != nil {
		return &encoding.IOError{Err: err}
	}
	return nil
}

// Decode decodes one packet from bytes. It returns (nil, nil) when the
// slice does not yet contain a complete packet; every other defect is
// a hard error.
func Decode(data []byte) (Packet, error) {
	pkt, err := decodePacket(bytes.NewReader(data))
	if err != nil {
		if encoding.IsEOF(err) {
			return nil, nil
		}
		return nil, err
	}
	return pkt, nil
}

func decodePacket(r io.Reader) (Packet, error) {
	control, remaining, _, err := encoding.ReadRawHeader(r)
	if err != nil {
		return nil, err
	}
	h, err := ParseHeader(control, remaining)
	if err != nil {
		return nil, err
	}
	return decodeBody(r, h)
}

func decodeBody(r io.Reader, h Header) (Packet, error) {
	switch h.Type {
	case CONNECT:
		return decodeConnect(r)
	case CONNACK:
		return decodeConnack(r)
	case PUBLISH:
		return decodePublish(r, h)
	case PUBACK:
		pid, err := encoding.ReadPid(r)
		if err != nil {
			return nil, err
		}
		return &Puback{Pid: pid}, nil
	case PUBREC:
		pid, err := encoding.ReadPid(r)
		if err != nil {
			return nil, err
		}
		return &Pubrec{Pid: pid}, nil
	case PUBREL:
		pid, err := encoding.ReadPid(r)
		if err != nil {
			return nil, err
		}
		return &Pubrel{Pid: pid}, nil
	case PUBCOMP:
		pid, err := encoding.ReadPid(r)
		if err != nil {
			return nil, err
		}
		return &Pubcomp{Pid: pid}, nil
	case SUBSCRIBE:
		return decodeSubscribe(r, h.RemainingLen)
	case SUBACK:
		return decodeSuback(r, h.RemainingLen)
	case UNSUBSCRIBE:
		return decodeUnsubscribe(r, h.RemainingLen)
	case UNSUBACK:
		pid, err := encoding.ReadPid(r)
		if err != nil {
			return nil, err
		}
		return &Unsuback{Pid: pid}, nil
	case PINGREQ:
		if h.RemainingLen != 0 {
			return nil, encoding.ErrInvalidRemainingLength
		}
		return &Pingreq{}, nil
	case PINGRESP:
		if h.RemainingLen != 0 {
			return nil, encoding.ErrInvalidRemainingLength
		}
		return &Pingresp{}, nil
	case DISCONNECT:
		if h.RemainingLen != 0 {
			return nil, encoding.ErrInvalidRemainingLength
		}
		return &Disconnect{}, nil
	default:
		return nil, encoding.ErrInvalidHeader
	}
}

// Puback acknowledges a QoS 1 publish.
type Puback struct {
	Pid encoding.Pid
}

func (p *Puback) Type() PacketType { return PUBACK }

func (p *Puback) Encode() (encoding.VarBytes, error) {
	return encoding.EncodeWithPid(0x40, p.Pid), nil
}

func (p *Puback) EncodeLen() (int, error) { return 4, nil }

// Pubrec is the first acknowledgement of a QoS 2 publish.
type Pubrec struct {
	Pid encoding.Pid
}

func (p *Pubrec) Type() PacketType { return PUBREC }

func (p *Pubrec) Encode() (encoding.VarBytes, error) {
	return encoding.EncodeWithPid(0x50, p.Pid), nil
}

func (p *Pubrec) EncodeLen() (int, error) { return 4, nil }

// Pubrel is the release step of the QoS 2 handshake. Its fixed header
// carries the mandated 0010 flag nibble.
type Pubrel struct {
	Pid encoding.Pid
}

func (p *Pubrel) Type() PacketType { return PUBREL }

func (p *Pubrel) Encode() (encoding.VarBytes, error) {
	return encoding.EncodeWithPid(0x62, p.Pid), nil
}

func (p *Pubrel) EncodeLen() (int, error) { return 4, nil }

// Pubcomp completes the QoS 2 handshake.
type Pubcomp struct {
	Pid encoding.Pid
}

func (p *Pubcomp) Type() PacketType { return PUBCOMP }

func (p *Pubcomp) Encode() (encoding.VarBytes, error) {
	return encoding.EncodeWithPid(0x70, p.Pid), nil
}

func (p *Pubcomp) EncodeLen() (int, error) { return 4, nil }

// Unsuback acknowledges an UNSUBSCRIBE.
type Unsuback struct {
	Pid encoding.Pid
}

func (p *Unsuback) Type() PacketType { return UNSUBACK }

func (p *Unsuback) Encode() (encoding.VarBytes, error) {
	return encoding.EncodeWithPid(0xB0, p.Pid), nil
}

func (p *Unsuback) EncodeLen() (int, error) { return 4, nil }

// Pingreq is the keepalive probe.
type Pingreq struct{}

func (p *Pingreq) Type() PacketType { return PINGREQ }

func (p *Pingreq) Encode() (encoding.VarBytes, error) {
	return encoding.Fixed2(0xC0, 0), nil
}

func (p *Pingreq) EncodeLen() (int, error) { return 2, nil }

// Pingresp answers a Pingreq.
type Pingresp struct{}

func (p *Pingresp) Type() PacketType { return PINGRESP }

func (p *Pingresp) Encode() (encoding.VarBytes, error) {
	return encoding.Fixed2(0xD0, 0), nil
}

func (p *Pingresp) EncodeLen() (int, error) { return 2, nil }

// Disconnect announces an orderly shutdown. The v3 form has no body.
type Disconnect struct{}

func (p *Disconnect) Type() PacketType { return DISCONNECT }

func (p *Disconnect) Encode() (encoding.VarBytes, error) {
	return encoding.Fixed2(0xE0, 0), nil
}

func (p *Disconnect) EncodeLen() (int, error) { return 2, nil }
