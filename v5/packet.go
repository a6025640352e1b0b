// Package v5 implements the MQTT 5.0 control packet codec, including
// the property system layered on top of the v3 framing.
package v5

import (
	"bytes"
	"io"

	"github.com/axmq/wire/encoding"
)

// PacketType identifies an MQTT 5.0 control packet kind, encoded in
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
	AUTH        PacketType = 15
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
		AUTH:        "AUTH",
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

// ParseHeader validates the control byte against the v5 flag table and
// decodes the PUBLISH dup/qos/retain bits.
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
		UNSUBACK, PINGREQ, PINGRESP, DISCONNECT, AUTH:
		if flags != 0 {
			return Header{}, encoding.ErrInvalidHeader
		}
	default:
		return Header{}, encoding.ErrInvalidHeader
	}
	return h, nil
}

// Packet is an MQTT 5.0 control packet.
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
		return decodeConnect(r, h)
	case CONNACK:
		return decodeConnack(r)
	case PUBLISH:
		return decodePublish(r, h)
	case PUBACK:
		return decodePuback(r, h)
	case PUBREC:
		return decodePubrec(r, h)
	case PUBREL:
		return decodePubrel(r, h)
	case PUBCOMP:
		return decodePubcomp(r, h)
	case SUBSCRIBE:
		return decodeSubscribe(r, h)
	case SUBACK:
		return decodeSuback(r, h)
	case UNSUBSCRIBE:
		return decodeUnsubscribe(r, h)
	case UNSUBACK:
		return decodeUnsuback(r, h)
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
		return decodeDisconnect(r, h)
	case AUTH:
		return decodeAuth(r, h)
	default:
		return nil, encoding.ErrInvalidHeader
	}
}

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
