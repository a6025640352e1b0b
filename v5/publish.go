package v5

import (
	"io"

	"github.com/axmq/wire/encoding"
)

// PublishProperties is the PUBLISH property list.
type PublishProperties struct {
	PayloadFormatIndicator *bool
	MessageExpiryInterval  *uint32
	TopicAlias             *uint16
	ResponseTopic          *encoding.TopicName
	CorrelationData        []byte
	UserProperties         []UserProperty
	SubscriptionIdentifier *uint32
	ContentType            *string
}

func decodePublishProperties(r io.Reader) (PublishProperties, int, error) {
	var p PublishProperties
	block, consumed, err := readPropertyBlock(r)
	if err != nil {
		return p, 0, err
	}
	err = parseBlock(block, func(id PropertyID, r io.Reader) error {
		switch id {
		case PropPayloadFormatIndicator:
			return propBool(r, id, &p.PayloadFormatIndicator)
		case PropMessageExpiryInterval:
			return propU32(r, id, &p.MessageExpiryInterval)
		case PropTopicAlias:
			return propU16(r, id, &p.TopicAlias)
		case PropResponseTopic:
			return propTopicName(r, id, &p.ResponseTopic)
		case PropCorrelationData:
			return propBytes(r, id, &p.CorrelationData)
		case PropUserProperty:
			return propUserProperty(r, &p.UserProperties)
		case PropSubscriptionIdentifier:
			return propVarInt(r, id, &p.SubscriptionIdentifier)
		case PropContentType:
			return propString(r, id, &p.ContentType)
		default:
			return errInvalidProperty(id, PUBLISH)
		}
	})
	return p, consumed, err
}

func (p *PublishProperties) encodeLen() int {
	return lenBool(p.PayloadFormatIndicator) +
		lenU32(p.MessageExpiryInterval) +
		lenU16(p.TopicAlias) +
		lenTopicName(p.ResponseTopic) +
		lenBytes(p.CorrelationData) +
		lenUserProperties(p.UserProperties) +
		lenVarInt(p.SubscriptionIdentifier) +
		lenString(p.ContentType)
}

func (p *PublishProperties) encode(buf []byte) []byte {
	return writeBlock(buf, p.encodeLen(), func(buf []byte) []byte {
		buf = putBool(buf, PropPayloadFormatIndicator, p.PayloadFormatIndicator)
		buf = putU32(buf, PropMessageExpiryInterval, p.MessageExpiryInterval)
		buf = putU16(buf, PropTopicAlias, p.TopicAlias)
		buf = putTopicName(buf, PropResponseTopic, p.ResponseTopic)
		buf = putBytes(buf, PropCorrelationData, p.CorrelationData)
		buf = putUserProperties(buf, p.UserProperties)
		buf = putVarInt(buf, PropSubscriptionIdentifier, p.SubscriptionIdentifier)
		return putString(buf, PropContentType, p.ContentType)
	})
}

// Publish carries an application message. The property block sits
// between the optional packet identifier and the payload.
type Publish struct {
	Dup        bool
	Retain     bool
	QosPid     encoding.QosPid
	TopicName  encoding.TopicName
	Properties PublishProperties
	Payload    []byte
}

func decodePublish(r io.Reader, h Header) (*Publish, error) {
	remaining := int(h.RemainingLen)

	topic, err := encoding.ReadTopicName(r)
	if err != nil {
		return nil, err
	}
	remaining -= 2 + topic.Len()
	if remaining < 0 {
		return nil, encoding.ErrInvalidRemainingLength
	}

	qosPid := encoding.QosPid0()
	if h.QoS != encoding.QoS0 {
		remaining -= 2
		if remaining < 0 {
			return nil, encoding.ErrInvalidRemainingLength
		}
		pid, err := encoding.ReadPid(r)
		if err != nil {
			return nil, err
		}
		qosPid = encoding.QosPid{QoS: h.QoS, Pid: pid}
	}

	props, consumed, err := decodePublishProperties(r)
	if err != nil {
		return nil, err
	}
	remaining -= consumed
	if remaining < 0 {
		return nil, encoding.ErrInvalidRemainingLength
	}

	payload := make([]byte, remaining)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, encoding.ErrUnexpectedEOF
	}
	if props.PayloadFormatIndicator != nil && *props.PayloadFormatIndicator {
		if encoding.ValidateUTF8(payload) != nil {
			return nil, ErrInvalidPayloadFormat
		}
	}

	return &Publish{
		Dup:        h.Dup,
		Retain:     h.Retain,
		QosPid:     qosPid,
		TopicName:  topic,
		Properties: props,
		Payload:    payload,
	}, nil
}

func (p *Publish) Type() PacketType { return PUBLISH }

func (p *Publish) controlByte() byte {
	control := byte(0x30) | byte(p.QosPid.QoS)<<1
	if p.Dup {
		control |= 0x08
	}
	if p.Retain {
		control |= 0x01
	}
	return control
}

func (p *Publish) bodyLen() int {
	n := 2 + p.TopicName.Len()
	if p.QosPid.HasPid() {
		n += 2
	}
	n += blockWireLen(p.Properties.encodeLen())
	return n + len(p.Payload)
}

func (p *Publish) Encode() (encoding.VarBytes, error) {
	return encoding.EncodeDynamic(p.controlByte(), p.bodyLen(), func(buf []byte) ([]byte, error) {
		buf = encoding.WriteString(buf, p.TopicName.String())
		if p.QosPid.HasPid() {
			buf = encoding.WriteU16(buf, p.QosPid.Pid.Value())
		}
		buf = p.Properties.encode(buf)
		return append(buf, p.Payload...), nil
	})
}

func (p *Publish) EncodeLen() (int, error) {
	return encoding.TotalLen(p.bodyLen())
}

// The four acknowledgement packets share one wire shape: packet
// identifier, then an optional reason code + property block that is
// omitted when the reason is Success and no properties are present.

func decodeAckTail(r io.Reader, h Header) (encoding.Pid, byte, AckProperties, bool, error) {
	pid, err := encoding.ReadPid(r)
	if err != nil {
		return 0, 0, AckProperties{}, false, err
	}
	if h.RemainingLen == 2 {
		return pid, 0, AckProperties{}, true, nil
	}
	b, err := encoding.ReadU8(r)
	if err != nil {
		return 0, 0, AckProperties{}, false, err
	}
	if h.RemainingLen == 3 {
		return pid, b, AckProperties{}, false, nil
	}
	props, _, err := decodeAckProperties(r, h.Type)
	if err != nil {
		return 0, 0, AckProperties{}, false, err
	}
	return pid, b, props, false, nil
}

func ackBodyLen(defaultReason bool, props *AckProperties) int {
	if defaultReason && props.isZero() {
		return 2
	}
	return 3 + blockWireLen(props.encodeLen())
}

func encodeAck(control byte, pid encoding.Pid, reason byte, defaultReason bool, props *AckProperties) (encoding.VarBytes, error) {
	if defaultReason && props.isZero() {
		v := pid.Value()
		return encoding.Fixed4([4]byte{control, 2, byte(v >> 8), byte(v)}), nil
	}
	return encoding.EncodeDynamic(control, ackBodyLen(defaultReason, props), func(buf []byte) ([]byte, error) {
		buf = encoding.WriteU16(buf, pid.Value())
		buf = encoding.WriteU8(buf, reason)
		return props.encode(buf), nil
	})
}

// Puback acknowledges a QoS 1 publish.
type Puback struct {
	Pid        encoding.Pid
	ReasonCode PubackReasonCode
	Properties AckProperties
}

func decodePuback(r io.Reader, h Header) (*Puback, error) {
	pid, b, props, truncated, err := decodeAckTail(r, h)
	if err != nil {
		return nil, err
	}
	code := PubackSuccess
	if !truncated {
		if code, err = NewPubackReasonCode(b, h.Type); err != nil {
			return nil, err
		}
	}
	return &Puback{Pid: pid, ReasonCode: code, Properties: props}, nil
}

func (p *Puback) Type() PacketType { return PUBACK }

func (p *Puback) Encode() (encoding.VarBytes, error) {
	return encodeAck(0x40, p.Pid, byte(p.ReasonCode), p.ReasonCode == PubackSuccess, &p.Properties)
}

func (p *Puback) EncodeLen() (int, error) {
	return encoding.TotalLen(ackBodyLen(p.ReasonCode == PubackSuccess, &p.Properties))
}

// Pubrec is the first acknowledgement of a QoS 2 publish.
type Pubrec struct {
	Pid        encoding.Pid
	ReasonCode PubackReasonCode
	Properties AckProperties
}

func decodePubrec(r io.Reader, h Header) (*Pubrec, error) {
	pid, b, props, truncated, err := decodeAckTail(r, h)
	if err != nil {
		return nil, err
	}
	code := PubackSuccess
	if !truncated {
		if code, err = NewPubackReasonCode(b, h.Type); err != nil {
			return nil, err
		}
	}
	return &Pubrec{Pid: pid, ReasonCode: code, Properties: props}, nil
}

func (p *Pubrec) Type() PacketType { return PUBREC }

func (p *Pubrec) Encode() (encoding.VarBytes, error) {
	return encodeAck(0x50, p.Pid, byte(p.ReasonCode), p.ReasonCode == PubackSuccess, &p.Properties)
}

func (p *Pubrec) EncodeLen() (int, error) {
	return encoding.TotalLen(ackBodyLen(p.ReasonCode == PubackSuccess, &p.Properties))
}

// Pubrel is the release step of the QoS 2 handshake. Its fixed header
// carries the mandated 0010 flag nibble.
type Pubrel struct {
	Pid        encoding.Pid
	ReasonCode PubrelReasonCode
	Properties AckProperties
}

func decodePubrel(r io.Reader, h Header) (*Pubrel, error) {
	pid, b, props, truncated, err := decodeAckTail(r, h)
	if err != nil {
		return nil, err
	}
	code := PubrelSuccess
	if !truncated {
		if code, err = NewPubrelReasonCode(b, h.Type); err != nil {
			return nil, err
		}
	}
	return &Pubrel{Pid: pid, ReasonCode: code, Properties: props}, nil
}

func (p *Pubrel) Type() PacketType { return PUBREL }

func (p *Pubrel) Encode() (encoding.VarBytes, error) {
	return encodeAck(0x62, p.Pid, byte(p.ReasonCode), p.ReasonCode == PubrelSuccess, &p.Properties)
}

func (p *Pubrel) EncodeLen() (int, error) {
	return encoding.TotalLen(ackBodyLen(p.ReasonCode == PubrelSuccess, &p.Properties))
}

// Pubcomp completes the QoS 2 handshake.
type Pubcomp struct {
	Pid        encoding.Pid
	ReasonCode PubrelReasonCode
	Properties AckProperties
}

func decodePubcomp(r io.Reader, h Header) (*Pubcomp, error) {
	pid, b, props, truncated, err := decodeAckTail(r, h)
	if err != nil {
		return nil, err
	}
	code := PubrelSuccess
	if !truncated {
		if code, err = NewPubrelReasonCode(b, h.Type); err != nil {
			return nil, err
		}
	}
	return &Pubcomp{Pid: pid, ReasonCode: code, Properties: props}, nil
}

func (p *Pubcomp) Type() PacketType { return PUBCOMP }

func (p *Pubcomp) Encode() (encoding.VarBytes, error) {
	return encodeAck(0x70, p.Pid, byte(p.ReasonCode), p.ReasonCode == PubrelSuccess, &p.Properties)
}

func (p *Pubcomp) EncodeLen() (int, error) {
	return encoding.TotalLen(ackBodyLen(p.ReasonCode == PubrelSuccess, &p.Properties))
}
