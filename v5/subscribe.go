package v5

import (
	"fmt"
	"io"

	"github.com/axmq/wire/encoding"
)

// RetainHandling controls how retained messages are sent when a
// subscription is established.
type RetainHandling byte

const (
	SendAtSubscribe           RetainHandling = 0
	SendAtSubscribeIfNotExist RetainHandling = 1
	DoNotSend                 RetainHandling = 2
)

// SubscriptionOptions is the options byte following each topic filter
// in a SUBSCRIBE packet.
type SubscriptionOptions struct {
	MaxQoS            encoding.QoS
	NoLocal           bool
	RetainAsPublished bool
	RetainHandling    RetainHandling
}

// NewSubscriptionOptions decodes an options byte. Reserved bits 6-7
// must be zero; the QoS and retain-handling fields must be 0, 1 or 2.
func NewSubscriptionOptions(b byte) (SubscriptionOptions, error) {
	if b&0b11000000 != 0 {
		return SubscriptionOptions{}, fmt.Errorf("%w: %#02x", ErrInvalidSubscriptionOption, b)
	}
	qos := b & 0b11
	if qos > 2 {
		return SubscriptionOptions{}, fmt.Errorf("%w: %#02x", ErrInvalidSubscriptionOption, b)
	}
	rh := (b & 0b110000) >> 4
	if rh > 2 {
		return SubscriptionOptions{}, fmt.Errorf("%w: %#02x", ErrInvalidSubscriptionOption, b)
	}
	return SubscriptionOptions{
		MaxQoS:            encoding.QoS(qos),
		NoLocal:           b&0b100 != 0,
		RetainAsPublished: b&0b1000 != 0,
		RetainHandling:    RetainHandling(rh),
	}, nil
}

// Byte returns the wire form of the options.
func (o SubscriptionOptions) Byte() byte {
	b := byte(o.MaxQoS)
	if o.NoLocal {
		b |= 0b100
	}
	if o.RetainAsPublished {
		b |= 0b1000
	}
	return b | byte(o.RetainHandling)<<4
}

// SubscribeProperties is the SUBSCRIBE property list.
type SubscribeProperties struct {
	SubscriptionIdentifier *uint32
	UserProperties         []UserProperty
}

func decodeSubscribeProperties(r io.Reader) (SubscribeProperties, int, error) {
	var p SubscribeProperties
	block, consumed, err := readPropertyBlock(r)
	if err != nil {
		return p, 0, err
	}
	err = parseBlock(block, func(id PropertyID, r io.Reader) error {
		switch id {
		case PropSubscriptionIdentifier:
			return propVarInt(r, id, &p.SubscriptionIdentifier)
		case PropUserProperty:
			return propUserProperty(r, &p.UserProperties)
		default:
			return errInvalidProperty(id, SUBSCRIBE)
		}
	})
	return p, consumed, err
}

func (p *SubscribeProperties) encodeLen() int {
	return lenVarInt(p.SubscriptionIdentifier) + lenUserProperties(p.UserProperties)
}

func (p *SubscribeProperties) encode(buf []byte) []byte {
	return writeBlock(buf, p.encodeLen(), func(buf []byte) []byte {
		buf = putVarInt(buf, PropSubscriptionIdentifier, p.SubscriptionIdentifier)
		return putUserProperties(buf, p.UserProperties)
	})
}

// SubscribeTopic is one requested subscription.
type SubscribeTopic struct {
	TopicFilter encoding.TopicFilter
	Options     SubscriptionOptions
}

// Subscribe requests one or more subscriptions.
type Subscribe struct {
	Pid        encoding.Pid
	Properties SubscribeProperties
	Topics     []SubscribeTopic
}

func decodeSubscribe(r io.Reader, h Header) (*Subscribe, error) {
	remaining := int(h.RemainingLen)
	pid, err := encoding.ReadPid(r)
	if err != nil {
		return nil, err
	}
	props, consumed, err := decodeSubscribeProperties(r)
	if err != nil {
		return nil, err
	}
	remaining -= 2 + consumed
	if remaining < 0 {
		return nil, encoding.ErrInvalidRemainingLength
	}
	if remaining == 0 {
		return nil, encoding.ErrEmptySubscription
	}

	var topics []SubscribeTopic
	for remaining > 0 {
		filter, err := encoding.ReadTopicFilter(r)
		if err != nil {
			return nil, err
		}
		b, err := encoding.ReadU8(r)
		if err != nil {
			return nil, err
		}
		options, err := NewSubscriptionOptions(b)
		if err != nil {
			return nil, err
		}
		remaining -= 3 + filter.Len()
		if remaining < 0 {
			return nil, encoding.ErrInvalidRemainingLength
		}
		topics = append(topics, SubscribeTopic{TopicFilter: filter, Options: options})
	}
	return &Subscribe{Pid: pid, Properties: props, Topics: topics}, nil
}

func (p *Subscribe) Type() PacketType { return SUBSCRIBE }

func (p *Subscribe) bodyLen() int {
	n := 2 + blockWireLen(p.Properties.encodeLen())
	for _, t := range p.Topics {
		n += 3 + t.TopicFilter.Len()
	}
	return n
}

func (p *Subscribe) Encode() (encoding.VarBytes, error) {
	return encoding.EncodeDynamic(0x82, p.bodyLen(), func(buf []byte) ([]byte, error) {
		buf = encoding.WriteU16(buf, p.Pid.Value())
		buf = p.Properties.encode(buf)
		for _, t := range p.Topics {
			buf = encoding.WriteString(buf, t.TopicFilter.String())
			buf = encoding.WriteU8(buf, t.Options.Byte())
		}
		return buf, nil
	})
}

func (p *Subscribe) EncodeLen() (int, error) {
	return encoding.TotalLen(p.bodyLen())
}

// Suback answers a Subscribe with one reason code per filter, in
// order.
type Suback struct {
	Pid        encoding.Pid
	Properties AckProperties
	Topics     []SubscribeReasonCode
}

func decodeSuback(r io.Reader, h Header) (*Suback, error) {
	remaining := int(h.RemainingLen)
	pid, err := encoding.ReadPid(r)
	if err != nil {
		return nil, err
	}
	props, consumed, err := decodeAckProperties(r, h.Type)
	if err != nil {
		return nil, err
	}
	remaining -= 2 + consumed
	if remaining < 0 {
		return nil, encoding.ErrInvalidRemainingLength
	}

	var topics []SubscribeReasonCode
	for remaining > 0 {
		b, err := encoding.ReadU8(r)
		if err != nil {
			return nil, err
		}
		code, err := NewSubscribeReasonCode(b)
		if err != nil {
			return nil, err
		}
		topics = append(topics, code)
		remaining--
	}
	return &Suback{Pid: pid, Properties: props, Topics: topics}, nil
}

func (p *Suback) Type() PacketType { return SUBACK }

func (p *Suback) bodyLen() int {
	return 2 + blockWireLen(p.Properties.encodeLen()) + len(p.Topics)
}

func (p *Suback) Encode() (encoding.VarBytes, error) {
	return encoding.EncodeDynamic(0x90, p.bodyLen(), func(buf []byte) ([]byte, error) {
		buf = encoding.WriteU16(buf, p.Pid.Value())
		buf = p.Properties.encode(buf)
		for _, code := range p.Topics {
			buf = encoding.WriteU8(buf, byte(code))
		}
		return buf, nil
	})
}

func (p *Suback) EncodeLen() (int, error) {
	return encoding.TotalLen(p.bodyLen())
}

// Unsubscribe removes one or more subscriptions. Its property block
// admits only UserProperty.
type Unsubscribe struct {
	Pid            encoding.Pid
	UserProperties []UserProperty
	Topics         []encoding.TopicFilter
}

func decodeUnsubscribe(r io.Reader, h Header) (*Unsubscribe, error) {
	remaining := int(h.RemainingLen)
	pid, err := encoding.ReadPid(r)
	if err != nil {
		return nil, err
	}

	var userProps []UserProperty
	block, consumed, err := readPropertyBlock(r)
	if err != nil {
		return nil, err
	}
	err = parseBlock(block, func(id PropertyID, r io.Reader) error {
		if id != PropUserProperty {
			return errInvalidProperty(id, UNSUBSCRIBE)
		}
		return propUserProperty(r, &userProps)
	})
	if err != nil {
		return nil, err
	}

	remaining -= 2 + consumed
	if remaining < 0 {
		return nil, encoding.ErrInvalidRemainingLength
	}
	if remaining == 0 {
		return nil, encoding.ErrEmptySubscription
	}

	var topics []encoding.TopicFilter
	for remaining > 0 {
		filter, err := encoding.ReadTopicFilter(r)
		if err != nil {
			return nil, err
		}
		remaining -= 2 + filter.Len()
		if remaining < 0 {
			return nil, encoding.ErrInvalidRemainingLength
		}
		topics = append(topics, filter)
	}
	return &Unsubscribe{Pid: pid, UserProperties: userProps, Topics: topics}, nil
}

func (p *Unsubscribe) Type() PacketType { return UNSUBSCRIBE }

func (p *Unsubscribe) bodyLen() int {
	n := 2 + blockWireLen(lenUserProperties(p.UserProperties))
	for _, t := range p.Topics {
		n += 2 + t.Len()
	}
	return n
}

func (p *Unsubscribe) Encode() (encoding.VarBytes, error) {
	return encoding.EncodeDynamic(0xA2, p.bodyLen(), func(buf []byte) ([]byte, error) {
		buf = encoding.WriteU16(buf, p.Pid.Value())
		buf = writeBlock(buf, lenUserProperties(p.UserProperties), func(buf []byte) []byte {
			return putUserProperties(buf, p.UserProperties)
		})
		for _, t := range p.Topics {
			buf = encoding.WriteString(buf, t.String())
		}
		return buf, nil
	})
}

func (p *Unsubscribe) EncodeLen() (int, error) {
	return encoding.TotalLen(p.bodyLen())
}

// Unsuback answers an Unsubscribe with one reason code per filter.
type Unsuback struct {
	Pid        encoding.Pid
	Properties AckProperties
	Topics     []UnsubscribeReasonCode
}

func decodeUnsuback(r io.Reader, h Header) (*Unsuback, error) {
	remaining := int(h.RemainingLen)
	pid, err := encoding.ReadPid(r)
	if err != nil {
		return nil, err
	}
	props, consumed, err := decodeAckProperties(r, h.Type)
	if err != nil {
		return nil, err
	}
	remaining -= 2 + consumed
	if remaining < 0 {
		return nil, encoding.ErrInvalidRemainingLength
	}

	var topics []UnsubscribeReasonCode
	for remaining > 0 {
		b, err := encoding.ReadU8(r)
		if err != nil {
			return nil, err
		}
		code, err := NewUnsubscribeReasonCode(b)
		if err != nil {
			return nil, err
		}
		topics = append(topics, code)
		remaining--
	}
	return &Unsuback{Pid: pid, Properties: props, Topics: topics}, nil
}

func (p *Unsuback) Type() PacketType { return UNSUBACK }

func (p *Unsuback) bodyLen() int {
	return 2 + blockWireLen(p.Properties.encodeLen()) + len(p.Topics)
}

func (p *Unsuback) Encode() (encoding.VarBytes, error) {
	return encoding.EncodeDynamic(0xB0, p.bodyLen(), func(buf []byte) ([]byte, error) {
		buf = encoding.WriteU16(buf, p.Pid.Value())
		buf = p.Properties.encode(buf)
		for _, code := range p.Topics {
			buf = encoding.WriteU8(buf, byte(code))
		}
		return buf, nil
	})
}

func (p *Unsuback) EncodeLen() (int, error) {
	return encoding.TotalLen(p.bodyLen())
}
