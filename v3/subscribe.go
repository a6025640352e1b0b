package v3

import (
	"fmt"
	"io"

	"github.com/axmq/wire/encoding"
)

// Subscribe requests one or more subscriptions: a packet identifier
// followed by (topic filter, requested QoS) pairs.
type Subscribe struct {
	Pid    encoding.Pid
	Topics []SubscribeTopic
}

// SubscribeTopic is one requested subscription.
type SubscribeTopic struct {
	TopicFilter encoding.TopicFilter
	QoS         encoding.QoS
}

func decodeSubscribe(r io.Reader, remainingLen uint32) (*Subscribe, error) {
	remaining := int(remainingLen)
	pid, err := encoding.ReadPid(r)
	if err != nil {
		return nil, err
	}
	remaining -= 2
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
		qos, err := encoding.NewQoS(b)
		if err != nil {
			return nil, err
		}
		remaining -= 3 + filter.Len()
		if remaining < 0 {
			return nil, encoding.ErrInvalidRemainingLength
		}
		topics = append(topics, SubscribeTopic{TopicFilter: filter, QoS: qos})
	}
	return &Subscribe{Pid: pid, Topics: topics}, nil
}

func (p *Subscribe) Type() PacketType { return SUBSCRIBE }

func (p *Subscribe) bodyLen() int {
	n := 2
	for _, t := range p.Topics {
		n += 3 + t.TopicFilter.Len()
	}
	return n
}

func (p *Subscribe) Encode() (encoding.VarBytes, error) {
	return encoding.EncodeDynamic(0x82, p.bodyLen(), func(buf []byte) ([]byte, error) {
		buf = encoding.WriteU16(buf, p.Pid.Value())
		for _, t := range p.Topics {
			buf = encoding.WriteString(buf, t.TopicFilter.String())
			buf = encoding.WriteU8(buf, byte(t.QoS))
		}
		return buf, nil
	})
}

func (p *Subscribe) EncodeLen() (int, error) {
	return encoding.TotalLen(p.bodyLen())
}

// SubscribeReturnCode is the per-filter status in a Suback: the
// granted maximum QoS, or failure (0x80).
type SubscribeReturnCode byte

const (
	MaxLevel0 SubscribeReturnCode = 0
	MaxLevel1 SubscribeReturnCode = 1
	MaxLevel2 SubscribeReturnCode = 2
	Failure   SubscribeReturnCode = 0x80
)

// NewSubscribeReturnCode validates a return code byte. Anything other
// than 0, 1, 2 and 0x80 is ErrInvalidQoS.
func NewSubscribeReturnCode(b byte) (SubscribeReturnCode, error) {
	switch b {
	case 0, 1, 2, 0x80:
		return SubscribeReturnCode(b), nil
	default:
		return 0, fmt.Errorf("%w: %d", encoding.ErrInvalidQoS, b)
	}
}

func (c SubscribeReturnCode) String() string {
	switch c {
	case MaxLevel0:
		return "MaxLevel0"
	case MaxLevel1:
		return "MaxLevel1"
	case MaxLevel2:
		return "MaxLevel2"
	case Failure:
		return "Failure"
	default:
		return "UNKNOWN"
	}
}

// Suback answers a Subscribe with one return code per filter, in
// order.
type Suback struct {
	Pid    encoding.Pid
	Topics []SubscribeReturnCode
}

func decodeSuback(r io.Reader, remainingLen uint32) (*Suback, error) {
	remaining := int(remainingLen)
	pid, err := encoding.ReadPid(r)
	if err != nil {
		return nil, err
	}
	remaining -= 2
	if remaining < 0 {
		return nil, encoding.ErrInvalidRemainingLength
	}

	var topics []SubscribeReturnCode
	for remaining > 0 {
		b, err := encoding.ReadU8(r)
		if err != nil {
			return nil, err
		}
		code, err := NewSubscribeReturnCode(b)
		if err != nil {
			return nil, err
		}
		topics = append(topics, code)
		remaining--
	}
	return &Suback{Pid: pid, Topics: topics}, nil
}

func (p *Suback) Type() PacketType { return SUBACK }

func (p *Suback) bodyLen() int {
	return 2 + len(p.Topics)
}

func (p *Suback) Encode() (encoding.VarBytes, error) {
	return encoding.EncodeDynamic(0x90, p.bodyLen(), func(buf []byte) ([]byte, error) {
		buf = encoding.WriteU16(buf, p.Pid.Value())
		for _, code := range p.Topics {
			buf = encoding.WriteU8(buf, byte(code))
		}
		return buf, nil
	})
}

func (p *Suback) EncodeLen() (int, error) {
	return encoding.TotalLen(p.bodyLen())
}

// Unsubscribe removes one or more subscriptions.
type Unsubscribe struct {
	Pid    encoding.Pid
	Topics []encoding.TopicFilter
}

func decodeUnsubscribe(r io.Reader, remainingLen uint32) (*Unsubscribe, error) {
	remaining := int(remainingLen)
	pid, err := encoding.ReadPid(r)
	if err != nil {
		return nil, err
	}
	remaining -= 2
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
	return &Unsubscribe{Pid: pid, Topics: topics}, nil
}

func (p *Unsubscribe) Type() PacketType { return UNSUBSCRIBE }

func (p *Unsubscribe) bodyLen() int {
	n := 2
	for _, t := range p.Topics {
		n += 2 + t.Len()
	}
	return n
}

func (p *Unsubscribe) Encode() (encoding.VarBytes, error) {
	return encoding.EncodeDynamic(0xA2, p.bodyLen(), func(buf []byte) ([]byte, error) {
		buf = encoding.WriteU16(buf, p.Pid.Value())
		for _, t := range p.Topics {
			buf = encoding.WriteString(buf, t.String())
		}
		return buf, nil
	})
}

func (p *Unsubscribe) EncodeLen() (int, error) {
	return encoding.TotalLen(p.bodyLen())
}
