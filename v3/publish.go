package v3

import (
	"io"

	"github.com/axmq/wire/encoding"
)

// Publish carries an application message. The dup/qos/retain bits live
// in the fixed header; the variable header is the topic name and, for
// QoS 1 and 2, the packet identifier. Whatever remains of the declared
// length is the payload.
type Publish struct {
	Dup       bool
	Retain    bool
	QosPid    encoding.QosPid
	TopicName encoding.TopicName
	Payload   []byte
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

	payload := make([]byte, remaining)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, encoding.ErrUnexpectedEOF
	}

	return &Publish{
		Dup:       h.Dup,
		Retain:    h.Retain,
		QosPid:    qosPid,
		TopicName: topic,
		Payload:   payload,
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
	n := 2 + p.TopicName.Len() + len(p.Payload)
	if p.QosPid.HasPid() {
		n += 2
	}
	return n
}

func (p *Publish) Encode() (encoding.VarBytes, error) {
	return encoding.EncodeDynamic(p.controlByte(), p.bodyLen(), func(buf []byte) ([]byte, error) {
		buf = encoding.WriteString(buf, p.TopicName.String())
		if p.QosPid.HasPid() {
			buf = encoding.WriteU16(buf, p.QosPid.Pid.Value())
		}
		return append(buf, p.Payload...), nil
	})
}

func (p *Publish) EncodeLen() (int, error) {
	return encoding.TotalLen(p.bodyLen())
}
