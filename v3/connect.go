package v3

import (
	"fmt"
	"io"

	"github.com/axmq/wire/encoding"
)

// Connect opens a session. The body is the protocol field, the flag
// byte, the keepalive and the client identifier, followed by the
// optional will, username and password fields the flags announce.
type Connect struct {
	Protocol     encoding.Protocol
	CleanSession bool
	KeepAlive    uint16
	ClientID     string
	LastWill     *LastWill
	Username     *string
	Password     []byte
}

// LastWill is the message the server publishes when the client
// disconnects ungracefully.
type LastWill struct {
	QoS       encoding.QoS
	Retain    bool
	TopicName encoding.TopicName
	Message   []byte
}

const (
	connectFlagCleanSession = 0x02
	connectFlagWill         = 0x04
	connectFlagWillQoS      = 0x18
	connectFlagWillRetain   = 0x20
	connectFlagPassword     = 0x40
	connectFlagUsername     = 0x80
)

func decodeConnect(r io.Reader) (*Connect, error) {
	protocol, err := encoding.ReadProtocol(r)
	if err != nil {
		return nil, err
	}
	if protocol == encoding.ProtocolV50 {
		return nil, fmt.Errorf("%w: %s", encoding.ErrUnexpectedProtocol, protocol)
	}

	flags, err := encoding.ReadU8(r)
	if err != nil {
		return nil, err
	}
	if flags&0x01 != 0 {
		return nil, fmt.Errorf("%w: %#02x", encoding.ErrInvalidConnectFlags, flags)
	}

	keepAlive, err := encoding.ReadU16(r)
	if err != nil {
		return nil, err
	}
	clientID, err := encoding.ReadString(r)
	if err != nil {
		return nil, err
	}

	var lastWill *LastWill
	if flags&connectFlagWill != 0 {
		topic, err := encoding.ReadTopicName(r)
		if err != nil {
			return nil, err
		}
		message, err := encoding.ReadBytes(r)
		if err != nil {
			return nil, err
		}
		qos, err := encoding.NewQoS((flags & connectFlagWillQoS) >> 3)
		if err != nil {
			return nil, err
		}
		lastWill = &LastWill{
			QoS:       qos,
			Retain:    flags&connectFlagWillRetain != 0,
			TopicName: topic,
			Message:   message,
		}
	} else if flags&(connectFlagWillQoS|connectFlagWillRetain) != 0 {
		return nil, fmt.Errorf("%w: %#02x", encoding.ErrInvalidConnectFlags, flags)
	}

	var username *string
	if flags&connectFlagUsername != 0 {
		s, err := encoding.ReadString(r)
		if err != nil {
			return nil, err
		}
		username = &s
	}
	var password []byte
	if flags&connectFlagPassword != 0 {
		password, err = encoding.ReadBytes(r)
		if err != nil {
			return nil, err
		}
	}

	return &Connect{
		Protocol:     protocol,
		CleanSession: flags&connectFlagCleanSession != 0,
		KeepAlive:    keepAlive,
		ClientID:     clientID,
		LastWill:     lastWill,
		Username:     username,
		Password:     password,
	}, nil
}

func (p *Connect) flags() byte {
	var flags byte
	if p.CleanSession {
		flags |= connectFlagCleanSession
	}
	if p.LastWill != nil {
		flags |= connectFlagWill
		flags |= byte(p.LastWill.QoS) << 3
		if p.LastWill.Retain {
			flags |= connectFlagWillRetain
		}
	}
	if p.Username != nil {
		flags |= connectFlagUsername
	}
	if p.Password != nil {
		flags |= connectFlagPassword
	}
	return flags
}

func (p *Connect) Type() PacketType { return CONNECT }

func (p *Connect) bodyLen() int {
	n := p.Protocol.EncodeLen() + 1 + 2 + 2 + len(p.ClientID)
	if p.LastWill != nil {
		n += 4 + p.LastWill.TopicName.Len() + len(p.LastWill.Message)
	}
	if p.Username != nil {
		n += 2 + len(*p.Username)
	}
	if p.Password != nil {
		n += 2 + len(p.Password)
	}
	return n
}

func (p *Connect) Encode() (encoding.VarBytes, error) {
	return encoding.EncodeDynamic(0x10, p.bodyLen(), func(buf []byte) ([]byte, error) {
		buf = p.Protocol.Encode(buf)
		buf = encoding.WriteU8(buf, p.flags())
		buf = encoding.WriteU16(buf, p.KeepAlive)
		buf = encoding.WriteString(buf, p.ClientID)
		if p.LastWill != nil {
			buf = encoding.WriteString(buf, p.LastWill.TopicName.String())
			buf = encoding.WriteBytes(buf, p.LastWill.Message)
		}
		if p.Username != nil {
			buf = encoding.WriteString(buf, *p.Username)
		}
		if p.Password != nil {
			buf = encoding.WriteBytes(buf, p.Password)
		}
		return buf, nil
	})
}

func (p *Connect) EncodeLen() (int, error) {
	return encoding.TotalLen(p.bodyLen())
}

// ConnectReturnCode is the status byte of a v3 Connack.
type ConnectReturnCode byte

const (
	Accepted                    ConnectReturnCode = 0
	UnacceptableProtocolVersion ConnectReturnCode = 1
	IdentifierRejected          ConnectReturnCode = 2
	ServerUnavailable           ConnectReturnCode = 3
	BadUsernamePassword         ConnectReturnCode = 4
	NotAuthorized               ConnectReturnCode = 5
)

// NewConnectReturnCode validates a return code byte; values above 5
// are ErrInvalidConnectReturnCode.
func NewConnectReturnCode(b byte) (ConnectReturnCode, error) {
	if b > 5 {
		return 0, fmt.Errorf("%w: %d", encoding.ErrInvalidConnectReturnCode, b)
	}
	return ConnectReturnCode(b), nil
}

func (c ConnectReturnCode) String() string {
	switch c {
	case Accepted:
		return "Accepted"
	case UnacceptableProtocolVersion:
		return "UnacceptableProtocolVersion"
	case IdentifierRejected:
		return "IdentifierRejected"
	case ServerUnavailable:
		return "ServerUnavailable"
	case BadUsernamePassword:
		return "BadUsernamePassword"
	case NotAuthorized:
		return "NotAuthorized"
	default:
		return "UNKNOWN"
	}
}

// Connack answers a Connect: the session-present flag and the return
// code. The encoding is wholly static, two header bytes plus two body
// bytes.
type Connack struct {
	SessionPresent bool
	Code           ConnectReturnCode
}

func decodeConnack(r io.Reader) (*Connack, error) {
	flags, err := encoding.ReadU8(r)
	if err != nil {
		return nil, err
	}
	if flags&0xFE != 0 {
		return nil, fmt.Errorf("%w: %#02x", encoding.ErrInvalidConnackFlags, flags)
	}
	b, err := encoding.ReadU8(r)
	if err != nil {
		return nil, err
	}
	code, err := NewConnectReturnCode(b)
	if err != nil {
		return nil, err
	}
	return &Connack{SessionPresent: flags == 1, Code: code}, nil
}

func (p *Connack) Type() PacketType { return CONNACK }

func (p *Connack) Encode() (encoding.VarBytes, error) {
	var flags byte
	if p.SessionPresent {
		flags = 1
	}
	return encoding.Fixed4([4]byte{0x20, 2, flags, byte(p.Code)}), nil
}

func (p *Connack) EncodeLen() (int, error) { return 4, nil }
