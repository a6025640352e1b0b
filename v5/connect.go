package v5

import (
	"fmt"
	"io"

	"github.com/axmq/wire/encoding"
)

// Connect opens a session. The v5 body adds a property block after the
// keepalive and a will-property block ahead of the will topic.
type Connect struct {
	Protocol   encoding.Protocol
	CleanStart bool
	KeepAlive  uint16
	Properties ConnectProperties
	ClientID   string
	LastWill   *LastWill
	Username   *string
	Password   []byte
}

// LastWill is the message the server publishes when the client
// disconnects ungracefully.
type LastWill struct {
	QoS        encoding.QoS
	Retain     bool
	Properties WillProperties
	TopicName  encoding.TopicName
	Payload    []byte
}

const (
	connectFlagCleanStart = 0x02
	connectFlagWill       = 0x04
	connectFlagWillQoS    = 0x18
	connectFlagWillRetain = 0x20
	connectFlagPassword   = 0x40
	connectFlagUsername   = 0x80
)

// ConnectProperties is the CONNECT property list.
type ConnectProperties struct {
	SessionExpiryInterval      *uint32
	ReceiveMaximum             *uint16
	MaximumPacketSize          *uint32
	TopicAliasMaximum          *uint16
	RequestResponseInformation *bool
	RequestProblemInformation  *bool
	UserProperties             []UserProperty
	AuthenticationMethod       *string
	AuthenticationData         []byte
}

func decodeConnectProperties(r io.Reader) (ConnectProperties, int, error) {
	var p ConnectProperties
	block, consumed, err := readPropertyBlock(r)
	if err != nil {
		return p, 0, err
	}
	err = parseBlock(block, func(id PropertyID, r io.Reader) error {
		switch id {
		case PropSessionExpiryInterval:
			return propU32(r, id, &p.SessionExpiryInterval)
		case PropReceiveMaximum:
			return propU16(r, id, &p.ReceiveMaximum)
		case PropMaximumPacketSize:
			return propU32(r, id, &p.MaximumPacketSize)
		case PropTopicAliasMaximum:
			return propU16(r, id, &p.TopicAliasMaximum)
		case PropRequestResponseInformation:
			return propBool(r, id, &p.RequestResponseInformation)
		case PropRequestProblemInformation:
			return propBool(r, id, &p.RequestProblemInformation)
		case PropUserProperty:
			return propUserProperty(r, &p.UserProperties)
		case PropAuthenticationMethod:
			return propString(r, id, &p.AuthenticationMethod)
		case PropAuthenticationData:
			return propBytes(r, id, &p.AuthenticationData)
		default:
			return errInvalidProperty(id, CONNECT)
		}
	})
	if err != nil {
		return p, 0, err
	}
	if p.AuthenticationData != nil && p.AuthenticationMethod == nil {
		return p, 0, ErrAuthMethodMissing
	}
	return p, consumed, nil
}

func (p *ConnectProperties) encodeLen() int {
	return lenU32(p.SessionExpiryInterval) +
		lenU16(p.ReceiveMaximum) +
		lenU32(p.MaximumPacketSize) +
		lenU16(p.TopicAliasMaximum) +
		lenBool(p.RequestResponseInformation) +
		lenBool(p.RequestProblemInformation) +
		lenUserProperties(p.UserProperties) +
		lenString(p.AuthenticationMethod) +
		lenBytes(p.AuthenticationData)
}

func (p *ConnectProperties) encode(buf []byte) []byte {
	return writeBlock(buf, p.encodeLen(), func(buf []byte) []byte {
		buf = putU32(buf, PropSessionExpiryInterval, p.SessionExpiryInterval)
		buf = putU16(buf, PropReceiveMaximum, p.ReceiveMaximum)
		buf = putU32(buf, PropMaximumPacketSize, p.MaximumPacketSize)
		buf = putU16(buf, PropTopicAliasMaximum, p.TopicAliasMaximum)
		buf = putBool(buf, PropRequestResponseInformation, p.RequestResponseInformation)
		buf = putBool(buf, PropRequestProblemInformation, p.RequestProblemInformation)
		buf = putUserProperties(buf, p.UserProperties)
		buf = putString(buf, PropAuthenticationMethod, p.AuthenticationMethod)
		return putBytes(buf, PropAuthenticationData, p.AuthenticationData)
	})
}

// WillProperties is the property list carried ahead of the will topic.
type WillProperties struct {
	WillDelayInterval      *uint32
	PayloadFormatIndicator *bool
	MessageExpiryInterval  *uint32
	ContentType            *string
	ResponseTopic          *encoding.TopicName
	CorrelationData        []byte
	UserProperties         []UserProperty
}

func decodeWillProperties(r io.Reader) (WillProperties, int, error) {
	var p WillProperties
	block, consumed, err := readPropertyBlock(r)
	if err != nil {
		return p, 0, err
	}
	err = parseBlock(block, func(id PropertyID, r io.Reader) error {
		switch id {
		case PropWillDelayInterval:
			return propU32(r, id, &p.WillDelayInterval)
		case PropPayloadFormatIndicator:
			return propBool(r, id, &p.PayloadFormatIndicator)
		case PropMessageExpiryInterval:
			return propU32(r, id, &p.MessageExpiryInterval)
		case PropContentType:
			return propString(r, id, &p.ContentType)
		case PropResponseTopic:
			return propTopicName(r, id, &p.ResponseTopic)
		case PropCorrelationData:
			return propBytes(r, id, &p.CorrelationData)
		case PropUserProperty:
			return propUserProperty(r, &p.UserProperties)
		default:
			return errInvalidProperty(id, CONNECT)
		}
	})
	return p, consumed, err
}

func (p *WillProperties) encodeLen() int {
	return lenU32(p.WillDelayInterval) +
		lenBool(p.PayloadFormatIndicator) +
		lenU32(p.MessageExpiryInterval) +
		lenString(p.ContentType) +
		lenTopicName(p.ResponseTopic) +
		lenBytes(p.CorrelationData) +
		lenUserProperties(p.UserProperties)
}

func (p *WillProperties) encode(buf []byte) []byte {
	return writeBlock(buf, p.encodeLen(), func(buf []byte) []byte {
		buf = putU32(buf, PropWillDelayInterval, p.WillDelayInterval)
		buf = putBool(buf, PropPayloadFormatIndicator, p.PayloadFormatIndicator)
		buf = putU32(buf, PropMessageExpiryInterval, p.MessageExpiryInterval)
		buf = putString(buf, PropContentType, p.ContentType)
		buf = putTopicName(buf, PropResponseTopic, p.ResponseTopic)
		buf = putBytes(buf, PropCorrelationData, p.CorrelationData)
		return putUserProperties(buf, p.UserProperties)
	})
}

func decodeConnect(r io.Reader, h Header) (*Connect, error) {
	remaining := int(h.RemainingLen)

	protocol, err := encoding.ReadProtocol(r)
	if err != nil {
		return nil, err
	}
	if protocol != encoding.ProtocolV50 {
		return nil, fmt.Errorf("%w: %s", encoding.ErrUnexpectedProtocol, protocol)
	}
	remaining -= protocol.EncodeLen()

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
	remaining -= 3

	props, consumed, err := decodeConnectProperties(r)
	if err != nil {
		return nil, err
	}
	remaining -= consumed
	if remaining < 0 {
		return nil, encoding.ErrInvalidRemainingLength
	}

	clientID, err := encoding.ReadString(r)
	if err != nil {
		return nil, err
	}
	remaining -= 2 + len(clientID)
	if remaining < 0 {
		return nil, encoding.ErrInvalidRemainingLength
	}

	var lastWill *LastWill
	if flags&connectFlagWill != 0 {
		qos, err := encoding.NewQoS((flags & connectFlagWillQoS) >> 3)
		if err != nil {
			return nil, err
		}
		willProps, consumed, err := decodeWillProperties(r)
		if err != nil {
			return nil, err
		}
		topic, err := encoding.ReadTopicName(r)
		if err != nil {
			return nil, err
		}
		payload, err := encoding.ReadBytes(r)
		if err != nil {
			return nil, err
		}
		if willProps.PayloadFormatIndicator != nil && *willProps.PayloadFormatIndicator {
			if encoding.ValidateUTF8(payload) != nil {
				return nil, ErrInvalidPayloadFormat
			}
		}
		remaining -= consumed + 2 + topic.Len() + 2 + len(payload)
		if remaining < 0 {
			return nil, encoding.ErrInvalidRemainingLength
		}
		lastWill = &LastWill{
			QoS:        qos,
			Retain:     flags&connectFlagWillRetain != 0,
			Properties: willProps,
			TopicName:  topic,
			Payload:    payload,
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
		remaining -= 2 + len(s)
		if remaining < 0 {
			return nil, encoding.ErrInvalidRemainingLength
		}
		username = &s
	}
	var password []byte
	if flags&connectFlagPassword != 0 {
		password, err = encoding.ReadBytes(r)
		if err != nil {
			return nil, err
		}
		remaining -= 2 + len(password)
		if remaining < 0 {
			return nil, encoding.ErrInvalidRemainingLength
		}
	}

	return &Connect{
		Protocol:   protocol,
		CleanStart: flags&connectFlagCleanStart != 0,
		KeepAlive:  keepAlive,
		Properties: props,
		ClientID:   clientID,
		LastWill:   lastWill,
		Username:   username,
		Password:   password,
	}, nil
}

func (p *Connect) flags() byte {
	var flags byte
	if p.CleanStart {
		flags |= connectFlagCleanStart
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
	n := p.Protocol.EncodeLen() + 3
	n += blockWireLen(p.Properties.encodeLen())
	n += 2 + len(p.ClientID)
	if p.LastWill != nil {
		n += blockWireLen(p.LastWill.Properties.encodeLen())
		n += 4 + p.LastWill.TopicName.Len() + len(p.LastWill.Payload)
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
		buf = p.Properties.encode(buf)
		buf = encoding.WriteString(buf, p.ClientID)
		if p.LastWill != nil {
			buf = p.LastWill.Properties.encode(buf)
			buf = encoding.WriteString(buf, p.LastWill.TopicName.String())
			buf = encoding.WriteBytes(buf, p.LastWill.Payload)
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

// ConnackProperties is the CONNACK property list.
type ConnackProperties struct {
	SessionExpiryInterval           *uint32
	ReceiveMaximum                  *uint16
	MaximumQoS                      *encoding.QoS
	RetainAvailable                 *bool
	MaximumPacketSize               *uint32
	AssignedClientIdentifier        *string
	TopicAliasMaximum               *uint16
	ReasonString                    *string
	UserProperties                  []UserProperty
	WildcardSubscriptionAvailable   *bool
	SubscriptionIdentifierAvailable *bool
	SharedSubscriptionAvailable     *bool
	ServerKeepAlive                 *uint16
	ResponseInformation             *string
	ServerReference                 *string
	AuthenticationMethod            *string
	AuthenticationData              []byte
}

func decodeConnackProperties(r io.Reader) (ConnackProperties, int, error) {
	var p ConnackProperties
	block, consumed, err := readPropertyBlock(r)
	if err != nil {
		return p, 0, err
	}
	err = parseBlock(block, func(id PropertyID, r io.Reader) error {
		switch id {
		case PropSessionExpiryInterval:
			return propU32(r, id, &p.SessionExpiryInterval)
		case PropReceiveMaximum:
			return propU16(r, id, &p.ReceiveMaximum)
		case PropMaximumQoS:
			return propQoS(r, id, &p.MaximumQoS)
		case PropRetainAvailable:
			return propBool(r, id, &p.RetainAvailable)
		case PropMaximumPacketSize:
			return propU32(r, id, &p.MaximumPacketSize)
		case PropAssignedClientIdentifier:
			return propString(r, id, &p.AssignedClientIdentifier)
		case PropTopicAliasMaximum:
			return propU16(r, id, &p.TopicAliasMaximum)
		case PropReasonString:
			return propString(r, id, &p.ReasonString)
		case PropUserProperty:
			return propUserProperty(r, &p.UserProperties)
		case PropWildcardSubscriptionAvailable:
			return propBool(r, id, &p.WildcardSubscriptionAvailable)
		case PropSubscriptionIdentifierAvailable:
			return propBool(r, id, &p.SubscriptionIdentifierAvailable)
		case PropSharedSubscriptionAvailable:
			return propBool(r, id, &p.SharedSubscriptionAvailable)
		case PropServerKeepAlive:
			return propU16(r, id, &p.ServerKeepAlive)
		case PropResponseInformation:
			return propString(r, id, &p.ResponseInformation)
		case PropServerReference:
			return propString(r, id, &p.ServerReference)
		case PropAuthenticationMethod:
			return propString(r, id, &p.AuthenticationMethod)
		case PropAuthenticationData:
			return propBytes(r, id, &p.AuthenticationData)
		default:
			return errInvalidProperty(id, CONNACK)
		}
	})
	return p, consumed, err
}

func (p *ConnackProperties) encodeLen() int {
	return lenU32(p.SessionExpiryInterval) +
		lenU16(p.ReceiveMaximum) +
		lenQoS(p.MaximumQoS) +
		lenBool(p.RetainAvailable) +
		lenU32(p.MaximumPacketSize) +
		lenString(p.AssignedClientIdentifier) +
		lenU16(p.TopicAliasMaximum) +
		lenString(p.ReasonString) +
		lenUserProperties(p.UserProperties) +
		lenBool(p.WildcardSubscriptionAvailable) +
		lenBool(p.SubscriptionIdentifierAvailable) +
		lenBool(p.SharedSubscriptionAvailable) +
		lenU16(p.ServerKeepAlive) +
		lenString(p.ResponseInformation) +
		lenString(p.ServerReference) +
		lenString(p.AuthenticationMethod) +
		lenBytes(p.AuthenticationData)
}

func (p *ConnackProperties) encode(buf []byte) []byte {
	return writeBlock(buf, p.encodeLen(), func(buf []byte) []byte {
		buf = putU32(buf, PropSessionExpiryInterval, p.SessionExpiryInterval)
		buf = putU16(buf, PropReceiveMaximum, p.ReceiveMaximum)
		buf = putQoS(buf, PropMaximumQoS, p.MaximumQoS)
		buf = putBool(buf, PropRetainAvailable, p.RetainAvailable)
		buf = putU32(buf, PropMaximumPacketSize, p.MaximumPacketSize)
		buf = putString(buf, PropAssignedClientIdentifier, p.AssignedClientIdentifier)
		buf = putU16(buf, PropTopicAliasMaximum, p.TopicAliasMaximum)
		buf = putString(buf, PropReasonString, p.ReasonString)
		buf = putUserProperties(buf, p.UserProperties)
		buf = putBool(buf, PropWildcardSubscriptionAvailable, p.WildcardSubscriptionAvailable)
		buf = putBool(buf, PropSubscriptionIdentifierAvailable, p.SubscriptionIdentifierAvailable)
		buf = putBool(buf, PropSharedSubscriptionAvailable, p.SharedSubscriptionAvailable)
		buf = putU16(buf, PropServerKeepAlive, p.ServerKeepAlive)
		buf = putString(buf, PropResponseInformation, p.ResponseInformation)
		buf = putString(buf, PropServerReference, p.ServerReference)
		buf = putString(buf, PropAuthenticationMethod, p.AuthenticationMethod)
		return putBytes(buf, PropAuthenticationData, p.AuthenticationData)
	})
}

// Connack answers a Connect: session-present flag, reason code and
// properties.
type Connack struct {
	SessionPresent bool
	ReasonCode     ConnectReasonCode
	Properties     ConnackProperties
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
	code, err := NewConnectReasonCode(b)
	if err != nil {
		return nil, err
	}
	props, _, err := decodeConnackProperties(r)
	if err != nil {
		return nil, err
	}
	return &Connack{SessionPresent: flags == 1, ReasonCode: code, Properties: props}, nil
}

func (p *Connack) Type() PacketType { return CONNACK }

func (p *Connack) bodyLen() int {
	return 2 + blockWireLen(p.Properties.encodeLen())
}

func (p *Connack) Encode() (encoding.VarBytes, error) {
	return encoding.EncodeDynamic(0x20, p.bodyLen(), func(buf []byte) ([]byte, error) {
		var flags byte
		if p.SessionPresent {
			flags = 1
		}
		buf = encoding.WriteU8(buf, flags)
		buf = encoding.WriteU8(buf, byte(p.ReasonCode))
		return p.Properties.encode(buf), nil
	})
}

func (p *Connack) EncodeLen() (int, error) {
	return encoding.TotalLen(p.bodyLen())
}

// DisconnectProperties is the DISCONNECT property list.
type DisconnectProperties struct {
	SessionExpiryInterval *uint32
	ReasonString          *string
	UserProperties        []UserProperty
	ServerReference       *string
}

func decodeDisconnectProperties(r io.Reader) (DisconnectProperties, int, error) {
	var p DisconnectProperties
	block, consumed, err := readPropertyBlock(r)
	if err != nil {
		return p, 0, err
	}
	err = parseBlock(block, func(id PropertyID, r io.Reader) error {
		switch id {
		case PropSessionExpiryInterval:
			return propU32(r, id, &p.SessionExpiryInterval)
		case PropReasonString:
			return propString(r, id, &p.ReasonString)
		case PropUserProperty:
			return propUserProperty(r, &p.UserProperties)
		case PropServerReference:
			return propString(r, id, &p.ServerReference)
		default:
			return errInvalidProperty(id, DISCONNECT)
		}
	})
	return p, consumed, err
}

func (p *DisconnectProperties) encodeLen() int {
	return lenU32(p.SessionExpiryInterval) +
		lenString(p.ReasonString) +
		lenUserProperties(p.UserProperties) +
		lenString(p.ServerReference)
}

func (p *DisconnectProperties) encode(buf []byte) []byte {
	return writeBlock(buf, p.encodeLen(), func(buf []byte) []byte {
		buf = putU32(buf, PropSessionExpiryInterval, p.SessionExpiryInterval)
		buf = putString(buf, PropReasonString, p.ReasonString)
		buf = putUserProperties(buf, p.UserProperties)
		return putString(buf, PropServerReference, p.ServerReference)
	})
}

func (p *DisconnectProperties) isZero() bool {
	return p.SessionExpiryInterval == nil && p.ReasonString == nil &&
		len(p.UserProperties) == 0 && p.ServerReference == nil
}

// Disconnect announces an orderly shutdown. A zero remaining length
// decodes as NormalDisconnect with empty properties; encoding restores
// the truncated forms.
type Disconnect struct {
	ReasonCode DisconnectReasonCode
	Properties DisconnectProperties
}

// NewDisconnect builds a Disconnect with the given reason and no
// properties.
func NewDisconnect(code DisconnectReasonCode) *Disconnect {
	return &Disconnect{ReasonCode: code}
}

func decodeDisconnect(r io.Reader, h Header) (*Disconnect, error) {
	if h.RemainingLen == 0 {
		return &Disconnect{ReasonCode: NormalDisconnect}, nil
	}
	b, err := encoding.ReadU8(r)
	if err != nil {
		return nil, err
	}
	code, err := NewDisconnectReasonCode(b)
	if err != nil {
		return nil, err
	}
	if h.RemainingLen == 1 {
		return &Disconnect{ReasonCode: code}, nil
	}
	props, _, err := decodeDisconnectProperties(r)
	if err != nil {
		return nil, err
	}
	return &Disconnect{ReasonCode: code, Properties: props}, nil
}

func (p *Disconnect) Type() PacketType { return DISCONNECT }

func (p *Disconnect) bodyLen() int {
	if p.Properties.isZero() {
		if p.ReasonCode == NormalDisconnect {
			return 0
		}
		return 1
	}
	return 1 + blockWireLen(p.Properties.encodeLen())
}

func (p *Disconnect) Encode() (encoding.VarBytes, error) {
	switch p.bodyLen() {
	case 0:
		return encoding.Fixed2(0xE0, 0), nil
	case 1:
		return encoding.Dynamic([]byte{0xE0, 1, byte(p.ReasonCode)}), nil
	default:
		return encoding.EncodeDynamic(0xE0, p.bodyLen(), func(buf []byte) ([]byte, error) {
			buf = encoding.WriteU8(buf, byte(p.ReasonCode))
			return p.Properties.encode(buf), nil
		})
	}
}

func (p *Disconnect) EncodeLen() (int, error) {
	return encoding.TotalLen(p.bodyLen())
}

// AuthProperties is the AUTH property list.
type AuthProperties struct {
	AuthenticationMethod *string
	AuthenticationData   []byte
	ReasonString         *string
	UserProperties       []UserProperty
}

func decodeAuthProperties(r io.Reader) (AuthProperties, int, error) {
	var p AuthProperties
	block, consumed, err := readPropertyBlock(r)
	if err != nil {
		return p, 0, err
	}
	err = parseBlock(block, func(id PropertyID, r io.Reader) error {
		switch id {
		case PropAuthenticationMethod:
			return propString(r, id, &p.AuthenticationMethod)
		case PropAuthenticationData:
			return propBytes(r, id, &p.AuthenticationData)
		case PropReasonString:
			return propString(r, id, &p.ReasonString)
		case PropUserProperty:
			return propUserProperty(r, &p.UserProperties)
		default:
			return errInvalidProperty(id, AUTH)
		}
	})
	if err != nil {
		return p, 0, err
	}
	if p.AuthenticationData != nil && p.AuthenticationMethod == nil {
		return p, 0, ErrAuthMethodMissing
	}
	return p, consumed, nil
}

func (p *AuthProperties) encodeLen() int {
	return lenString(p.AuthenticationMethod) +
		lenBytes(p.AuthenticationData) +
		lenString(p.ReasonString) +
		lenUserProperties(p.UserProperties)
}

func (p *AuthProperties) encode(buf []byte) []byte {
	return writeBlock(buf, p.encodeLen(), func(buf []byte) []byte {
		buf = putString(buf, PropAuthenticationMethod, p.AuthenticationMethod)
		buf = putBytes(buf, PropAuthenticationData, p.AuthenticationData)
		buf = putString(buf, PropReasonString, p.ReasonString)
		return putUserProperties(buf, p.UserProperties)
	})
}

func (p *AuthProperties) isZero() bool {
	return p.AuthenticationMethod == nil && p.AuthenticationData == nil &&
		p.ReasonString == nil && len(p.UserProperties) == 0
}

// Auth carries an extended authentication exchange step. A zero
// remaining length decodes as Success with empty properties.
type Auth struct {
	ReasonCode AuthReasonCode
	Properties AuthProperties
}

// NewAuth builds an Auth with the given reason and no properties.
func NewAuth(code AuthReasonCode) *Auth {
	return &Auth{ReasonCode: code}
}

func decodeAuth(r io.Reader, h Header) (*Auth, error) {
	if h.RemainingLen == 0 {
		return &Auth{ReasonCode: AuthSuccess}, nil
	}
	b, err := encoding.ReadU8(r)
	if err != nil {
		return nil, err
	}
	code, err := NewAuthReasonCode(b)
	if err != nil {
		return nil, err
	}
	props, _, err := decodeAuthProperties(r)
	if err != nil {
		return nil, err
	}
	return &Auth{ReasonCode: code, Properties: props}, nil
}

func (p *Auth) Type() PacketType { return AUTH }

func (p *Auth) bodyLen() int {
	if p.ReasonCode == AuthSuccess && p.Properties.isZero() {
		return 0
	}
	return 1 + blockWireLen(p.Properties.encodeLen())
}

func (p *Auth) Encode() (encoding.VarBytes, error) {
	if p.bodyLen() == 0 {
		return encoding.Fixed2(0xF0, 0), nil
	}
	return encoding.EncodeDynamic(0xF0, p.bodyLen(), func(buf []byte) ([]byte, error) {
		buf = encoding.WriteU8(buf, byte(p.ReasonCode))
		return p.Properties.encode(buf), nil
	})
}

func (p *Auth) EncodeLen() (int, error) {
	return encoding.TotalLen(p.bodyLen())
}
