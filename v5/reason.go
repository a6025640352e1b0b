package v5

import "fmt"

// Reason codes are single-byte status values whose admissible set
// depends on the packet kind. Undocumented bytes are rejected with
// ErrInvalidReasonCode rather than passed through.

func invalidReason(pt PacketType, b byte) error {
	return fmt.Errorf("%w: %s %#02x", ErrInvalidReasonCode, pt, b)
}

// ConnectReasonCode is the CONNACK status byte.
type ConnectReasonCode byte

const (
	ConnectSuccess                     ConnectReasonCode = 0x00
	ConnectUnspecifiedError            ConnectReasonCode = 0x80
	ConnectMalformedPacket             ConnectReasonCode = 0x81
	ConnectProtocolError               ConnectReasonCode = 0x82
	ConnectImplementationSpecificError ConnectReasonCode = 0x83
	ConnectUnsupportedProtocolVersion  ConnectReasonCode = 0x84
	ConnectClientIdentifierNotValid    ConnectReasonCode = 0x85
	ConnectBadUserNameOrPassword       ConnectReasonCode = 0x86
	ConnectNotAuthorized               ConnectReasonCode = 0x87
	ConnectServerUnavailable           ConnectReasonCode = 0x88
	ConnectServerBusy                  ConnectReasonCode = 0x89
	ConnectBanned                      ConnectReasonCode = 0x8A
	ConnectBadAuthMethod               ConnectReasonCode = 0x8C
	ConnectTopicNameInvalid            ConnectReasonCode = 0x90
	ConnectPacketTooLarge              ConnectReasonCode = 0x95
	ConnectQuotaExceeded               ConnectReasonCode = 0x97
	ConnectPayloadFormatInvalid        ConnectReasonCode = 0x99
	ConnectRetainNotSupported          ConnectReasonCode = 0x9A
	ConnectQoSNotSupported             ConnectReasonCode = 0x9B
	ConnectUseAnotherServer            ConnectReasonCode = 0x9C
	ConnectServerMoved                 ConnectReasonCode = 0x9D
	ConnectConnectionRateExceeded      ConnectReasonCode = 0x9F
)

// NewConnectReasonCode validates a CONNACK reason byte.
func NewConnectReasonCode(b byte) (ConnectReasonCode, error) {
	switch c := ConnectReasonCode(b); c {
	case ConnectSuccess, ConnectUnspecifiedError, ConnectMalformedPacket,
		ConnectProtocolError, ConnectImplementationSpecificError,
		ConnectUnsupportedProtocolVersion, ConnectClientIdentifierNotValid,
		ConnectBadUserNameOrPassword, ConnectNotAuthorized,
		ConnectServerUnavailable, ConnectServerBusy, ConnectBanned,
		ConnectBadAuthMethod, ConnectTopicNameInvalid, ConnectPacketTooLarge,
		ConnectQuotaExceeded, ConnectPayloadFormatInvalid,
		ConnectRetainNotSupported, ConnectQoSNotSupported,
		ConnectUseAnotherServer, ConnectServerMoved,
		ConnectConnectionRateExceeded:
		return c, nil
	default:
		return 0, invalidReason(CONNACK, b)
	}
}

// DisconnectReasonCode is the DISCONNECT status byte.
type DisconnectReasonCode byte

const (
	NormalDisconnect                       DisconnectReasonCode = 0x00
	DisconnectWithWillMessage              DisconnectReasonCode = 0x04
	DisconnectUnspecifiedError             DisconnectReasonCode = 0x80
	DisconnectMalformedPacket              DisconnectReasonCode = 0x81
	DisconnectProtocolError                DisconnectReasonCode = 0x82
	DisconnectImplementationSpecificError  DisconnectReasonCode = 0x83
	DisconnectNotAuthorized                DisconnectReasonCode = 0x87
	DisconnectServerBusy                   DisconnectReasonCode = 0x89
	DisconnectServerShuttingDown           DisconnectReasonCode = 0x8B
	DisconnectKeepAliveTimeout             DisconnectReasonCode = 0x8D
	DisconnectSessionTakenOver             DisconnectReasonCode = 0x8E
	DisconnectTopicFilterInvalid           DisconnectReasonCode = 0x8F
	DisconnectTopicNameInvalid             DisconnectReasonCode = 0x90
	DisconnectReceiveMaximumExceeded       DisconnectReasonCode = 0x93
	DisconnectTopicAliasInvalid            DisconnectReasonCode = 0x94
	DisconnectPacketTooLarge               DisconnectReasonCode = 0x95
	DisconnectMessageRateTooHigh           DisconnectReasonCode = 0x96
	DisconnectQuotaExceeded                DisconnectReasonCode = 0x97
	DisconnectAdministrativeAction         DisconnectReasonCode = 0x98
	DisconnectPayloadFormatInvalid         DisconnectReasonCode = 0x99
	DisconnectRetainNotSupported           DisconnectReasonCode = 0x9A
	DisconnectQoSNotSupported              DisconnectReasonCode = 0x9B
	DisconnectUseAnotherServer             DisconnectReasonCode = 0x9C
	DisconnectServerMoved                  DisconnectReasonCode = 0x9D
	DisconnectSharedSubsNotSupported       DisconnectReasonCode = 0x9E
	DisconnectConnectionRateExceeded       DisconnectReasonCode = 0x9F
	DisconnectMaximumConnectTime           DisconnectReasonCode = 0xA0
	DisconnectSubscriptionIDsNotSupported  DisconnectReasonCode = 0xA1
	DisconnectWildcardSubsNotSupported     DisconnectReasonCode = 0xA2
)

// NewDisconnectReasonCode validates a DISCONNECT reason byte.
func NewDisconnectReasonCode(b byte) (DisconnectReasonCode, error) {
	switch c := DisconnectReasonCode(b); c {
	case NormalDisconnect, DisconnectWithWillMessage,
		DisconnectUnspecifiedError, DisconnectMalformedPacket,
		DisconnectProtocolError, DisconnectImplementationSpecificError,
		DisconnectNotAuthorized, DisconnectServerBusy,
		DisconnectServerShuttingDown, DisconnectKeepAliveTimeout,
		DisconnectSessionTakenOver, DisconnectTopicFilterInvalid,
		DisconnectTopicNameInvalid, DisconnectReceiveMaximumExceeded,
		DisconnectTopicAliasInvalid, DisconnectPacketTooLarge,
		DisconnectMessageRateTooHigh, DisconnectQuotaExceeded,
		DisconnectAdministrativeAction, DisconnectPayloadFormatInvalid,
		DisconnectRetainNotSupported, DisconnectQoSNotSupported,
		DisconnectUseAnotherServer, DisconnectServerMoved,
		DisconnectSharedSubsNotSupported, DisconnectConnectionRateExceeded,
		DisconnectMaximumConnectTime, DisconnectSubscriptionIDsNotSupported,
		DisconnectWildcardSubsNotSupported:
		return c, nil
	default:
		return 0, invalidReason(DISCONNECT, b)
	}
}

// PubackReasonCode is the status byte shared by PUBACK and PUBREC.
type PubackReasonCode byte

const (
	PubackSuccess                     PubackReasonCode = 0x00
	PubackNoMatchingSubscribers       PubackReasonCode = 0x10
	PubackUnspecifiedError            PubackReasonCode = 0x80
	PubackImplementationSpecificError PubackReasonCode = 0x83
	PubackNotAuthorized               PubackReasonCode = 0x87
	PubackTopicNameInvalid            PubackReasonCode = 0x90
	PubackPacketIdentifierInUse       PubackReasonCode = 0x91
	PubackQuotaExceeded               PubackReasonCode = 0x97
	PubackPayloadFormatInvalid        PubackReasonCode = 0x99
)

// NewPubackReasonCode validates a PUBACK or PUBREC reason byte.
func NewPubackReasonCode(b byte, pt PacketType) (PubackReasonCode, error) {
	switch c := PubackReasonCode(b); c {
	case PubackSuccess, PubackNoMatchingSubscribers, PubackUnspecifiedError,
		PubackImplementationSpecificError, PubackNotAuthorized,
		PubackTopicNameInvalid, PubackPacketIdentifierInUse,
		PubackQuotaExceeded, PubackPayloadFormatInvalid:
		return c, nil
	default:
		return 0, invalidReason(pt, b)
	}
}

// PubrelReasonCode is the status byte shared by PUBREL and PUBCOMP.
type PubrelReasonCode byte

const (
	PubrelSuccess                  PubrelReasonCode = 0x00
	PubrelPacketIdentifierNotFound PubrelReasonCode = 0x92
)

// NewPubrelReasonCode validates a PUBREL or PUBCOMP reason byte.
func NewPubrelReasonCode(b byte, pt PacketType) (PubrelReasonCode, error) {
	switch c := PubrelReasonCode(b); c {
	case PubrelSuccess, PubrelPacketIdentifierNotFound:
		return c, nil
	default:
		return 0, invalidReason(pt, b)
	}
}

// SubscribeReasonCode is the per-filter status byte in a SUBACK.
type SubscribeReasonCode byte

const (
	SubackGrantedQoS0                   SubscribeReasonCode = 0x00
	SubackGrantedQoS1                   SubscribeReasonCode = 0x01
	SubackGrantedQoS2                   SubscribeReasonCode = 0x02
	SubackUnspecifiedError              SubscribeReasonCode = 0x80
	SubackImplementationSpecificError   SubscribeReasonCode = 0x83
	SubackNotAuthorized                 SubscribeReasonCode = 0x87
	SubackTopicFilterInvalid            SubscribeReasonCode = 0x8F
	SubackPacketIdentifierInUse         SubscribeReasonCode = 0x91
	SubackQuotaExceeded                 SubscribeReasonCode = 0x97
	SubackSharedSubsNotSupported        SubscribeReasonCode = 0x9E
	SubackSubscriptionIDsNotSupported   SubscribeReasonCode = 0xA1
	SubackWildcardSubsNotSupported      SubscribeReasonCode = 0xA2
)

// NewSubscribeReasonCode validates a SUBACK reason byte.
func NewSubscribeReasonCode(b byte) (SubscribeReasonCode, error) {
	switch c := SubscribeReasonCode(b); c {
	case SubackGrantedQoS0, SubackGrantedQoS1, SubackGrantedQoS2,
		SubackUnspecifiedError, SubackImplementationSpecificError,
		SubackNotAuthorized, SubackTopicFilterInvalid,
		SubackPacketIdentifierInUse, SubackQuotaExceeded,
		SubackSharedSubsNotSupported, SubackSubscriptionIDsNotSupported,
		SubackWildcardSubsNotSupported:
		return c, nil
	default:
		return 0, invalidReason(SUBACK, b)
	}
}

// UnsubscribeReasonCode is the per-filter status byte in an UNSUBACK.
type UnsubscribeReasonCode byte

const (
	UnsubackSuccess                     UnsubscribeReasonCode = 0x00
	UnsubackNoSubscriptionExisted       UnsubscribeReasonCode = 0x11
	UnsubackUnspecifiedError            UnsubscribeReasonCode = 0x80
	UnsubackImplementationSpecificError UnsubscribeReasonCode = 0x83
	UnsubackNotAuthorized               UnsubscribeReasonCode = 0x87
	UnsubackTopicFilterInvalid          UnsubscribeReasonCode = 0x8F
	UnsubackPacketIdentifierInUse       UnsubscribeReasonCode = 0x91
)

// NewUnsubscribeReasonCode validates an UNSUBACK reason byte.
func NewUnsubscribeReasonCode(b byte) (UnsubscribeReasonCode, error) {
	switch c := UnsubscribeReasonCode(b); c {
	case UnsubackSuccess, UnsubackNoSubscriptionExisted,
		UnsubackUnspecifiedError, UnsubackImplementationSpecificError,
		UnsubackNotAuthorized, UnsubackTopicFilterInvalid,
		UnsubackPacketIdentifierInUse:
		return c, nil
	default:
		return 0, invalidReason(UNSUBACK, b)
	}
}

// AuthReasonCode is the AUTH status byte.
type AuthReasonCode byte

const (
	AuthSuccess                AuthReasonCode = 0x00
	AuthContinueAuthentication AuthReasonCode = 0x18
	AuthReAuthenticate         AuthReasonCode = 0x19
)

// NewAuthReasonCode validates an AUTH reason byte.
func NewAuthReasonCode(b byte) (AuthReasonCode, error) {
	switch c := AuthReasonCode(b); c {
	case AuthSuccess, AuthContinueAuthentication, AuthReAuthenticate:
		return c, nil
	default:
		return 0, invalidReason(AUTH, b)
	}
}
