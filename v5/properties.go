package v5

import (
	"bytes"
	"fmt"
	"io"

	"github.com/axmq/wire/encoding"
)

// PropertyID identifies an MQTT 5.0 property. The wire type of each
// identifier is fixed by the specification (section 2.2.2.2).
type PropertyID byte

const (
	PropPayloadFormatIndicator          PropertyID = 0x01
	PropMessageExpiryInterval           PropertyID = 0x02
	PropContentType                     PropertyID = 0x03
	PropResponseTopic                   PropertyID = 0x08
	PropCorrelationData                 PropertyID = 0x09
	PropSubscriptionIdentifier          PropertyID = 0x0B
	PropSessionExpiryInterval           PropertyID = 0x11
	PropAssignedClientIdentifier        PropertyID = 0x12
	PropServerKeepAlive                 PropertyID = 0x13
	PropAuthenticationMethod            PropertyID = 0x15
	PropAuthenticationData              PropertyID = 0x16
	PropRequestProblemInformation       PropertyID = 0x17
	PropWillDelayInterval               PropertyID = 0x18
	PropRequestResponseInformation      PropertyID = 0x19
	PropResponseInformation             PropertyID = 0x1A
	PropServerReference                 PropertyID = 0x1C
	PropReasonString                    PropertyID = 0x1F
	PropReceiveMaximum                  PropertyID = 0x21
	PropTopicAliasMaximum               PropertyID = 0x22
	PropTopicAlias                      PropertyID = 0x23
	PropMaximumQoS                      PropertyID = 0x24
	PropRetainAvailable                 PropertyID = 0x25
	PropUserProperty                    PropertyID = 0x26
	PropMaximumPacketSize               PropertyID = 0x27
	PropWildcardSubscriptionAvailable   PropertyID = 0x28
	PropSubscriptionIdentifierAvailable PropertyID = 0x29
	PropSharedSubscriptionAvailable     PropertyID = 0x2A
)

var propertyNames = map[PropertyID]string{
	PropPayloadFormatIndicator:          "PayloadFormatIndicator",
	PropMessageExpiryInterval:           "MessageExpiryInterval",
	PropContentType:                     "ContentType",
	PropResponseTopic:                   "ResponseTopic",
	PropCorrelationData:                 "CorrelationData",
	PropSubscriptionIdentifier:          "SubscriptionIdentifier",
	PropSessionExpiryInterval:           "SessionExpiryInterval",
	PropAssignedClientIdentifier:        "AssignedClientIdentifier",
	PropServerKeepAlive:                 "ServerKeepAlive",
	PropAuthenticationMethod:            "AuthenticationMethod",
	PropAuthenticationData:              "AuthenticationData",
	PropRequestProblemInformation:       "RequestProblemInformation",
	PropWillDelayInterval:               "WillDelayInterval",
	PropRequestResponseInformation:      "RequestResponseInformation",
	PropResponseInformation:             "ResponseInformation",
	PropServerReference:                 "ServerReference",
	PropReasonString:                    "ReasonString",
	PropReceiveMaximum:                  "ReceiveMaximum",
	PropTopicAliasMaximum:               "TopicAliasMaximum",
	PropTopicAlias:                      "TopicAlias",
	PropMaximumQoS:                      "MaximumQoS",
	PropRetainAvailable:                 "RetainAvailable",
	PropUserProperty:                    "UserProperty",
	PropMaximumPacketSize:               "MaximumPacketSize",
	PropWildcardSubscriptionAvailable:   "WildcardSubscriptionAvailable",
	PropSubscriptionIdentifierAvailable: "SubscriptionIdentifierAvailable",
	PropSharedSubscriptionAvailable:     "SharedSubscriptionAvailable",
}

func (id PropertyID) String() string {
	if name, ok := propertyNames[id]; ok {
		return name
	}
	return "UNKNOWN"
}

// UserProperty is a UTF-8 string pair. It is the only property allowed
// to repeat; repeated occurrences accumulate in wire order.
type UserProperty struct {
	Name  string
	Value string
}

// readPropertyBlock reads the variable byte integer block length and
// then the block itself. It returns the raw block and the number of
// bytes consumed from r.
func readPropertyBlock(r io.Reader) ([]byte, int, error) {
	length, n, err := encoding.ReadVarByteInt(r)
	if err != nil {
		return nil, 0, err
	}
	block := make([]byte, length)
	if _, err := io.ReadFull(r, block); err != nil {
		return nil, 0, encoding.ErrUnexpectedEOF
	}
	return block, n + int(length), nil
}

// parseBlock walks a property block, dispatching each identifier to
// item. Identifiers outside the defined set are rejected here; item
// rejects identifiers outside the packet's whitelist. A value
// truncated by the declared block length surfaces as
// ErrInvalidRemainingLength.
func parseBlock(block []byte, item func(id PropertyID, r io.Reader) error) error {
	r := bytes.NewReader(block)
	for r.Len() > 0 {
		b, _ := r.ReadByte()
		id := PropertyID(b)
		if _, ok := propertyNames[id]; !ok {
			return fmt.Errorf("%w: %#02x", ErrInvalidPropertyType, b)
		}
		if err := item(id, r); err != nil {
			if encoding.IsEOF(err) {
				return encoding.ErrInvalidRemainingLength
			}
			return err
		}
	}
	return nil
}

func errInvalidProperty(id PropertyID, pt PacketType) error {
	return fmt.Errorf("%w: %s in %s", ErrInvalidProperty, id, pt)
}

func errDuplicated(id PropertyID) error {
	return fmt.Errorf("%w: %s", ErrDuplicatedProperty, id)
}

// Decode helpers. Each checks the at-most-once rule against its target
// before reading the value.

func propBool(r io.Reader, id PropertyID, target **bool) error {
	if *target != nil {
		return errDuplicated(id)
	}
	b, err := encoding.ReadU8(r)
	if err != nil {
		return err
	}
	if b > 1 {
		return fmt.Errorf("%w: %s=%d", ErrInvalidBytePropertyValue, id, b)
	}
	v := b == 1
	*target = &v
	return nil
}

func propU16(r io.Reader, id PropertyID, target **uint16) error {
	if *target != nil {
		return errDuplicated(id)
	}
	v, err := encoding.ReadU16(r)
	if err != nil {
		return err
	}
	*target = &v
	return nil
}

func propU32(r io.Reader, id PropertyID, target **uint32) error {
	if *target != nil {
		return errDuplicated(id)
	}
	v, err := encoding.ReadU32(r)
	if err != nil {
		return err
	}
	*target = &v
	return nil
}

func propString(r io.Reader, id PropertyID, target **string) error {
	if *target != nil {
		return errDuplicated(id)
	}
	v, err := encoding.ReadString(r)
	if err != nil {
		return err
	}
	*target = &v
	return nil
}

func propBytes(r io.Reader, id PropertyID, target *[]byte) error {
	if *target != nil {
		return errDuplicated(id)
	}
	v, err := encoding.ReadBytes(r)
	if err != nil {
		return err
	}
	*target = v
	return nil
}

func propTopicName(r io.Reader, id PropertyID, target **encoding.TopicName) error {
	if *target != nil {
		return errDuplicated(id)
	}
	s, err := encoding.ReadString(r)
	if err != nil {
		return err
	}
	t, err := encoding.NewTopicName(s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidResponseTopic, s)
	}
	*target = &t
	return nil
}

func propQoS(r io.Reader, id PropertyID, target **encoding.QoS) error {
	if *target != nil {
		return errDuplicated(id)
	}
	b, err := encoding.ReadU8(r)
	if err != nil {
		return err
	}
	if b > 2 {
		return fmt.Errorf("%w: %s=%d", ErrInvalidBytePropertyValue, id, b)
	}
	v := encoding.QoS(b)
	*target = &v
	return nil
}

// propVarInt decodes a variable byte integer property. The
// SubscriptionIdentifier range is 1 ... 268,435,455.
func propVarInt(r io.Reader, id PropertyID, target **uint32) error {
	if *target != nil {
		return errDuplicated(id)
	}
	v, _, err := encoding.ReadVarByteInt(r)
	if err != nil {
		return err
	}
	if v == 0 {
		return fmt.Errorf("%w: %s=0", ErrInvalidBytePropertyValue, id)
	}
	*target = &v
	return nil
}

func propUserProperty(r io.Reader, target *[]UserProperty) error {
	name, err := encoding.ReadString(r)
	if err != nil {
		return err
	}
	value, err := encoding.ReadString(r)
	if err != nil {
		return err
	}
	*target = append(*target, UserProperty{Name: name, Value: value})
	return nil
}

// Encode helpers. Absent properties contribute nothing.

func putBool(buf []byte, id PropertyID, v *bool) []byte {
	if v == nil {
		return buf
	}
	b := byte(0)
	if *v {
		b = 1
	}
	return append(buf, byte(id), b)
}

func putU16(buf []byte, id PropertyID, v *uint16) []byte {
	if v == nil {
		return buf
	}
	buf = append(buf, byte(id))
	return encoding.WriteU16(buf, *v)
}

func putU32(buf []byte, id PropertyID, v *uint32) []byte {
	if v == nil {
		return buf
	}
	buf = append(buf, byte(id))
	return encoding.WriteU32(buf, *v)
}

func putString(buf []byte, id PropertyID, v *string) []byte {
	if v == nil {
		return buf
	}
	buf = append(buf, byte(id))
	return encoding.WriteString(buf, *v)
}

func putBytes(buf []byte, id PropertyID, v []byte) []byte {
	if v == nil {
		return buf
	}
	buf = append(buf, byte(id))
	return encoding.WriteBytes(buf, v)
}

func putTopicName(buf []byte, id PropertyID, v *encoding.TopicName) []byte {
	if v == nil {
		return buf
	}
	buf = append(buf, byte(id))
	return encoding.WriteString(buf, v.String())
}

func putQoS(buf []byte, id PropertyID, v *encoding.QoS) []byte {
	if v == nil {
		return buf
	}
	return append(buf, byte(id), byte(*v))
}

func putVarInt(buf []byte, id PropertyID, v *uint32) []byte {
	if v == nil {
		return buf
	}
	buf = append(buf, byte(id))
	buf, _ = encoding.WriteVarByteInt(buf, *v)
	return buf
}

func putUserProperties(buf []byte, props []UserProperty) []byte {
	for _, up := range props {
		buf = append(buf, byte(PropUserProperty))
		buf = encoding.WriteString(buf, up.Name)
		buf = encoding.WriteString(buf, up.Value)
	}
	return buf
}

// Length helpers: identifier byte plus the value's wire size.

func lenBool(v *bool) int {
	if v == nil {
		return 0
	}
	return 2
}

func lenU16(v *uint16) int {
	if v == nil {
		return 0
	}
	return 3
}

func lenU32(v *uint32) int {
	if v == nil {
		return 0
	}
	return 5
}

func lenString(v *string) int {
	if v == nil {
		return 0
	}
	return 3 + len(*v)
}

func lenBytes(v []byte) int {
	if v == nil {
		return 0
	}
	return 3 + len(v)
}

func lenTopicName(v *encoding.TopicName) int {
	if v == nil {
		return 0
	}
	return 3 + v.Len()
}

func lenQoS(v *encoding.QoS) int {
	if v == nil {
		return 0
	}
	return 2
}

func lenVarInt(v *uint32) int {
	if v == nil {
		return 0
	}
	n, _ := encoding.SizeVarByteInt(int(*v))
	return 1 + n
}

func lenUserProperties(props []UserProperty) int {
	n := 0
	for _, up := range props {
		n += 5 + len(up.Name) + len(up.Value)
	}
	return n
}

// writeBlock prefixes content with its variable byte integer length.
func writeBlock(buf []byte, contentLen int, fill func([]byte) []byte) []byte {
	buf, _ = encoding.WriteVarByteInt(buf, uint32(contentLen))
	return fill(buf)
}

// blockWireLen is the on-wire size of a property block whose content
// is contentLen bytes.
func blockWireLen(contentLen int) int {
	n, _ := encoding.SizeVarByteInt(contentLen)
	return n + contentLen
}

// AckProperties is the property list shared by PUBACK, PUBREC, PUBREL,
// PUBCOMP, SUBACK and UNSUBACK: a reason string plus user properties.
type AckProperties struct {
	ReasonString   *string
	UserProperties []UserProperty
}

func decodeAckProperties(r io.Reader, pt PacketType) (AckProperties, int, error) {
	var p AckProperties
	block, consumed, err := readPropertyBlock(r)
	if err != nil {
		return p, 0, err
	}
	err = parseBlock(block, func(id PropertyID, r io.Reader) error {
		switch id {
		case PropReasonString:
			return propString(r, id, &p.ReasonString)
		case PropUserProperty:
			return propUserProperty(r, &p.UserProperties)
		default:
			return errInvalidProperty(id, pt)
		}
	})
	return p, consumed, err
}

func (p *AckProperties) encodeLen() int {
	return lenString(p.ReasonString) + lenUserProperties(p.UserProperties)
}

func (p *AckProperties) encode(buf []byte) []byte {
	return writeBlock(buf, p.encodeLen(), func(buf []byte) []byte {
		buf = putString(buf, PropReasonString, p.ReasonString)
		return putUserProperties(buf, p.UserProperties)
	})
}

func (p *AckProperties) isZero() bool {
	return p.ReasonString == nil && len(p.UserProperties) == 0
}
