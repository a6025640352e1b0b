package v5

import "errors"

var (
	// ErrInvalidPropertyType indicates a property identifier byte
	// outside the defined set
	ErrInvalidPropertyType = errors.New("invalid property type")

	// ErrDuplicatedProperty indicates a non-repeatable property that
	// appeared more than once in a block
	ErrDuplicatedProperty = errors.New("duplicated property")

	// ErrInvalidProperty indicates a defined property that is not
	// admissible for the packet kind carrying it
	ErrInvalidProperty = errors.New("property not allowed for packet")

	// ErrInvalidBytePropertyValue indicates a one-byte property whose
	// value is outside its defined set
	ErrInvalidBytePropertyValue = errors.New("invalid byte property value")

	// ErrInvalidReasonCode indicates a reason byte that is not
	// documented for the packet kind
	ErrInvalidReasonCode = errors.New("invalid reason code")

	// ErrInvalidSubscriptionOption indicates reserved bits set or an
	// out-of-range field in a subscription options byte
	ErrInvalidSubscriptionOption = errors.New("invalid subscription option")

	// ErrInvalidPayloadFormat indicates a payload declared UTF-8 by the
	// payload format indicator that is not valid UTF-8
	ErrInvalidPayloadFormat = errors.New("payload format does not match payload format indicator")

	// ErrInvalidResponseTopic indicates a ResponseTopic property that
	// is not a valid topic name
	ErrInvalidResponseTopic = errors.New("invalid response topic")

	// ErrAuthMethodMissing indicates Authentication Data without an
	// Authentication Method
	ErrAuthMethodMissing = errors.New("authentication data without authentication method")
)
