package encoding

import "unicode/utf8"

// ValidateUTF8 checks that data is well-formed UTF-8 as defined in
// RFC 3629. The wire format length-prefixes strings, so this is the
// only structural requirement; topic-level character rules are applied
// by TopicName and TopicFilter.
func ValidateUTF8(data []byte) error {
	if !utf8.Valid(data) {
		return ErrInvalidString
	}
	return nil
}
