package encoding

import (
	"bytes"
	"testing"
	"unicode/utf8"
)

// FuzzValidateUTF8 checks the validator against the stdlib oracle: a
// byte sequence passes exactly when it is well-formed UTF-8.
func FuzzValidateUTF8(f *testing.F) {
	f.Add([]byte("plain"))
	f.Add([]byte("héllo wörld"))
	f.Add([]byte{0xFF, 0xFC})
	f.Add([]byte{0xC0, 0x80})
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		err := ValidateUTF8(data)
		if utf8.Valid(data) {
			if err != nil {
				t.Fatalf("valid UTF-8 rejected: %q: %v", data, err)
			}
		} else if err == nil {
			t.Fatalf("invalid UTF-8 accepted: %q", data)
		}
	})
}

// FuzzReadString checks that any length-prefixed input either decodes
// to a string that re-encodes to the identical bytes, or fails with a
// typed error.
func FuzzReadString(f *testing.F) {
	f.Add([]byte{0x00, 0x03, 'a', '/', 'b'})
	f.Add([]byte{0x00, 0x00})
	f.Add([]byte{0x00, 0x02, 0xFF, 0xFC})

	f.Fuzz(func(t *testing.T, data []byte) {
		s, err := ReadString(bytes.NewReader(data))
		if err != nil {
			return
		}
		encoded := WriteString(nil, s)
		if len(encoded) > len(data) {
			t.Fatalf("re-encode longer than input: %d > %d", len(encoded), len(data))
		}
		for i, b := range encoded {
			if data[i] != b {
				t.Fatalf("re-encode mismatch at %d", i)
			}
		}
	})
}
