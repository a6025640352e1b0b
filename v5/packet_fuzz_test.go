package v5

import (
	"reflect"
	"testing"
)

// FuzzDecode feeds arbitrary bytes to the decoder. Inputs that decode
// successfully must survive an encode/decode round trip unchanged;
// the truncated ack/disconnect/auth forms normalize to their defaults.
func FuzzDecode(f *testing.F) {
	f.Add([]byte{0xE0, 0x07, 0x89, 0x05, 0x11, 0x00, 0x00, 0x00, 0x33})
	f.Add([]byte{0x30, 0x08, 0x00, 0x01, 0x74, 0x02, 0x01, 0x01, 0xFF, 0xFC})
	f.Add([]byte{0x40, 0x02, 0x00, 0x0A})
	f.Add([]byte{0xF0, 0x00})
	f.Add([]byte{0x82, 0x07, 0x00, 0x0A, 0x00, 0x00, 0x01, 0x61, 0x01})

	f.Fuzz(func(t *testing.T, data []byte) {
		pkt, err := Decode(data)
		if err != nil || pkt == nil {
			return
		}

		encoded, err := pkt.Encode()
		if err != nil {
			t.Fatalf("decoded packet failed to encode: %v", err)
		}

		total, err := pkt.EncodeLen()
		if err != nil {
			t.Fatalf("decoded packet failed to size: %v", err)
		}
		if total != encoded.Len() {
			t.Fatalf("encode length mismatch: got %d, want %d", encoded.Len(), total)
		}

		decoded, err := Decode(encoded.Bytes())
		if err != nil {
			t.Fatalf("re-decode failed: %v", err)
		}
		if !reflect.DeepEqual(pkt, decoded) {
			t.Fatalf("round trip mismatch: %#v != %#v", pkt, decoded)
		}
	})
}
