package v5

import (
	"bytes"
	"testing"

	"github.com/axmq/wire/encoding"
)

func benchPublish(b *testing.B) *Publish {
	b.Helper()
	topic, err := encoding.NewTopicName("bench/topic/level")
	if err != nil {
		b.Fatal(err)
	}
	expiry := uint32(3600)
	ct := "application/octet-stream"
	return &Publish{
		QosPid:    encoding.QosPid1(encoding.Pid(42)),
		TopicName: topic,
		Properties: PublishProperties{
			MessageExpiryInterval: &expiry,
			ContentType:           &ct,
			UserProperties:        []UserProperty{{Name: "trace", Value: "bench"}},
		},
		Payload: bytes.Repeat([]byte{0xAB}, 256),
	}
}

func BenchmarkEncodePublish(b *testing.B) {
	pkt := benchPublish(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := pkt.Encode(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodePublish(b *testing.B) {
	encoded, err := benchPublish(b).Encode()
	if err != nil {
		b.Fatal(err)
	}
	data := encoded.Bytes()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeDisconnect(b *testing.B) {
	data := []byte{0xE0, 0x07, 0x89, 0x05, 0x11, 0x00, 0x00, 0x00, 0x33}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(data); err != nil {
			b.Fatal(err)
		}
	}
}
