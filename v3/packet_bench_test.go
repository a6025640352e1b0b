package v3

import (
	"bytes"
	"testing"

	"github.com/axmq/wire/buffer"
	"github.com/axmq/wire/encoding"
)

func benchPublish(b *testing.B) *Publish {
	b.Helper()
	topic, err := encoding.NewTopicName("bench/topic/level")
	if err != nil {
		b.Fatal(err)
	}
	return &Publish{
		QosPid:    encoding.QosPid1(encoding.Pid(42)),
		TopicName: topic,
		Payload:   bytes.Repeat([]byte{0xAB}, 256),
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

func BenchmarkReaderPublish(b *testing.B) {
	encoded, err := benchPublish(b).Encode()
	if err != nil {
		b.Fatal(err)
	}
	data := encoded.Bytes()
	pool := buffer.NewPool(buffer.DefaultConfig())
	reader := NewPacketReader(pool)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := reader.ReadPacket(bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncodePuback(b *testing.B) {
	pkt := &Puback{Pid: encoding.Pid(42)}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := pkt.Encode(); err != nil {
			b.Fatal(err)
		}
	}
}
