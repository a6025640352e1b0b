package v5

import (
	"bytes"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axmq/wire/buffer"
	"github.com/axmq/wire/encoding"
)

func TestReaderDisconnectWithProperties(t *testing.T) {
	input := []byte{0xE0, 0x07, 0x89, 0x05, 0x11, 0x00, 0x00, 0x00, 0x33}

	reader := NewPacketReader(buffer.NewPool(buffer.Config{}))
	pkt, total, err := reader.ReadPacket(bytes.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, len(input), total)

	expected := &Disconnect{
		ReasonCode: DisconnectServerBusy,
		Properties: DisconnectProperties{SessionExpiryInterval: u32Ptr(0x33)},
	}
	assert.Equal(t, expected, pkt)
}

func TestReaderEmptyDisconnectAndAuth(t *testing.T) {
	reader := NewPacketReader(buffer.NewPool(buffer.Config{}))

	pkt, total, err := reader.ReadPacket(bytes.NewReader([]byte{0xE0, 0x00}))
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, &Disconnect{ReasonCode: NormalDisconnect}, pkt)

	pkt, total, err = reader.ReadPacket(bytes.NewReader([]byte{0xF0, 0x00}))
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, &Auth{ReasonCode: AuthSuccess}, pkt)
}

func TestReaderOneByteAtATime(t *testing.T) {
	pkt := &Publish{
		QosPid:    encoding.QosPid1(encoding.Pid(7)),
		TopicName: mustTopicName(t, "a/b"),
		Properties: PublishProperties{
			MessageExpiryInterval: u32Ptr(60),
			UserProperties:        []UserProperty{{Name: "x", Value: "y"}},
		},
		Payload: bytes.Repeat([]byte{0x42}, 200),
	}
	encoded, err := pkt.Encode()
	require.NoError(t, err)

	reader := NewPacketReader(buffer.NewPool(buffer.Config{}))
	decoded, total, err := reader.ReadPacket(iotest.OneByteReader(bytes.NewReader(encoded.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, encoded.Len(), total)
	assert.Equal(t, pkt, decoded)
}

func TestReaderSequentialPackets(t *testing.T) {
	var stream bytes.Buffer
	packets := []Packet{
		&Connack{ReasonCode: ConnectSuccess},
		&Publish{
			QosPid:    encoding.QosPid0(),
			TopicName: mustTopicName(t, "t"),
			Payload:   []byte("p"),
		},
		&Puback{Pid: encoding.Pid(5)},
		&Disconnect{ReasonCode: NormalDisconnect},
	}
	for _, pkt := range packets {
		require.NoError(t, EncodeTo(pkt, &stream))
	}

	reader := NewPacketReader(buffer.NewPool(buffer.Config{}))
	for _, want := range packets {
		pkt, total, err := reader.ReadPacket(&stream)
		require.NoError(t, err)
		expectedLen, err := want.EncodeLen()
		require.NoError(t, err)
		assert.Equal(t, expectedLen, total)
		assert.Equal(t, want, pkt)
	}
}

func TestReaderDeclaredLengthOvershoots(t *testing.T) {
	// CONNACK whose property block runs past the declared remaining
	// length: the block declares 5 bytes but only 1 is left in the body
	input := []byte{0x20, 0x04, 0x00, 0x00, 0x05, 0x11}
	reader := NewPacketReader(buffer.NewPool(buffer.Config{}))
	_, _, err := reader.ReadPacket(bytes.NewReader(input))
	assert.ErrorIs(t, err, encoding.ErrInvalidRemainingLength)
}

func TestReaderLeftoverBodyBytes(t *testing.T) {
	// PUBACK with remaining length 5: pid + reason + empty properties
	// consume 4, one byte is left over
	input := []byte{0x40, 0x05, 0x00, 0x0A, 0x10, 0x00, 0xFF}
	reader := NewPacketReader(buffer.NewPool(buffer.Config{}))
	_, _, err := reader.ReadPacket(bytes.NewReader(input))
	assert.ErrorIs(t, err, encoding.ErrInvalidRemainingLength)
}
