package v3

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axmq/wire/buffer"
	"github.com/axmq/wire/encoding"
)

var errWouldBlock = errors.New("would block")

// flakySource yields one byte per read and reports a transient error
// before every byte, the way a non-blocking socket interleaves
// would-block conditions with data.
type flakySource struct {
	data []byte
	pos  int
	tick bool
}

func (f *flakySource) Read(p []byte) (int, error) {
	if f.pos >= len(f.data) {
		return 0, io.EOF
	}
	f.tick = !f.tick
	if f.tick {
		return 0, errWouldBlock
	}
	p[0] = f.data[f.pos]
	f.pos++
	return 1, nil
}

func TestReaderSinglePacket(t *testing.T) {
	input := []byte{
		0x3D, 0x0C, 0x00, 0x03, 0x61, 0x2F, 0x62, 0x00, 0x0A, 0x68,
		0x65, 0x6C, 0x6C, 0x6F,
	}

	reader := NewPacketReader(buffer.NewPool(buffer.Config{}))
	pkt, total, err := reader.ReadPacket(bytes.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, len(input), total)

	pub, ok := pkt.(*Publish)
	require.True(t, ok)
	assert.Equal(t, "a/b", pub.TopicName.String())
	assert.Equal(t, []byte("hello"), pub.Payload)
	assert.True(t, pub.Dup)
	assert.True(t, pub.Retain)
}

func TestReaderOneByteAtATime(t *testing.T) {
	pkt := &Publish{
		QosPid:    encoding.QosPid1(encoding.Pid(42)),
		TopicName: mustTopicName(t, "sensors/temp"),
		Payload:   bytes.Repeat([]byte{0xAB}, 300),
	}
	encoded, err := pkt.Encode()
	require.NoError(t, err)

	reader := NewPacketReader(buffer.NewPool(buffer.Config{}))
	decoded, total, err := reader.ReadPacket(iotest.OneByteReader(bytes.NewReader(encoded.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, encoded.Len(), total)
	assert.Equal(t, pkt, decoded)
}

func TestReaderResumesAfterTransientError(t *testing.T) {
	pkt := &Subscribe{
		Pid: encoding.Pid(7),
		Topics: []SubscribeTopic{
			{TopicFilter: mustTopicFilter(t, "a/b"), QoS: encoding.QoS1},
		},
	}
	encoded, err := pkt.Encode()
	require.NoError(t, err)

	reader := NewPacketReader(buffer.NewPool(buffer.Config{}))
	src := &flakySource{data: encoded.Bytes()}

	var decoded Packet
	var total int
	for {
		decoded, total, err = reader.ReadPacket(src)
		if err == nil {
			break
		}
		require.ErrorIs(t, err, errWouldBlock)
	}
	assert.Equal(t, encoded.Len(), total)
	assert.Equal(t, pkt, decoded)
}

func TestReaderSequentialPackets(t *testing.T) {
	var stream bytes.Buffer
	packets := []Packet{
		&Pingreq{},
		&Publish{
			QosPid:    encoding.QosPid0(),
			TopicName: mustTopicName(t, "a"),
			Payload:   []byte("x"),
		},
		&Puback{Pid: encoding.Pid(3)},
		&Disconnect{},
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

func TestReaderVoidPacketTotal(t *testing.T) {
	reader := NewPacketReader(buffer.NewPool(buffer.Config{}))
	pkt, total, err := reader.ReadPacket(bytes.NewReader([]byte{0xE0, 0x00}))
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, &Disconnect{}, pkt)
}

func TestReaderEOF(t *testing.T) {
	reader := NewPacketReader(buffer.NewPool(buffer.Config{}))

	// no bytes at all
	_, _, err := reader.ReadPacket(bytes.NewReader(nil))
	var ioErr *encoding.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.ErrorIs(t, ioErr.Err, io.ErrUnexpectedEOF)

	// mid-packet
	reader.Reset()
	_, _, err = reader.ReadPacket(bytes.NewReader([]byte{0x30, 0x05, 0x00}))
	require.ErrorAs(t, err, &ioErr)
	assert.ErrorIs(t, ioErr.Err, io.ErrUnexpectedEOF)
}

func TestReaderRemainingLengthTooLarge(t *testing.T) {
	// SUBSCRIBE with a 3-byte body: the filter is truncated by the
	// declared length
	input := []byte{0x82, 0x03, 0x00, 0x0A, 0x00}
	reader := NewPacketReader(buffer.NewPool(buffer.Config{}))
	_, _, err := reader.ReadPacket(bytes.NewReader(input))
	assert.ErrorIs(t, err, encoding.ErrInvalidRemainingLength)
}

func TestReaderLeftoverBodyBytes(t *testing.T) {
	// CONNACK declares 3 body bytes but its body is always 2
	input := []byte{0x20, 0x03, 0x00, 0x00, 0xFF}
	reader := NewPacketReader(buffer.NewPool(buffer.Config{}))
	_, _, err := reader.ReadPacket(bytes.NewReader(input))
	assert.ErrorIs(t, err, encoding.ErrInvalidRemainingLength)
}

func TestReaderInvalidVarByteInt(t *testing.T) {
	input := []byte{0x10, 0x80, 0x80, 0x80, 0x80}
	reader := NewPacketReader(buffer.NewPool(buffer.Config{}))
	_, _, err := reader.ReadPacket(bytes.NewReader(input))
	assert.ErrorIs(t, err, encoding.ErrInvalidVarByteInt)
}

func TestReaderZeroRemainingWithBody(t *testing.T) {
	// CONNECT with remaining length 0 requires a body
	input := []byte{0x10, 0x00}
	reader := NewPacketReader(buffer.NewPool(buffer.Config{}))
	_, _, err := reader.ReadPacket(bytes.NewReader(input))
	assert.ErrorIs(t, err, encoding.ErrInvalidRemainingLength)
}

func TestReaderChunkedStrategy(t *testing.T) {
	// a pool with a small buffer size forces the chunked read path
	pool := buffer.NewPool(buffer.Config{BufferSize: 16, PoolCapacity: 2, ChunkSize: 8})

	pkt := &Publish{
		QosPid:    encoding.QosPid0(),
		TopicName: mustTopicName(t, "bulk"),
		Payload:   bytes.Repeat([]byte{0x55}, 100),
	}
	encoded, err := pkt.Encode()
	require.NoError(t, err)

	reader := NewPacketReader(pool)
	decoded, total, err := reader.ReadPacket(bytes.NewReader(encoded.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, encoded.Len(), total)
	assert.Equal(t, pkt, decoded)
}
