package encoding

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteIntegers(t *testing.T) {
	buf := WriteU8(nil, 0xAB)
	buf = WriteU16(buf, 0x1234)
	buf = WriteU32(buf, 0xDEADBEEF)
	assert.Equal(t, []byte{0xAB, 0x12, 0x34, 0xDE, 0xAD, 0xBE, 0xEF}, buf)

	r := bytes.NewReader(buf)
	b, err := ReadU8(r)
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), b)

	v16, err := ReadU16(r)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), v16)

	v32, err := ReadU32(r)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), v32)

	_, err = ReadU8(r)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestReadWriteBytes(t *testing.T) {
	buf := WriteBytes(nil, []byte("payload"))
	assert.Equal(t, []byte{0x00, 0x07, 'p', 'a', 'y', 'l', 'o', 'a', 'd'}, buf)

	data, err := ReadBytes(bytes.NewReader(buf))
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	// empty blob
	buf = WriteBytes(nil, nil)
	assert.Equal(t, []byte{0x00, 0x00}, buf)
	data, err = ReadBytes(bytes.NewReader(buf))
	require.NoError(t, err)
	assert.Empty(t, data)

	// truncated content
	_, err = ReadBytes(bytes.NewReader([]byte{0x00, 0x05, 'a', 'b'}))
	assert.ErrorIs(t, err, ErrUnexpectedEOF)

	// truncated length prefix
	_, err = ReadBytes(bytes.NewReader([]byte{0x00}))
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestReadWriteString(t *testing.T) {
	buf := WriteString(nil, "a/b")
	assert.Equal(t, []byte{0x00, 0x03, 'a', '/', 'b'}, buf)

	s, err := ReadString(bytes.NewReader(buf))
	require.NoError(t, err)
	assert.Equal(t, "a/b", s)

	// non-UTF-8 content is rejected
	_, err = ReadString(bytes.NewReader([]byte{0x00, 0x02, 0xFF, 0xFC}))
	assert.ErrorIs(t, err, ErrInvalidString)
}

func TestReadRawHeader(t *testing.T) {
	control, remaining, n, err := ReadRawHeader(bytes.NewReader([]byte{0x3D, 0x0C}))
	require.NoError(t, err)
	assert.Equal(t, byte(0x3D), control)
	assert.Equal(t, uint32(12), remaining)
	assert.Equal(t, 1, n)

	control, remaining, n, err = ReadRawHeader(bytes.NewReader([]byte{0x10, 0x80, 0x01}))
	require.NoError(t, err)
	assert.Equal(t, byte(0x10), control)
	assert.Equal(t, uint32(128), remaining)
	assert.Equal(t, 2, n)

	_, _, _, err = ReadRawHeader(bytes.NewReader([]byte{0x10, 0x80, 0x80, 0x80, 0x80}))
	assert.ErrorIs(t, err, ErrInvalidVarByteInt)

	_, _, _, err = ReadRawHeader(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestVarBytes(t *testing.T) {
	d := Dynamic([]byte{1, 2, 3})
	assert.Equal(t, []byte{1, 2, 3}, d.Bytes())
	assert.Equal(t, 3, d.Len())

	f2 := Fixed2(0xC0, 0)
	assert.Equal(t, []byte{0xC0, 0}, f2.Bytes())
	assert.Equal(t, 2, f2.Len())

	f4 := Fixed4([4]byte{0x40, 2, 0x00, 0x0A})
	assert.Equal(t, []byte{0x40, 2, 0x00, 0x0A}, f4.Bytes())
	assert.Equal(t, 4, f4.Len())
}
