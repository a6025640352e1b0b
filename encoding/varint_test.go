package encoding

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteVarByteInt(t *testing.T) {
	tests := []struct {
		name     string
		input    uint32
		expected []byte
		wantErr  error
	}{
		{name: "zero", input: 0, expected: []byte{0x00}},
		{name: "one", input: 1, expected: []byte{0x01}},
		{name: "max_single_byte", input: 127, expected: []byte{0x7F}},
		{name: "min_two_byte", input: 128, expected: []byte{0x80, 0x01}},
		{name: "max_two_byte", input: 16383, expected: []byte{0xFF, 0x7F}},
		{name: "min_three_byte", input: 16384, expected: []byte{0x80, 0x80, 0x01}},
		{name: "max_three_byte", input: 2097151, expected: []byte{0xFF, 0xFF, 0x7F}},
		{name: "min_four_byte", input: 2097152, expected: []byte{0x80, 0x80, 0x80, 0x01}},
		{name: "max_value", input: 268435455, expected: []byte{0xFF, 0xFF, 0xFF, 0x7F}},
		{name: "exceeds_maximum", input: 268435456, wantErr: ErrInvalidVarByteInt},
		{name: "far_exceeds_maximum", input: 0xFFFFFFFF, wantErr: ErrInvalidVarByteInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := WriteVarByteInt(nil, tt.input)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)

			// Verify round-trip
			decoded, n, err := ReadVarByteInt(bytes.NewReader(result))
			require.NoError(t, err)
			assert.Equal(t, tt.input, decoded, "round-trip decode failed")
			assert.Equal(t, len(result), n)
		})
	}
}

func TestReadVarByteInt(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected uint32
		size     int
		wantErr  error
	}{
		{name: "zero", input: []byte{0x00}, expected: 0, size: 1},
		{name: "max_single_byte", input: []byte{0x7F}, expected: 127, size: 1},
		{name: "min_two_byte", input: []byte{0x80, 0x01}, expected: 128, size: 2},
		{name: "max_two_byte", input: []byte{0xFF, 0x7F}, expected: 16383, size: 2},
		{name: "min_three_byte", input: []byte{0x80, 0x80, 0x01}, expected: 16384, size: 3},
		{name: "max_three_byte", input: []byte{0xFF, 0xFF, 0x7F}, expected: 2097151, size: 3},
		{name: "min_four_byte", input: []byte{0x80, 0x80, 0x80, 0x01}, expected: 2097152, size: 4},
		{name: "max_value", input: []byte{0xFF, 0xFF, 0xFF, 0x7F}, expected: 268435455, size: 4},
		{name: "trailing_bytes_ignored", input: []byte{0x05, 0xAA, 0xBB}, expected: 5, size: 1},
		{
			name:    "fifth_continuation_byte",
			input:   []byte{0x80, 0x80, 0x80, 0x80, 0x01},
			wantErr: ErrInvalidVarByteInt,
		},
		{name: "truncated", input: []byte{0x80, 0x80}, wantErr: ErrUnexpectedEOF},
		{name: "empty", input: []byte{}, wantErr: ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, n, err := ReadVarByteInt(bytes.NewReader(tt.input))

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
			assert.Equal(t, tt.size, n)
		})
	}
}

func TestSizeVarByteInt(t *testing.T) {
	tests := []struct {
		value   int
		size    int
		wantErr error
	}{
		{value: 0, size: 1},
		{value: 127, size: 1},
		{value: 128, size: 2},
		{value: 16383, size: 2},
		{value: 16384, size: 3},
		{value: 2097151, size: 3},
		{value: 2097152, size: 4},
		{value: 268435455, size: 4},
		{value: 268435456, wantErr: ErrInvalidVarByteInt},
		{value: -1, wantErr: ErrInvalidVarByteInt},
	}

	for _, tt := range tests {
		n, err := SizeVarByteInt(tt.value)
		if tt.wantErr != nil {
			assert.ErrorIs(t, err, tt.wantErr, "value %d", tt.value)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.size, n, "value %d", tt.value)
	}
}

func TestTotalLen(t *testing.T) {
	tests := []struct {
		remaining int
		total     int
		wantErr   error
	}{
		{remaining: 0, total: 2},
		{remaining: 127, total: 129},
		{remaining: 128, total: 131},
		{remaining: 16383, total: 16386},
		{remaining: 16384, total: 16388},
		{remaining: 2097151, total: 2097155},
		{remaining: 2097152, total: 2097157},
		{remaining: 268435455, total: 268435460},
		{remaining: 268435456, wantErr: ErrInvalidVarByteInt},
	}

	for _, tt := range tests {
		total, err := TotalLen(tt.remaining)
		if tt.wantErr != nil {
			assert.ErrorIs(t, err, tt.wantErr, "remaining %d", tt.remaining)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.total, total, "remaining %d", tt.remaining)
	}
}
