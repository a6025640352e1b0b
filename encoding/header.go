package encoding

import "io"

// ReadRawHeader reads the control byte and the remaining-length
// variable byte integer. It returns the control byte, the remaining
// length and the number of bytes consumed for the length field.
func ReadRawHeader(r io.Reader) (byte, uint32, int, error) {
	control, err := ReadU8(r)
	if err != nil {
		return 0, 0, 0, err
	}
	remaining, n, err := ReadVarByteInt(r)
	if err != nil {
		return 0, 0, 0, err
	}
	return control, remaining, n, nil
}

// VarBytes is an encoded packet: a dynamic buffer for variable-size
// packets, or one of two small fixed forms for the wholly-static
// encodings (void packets and v3 acknowledgements carrying a single
// packet identifier).
type VarBytes struct {
	fixed [4]byte
	size  uint8 // 2 or 4; 0 means dynamic
	data  []byte
}

// Dynamic wraps a dynamically sized encoding.
func Dynamic(data []byte) VarBytes {
	return VarBytes{data: data}
}

// Fixed2 builds the two byte form: control byte + zero remaining
// length.
func Fixed2(b0, b1 byte) VarBytes {
	return VarBytes{fixed: [4]byte{b0, b1}, size: 2}
}

// Fixed4 builds the four byte form: control byte, remaining length 2
// and two body bytes (a packet identifier, or a v3 CONNACK's flags and
// return code).
func Fixed4(b [4]byte) VarBytes {
	return VarBytes{fixed: b, size: 4}
}

// Bytes returns the encoded packet as a slice.
func (v VarBytes) Bytes() []byte {
	if v.size == 0 {
		return v.data
	}
	return v.fixed[:v.size]
}

// Len returns the encoded size in bytes.
func (v VarBytes) Len() int {
	if v.size == 0 {
		return len(v.data)
	}
	return int(v.size)
}

// EncodeDynamic assembles a dynamic packet encoding: control byte,
// remaining length and the body produced by fill. fill appends the
// body to the buffer it is given and returns the extended slice.
func EncodeDynamic(control byte, bodyLen int, fill func([]byte) ([]byte, error)) (VarBytes, error) {
	total, err := TotalLen(bodyLen)
	if err != nil {
		return VarBytes{}, err
	}
	buf := make([]byte, 0, total)
	buf = append(buf, control)
	buf, err = WriteVarByteInt(buf, uint32(bodyLen))
	if err != nil {
		return VarBytes{}, err
	}
	buf, err = fill(buf)
	if err != nil {
		return VarBytes{}, err
	}
	return Dynamic(buf), nil
}

// EncodeWithPid builds the fixed four byte form for a packet whose
// body is a single packet identifier.
func EncodeWithPid(control byte, pid Pid) VarBytes {
	v := pid.Value()
	return Fixed4([4]byte{control, 2, byte(v >> 8), byte(v)})
}
