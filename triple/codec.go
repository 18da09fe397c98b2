package triple

import (
	"encoding/binary"
	"fmt"

	"github.com/c360/hexastore/errors"
	"github.com/c360/hexastore/value"
)

// Payload layout: five length-prefixed fields, each preceded by a
// 4-byte little-endian length.
//
//  1. subject UTF-8
//  2. predicate UTF-8
//  3. is_id, one byte (0 or 1)
//  4. type tag, two bytes little-endian
//  5. object raw UTF-8
//
// The payload is stored as the value under every index key so that a
// key hit restores the triple with full fidelity.
const (
	lenWidth    = 4
	isIDWidth   = 1
	typeWidth   = 2
	fixedFields = 3*lenWidth + isIDWidth + lenWidth + typeWidth + lenWidth
)

// Encode serializes a triple into its self-describing byte string.
func Encode(t Triple) []byte {
	buf := make([]byte, 0, fixedFields+len(t.Subject)+len(t.Predicate)+len(t.Object.Raw))

	buf = appendField(buf, []byte(t.Subject))
	buf = appendField(buf, []byte(t.Predicate))

	isID := byte(0)
	if t.Object.IsID {
		isID = 1
	}
	buf = appendField(buf, []byte{isID})

	var tag [typeWidth]byte
	binary.LittleEndian.PutUint16(tag[:], uint16(t.Object.Type))
	buf = appendField(buf, tag[:])

	buf = appendField(buf, []byte(t.Object.Raw))
	return buf
}

// Decode is the inverse of Encode. It fails with ErrCorruptTriple if
// any length overruns the buffer, the is_id byte is not 0 or 1, or the
// type tag is unknown.
func Decode(buf []byte) (Triple, error) {
	var t Triple

	subject, rest, err := readField(buf)
	if err != nil {
		return t, corrupt("subject", err)
	}
	predicate, rest, err := readField(rest)
	if err != nil {
		return t, corrupt("predicate", err)
	}
	isIDField, rest, err := readField(rest)
	if err != nil {
		return t, corrupt("is_id", err)
	}
	if len(isIDField) != isIDWidth || isIDField[0] > 1 {
		return t, corrupt("is_id", fmt.Errorf("invalid flag bytes %v", isIDField))
	}
	tagField, rest, err := readField(rest)
	if err != nil {
		return t, corrupt("type tag", err)
	}
	if len(tagField) != typeWidth {
		return t, corrupt("type tag", fmt.Errorf("tag field is %d bytes", len(tagField)))
	}
	tag := value.Type(binary.LittleEndian.Uint16(tagField))
	if !tag.IsValid() {
		return t, corrupt("type tag", fmt.Errorf("unknown tag %d", tag))
	}
	raw, rest, err := readField(rest)
	if err != nil {
		return t, corrupt("object", err)
	}
	if len(rest) != 0 {
		return t, corrupt("payload", fmt.Errorf("%d trailing bytes", len(rest)))
	}

	t.Subject = string(subject)
	t.Predicate = string(predicate)
	t.Object = value.Value{
		Raw:  string(raw),
		Type: tag,
		IsID: isIDField[0] == 1,
	}
	return t, nil
}

func appendField(buf, field []byte) []byte {
	var length [lenWidth]byte
	binary.LittleEndian.PutUint32(length[:], uint32(len(field)))
	buf = append(buf, length[:]...)
	return append(buf, field...)
}

func readField(buf []byte) (field, rest []byte, err error) {
	if len(buf) < lenWidth {
		return nil, nil, fmt.Errorf("truncated length prefix, %d bytes left", len(buf))
	}
	n := binary.LittleEndian.Uint32(buf[:lenWidth])
	buf = buf[lenWidth:]
	if uint32(len(buf)) < n {
		return nil, nil, fmt.Errorf("field length %d overruns %d remaining bytes", n, len(buf))
	}
	return buf[:n], buf[n:], nil
}

func corrupt(field string, cause error) error {
	return fmt.Errorf("%w: %s: %v", errors.ErrCorruptTriple, field, cause)
}
