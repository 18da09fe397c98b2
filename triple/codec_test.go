package triple

import (
	"encoding/binary"
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/hexastore/errors"
	"github.com/c360/hexastore/value"
)

func TestCodecRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		t    Triple
	}{
		{"string attribute", New("a1", "name", "Alice")},
		{"integer attribute", New("a1", "age", "30")},
		{"float attribute", New("sensor-1", "reading", "98.6")},
		{"boolean attribute", New("a1", "active", "true")},
		{"date attribute", New("a1", "created", "2024-06-01T12:00:00Z")},
		{"null attribute", New("a1", "nickname", "null")},
		{"edge", Edge("a1", "knows", "a2")},
		{"unicode strings", New("subjekt-ü", "präd.icate", "wert-ß")},
		{"empty object", Triple{Subject: "s", Predicate: "p", Object: value.String("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := Decode(Encode(tt.t))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.t, decoded); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeCorruptPayloads(t *testing.T) {
	valid := Encode(New("a1", "name", "Alice"))

	t.Run("truncated buffer", func(t *testing.T) {
		for cut := 1; cut < len(valid); cut++ {
			_, err := Decode(valid[:cut])
			require.Error(t, err, "cut at %d", cut)
			assert.True(t, stderrors.Is(err, errors.ErrCorruptTriple))
		}
	})

	t.Run("empty buffer", func(t *testing.T) {
		_, err := Decode(nil)
		assert.True(t, stderrors.Is(err, errors.ErrCorruptTriple))
	})

	t.Run("length overrun", func(t *testing.T) {
		corrupt := make([]byte, len(valid))
		copy(corrupt, valid)
		binary.LittleEndian.PutUint32(corrupt[:4], 1<<30)
		_, err := Decode(corrupt)
		assert.True(t, stderrors.Is(err, errors.ErrCorruptTriple))
	})

	t.Run("bad is_id byte", func(t *testing.T) {
		corrupt := corruptIsID(t, New("a1", "name", "Alice"), 2)
		_, err := Decode(corrupt)
		assert.True(t, stderrors.Is(err, errors.ErrCorruptTriple))
	})

	t.Run("unknown type tag", func(t *testing.T) {
		tr := New("a1", "name", "Alice")
		tr.Object.Type = value.Type(99)
		_, err := Decode(Encode(tr))
		assert.True(t, stderrors.Is(err, errors.ErrCorruptTriple))
	})

	t.Run("trailing garbage", func(t *testing.T) {
		corrupt := append(append([]byte{}, valid...), 0xAB)
		_, err := Decode(corrupt)
		assert.True(t, stderrors.Is(err, errors.ErrCorruptTriple))
	})
}

// corruptIsID rewrites the is_id field byte of an encoded triple.
func corruptIsID(t *testing.T, tr Triple, flag byte) []byte {
	t.Helper()
	buf := Encode(tr)
	// subject field, predicate field, then the is_id length prefix.
	off := 4 + len(tr.Subject) + 4 + len(tr.Predicate) + 4
	require.Less(t, off, len(buf))
	buf[off] = flag
	return buf
}
