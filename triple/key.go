package triple

// Order identifies one of the six index permutations of a triple's
// components. The byte values lead every index key on disk and MUST NOT
// be reordered or reused.
type Order uint8

const (
	// SPO orders by subject, predicate, object.
	SPO Order = iota
	// SOP orders by subject, object, predicate.
	SOP
	// PSO orders by predicate, subject, object.
	PSO
	// POS orders by predicate, object, subject.
	POS
	// OSP orders by object, subject, predicate.
	OSP
	// OPS orders by object, predicate, subject.
	OPS

	// orderCount is the number of index permutations.
	orderCount = 6
)

// Orders lists all six permutations in key-byte order.
func Orders() [orderCount]Order {
	return [orderCount]Order{SPO, SOP, PSO, POS, OSP, OPS}
}

// String returns the permutation name.
func (o Order) String() string {
	switch o {
	case SPO:
		return "spo"
	case SOP:
		return "sop"
	case PSO:
		return "pso"
	case POS:
		return "pos"
	case OSP:
		return "osp"
	case OPS:
		return "ops"
	default:
		return "unknown"
	}
}

// Parts returns the triple's components in this permutation's order.
// Only the object's raw text participates in keys; type tag and is_id
// live in the payload.
func (o Order) Parts(t Triple) (string, string, string) {
	s, p, obj := t.Subject, t.Predicate, t.Object.Raw
	switch o {
	case SPO:
		return s, p, obj
	case SOP:
		return s, obj, p
	case PSO:
		return p, s, obj
	case POS:
		return p, obj, s
	case OSP:
		return obj, s, p
	default:
		return obj, p, s
	}
}

// delim separates the scope and the three key parts. A null byte never
// appears inside canonicalized UTF-8 parts, so lexicographic ordering
// of whole keys equals ordering by (part1, part2, part3): for any
// strings a and b with a a proper prefix of b, "a\x00..." sorts before
// "b\x00...".
const delim = 0x00

// Key encodes the full index key for a triple:
//
//	order_byte ‖ graph_tag ‖ store_id ‖ 0x00 ‖ part1 ‖ 0x00 ‖ part2 ‖ 0x00 ‖ part3
//
// The store ID and all parts must not contain the null byte.
func Key(o Order, graph byte, storeID string, t Triple) []byte {
	p1, p2, p3 := o.Parts(t)
	key := scope(o, graph, storeID, len(p1)+len(p2)+len(p3)+3)
	key = append(key, p1...)
	key = append(key, delim)
	key = append(key, p2...)
	key = append(key, delim)
	key = append(key, p3...)
	return key
}

// Prefix encodes the scan prefix that bounds all keys whose leading
// parts equal the given ones. Zero parts bounds the whole (store,
// graph, order) keyspace; one or two parts bound progressively tighter
// ranges ordered by the remaining components.
func Prefix(o Order, graph byte, storeID string, parts ...string) []byte {
	size := 0
	for _, p := range parts {
		size += len(p) + 1
	}
	key := scope(o, graph, storeID, size)
	for _, p := range parts {
		key = append(key, p...)
		key = append(key, delim)
	}
	return key
}

// Successor returns the smallest key strictly greater than k. Seeking
// to it resumes a scan just past a continuation triple's key.
func Successor(k []byte) []byte {
	succ := make([]byte, len(k)+1)
	copy(succ, k)
	return succ
}

func scope(o Order, graph byte, storeID string, extra int) []byte {
	key := make([]byte, 0, 2+len(storeID)+1+extra)
	key = append(key, byte(o), graph)
	key = append(key, storeID...)
	return append(key, delim)
}
