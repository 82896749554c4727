package pathtrie

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aglyzov/pathtrie-ds/bitset"
)

const (
	formatVersion = 1
	checksumLen   = 8 // xxhash64, big-endian
)

// Encode returns the binary form of the trie. See the package documentation
// for the layout.
func (t *Trie[K, V]) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := t.EncodeTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo writes the binary form of the trie to w. It fails with
// ErrKeyType when K is an interface type.
func (t *Trie[K, V]) EncodeTo(w io.Writer) error {
	if kt := reflect.TypeFor[K](); kt.Kind() == reflect.Interface {
		return fmt.Errorf("%w: %v", ErrKeyType, kt)
	}

	var (
		nodes   = t.preorder()
		present = bitset.New(uint64(len(nodes)))
		digest  = xxhash.New()
		enc     = msgpack.GetEncoder()
	)
	defer msgpack.PutEncoder(enc)

	for i, en := range nodes {
		if en.node.hasVal {
			present.Add(uint64(i))
		}
	}

	enc.Reset(io.MultiWriter(w, digest))
	enc.SetSortMapKeys(true)

	// header
	if err := enc.EncodeUint(formatVersion); err != nil {
		return err
	}
	if err := enc.EncodeUint(uint64(len(nodes))); err != nil {
		return err
	}
	if err := enc.EncodeUint(uint64(t.size)); err != nil {
		return err
	}
	words := present.Words()
	// pad to the declared length: trailing nodes may have no values
	for len(words) < bitset.WordsFor(uint64(len(nodes))) {
		words = append(words, 0)
	}
	if err := enc.EncodeArrayLen(len(words)); err != nil {
		return err
	}
	for _, word := range words {
		if err := enc.EncodeUint(word); err != nil {
			return err
		}
	}

	// nodes
	for i, en := range nodes {
		if i > 0 {
			if err := enc.Encode(en.key); err != nil {
				return fmt.Errorf("pathtrie: failed to encode key %v: %w", en.key, err)
			}
		}
		if err := enc.EncodeUint(uint64(len(en.node.children))); err != nil {
			return err
		}
		if en.node.hasVal {
			if err := enc.Encode(en.node.val); err != nil {
				return fmt.Errorf("pathtrie: failed to encode value %T: %w", en.node.val, err)
			}
		}
	}

	var sum [checksumLen]byte
	binary.BigEndian.PutUint64(sum[:], digest.Sum64())
	_, err := w.Write(sum[:])

	return err
}

// encNode is a node in encoding order together with the key leading to it.
type encNode[K comparable, V any] struct {
	key  K
	node *node[K, V]
}

// preorder lists all nodes, the root first, each followed by its subtrees.
// The list fixes the sibling order for the whole encoding.
func (t *Trie[K, V]) preorder() []encNode[K, V] {
	var (
		nodes   []encNode[K, V]
		toVisit = []encNode[K, V]{{node: &t.root}}
		edges   []edge[K, V]
	)

	for l := len(toVisit); l > 0; l = len(toVisit) {
		en := toVisit[l-1]
		toVisit = toVisit[:l-1]
		nodes = append(nodes, en)

		edges = edges[:0]
		for key, child := range en.node.children {
			edges = append(edges, edge[K, V]{key, child})
		}
		// push in reverse so the first edge is visited first
		for i := len(edges) - 1; i >= 0; i-- {
			toVisit = append(toVisit, encNode[K, V]{edges[i].key, edges[i].node})
		}
	}

	return nodes
}

// Decode reconstructs a trie from the output of Encode. Malformed, truncated
// or corrupted input yields a *DecodeError; Decode does not panic on bad
// data. Interface key types are refused with ErrKeyType, as Encode does.
func Decode[K comparable, V any](data []byte) (*Trie[K, V], error) {
	if kt := reflect.TypeFor[K](); kt.Kind() == reflect.Interface {
		return nil, decodeErrf(data, 0, ErrKeyType, "key type %v", kt)
	}
	if len(data) < checksumLen {
		return nil, decodeErrf(data, len(data), ErrTruncated, "need at least %d bytes", checksumLen)
	}

	var (
		body = data[:len(data)-checksumLen]
		sum  = binary.BigEndian.Uint64(data[len(body):])
	)

	if actual := xxhash.Sum64(body); actual != sum {
		return nil, decodeErrf(data, len(body), ErrChecksum, "expected %016x, got %016x", sum, actual)
	}

	d := decoder[K, V]{data: data, body: body}
	d.r.Reset(body)
	d.dec = msgpack.GetDecoder()
	d.dec.Reset(&d.r)
	defer msgpack.PutDecoder(d.dec)

	return d.decode()
}

type decoder[K comparable, V any] struct {
	data []byte
	body []byte
	r    bytes.Reader
	dec  *msgpack.Decoder

	count   uint64 // declared number of nodes
	idx     uint64 // pre-order index of the next node
	present *bitset.Set
	trie    *Trie[K, V]
}

// decFrame is a decoded node still waiting for some of its children.
type decFrame[K comparable, V any] struct {
	node    *node[K, V]
	pending uint64
}

func (d *decoder[K, V]) off() int {
	return len(d.body) - d.r.Len()
}

func (d *decoder[K, V]) failf(err error, format string, args ...any) error {
	kind := ErrMalformed
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		kind = ErrTruncated
	}
	if err != nil {
		err = fmt.Errorf("%w: %w", kind, err)
	} else {
		err = kind
	}
	return decodeErrf(d.data, d.off(), err, format, args...)
}

func (d *decoder[K, V]) decode() (*Trie[K, V], error) {
	if err := d.decodeHeader(); err != nil {
		return nil, err
	}

	d.trie = New[K, V]()

	pending, err := d.decodeNode(&d.trie.root)
	if err != nil {
		return nil, err
	}

	stack := []decFrame[K, V]{{&d.trie.root, pending}}

	for l := len(stack); l > 0; l = len(stack) {
		top := &stack[l-1]
		if top.pending == 0 {
			stack = stack[:l-1]
			continue
		}
		top.pending--

		var key K
		if err := d.dec.Decode(&key); err != nil {
			return nil, d.failf(err, "failed to decode key of node %d", d.idx)
		}
		// a struct key with an interface field may come back holding a slice
		if rv := reflect.ValueOf(key); rv.IsValid() && !rv.Comparable() {
			return nil, d.failf(nil, "key of node %d is not hashable", d.idx)
		}
		if _, ok := top.node.children[key]; ok {
			return nil, decodeErrf(d.data, d.off(), ErrDuplicateKey, "key %v repeated", key)
		}

		child := &node[K, V]{}
		if top.node.children == nil {
			top.node.children = make(map[K]*node[K, V])
		}
		top.node.children[key] = child

		if pending, err = d.decodeNode(child); err != nil {
			return nil, err
		}
		stack = append(stack, decFrame[K, V]{child, pending})
	}

	if d.idx != d.count {
		return nil, d.failf(nil, "declared %d nodes, found %d", d.count, d.idx)
	}
	if d.r.Len() != 0 {
		return nil, d.failf(nil, "%d trailing bytes", d.r.Len())
	}

	return d.trie, nil
}

func (d *decoder[K, V]) decodeHeader() error {
	version, err := d.dec.DecodeUint64()
	if err != nil {
		return d.failf(err, "failed to decode version")
	}
	if version != formatVersion {
		return decodeErrf(d.data, d.off(), ErrVersion, "version %d", version)
	}

	if d.count, err = d.dec.DecodeUint64(); err != nil {
		return d.failf(err, "failed to decode node count")
	}
	// every node takes at least one byte
	if d.count == 0 || d.count > uint64(len(d.body)) {
		return d.failf(nil, "impossible node count %d", d.count)
	}

	values, err := d.dec.DecodeUint64()
	if err != nil {
		return d.failf(err, "failed to decode value count")
	}

	n, err := d.dec.DecodeArrayLen()
	if err != nil {
		return d.failf(err, "failed to decode presence bitmap")
	}
	if n != bitset.WordsFor(d.count) {
		return d.failf(nil, "presence bitmap has %d words, %d nodes need %d", n, d.count, bitset.WordsFor(d.count))
	}

	words := make([]uint64, n)
	for i := range words {
		if words[i], err = d.dec.DecodeUint64(); err != nil {
			return d.failf(err, "failed to decode presence word %d", i)
		}
	}
	d.present = bitset.FromWords(words)

	if total := d.present.Len(); total != values {
		return d.failf(nil, "declared %d values, bitmap marks %d", values, total)
	}
	if stray := d.present.Len() - d.present.Rank(d.count); stray != 0 {
		return d.failf(nil, "%d presence bits beyond node %d", stray, d.count)
	}

	return nil
}

// decodeNode fills n with the next node's value and returns its child count.
func (d *decoder[K, V]) decodeNode(n *node[K, V]) (uint64, error) {
	if d.idx >= d.count {
		return 0, d.failf(nil, "more than %d declared nodes", d.count)
	}

	children, err := d.dec.DecodeUint64()
	if err != nil {
		return 0, d.failf(err, "failed to decode child count of node %d", d.idx)
	}
	if children > d.count-d.idx-1 {
		return 0, d.failf(nil, "node %d claims %d children, only %d nodes left", d.idx, children, d.count-d.idx-1)
	}

	if d.present.Has(d.idx) {
		if err := d.dec.Decode(&n.val); err != nil {
			return 0, d.failf(err, "failed to decode value of node %d", d.idx)
		}
		n.hasVal = true
		d.trie.size++
	}
	d.idx++

	return children, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (t *Trie[K, V]) MarshalBinary() ([]byte, error) {
	return t.Encode()
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. It replaces the
// contents of t; iterators obtained before the call become invalid.
func (t *Trie[K, V]) UnmarshalBinary(data []byte) error {
	decoded, err := Decode[K, V](data)
	if err != nil {
		return err
	}
	gen := t.gen
	*t = *decoded
	t.gen = gen + 1
	return nil
}
