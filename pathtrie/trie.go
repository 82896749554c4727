package pathtrie

// Item is a value together with the path of keys that leads to it.
type Item[K comparable, V any] struct {
	Path []K
	Val  V
}

type node[K comparable, V any] struct {
	val      V
	hasVal   bool
	children map[K]*node[K, V] // nil until the first child is added
}

// Trie maps paths of keys to values. The zero value is an empty trie.
type Trie[K comparable, V any] struct {
	root node[K, V]
	size int
	// gen is bumped on every mutation so that iterators can detect it
	gen uint64
}

// New returns an empty Trie: a root node with no value and no children.
func New[K comparable, V any]() *Trie[K, V] {
	return &Trie[K, V]{}
}

// NewWithValue returns a Trie whose root (the empty path) holds val.
func NewWithValue[K comparable, V any](val V) *Trie[K, V] {
	t := New[K, V]()
	t.root.val = val
	t.root.hasVal = true
	t.size = 1
	return t
}

// FromItems returns a Trie holding the given items. It fails on the first
// item whose path is already taken.
func FromItems[K comparable, V any](items ...Item[K, V]) (*Trie[K, V], error) {
	t := New[K, V]()
	for _, item := range items {
		if err := t.Insert(item.Path, item.Val); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Len returns the number of values stored in the trie.
func (t *Trie[K, V]) Len() int {
	return t.size
}

func (t *Trie[K, V]) Empty() bool {
	return t.size == 0
}

// Insert stores val at path, creating branch nodes along the way as needed.
// The empty path refers to the root.
//
// Inserting into a path that already holds a value is a caller bug: it
// returns a *PathError wrapping ErrDuplicatePath and the stored value is
// left untouched.
func (t *Trie[K, V]) Insert(path []K, val V) error {
	n := &t.root

	for _, key := range path {
		child, ok := n.children[key]
		if !ok {
			if n.children == nil {
				n.children = make(map[K]*node[K, V])
			}
			child = &node[K, V]{}
			n.children[key] = child
			t.gen++
		}
		n = child
	}

	if n.hasVal {
		return pathErr("insert", path, ErrDuplicatePath)
	}

	n.val = val
	n.hasVal = true
	t.size++
	t.gen++

	return nil
}

// MustInsert is like Insert but panics if path already holds a value.
func (t *Trie[K, V]) MustInsert(path []K, val V) {
	if err := t.Insert(path, val); err != nil {
		panic(err)
	}
}

// Fetch returns the value stored exactly at path. It reports false when the
// path was never inserted, when it runs through an unknown key, or when it
// only names a branch node without a value of its own.
func (t *Trie[K, V]) Fetch(path []K) (val V, ok bool) {
	n := t.find(path)
	if n == nil || !n.hasVal {
		return
	}
	return n.val, true
}

// Has reports whether a value is stored exactly at path.
func (t *Trie[K, V]) Has(path []K) bool {
	n := t.find(path)
	return n != nil && n.hasVal
}

func (t *Trie[K, V]) find(path []K) *node[K, V] {
	n := &t.root
	for _, key := range path {
		if n = n.children[key]; n == nil {
			return nil
		}
	}
	return n
}

// Merge inserts every item of other into t and returns t. It stops at the
// first path that t already holds a value for; items merged before that
// point stay in t.
func (t *Trie[K, V]) Merge(other *Trie[K, V]) (*Trie[K, V], error) {
	if other == nil {
		return t, nil
	}
	if other == t {
		if t.Empty() {
			return t, nil
		}
		// every path collides with itself
		it := t.Iter()
		it.Next()
		return t, pathErr("merge", it.path, ErrDuplicatePath)
	}
	for it := other.Iter(); it.Next(); {
		if err := t.Insert(it.path, it.val); err != nil {
			return t, pathErr("merge", it.path, ErrDuplicatePath)
		}
	}
	return t, nil
}

// Items returns every stored item in traversal order.
func (t *Trie[K, V]) Items() []Item[K, V] {
	items := make([]Item[K, V], 0, t.size)
	for it := t.Iter(); it.Next(); {
		items = append(items, it.Item())
	}
	return items
}
