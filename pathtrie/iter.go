package pathtrie

import "iter"

// edge is a child of a node as captured by a frame.
type edge[K comparable, V any] struct {
	key  K
	node *node[K, V]
}

// frame is the traversal state of one node on the path being visited.
type frame[K comparable, V any] struct {
	node    *node[K, V]
	visited bool         // own value considered, edges captured
	edges   []edge[K, V] // children in the order they will be visited
	next    int          // index of the next edge to descend into
}

// PathIterator walks a Trie in pre-order, one value per Next call.
//
// It keeps an explicit stack of frames and a stack of keys such that the keys
// always equal the path to the node on top of the frame stack. A
// PathIterator is single-pass: once Next returns false it keeps returning
// false. The trie must not be modified while the iterator is in use; Next
// panics if it detects a modification.
type PathIterator[K comparable, V any] struct {
	trie   *Trie[K, V]
	gen    uint64
	frames []frame[K, V]
	path   []K
	val    V
}

// Iter returns a new PathIterator positioned before the first item.
func (t *Trie[K, V]) Iter() *PathIterator[K, V] {
	it := &PathIterator[K, V]{
		trie:   t,
		gen:    t.gen,
		frames: make([]frame[K, V], 1, 8),
		path:   make([]K, 0, 8),
	}
	it.frames[0].node = &t.root
	return it
}

// Next advances to the next stored value and reports whether there is one.
func (it *PathIterator[K, V]) Next() bool {
	if len(it.frames) > 0 && it.trie.gen != it.gen {
		panic("pathtrie: trie modified during iteration")
	}

	for len(it.frames) > 0 {
		top := &it.frames[len(it.frames)-1]

		if !top.visited {
			// first pull at this node: capture children, then yield own value
			top.visited = true
			if n := len(top.node.children); n > 0 {
				top.edges = make([]edge[K, V], 0, n)
				for key, child := range top.node.children {
					top.edges = append(top.edges, edge[K, V]{key, child})
				}
			}
			if top.node.hasVal {
				it.val = top.node.val
				return true
			}
			continue
		}

		if top.next < len(top.edges) {
			// descend into the next child
			e := top.edges[top.next]
			top.next++
			it.path = append(it.path, e.key)
			it.frames = append(it.frames, frame[K, V]{node: e.node})
			continue
		}

		// this node is exhausted - go back up
		it.frames[len(it.frames)-1] = frame[K, V]{}
		it.frames = it.frames[:len(it.frames)-1]
		if len(it.frames) > 0 {
			it.path = it.path[:len(it.frames)-1]
		}
	}

	var zero V
	it.val = zero
	it.path = it.path[:0]

	return false
}

// Path returns a copy of the path of the current item.
func (it *PathIterator[K, V]) Path() []K {
	path := make([]K, len(it.path))
	copy(path, it.path)
	return path
}

// Value returns the value of the current item.
func (it *PathIterator[K, V]) Value() V {
	return it.val
}

// Item returns the current item.
func (it *PathIterator[K, V]) Item() Item[K, V] {
	return Item[K, V]{it.Path(), it.val}
}

// Depth returns the length of the current path.
func (it *PathIterator[K, V]) Depth() int {
	return len(it.path)
}

// All returns a sequence of every (path, value) pair in pre-order.
// Each yielded path is a fresh slice.
func (t *Trie[K, V]) All() iter.Seq2[[]K, V] {
	return func(yield func([]K, V) bool) {
		for it := t.Iter(); it.Next(); {
			if !yield(it.Path(), it.val) {
				return
			}
		}
	}
}

// Keys returns a sequence of every stored path in pre-order.
func (t *Trie[K, V]) Keys() iter.Seq[[]K] {
	return func(yield func([]K) bool) {
		for it := t.Iter(); it.Next(); {
			if !yield(it.Path()) {
				return
			}
		}
	}
}

// Values returns a sequence of every stored value in pre-order.
func (t *Trie[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for it := t.Iter(); it.Next(); {
			if !yield(it.val) {
				return
			}
		}
	}
}
