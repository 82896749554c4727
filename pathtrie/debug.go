package pathtrie

import (
	"fmt"
	"io"
	"os"
)

// DebugDump prints the tree structure to stdout.
func (t *Trie[K, V]) DebugDump() {
	t.Fdump(os.Stdout)
}

// Fdump writes an indented view of the tree to w, one node per line.
func (t *Trie[K, V]) Fdump(w io.Writer) {
	fmt.Fprintf(w, "T: size=%d\n", t.size)
	t.debugDump(w, &t.root, "ROOT", "")
}

func (t *Trie[K, V]) debugDump(w io.Writer, n *node[K, V], tag string, indent string) {
	if n.hasVal {
		fmt.Fprintf(w, "%s%s VAL=%v kids=%d\n", indent, tag, n.val, len(n.children))
	} else {
		fmt.Fprintf(w, "%s%s BRANCH kids=%d\n", indent, tag, len(n.children))
	}
	for key, child := range n.children {
		t.debugDump(w, child, fmt.Sprintf("%v:", key), indent+"  ")
	}
}
