// Package pathtrie defines a generic keyed trie: a prefix map that associates
// values with paths (sequences of keys) rather than single keys.
//
// Every node of a Trie may hold a value of its own and any number of
// children, each reachable by exactly one key. A node without a value is a
// branch point that exists only because a longer path runs through it.
//
// Example trie (integer keys):
//
//	root
//	 `-- 1 (val 1)
//	      |-- 1 (val 11)
//	      |-- 2 (val 12)
//	      |    |-- 1 (val 121)
//	      |    `-- 2 (val 122)
//	      `-- 3
//	           `-- 1
//	                `-- 1
//	                     `-- 1 (val 13111)
//
// Traversal:
// ---------
//
// Iter, All, Keys and Values walk the trie in pre-order: the value of a node
// is always produced before the values below it. The order of siblings is
// unspecified and may differ between walks.
//
// Encoding:
// --------
//
// Encode produces a sequence of msgpack values followed by an 8-byte xxhash64
// trailer:
//
//	[version] [node count N] [value count M] [presence bitmap] [node]...[node] [xxhash64]
//
// Nodes are written in pre-order as a child count, the node's value (only if
// its presence bit is set) and then a key followed by a child node for each
// child. Presence of a value is recorded in the bitmap, never inferred from the
// value bytes, so a zero-size value (struct{}) survives a round trip and stays
// distinct from no value at all.
//
// Keys must have a concrete type. msgpack does not record Go types, so an
// int key read back into an interface would come out as int8 and stop
// matching; Encode and Decode refuse interface key types with ErrKeyType.
package pathtrie
