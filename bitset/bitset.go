// Package bitset implements a flat, growable bitmap of uint64 words with
// popcount based counting and rank queries.
package bitset

import (
	"github.com/hideo55/go-popcount"
)

const (
	wordShift = 6        // 2**6 == 64 bits per word
	wordMask  = 1<<6 - 1 // 0x3F, the lowest 6 bits
)

type Set struct {
	words []uint64
}

// New returns an empty Set with room for n bits.
func New(n uint64) *Set {
	return &Set{
		words: make([]uint64, 0, WordsFor(n)),
	}
}

// FromWords wraps the given words without copying them.
func FromWords(words []uint64) *Set {
	return &Set{words: words}
}

// WordsFor returns the number of words needed to hold n bits.
func WordsFor(n uint64) int {
	return int((n + wordMask) >> wordShift)
}

func (s *Set) Words() []uint64 {
	if s == nil {
		return nil
	}
	return s.words
}

// Cap returns the number of bits the Set can address without growing.
func (s *Set) Cap() uint64 {
	if s == nil {
		return 0
	}
	return uint64(len(s.words)) << wordShift
}

func (s *Set) Has(i uint64) bool {
	if s == nil {
		return false
	}
	off := i >> wordShift
	if off >= uint64(len(s.words)) {
		return false
	}
	return (s.words[off]>>(i&wordMask))&0x01 != 0
}

// Add sets bit i, growing the Set if needed. Returns false if it was
// already set.
func (s *Set) Add(i uint64) bool {
	off := i >> wordShift
	for off >= uint64(len(s.words)) {
		s.words = append(s.words, 0)
	}
	bit := uint64(1) << (i & wordMask)
	if s.words[off]&bit != 0 {
		return false
	}
	s.words[off] |= bit
	return true
}

// Len returns the number of set bits.
func (s *Set) Len() uint64 {
	if s == nil {
		return 0
	}
	var cnt uint64
	for _, w := range s.words {
		cnt += popcount.Count(w)
	}
	return cnt
}

// Rank returns the number of set bits strictly below i.
func (s *Set) Rank(i uint64) uint64 {
	if s == nil {
		return 0
	}
	off := i >> wordShift
	if off >= uint64(len(s.words)) {
		return s.Len()
	}
	cnt := popcount.Count(s.words[off] & ((1 << (i & wordMask)) - 1))
	for j := uint64(0); j < off; j++ {
		cnt += popcount.Count(s.words[j])
	}
	return cnt
}
