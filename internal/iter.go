// Package internal holds iterator helpers shared by the assembler packages.
package internal

import (
	"iter"
)

// IterSeqConcat concatenates multiple iterators into a single iterator sequence.
func IterSeqConcat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for val := range seq {
				if !yield(val) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// Peeker pulls from a dual-return iterator with a single value of lookahead.
type Peeker[T1 any, T2 any] struct {
	next func() (T1, T2, bool)
	stop func()

	peeked bool
	v1     T1
	v2     T2
	ok     bool
}

// NewPeeker starts pulling from seq. Stop must be called when done.
func NewPeeker[T1 any, T2 any](seq iter.Seq2[T1, T2]) *Peeker[T1, T2] {
	next, stop := iter.Pull2(seq)
	return &Peeker[T1, T2]{next: next, stop: stop}
}

// Peek returns the next pair without consuming it.
func (p *Peeker[T1, T2]) Peek() (v1 T1, v2 T2, ok bool) {
	if !p.peeked {
		p.v1, p.v2, p.ok = p.next()
		p.peeked = true
	}
	return p.v1, p.v2, p.ok
}

// Next consumes and returns the next pair.
func (p *Peeker[T1, T2]) Next() (v1 T1, v2 T2, ok bool) {
	v1, v2, ok = p.Peek()
	p.peeked = false
	return
}

// Stop releases the underlying iterator.
func (p *Peeker[T1, T2]) Stop() {
	p.stop()
}
