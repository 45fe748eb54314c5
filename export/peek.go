package export

import "iter"

// peekable is a pull iterator with one element of lookahead. An element
// returned by peek is returned again by the following next.
type peekable[T any] struct {
	pull   func() (T, bool)
	stop   func()
	head   T
	ok     bool
	peeked bool
}

func newPeekable[T any](seq iter.Seq[T]) *peekable[T] {
	pull, stop := iter.Pull(seq)
	return &peekable[T]{pull: pull, stop: stop}
}

func (p *peekable[T]) peek() (T, bool) {
	if !p.peeked {
		p.head, p.ok = p.pull()
		p.peeked = true
	}
	return p.head, p.ok
}

func (p *peekable[T]) next() (T, bool) {
	if p.peeked {
		p.peeked = false
		v, ok := p.head, p.ok
		var zero T
		p.head = zero
		return v, ok
	}
	return p.pull()
}

// close releases the underlying sequence. It is safe to call more than once.
func (p *peekable[T]) close() {
	p.stop()
}
