package export

import (
	"slices"
	"testing"
)

func TestPeekable(t *testing.T) {
	p := newPeekable(slices.Values([]int{1, 2, 3}))
	defer p.close()

	for i := 0; i < 3; i++ {
		if v, ok := p.peek(); !ok || v != 1 {
			t.Fatalf("peek %d -> %v, %v", i, v, ok)
		}
	}

	var got []int
	for {
		v, ok := p.next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("got %v", got)
	}
	if _, ok := p.peek(); ok {
		t.Error("peek after end succeeded")
	}
}

func TestPeekableEmpty(t *testing.T) {
	p := newPeekable(slices.Values([]string(nil)))
	defer p.close()

	if _, ok := p.peek(); ok {
		t.Error("peek on empty sequence succeeded")
	}
	if _, ok := p.next(); ok {
		t.Error("next on empty sequence succeeded")
	}
}
