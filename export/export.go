package export

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
)

// plan is the resolved column layout of one export together with the
// record source it applies to.
type plan struct {
	src     *peekable[Record]
	fields  []string
	known   map[string]struct{}
	extras  ExtrasPolicy
	restval any
	written int
}

func newPlan(records iter.Seq[Record], opts Options) (*plan, error) {
	src := newPeekable(records)
	fields := opts.Fields
	if fields == nil {
		first, ok := src.peek()
		if !ok {
			src.close()
			return nil, ErrEmptyInput
		}
		fields = first.Keys()
	}

	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		known[f] = struct{}{}
	}

	return &plan{
		src:     src,
		fields:  fields,
		known:   known,
		extras:  opts.extras(),
		restval: opts.Restval,
	}, nil
}

// each calls fn with the cell values of every remaining record, in order.
func (p *plan) each(fn func(row []any) error) error {
	for {
		r, ok := p.src.next()
		if !ok {
			return nil
		}
		row, err := p.row(p.written+1, r)
		if err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return err
		}
		p.written++
	}
}

func (p *plan) row(n int, r Record) ([]any, error) {
	if p.extras == ExtrasStrict {
		for _, f := range r {
			if _, ok := p.known[f.Name]; !ok {
				return nil, &UnexpectedFieldError{Record: n, Field: f.Name}
			}
		}
	}
	row := make([]any, len(p.fields))
	for i, name := range p.fields {
		if v, ok := r.Get(name); ok {
			row[i] = v
		} else {
			row[i] = p.restval
		}
	}
	return row, nil
}

func (p *plan) close() {
	p.src.close()
}

func makeParents(path string, opts Options) error {
	if !opts.Parents {
		return nil
	}
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// createTarget opens path for writing, refusing to replace an existing file
// unless opts.OverwriteOK is set.
func createTarget(path string, opts Options) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if opts.OverwriteOK {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}

	fd, err := os.OpenFile(path, flags, 0o644)
	switch {
	case err == nil:
		return fd, nil
	case errors.Is(err, fs.ErrExist):
		return nil, fmt.Errorf("%s: %w", path, ErrAlreadyExists)
	case errors.Is(err, fs.ErrNotExist):
		dir := filepath.Dir(path)
		if _, serr := os.Stat(dir); errors.Is(serr, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", dir, ErrMissingParentDirectory)
		}
	}
	return nil, err
}
