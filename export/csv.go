package export

import (
	"encoding/csv"
	"io"
	"iter"
	"log/slog"
)

// WriteCSV writes records to a new CSV file at path, one row per record in
// sequence order. See Options for how the file and columns are chosen.
//
// The file is closed on every return path. A failure part way through the
// records leaves the rows written so far on disk.
func WriteCSV(records iter.Seq[Record], path string, opts Options) (err error) {
	if err := makeParents(path, opts); err != nil {
		return err
	}

	p, err := newPlan(records, opts)
	if err != nil {
		return err
	}
	defer p.close()

	fd, err := createTarget(path, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fd.Close(); err == nil {
			err = cerr
		}
	}()

	err = p.writeCSV(fd, opts.WriteHeader)
	slog.Debug("Wrote CSV file", "path", path, "fields", len(p.fields), "records", p.written)
	return err
}

// WriteCSVTo is WriteCSV against an arbitrary writer; Parents and
// OverwriteOK are ignored.
func WriteCSVTo(w io.Writer, records iter.Seq[Record], opts Options) error {
	p, err := newPlan(records, opts)
	if err != nil {
		return err
	}
	defer p.close()
	return p.writeCSV(w, opts.WriteHeader)
}

func (p *plan) writeCSV(w io.Writer, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(p.fields); err != nil {
			return err
		}
	}

	cells := make([]string, len(p.fields))
	err := p.each(func(row []any) error {
		for i, v := range row {
			cells[i] = formatValue(v)
		}
		return cw.Write(cells)
	})

	// Rows before a failing record still reach the file.
	cw.Flush()
	if err != nil {
		return err
	}
	return cw.Error()
}
