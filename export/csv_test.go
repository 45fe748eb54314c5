package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	fd, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fd.Close()
	rows, err := csv.NewReader(fd).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestWriteCSVRoundTrip(t *testing.T) {
	records := []Record{
		NewRecord("flight", "2312", "dep", "DFW", "block", 3.5, "legs", 1),
		NewRecord("flight", "118", "dep", "LAX", "block", 0.25, "legs", 2),
		NewRecord("flight", "9, \"quoted\"", "dep", "multi\nline", "block", nil, "legs", -3),
	}

	out := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCSV(Records(records), out, DefaultOptions()); err != nil {
		t.Fatal(err)
	}

	rows := readCSV(t, out)
	if len(rows) != len(records)+1 {
		t.Fatalf("got %d rows, expected %d", len(rows), len(records)+1)
	}
	if !reflect.DeepEqual(rows[0], []string{"flight", "dep", "block", "legs"}) {
		t.Errorf("unexpected header %q", rows[0])
	}
	for i, r := range records {
		for j, name := range rows[0] {
			v, _ := r.Get(name)
			if rows[i+1][j] != formatValue(v) {
				t.Errorf("row %d col %s: %q != %q", i, name, rows[i+1][j], formatValue(v))
			}
		}
	}
}

func TestWriteCSVCases(t *testing.T) {
	cases := []struct {
		name    string
		records []Record
		opts    func(*Options)
		out     string
	}{
		{
			name:    "derived fields",
			records: []Record{NewRecord("a", 1, "b", 2), NewRecord("a", 3, "b", 4)},
			out:     "a,b\n1,2\n3,4\n",
		},
		{
			name:    "explicit fields drop extras",
			records: []Record{NewRecord("a", 1, "b", 2, "c", 3)},
			opts:    func(o *Options) { o.Fields = []string{"a", "c"} },
			out:     "a,c\n1,3\n",
		},
		{
			name:    "explicit order and duplicates",
			records: []Record{NewRecord("a", 1, "b", 2)},
			opts:    func(o *Options) { o.Fields = []string{"b", "a", "b"} },
			out:     "b,a,b\n2,1,2\n",
		},
		{
			name:    "restval",
			records: []Record{NewRecord("a", 1, "b", 2)},
			opts: func(o *Options) {
				o.Fields = []string{"a", "x"}
				o.Restval = "N/A"
			},
			out: "a,x\n1,N/A\n",
		},
		{
			name:    "missing field in strict mode uses restval",
			records: []Record{NewRecord("a", 1, "b", 2), NewRecord("a", 3)},
			opts:    func(o *Options) { o.Restval = "-" },
			out:     "a,b\n1,2\n3,-\n",
		},
		{
			name:    "no header",
			records: []Record{NewRecord("a", "x")},
			opts:    func(o *Options) { o.WriteHeader = false },
			out:     "x\n",
		},
		{
			name:    "explicit fields with no records",
			records: nil,
			opts:    func(o *Options) { o.Fields = []string{"a", "b"} },
			out:     "a,b\n",
		},
		{
			name:    "filtered without explicit fields",
			records: []Record{NewRecord("a", 1), NewRecord("a", 2, "z", 9)},
			opts:    func(o *Options) { o.Extras = ExtrasFiltered },
			out:     "a\n1\n2\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultOptions()
			if tc.opts != nil {
				tc.opts(&opts)
			}
			out := filepath.Join(t.TempDir(), "out.csv")
			if err := WriteCSV(Records(tc.records), out, opts); err != nil {
				t.Fatal(err)
			}
			bs, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			if string(bs) != tc.out {
				t.Errorf("got %q, expected %q", bs, tc.out)
			}
		})
	}
}

func TestWriteCSVUnexpectedField(t *testing.T) {
	records := []Record{
		NewRecord("a", 1, "b", 2),
		NewRecord("a", 3, "b", 4),
		NewRecord("a", 5, "b", 6, "c", 7),
		NewRecord("a", 8, "b", 9),
	}

	out := filepath.Join(t.TempDir(), "out.csv")
	err := WriteCSV(Records(records), out, DefaultOptions())
	if !errors.Is(err, ErrUnexpectedField) {
		t.Fatalf("expected unexpected field error, got %v", err)
	}
	var ufe *UnexpectedFieldError
	if !errors.As(err, &ufe) {
		t.Fatalf("expected *UnexpectedFieldError, got %T", err)
	}
	if ufe.Record != 3 || ufe.Field != "c" {
		t.Errorf("unexpected error details %+v", ufe)
	}

	// The rows before the failing record stay on disk.
	bs, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(bs) != "a,b\n1,2\n3,4\n" {
		t.Errorf("unexpected partial output %q", bs)
	}
}

func TestWriteCSVStrictWithExplicitFields(t *testing.T) {
	opts := DefaultOptions()
	opts.Fields = []string{"a"}
	opts.Extras = ExtrasStrict

	err := WriteCSVTo(&bytes.Buffer{}, Records([]Record{NewRecord("a", 1, "b", 2)}), opts)
	if !errors.Is(err, ErrUnexpectedField) {
		t.Fatalf("expected unexpected field error, got %v", err)
	}
}

func TestWriteCSVAlreadyExists(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.csv")
	if err := os.WriteFile(out, []byte("original\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := WriteCSV(Records([]Record{NewRecord("a", 1)}), out, DefaultOptions())
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected already exists error, got %v", err)
	}

	bs, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(bs) != "original\n" {
		t.Errorf("existing file was modified: %q", bs)
	}
}

func TestWriteCSVOverwrite(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.csv")
	if err := os.WriteFile(out, []byte("a much longer original content\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := DefaultOptions()
	opts.OverwriteOK = true
	if err := WriteCSV(Records([]Record{NewRecord("a", 1)}), out, opts); err != nil {
		t.Fatal(err)
	}

	bs, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(bs) != "a\n1\n" {
		t.Errorf("got %q", bs)
	}
}

func TestWriteCSVParents(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "one", "two", "three", "out.csv")

	if err := WriteCSV(Records([]Record{NewRecord("a", 1)}), out, DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatal(err)
	}

	// Existing parents are fine too.
	opts := DefaultOptions()
	opts.OverwriteOK = true
	if err := WriteCSV(Records([]Record{NewRecord("a", 2)}), out, opts); err != nil {
		t.Fatal(err)
	}
}

func TestWriteCSVMissingParent(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "out.csv")

	opts := DefaultOptions()
	opts.Parents = false
	err := WriteCSV(Records([]Record{NewRecord("a", 1)}), out, opts)
	if !errors.Is(err, ErrMissingParentDirectory) {
		t.Fatalf("expected missing parent error, got %v", err)
	}
}

func TestWriteCSVEmptyInput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.csv")

	err := WriteCSV(Records(nil), out, DefaultOptions())
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected empty input error, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output file should not exist, stat error %v", err)
	}
}

func TestWriteCSVLazySource(t *testing.T) {
	produced := 0
	seq := func(yield func(Record) bool) {
		for i := 0; i < 5; i++ {
			produced++
			if !yield(NewRecord("n", i)) {
				return
			}
		}
	}

	var buf bytes.Buffer
	if err := WriteCSVTo(&buf, seq, DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	if produced != 5 {
		t.Errorf("source produced %d records, expected 5", produced)
	}
	if got := strings.Count(buf.String(), "\n"); got != 6 {
		t.Errorf("got %d lines, expected 6:\n%s", got, buf.String())
	}
	if !strings.HasPrefix(buf.String(), "n\n0\n1\n") {
		t.Errorf("first record was not replayed: %q", buf.String())
	}
}
