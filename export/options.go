package export

import "fmt"

// ExtrasPolicy decides what happens to record fields outside the field set.
type ExtrasPolicy int

const (
	// ExtrasAuto is ExtrasFiltered when Options.Fields is set and
	// ExtrasStrict otherwise.
	ExtrasAuto ExtrasPolicy = iota
	// ExtrasStrict fails the export with an *UnexpectedFieldError.
	ExtrasStrict
	// ExtrasFiltered silently drops the field.
	ExtrasFiltered
)

func (p ExtrasPolicy) String() string {
	switch p {
	case ExtrasAuto:
		return "auto"
	case ExtrasStrict:
		return "strict"
	case ExtrasFiltered:
		return "filtered"
	default:
		return fmt.Sprintf("ExtrasPolicy(%d)", int(p))
	}
}

func ParseExtrasPolicy(s string) (ExtrasPolicy, error) {
	switch s {
	case "", "auto":
		return ExtrasAuto, nil
	case "strict", "raise":
		return ExtrasStrict, nil
	case "filtered", "ignore":
		return ExtrasFiltered, nil
	}
	return ExtrasAuto, fmt.Errorf("unknown extras policy %q", s)
}

// Options control a single export. The zero value is not the default; start
// from DefaultOptions.
type Options struct {
	// Parents creates missing parent directories of the output path.
	Parents bool
	// OverwriteOK truncates an existing output file instead of failing
	// with ErrAlreadyExists.
	OverwriteOK bool
	// WriteHeader emits the column names as the first row.
	WriteHeader bool
	// Fields is the explicit column set, used verbatim. When nil the
	// columns are the keys of the first record.
	Fields []string
	// Restval is written for a column missing from a record.
	Restval any
	Extras  ExtrasPolicy
	// Sheet names the worksheet in XLSX output.
	Sheet string
}

func DefaultOptions() Options {
	return Options{
		Parents:     true,
		WriteHeader: true,
		Restval:     "",
		Sheet:       "Logbook",
	}
}

func (o Options) extras() ExtrasPolicy {
	if o.Extras != ExtrasAuto {
		return o.Extras
	}
	if o.Fields != nil {
		return ExtrasFiltered
	}
	return ExtrasStrict
}
