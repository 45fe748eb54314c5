package export

import (
	"iter"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes records to a new single-sheet workbook at path. Columns,
// extras handling, overwrite and directory creation follow the same rules
// as WriteCSV.
func WriteXLSX(records iter.Seq[Record], path string, opts Options) (err error) {
	if err := makeParents(path, opts); err != nil {
		return err
	}

	p, err := newPlan(records, opts)
	if err != nil {
		return err
	}
	defer p.close()

	xlsx := excelize.NewFile()
	defer xlsx.Close()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "kastelo.dev/logbook",
	})

	sheet := opts.Sheet
	if sheet == "" {
		sheet = DefaultOptions().Sheet
	}
	if err := xlsx.SetSheetName(xlsx.GetSheetName(xlsx.GetActiveSheetIndex()), sheet); err != nil {
		return err
	}

	// The workbook is complete before the file is created; a rejected
	// record leaves no output.
	if err := p.writeSheet(xlsx, sheet, opts.WriteHeader); err != nil {
		return err
	}

	fd, err := createTarget(path, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fd.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = xlsx.WriteTo(fd)
	slog.Debug("Wrote XLSX file", "path", path, "sheet", sheet, "fields", len(p.fields), "records", p.written)
	return err
}

func (p *plan) writeSheet(xlsx *excelize.File, sheet string, header bool) error {
	last := len(p.fields)
	if last == 0 {
		last = 1
	}
	lastCol, err := excelize.ColumnNumberToName(last)
	if err != nil {
		return err
	}
	_ = xlsx.SetColWidth(sheet, "A", lastCol, 14)

	row := 1
	if header {
		for i, name := range p.fields {
			if err := xlsx.SetCellValue(sheet, cell(i+1, row), name); err != nil {
				return err
			}
		}
		style, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), fontBold(), shaded(), thinBorder("bottom"), textAlignment("center")))
		_ = xlsx.SetCellStyle(sheet, cell(1, row), cell(last, row), style)
		_ = xlsx.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		})
		row++
	}

	first := row
	err = p.each(func(vals []any) error {
		for i, v := range vals {
			if err := xlsx.SetCellValue(sheet, cell(i+1, row), cellValue(v)); err != nil {
				return err
			}
		}
		row++
		return nil
	})
	if err != nil {
		return err
	}

	if row > first {
		style, _ := xlsx.NewStyle(defaultStyle())
		_ = xlsx.SetCellStyle(sheet, cell(1, first), cell(last, row-1), style)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// cellValue keeps numbers and booleans typed so the spreadsheet can compute
// with them; everything else is written as its CSV text.
func cellValue(v any) any {
	switch v := v.(type) {
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return v
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v
	default:
		return formatValue(v)
	}
}
