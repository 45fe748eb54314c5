package main

import (
	"bufio"
	"strconv"
	"strings"
	"unicode/utf8"
)

// splitFields splits a column list on commas and whitespace. Names
// containing separators can be double quoted, with backslash escapes.
func splitFields(s string) []string {
	sc := bufio.NewScanner(strings.NewReader(s))
	sc.Split(scanFields)
	var res []string
	for sc.Scan() {
		field, err := strconv.Unquote(`"` + sc.Text() + `"`)
		if err != nil {
			field = sc.Text()
		}
		res = append(res, field)
	}
	return res
}

func scanFields(data []byte, atEOF bool) (advance int, token []byte, err error) {
	// Skip leading separators.
	start := 0
	for width := 0; start < len(data); start += width {
		var r rune
		r, width = utf8.DecodeRune(data[start:])
		if !isSeparator(r) {
			break
		}
	}

	inQuote := false
	if r, width := utf8.DecodeRune(data[start:]); r == '"' {
		start += width
		inQuote = true
	}

	// Scan until separator or end quote, marking end of field.
	inEscape := false
	for width, i := 0, start; i < len(data); i += width {
		var r rune
		r, width = utf8.DecodeRune(data[i:])
		if !inEscape && r == '\\' {
			inEscape = true
			continue
		}
		if !inQuote && isSeparator(r) {
			return i + width, data[start:i], nil
		}
		if !inEscape && inQuote && r == '"' {
			return i + width, data[start:i], nil
		}
		inEscape = false
	}

	// If we're at EOF, we have a final, non-empty, non-terminated field. Return it.
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}

	// Request more data.
	return start, nil, nil
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', ',':
		return true
	default:
		return false
	}
}
