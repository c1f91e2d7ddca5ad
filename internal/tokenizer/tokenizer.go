// Package tokenizer splits raw export text into rows of fields. The legacy
// reports mix ";" and "," delimiters and embed quoted fields containing
// delimiters and line breaks, so the split is an explicit two-state
// character machine rather than a stock CSV reader: the delimiter must be
// chosen per file and quoted newlines collapse to a space to keep row
// alignment for downstream single-line consumers.
package tokenizer

import "strings"

// Tokenize converts text into rows of string fields using delim as the
// field separator. A double quote toggles quoted mode; a doubled quote
// inside quoted mode emits one literal quote. Newlines end rows only
// outside quotes. Trailing empty lines produce no rows.
func Tokenize(text string, delim rune) [][]string {
	var (
		rows    [][]string
		row     []string
		field   strings.Builder
		quoted  bool
		runes   = []rune(text)
	)

	flushRow := func() {
		if len(row) > 0 || field.Len() > 0 {
			row = append(row, field.String())
			rows = append(rows, row)
			row = nil
			field.Reset()
		}
	}

	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if quoted && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
			} else {
				quoted = !quoted
			}
		case c == delim && !quoted:
			row = append(row, field.String())
			field.Reset()
		case (c == '\n' || c == '\r') && !quoted:
			if c == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			flushRow()
		case (c == '\n' || c == '\r') && quoted:
			if c == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			field.WriteRune(' ')
		default:
			field.WriteRune(c)
		}
	}
	flushRow()

	return rows
}

// DetectDelimiter picks the field separator for a file: ";" when any line
// contains one, "," otherwise.
func DetectDelimiter(text string) rune {
	if strings.ContainsRune(text, ';') {
		return ';'
	}
	return ','
}
