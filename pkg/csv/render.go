package csv

import (
	"bytes"
	"strings"
)

// lineEnding terminates every rendered row.
const lineEnding = "\r\n"

// render writes rows as CSV. Each row, including the last, is followed by
// CRLF, so a final row holding one empty cell survives a re-parse.
func render(rows [][]string) []byte {
	var buf bytes.Buffer
	for _, row := range rows {
		writeRecord(&buf, row)
		buf.WriteString(lineEnding)
	}
	return buf.Bytes()
}

// writeRecord writes the cells of one row separated by commas.
func writeRecord(buf *bytes.Buffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeCSVField(buf, field)
	}
}

// writeCSVField writes a CSV field to the buffer with proper escaping.
// Fields containing commas, quotes, newlines, or carriage returns are quoted.
// Quotes within quoted fields are escaped by doubling them.
func writeCSVField(buf *bytes.Buffer, value string) {
	if !needsQuoting(value) {
		buf.WriteString(value)
		return
	}

	buf.WriteByte('"')
	buf.WriteString(strings.ReplaceAll(value, `"`, `""`))
	buf.WriteByte('"')
}

func needsQuoting(value string) bool {
	return strings.ContainsAny(value, ",\"\r\n")
}

// QuoteField returns value as it would appear in rendered CSV.
func QuoteField(value string) string {
	var buf bytes.Buffer
	writeCSVField(&buf, value)
	return buf.String()
}
