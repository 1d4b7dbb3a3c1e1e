package annotator

import (
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeUTF8 wraps r so a leading UTF-8 BOM (common in spreadsheet exports) is
// dropped while the CJK payload passes through untouched.
func decodeUTF8(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
}

func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	return strings.TrimPrefix(v, "\uFEFF")
}

// splitTokens splits a space-delimited 校对后 or 校对前 value into its
// non-empty tokens.
func splitTokens(s string) []string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	return fields
}
