package extract

import (
	"strings"
	"unicode/utf8"
)

// extractPlain returns content as a string, validating it is valid UTF-8.
// Invalid sequences are replaced with the replacement character; legacy
// ISO-8859-1 résumés thus degrade rather than fail.
func extractPlain(content []byte) (string, error) {
	if !utf8.Valid(content) {
		return strings.ToValidUTF8(string(content), "�"), nil
	}
	return string(content), nil
}
