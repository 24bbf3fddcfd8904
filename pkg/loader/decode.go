package loader

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/OFFIS-RIT/plotline/internal/util"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DecodeText converts raw document bytes to normalized UTF-8. UTF-16 is
// detected by its byte order mark. Input that is not valid UTF-8 is read
// as Windows-874, the superset of TIS-620 used for legacy Thai files.
// Line endings are normalized to LF.
func DecodeText(raw []byte) (string, error) {
	var text string
	switch {
	case bytes.HasPrefix(raw, bomUTF16LE), bytes.HasPrefix(raw, bomUTF16BE):
		decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder().Bytes(raw)
		if err != nil {
			return "", fmt.Errorf("failed to decode utf-16 text: %w", err)
		}
		text = string(decoded)
	case utf8.Valid(raw):
		text = string(raw)
	default:
		decoded, err := charmap.Windows874.NewDecoder().Bytes(raw)
		if err != nil {
			return "", fmt.Errorf("failed to decode windows-874 text: %w", err)
		}
		text = string(decoded)
	}

	return util.NormalizeNewlines(util.SanitizeText(text)), nil
}
