package font

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// charsets maps accepted names to decoders. A nil entry means the input
// is already UTF-8.
var charsets = map[string]encoding.Encoding{
	"utf-8":        nil,
	"utf8":         nil,
	"ascii":        nil,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-2":   charmap.ISO8859_2,
	"iso-8859-5":   charmap.ISO8859_5,
	"iso-8859-7":   charmap.ISO8859_7,
	"iso-8859-15":  charmap.ISO8859_15,
	"windows-1250": charmap.Windows1250,
	"windows-1251": charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
	"koi8-r":       charmap.KOI8R,
	"macintosh":    charmap.Macintosh,
	"cp437":        charmap.CodePage437,
}

// Charsets returns the names accepted by WithCharset, sorted.
func Charsets() []string {
	names := make([]string, 0, len(charsets))
	for n := range charsets {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// charset turns raw text bytes into runes.
type charset struct {
	name string
	enc  encoding.Encoding
}

func lookupCharset(name string) (charset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	enc, ok := charsets[key]
	if !ok {
		return charset{}, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
	}
	return charset{name: key, enc: enc}, nil
}

// decode converts text to a string of Unicode characters. Bytes that do
// not form a character in the charset become U+FFFD.
func (c charset) decode(text []byte) string {
	switch {
	case c.name == "ascii":
		var b strings.Builder
		b.Grow(len(text))
		for _, x := range text {
			if x < utf8.RuneSelf {
				b.WriteByte(x)
			} else {
				b.WriteRune(utf8.RuneError)
			}
		}
		return b.String()
	case c.enc == nil:
		return strings.ToValidUTF8(string(text), string(utf8.RuneError))
	}

	out, err := c.enc.NewDecoder().Bytes(text)
	if err != nil {
		// Single-byte charmaps map every byte; this is unreachable in practice.
		return strings.ToValidUTF8(string(text), string(utf8.RuneError))
	}
	return string(out)
}
