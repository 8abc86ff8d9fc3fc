package mode

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// Decoder turns one raw input record into display text. Records are decoded
// once, at load time.
type Decoder func(raw []byte) string

// DecodeUTF8 decodes UTF-8, replacing invalid sequences with U+FFFD.
func DecodeUTF8(raw []byte) string {
	return decodeWith(unicode.UTF8, raw)
}

// DecoderFor returns a Decoder for a WHATWG encoding label such as
// "utf-8", "latin1" or "shift_jis". An empty label means UTF-8.
func DecoderFor(label string) (Decoder, error) {
	if strings.TrimSpace(label) == "" {
		return DecodeUTF8, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", label, err)
	}
	return func(raw []byte) string {
		return decodeWith(enc, raw)
	}, nil
}

func decodeWith(enc encoding.Encoding, raw []byte) string {
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "\uFFFD")
	}
	return string(out)
}
