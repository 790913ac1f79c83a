package railfence

import (
	"strings"
	"unicode/utf8"

	"github.com/corpix/railfence/errors"
)

var (
	ErrInvalidRails        = errors.New("rail count should be at least one")
	ErrMalformedCipherText = errors.New("malformed cipher text")
)

type RailFence struct {
	rails int
}

func New(rails int) (*RailFence, error) {
	if rails < 1 {
		return nil, errors.Wrapf(ErrInvalidRails, "got %d rails", rails)
	}
	return &RailFence{rails: rails}, nil
}

func MustNew(rails int) *RailFence {
	f, err := New(rails)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *RailFence) Rails() int { return f.rails }

// identity reports whether a text of length characters stays in place.
// With at least as many rails as characters the fence never turns back
// and each character lands alone on its own rail.
func (f *RailFence) identity(length int) bool {
	return f.rails == 1 || f.rails >= length
}

// Encode places the characters of text on the rails in zig-zag order and
// reads the rails back top to bottom.
func (f *RailFence) Encode(text string) string {
	if f.identity(utf8.RuneCountInString(text)) {
		return text
	}

	var (
		buckets = make([][]rune, f.rails)
		z       = newZigzag(f.rails)
	)
	for _, r := range text {
		rail := z.next()
		buckets[rail] = append(buckets[rail], r)
	}

	b := strings.Builder{}
	b.Grow(len(text))
	for _, bucket := range buckets {
		for _, r := range bucket {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Decode reverses Encode for a fence with the same number of rails.
func (f *RailFence) Decode(cipherText string) (string, error) {
	if f.identity(utf8.RuneCountInString(cipherText)) {
		return cipherText, nil
	}

	runes := []rune(cipherText)
	buckets, err := splitRails(runes, railLengths(f.rails, len(runes)))
	if err != nil {
		return "", err
	}

	var (
		clearText = make([]rune, 0, len(runes))
		z         = newZigzag(f.rails)
	)
	for len(clearText) < len(runes) {
		rail := z.next()
		clearText = append(clearText, buckets[rail][0])
		buckets[rail] = buckets[rail][1:]
	}
	return string(clearText), nil
}

// splitRails cuts runes into consecutive rails of the given lengths,
// lengths must cover runes exactly.
func splitRails(runes []rune, lengths []int) ([][]rune, error) {
	var (
		buckets = make([][]rune, len(lengths))
		offset  = 0
	)
	for rail, n := range lengths {
		if n < 0 || offset+n > len(runes) {
			return nil, errors.Wrapf(
				ErrMalformedCipherText,
				"rail %d of %d characters does not fit into %d characters at %d",
				rail, n, len(runes), offset,
			)
		}
		buckets[rail] = runes[offset : offset+n]
		offset += n
	}
	if offset != len(runes) {
		return nil, errors.Wrapf(
			ErrMalformedCipherText,
			"rails hold %d characters, cipher text has %d",
			offset, len(runes),
		)
	}
	return buckets, nil
}

func (f *RailFence) EncodeBytes(buf []byte) []byte {
	return []byte(f.Encode(string(buf)))
}

func (f *RailFence) DecodeBytes(buf []byte) ([]byte, error) {
	text, err := f.Decode(string(buf))
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}
