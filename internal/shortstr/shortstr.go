// Package shortstr generates short, random, human-transcribable strings for
// URL shorteners and similar services. The alphabet excludes homoglyphs
// (0/O, 1/l/I), and an optional trailing checksum character lets a string be
// recognized as well-formed without a database lookup.
package shortstr

import (
	"crypto/rand"
	"errors"
	"fmt"
	"hash/adler32"
	"io"
	"math/big"
	"strings"
)

var (
	// ErrInvalidFormat is returned when a format string is empty or
	// contains a specifier outside *, c, l, u, d.
	ErrInvalidFormat = errors.New("invalid shortstring format")

	// ErrInvalidInput is returned by IsValid for candidates too short to
	// carry a checksum.
	ErrInvalidInput = errors.New("invalid shortstring input")

	// ErrRetriesExhausted is returned when a Generator with a MaxAttempts
	// bound never produced a string the repeat predicate accepted.
	ErrRetriesExhausted = errors.New("shortstring generation retries exhausted")
)

// RepeatFunc reports whether a generated shortstring has been seen before.
// Returning true makes the generator discard the string and draw a fresh one.
type RepeatFunc func(string) bool

// DefaultFormat is the format used by New: five "any glyph" positions.
var DefaultFormat = strings.Repeat("*", DefaultLength)

// Generator draws shortstrings from an entropy source. The zero value is
// ready to use and reads from crypto/rand with no retry bound, which is the
// production configuration.
type Generator struct {
	// Rand is the randomness source; nil means crypto/rand.Reader. It must
	// stay on an OS-entropy source in production: shortstrings promise
	// unpredictability across processes, which a seeded PRNG cannot give.
	Rand io.Reader

	// MaxAttempts bounds the repeat-check retry loop. Zero means unbounded,
	// matching the documented caveat that a predicate which never returns
	// false makes Generate loop forever.
	MaxAttempts int
}

var defaultGenerator = &Generator{}

// CheckFormat reports whether format is a valid shortstring format: a
// non-empty string of the specifiers *, c, l, u and d.
func CheckFormat(format string) error {
	if format == "" {
		return fmt.Errorf("%w: format cannot be the empty string", ErrInvalidFormat)
	}
	for _, specifier := range format {
		if !strings.ContainsRune("*clud", specifier) {
			return fmt.Errorf("%w: %q is not a valid format specifier: must be *, c, l, u, or d", ErrInvalidFormat, specifier)
		}
	}
	return nil
}

// Generate returns a shortstring matching format, one random character per
// specifier:
//
//	* - any glyph
//	c - any letter
//	l - any lowercase letter
//	u - any uppercase letter
//	d - any digit, 2-9
//
// None of these classes ever include the homoglyphs l, I, o, O, 0, 1.
//
// With includeChecksum, a checksum character for the drawn characters is
// appended, so the result is one character longer than the format.
//
// A non-nil repeat predicate receives each complete candidate (checksum
// included); when it returns true the whole string is redrawn from scratch.
// With no MaxAttempts bound the loop only ends once the predicate accepts.
func (g *Generator) Generate(format string, includeChecksum bool, repeat RepeatFunc) (string, error) {
	if err := CheckFormat(format); err != nil {
		return "", err
	}

	for attempt := 0; ; attempt++ {
		if g.MaxAttempts > 0 && attempt >= g.MaxAttempts {
			return "", fmt.Errorf("%w: no unique shortstring after %d attempts", ErrRetriesExhausted, g.MaxAttempts)
		}

		var sb strings.Builder
		for _, specifier := range format {
			char, err := g.draw(alphabetFor(specifier))
			if err != nil {
				return "", err
			}
			sb.WriteByte(char)
		}

		if includeChecksum {
			sb.WriteByte(ChecksumChar(sb.String()))
		}

		ss := sb.String()
		if repeat == nil || !repeat(ss) {
			return ss, nil
		}
	}
}

// draw picks one character uniformly at random from alphabet.
func (g *Generator) draw(alphabet string) (byte, error) {
	reader := g.Rand
	if reader == nil {
		reader = rand.Reader
	}
	num, err := rand.Int(reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, err
	}
	return alphabet[num.Int64()], nil
}

// alphabetFor maps a format specifier to its character class. CheckFormat
// has already rejected anything else.
func alphabetFor(specifier rune) string {
	switch specifier {
	case 'c':
		return Letters
	case 'l':
		return Lowercase
	case 'u':
		return Uppercase
	case 'd':
		return Digits
	default:
		return Glyphs
	}
}

// ChecksumChar returns the glyph that checksums payload: an Adler-32 sum of
// the payload bytes reduced modulo the alphabet size. The algorithm is fixed;
// changing it would break validation of previously generated strings.
func ChecksumChar(payload string) byte {
	sum := adler32.Checksum([]byte(payload))
	return Glyphs[sum%uint32(len(Glyphs))]
}

// IsValid reports whether candidate ends in the correct checksum character
// for the characters before it. Only strings generated with a checksum can
// validate. Note that alphabet membership is deliberately not checked: a
// string with out-of-alphabet characters still validates when the checksum
// arithmetic agrees.
func IsValid(candidate string) (bool, error) {
	if len(candidate) < 2 {
		return false, fmt.Errorf("%w: candidate must be a string at least two characters long", ErrInvalidInput)
	}
	return candidate[len(candidate)-1] == ChecksumChar(candidate[:len(candidate)-1]), nil
}

// Generate draws a shortstring using the default generator (crypto/rand,
// unbounded retries).
func Generate(format string, includeChecksum bool, repeat RepeatFunc) (string, error) {
	return defaultGenerator.Generate(format, includeChecksum, repeat)
}

// New returns a checksum-bearing shortstring in the default format, i.e.
// five random glyphs plus the checksum character.
func New() (string, error) {
	return defaultGenerator.Generate(DefaultFormat, true, nil)
}
