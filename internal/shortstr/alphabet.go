package shortstr

// The glyph alphabet excludes the homoglyphs l, I, o, O, 0 and 1 so that
// generated shortstrings can be read back or transcribed without ambiguity.
// The Glyphs assignment must never change: the checksum indexes into it,
// so any edit would invalidate every previously issued shortstring.
const (
	Glyphs    = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	Letters   = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	Lowercase = "abcdefghijkmnpqrstuvwxyz"
	Uppercase = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	Digits    = "23456789"

	Homoglyphs          = "lIoO01"
	HomoglyphsLetters   = "lIoO"
	HomoglyphsLowercase = "lo"
	HomoglyphsUppercase = "IO"
	HomoglyphsDigits    = "01"
)

// The IncludingHomoglyphs variants exist for callers that need to detect or
// migrate legacy identifiers minted with ambiguous characters.
const (
	GlyphsIncludingHomoglyphs    = Glyphs + Homoglyphs
	LettersIncludingHomoglyphs   = Letters + HomoglyphsLetters
	LowercaseIncludingHomoglyphs = Lowercase + HomoglyphsLowercase
	UppercaseIncludingHomoglyphs = Uppercase + HomoglyphsUppercase
	DigitsIncludingHomoglyphs    = Digits + HomoglyphsDigits
)

// DefaultLength is the number of random characters in a shortstring
// generated with the default format (a checksum character comes on top).
const DefaultLength = 5
