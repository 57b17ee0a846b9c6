package huffman

import "errors"

var (
	// ErrInvalidArchiveFormat reports a header or frequency table that does
	// not follow the archive grammar.
	ErrInvalidArchiveFormat = errors.New("invalid archive format")

	// ErrCorruptedArchive reports a body whose bits do not decode to the
	// declared number of symbols.
	ErrCorruptedArchive = errors.New("corrupted archive")
)
