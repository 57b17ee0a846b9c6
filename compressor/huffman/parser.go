package huffman

import (
	"bytes"
	"fmt"
	"strconv"
)

// Header is the decoded preamble of an archive.
type Header struct {
	// Length is the length of the original buffer.
	Length int

	// Frequencies is the frequency table stored in the archive.
	Frequencies FrequencyTable

	// BodyOffset is the index of the first body byte within the archive.
	BodyOffset int
}

// archiveReader walks an archive with an explicit cursor. The table grammar
// is positional: a key is always exactly one raw byte, so a key equal to
// '{', ';' or '}' is read as a key and never as a delimiter.
type archiveReader struct {
	data []byte
	pos  int
}

func (r *archiveReader) remaining() []byte {
	return r.data[r.pos:]
}

func (r *archiveReader) readLength() (int, error) {
	end := bytes.IndexByte(r.remaining(), headerDelimiter)
	if end < 0 {
		return 0, fmt.Errorf("%w: header has no %q delimiter", ErrInvalidArchiveFormat, headerDelimiter)
	}
	digits := r.remaining()[:end]
	length, err := parseDecimal(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: original length: %v", ErrInvalidArchiveFormat, err)
	}
	r.pos += end + 1
	return length, nil
}

func (r *archiveReader) readTable(length int) (FrequencyTable, error) {
	ft := FrequencyTable{length: length}
	sum := 0
	for {
		rest := r.remaining()
		if bytes.HasPrefix(rest, []byte(tableTerminator)) {
			r.pos += len(tableTerminator)
			break
		}
		if len(rest) == 0 {
			return FrequencyTable{}, fmt.Errorf("%w: table has no %q terminator", ErrInvalidArchiveFormat, tableTerminator)
		}
		symbol := rest[0]
		end := bytes.IndexByte(rest[1:], entrySeparator)
		if end < 0 {
			return FrequencyTable{}, fmt.Errorf("%w: entry for symbol %d has no %q separator", ErrInvalidArchiveFormat, symbol, entrySeparator)
		}
		count, err := parseDecimal(rest[1 : 1+end])
		if err != nil {
			return FrequencyTable{}, fmt.Errorf("%w: frequency of symbol %d: %v", ErrInvalidArchiveFormat, symbol, err)
		}
		if count == 0 {
			return FrequencyTable{}, fmt.Errorf("%w: symbol %d has zero frequency", ErrInvalidArchiveFormat, symbol)
		}
		if ft.counts[symbol] != 0 {
			return FrequencyTable{}, fmt.Errorf("%w: symbol %d listed twice", ErrInvalidArchiveFormat, symbol)
		}
		sum += count
		if sum > length || sum < 0 {
			return FrequencyTable{}, fmt.Errorf("%w: frequencies exceed original length %d", ErrInvalidArchiveFormat, length)
		}
		ft.counts[symbol] = count
		r.pos += 1 + end + 1
	}
	if sum != length {
		return FrequencyTable{}, fmt.Errorf("%w: frequencies sum to %d, header declares %d", ErrInvalidArchiveFormat, sum, length)
	}
	return ft, nil
}

// parseDecimal accepts a non-empty run of ASCII digits.
func parseDecimal(digits []byte) (int, error) {
	if len(digits) == 0 {
		return 0, fmt.Errorf("empty number")
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("unexpected byte %q in number", c)
		}
	}
	return strconv.Atoi(string(digits))
}

// ParseHeader reads the length header and frequency table of archive and
// reports where the packed body starts.
func ParseHeader(archive []byte) (Header, error) {
	r := &archiveReader{data: archive}
	length, err := r.readLength()
	if err != nil {
		return Header{}, err
	}
	ft, err := r.readTable(length)
	if err != nil {
		return Header{}, err
	}
	return Header{
		Length:      length,
		Frequencies: ft,
		BodyOffset:  r.pos,
	}, nil
}
