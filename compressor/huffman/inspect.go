package huffman

import (
	"fmt"
	"math"
)

// SymbolInfo describes one table entry of an archive.
type SymbolInfo struct {
	Symbol    byte
	Frequency int
	Code      string
}

// Summary describes an archive without decoding its body.
type Summary struct {
	Length     int
	HeaderSize int
	BodySize   int
	Symbols    []SymbolInfo
}

// Inspect parses the header and table of archive and derives the code of
// every symbol, in ascending symbol order.
func Inspect(archive []byte) (Summary, error) {
	header, err := ParseHeader(archive)
	if err != nil {
		return Summary{}, err
	}
	ct := BuildCodeTable(header.Frequencies)
	summary := Summary{
		Length:     header.Length,
		HeaderSize: header.BodyOffset,
		BodySize:   len(archive) - header.BodyOffset,
	}
	for _, symbol := range header.Frequencies.Symbols() {
		code, _ := ct.Code(symbol)
		summary.Symbols = append(summary.Symbols, SymbolInfo{
			Symbol:    symbol,
			Frequency: header.Frequencies.Count(symbol),
			Code:      code,
		})
	}
	return summary, nil
}

// ExpectedBodySize returns the number of body bytes a well-formed archive
// with this summary carries. A table whose bit count overflows int fails
// with ErrCorruptedArchive.
func (s Summary) ExpectedBodySize() (int, error) {
	bits := 0
	for _, info := range s.Symbols {
		if info.Frequency > (math.MaxInt-bits)/len(info.Code) {
			return 0, fmt.Errorf("%w: table encodes more than %d bits", ErrCorruptedArchive, math.MaxInt)
		}
		bits += info.Frequency * len(info.Code)
	}
	return bits/8 + min(bits%8, 1), nil
}
