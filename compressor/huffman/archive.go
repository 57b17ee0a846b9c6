package huffman

import (
	"bufio"
	"io"
	"strconv"

	"github.com/icza/bitio"
)

// Archive layout:
//
//	<decimal-length> '{' ( <raw-byte> <decimal-frequency> ';' )* '}}' <packed-bits>
//
// The body holds the code of every source byte, packed most significant bit
// first, with the final byte padded with zero bits.
const (
	headerDelimiter  = '{'
	entrySeparator   = ';'
	tableTerminator  = "}}"
	maxBitsPerChunk  = 64
	singleSymbolCode = "0"
)

type codeWord struct {
	value uint64
	size  uint8
}

// splitCode turns a bit string into words of at most 64 bits each.
func splitCode(code bitString) []codeWord {
	var words []codeWord
	for len(code) > 0 {
		n := min(len(code), maxBitsPerChunk)
		var word codeWord
		for _, c := range code[:n] {
			word.value <<= 1
			if c == '1' {
				word.value |= 1
			}
		}
		word.size = uint8(n)
		words = append(words, word)
		code = code[n:]
	}
	return words
}

func writeHeader(w *bufio.Writer, ft FrequencyTable) error {
	w.WriteString(strconv.Itoa(ft.Len()))
	w.WriteByte(headerDelimiter)
	for _, symbol := range ft.Symbols() {
		w.WriteByte(symbol)
		w.WriteString(strconv.Itoa(ft.Count(symbol)))
		w.WriteByte(entrySeparator)
	}
	_, err := w.WriteString(tableTerminator)
	return err
}

func writeBody(w io.Writer, content []byte, ct *CodeTable) error {
	var words [256][]codeWord
	for i := range ct.codes {
		if ct.present[i] {
			words[i] = splitCode(ct.codes[i])
		}
	}
	bw := bitio.NewWriter(w)
	for _, symbol := range content {
		for _, word := range words[symbol] {
			if err := bw.WriteBits(word.value, word.size); err != nil {
				return err
			}
		}
	}
	return bw.Close()
}

// writeArchive serializes content with its frequency table and code table.
func writeArchive(w io.Writer, content []byte, ft FrequencyTable, ct *CodeTable) error {
	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, ft); err != nil {
		return err
	}
	if err := writeBody(bw, content, ct); err != nil {
		return err
	}
	return bw.Flush()
}
