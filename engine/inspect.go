package engine

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/FitrahHaque/Huffman-Archiver/compressor/huffman"
)

type InspectResult struct {
	File    string
	Summary huffman.Summary
	Err     error
}

// InspectFiles reads the header and frequency table of every archive.
func InspectFiles(files []string, opts Options) []InspectResult {
	opts = opts.withDefaults()
	results := make([]InspectResult, 0, len(files))
	for _, file := range files {
		result := InspectResult{File: file}
		if result.Err = ValidateSource(file, Decompress, opts.FileExtension); result.Err != nil {
			results = append(results, result)
			continue
		}
		archive, err := readAll(file, false)
		if err != nil {
			result.Err = err
			results = append(results, result)
			continue
		}
		result.Summary, result.Err = huffman.Inspect(archive)
		results = append(results, result)
	}
	return results
}

func symbolLabel(symbol byte) string {
	if strconv.IsPrint(rune(symbol)) && symbol < 0x80 {
		return strconv.QuoteRune(rune(symbol))
	}
	return fmt.Sprintf("0x%02x", symbol)
}

func PrintInspect(w io.Writer, r InspectResult) error {
	var buf bytes.Buffer
	if r.Err != nil {
		fmt.Fprintf(&buf, "%s: %v\n", r.File, r.Err)
		_, err := buf.WriteTo(w)
		return err
	}
	s := r.Summary
	fmt.Fprintf(&buf, "%s\n", r.File)
	fmt.Fprintf(&buf, "\toriginal length: %d\n", s.Length)
	fmt.Fprintf(&buf, "\theader bytes:    %d\n", s.HeaderSize)
	if expected, err := s.ExpectedBodySize(); err != nil {
		fmt.Fprintf(&buf, "\tbody bytes:      %d (%v)\n", s.BodySize, err)
	} else {
		fmt.Fprintf(&buf, "\tbody bytes:      %d (expected %d)\n", s.BodySize, expected)
	}
	fmt.Fprintf(&buf, "\tsymbols:         %d\n", len(s.Symbols))
	labelWidth := runewidth.StringWidth("symbol")
	for _, info := range s.Symbols {
		labelWidth = max(labelWidth, runewidth.StringWidth(symbolLabel(info.Symbol)))
	}
	fmt.Fprintf(&buf, "\t%s %10s  %s\n", runewidth.FillRight("symbol", labelWidth), "frequency", "code")
	for _, info := range s.Symbols {
		fmt.Fprintf(&buf, "\t%s %10d  %s\n", runewidth.FillRight(symbolLabel(info.Symbol), labelWidth), info.Frequency, info.Code)
	}
	_, err := buf.WriteTo(w)
	return err
}
