package engine

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/FitrahHaque/Huffman-Archiver/compressor/huffman"
)

var (
	success = color.New(color.FgGreen).SprintfFunc()
	failure = color.New(color.FgRed).SprintfFunc()
)

// Describe turns a failed job into a message for the user.
func Describe(r Result) string {
	switch {
	case errors.Is(r.Err, ErrFileNotFound):
		return fmt.Sprintf("Could not open the provided file %s", r.Source)
	case errors.Is(r.Err, ErrNotArchive):
		return fmt.Sprintf("File %s is not a Huffman archive", r.Source)
	case errors.Is(r.Err, huffman.ErrInvalidArchiveFormat):
		return fmt.Sprintf("File %s has an invalid archive format: %v", r.Source, r.Err)
	case errors.Is(r.Err, huffman.ErrCorruptedArchive):
		return fmt.Sprintf("File %s is corrupted: %v", r.Source, r.Err)
	case errors.Is(r.Err, ErrUnknownAlgorithm):
		return r.Err.Error()
	case errors.Is(r.Err, ErrVerifyFailed):
		return fmt.Sprintf("Verification of %s failed, no archive written: %v", r.Source, r.Err)
	}
	return fmt.Sprintf("Error while %sing %s: %v", r.Operation, r.Source, r.Err)
}

// PrintResults writes one report per result and returns how many failed.
func PrintResults(w io.Writer, results []Result) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintln(w, failure("%s", Describe(r)))
			continue
		}
		switch r.Operation {
		case Compress:
			fmt.Fprintln(w, success("Archivation done. File: (%s) created.", r.Destination))
			fmt.Fprintf(w, "Original size (in bytes): %v\n", r.OriginalSize)
			fmt.Fprintf(w, "Compressed size (in bytes): %v\n", r.ArchiveSize)
			fmt.Fprintf(w, "Compression ratio: %.2f%%\n", r.Ratio())
		case Decompress:
			fmt.Fprintln(w, success("Extraction done. File: (%s) created.", r.Destination))
			fmt.Fprintf(w, "Restored size (in bytes): %v\n", r.OriginalSize)
		}
	}
	return failed
}
