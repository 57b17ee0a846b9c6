package huffman

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func allBytes() []byte {
	content := make([]byte, 256)
	for i := range content {
		content[i] = byte(i)
	}
	return content
}

func TestEncode_Scenario(t *testing.T) {
	input := []byte("AAAAAAAABBBBCCD")
	expect := append([]byte("15{A8;B4;C2;D1;}}"), 0xff, 0x55, 0x24, 0x00)
	actual := Encode(input)
	if !bytes.Equal(expect, actual) {
		t.Errorf("wrong archive:\n\texpect: %q\n\tactual: %q", expect, actual)
	}
}

func TestEncode_Empty(t *testing.T) {
	expect := "0{}}"
	actual := string(Encode(nil))
	if expect != actual {
		t.Errorf("wrong archive:\n\texpect: %q\n\tactual: %q", expect, actual)
	}
	decoded, err := Decode([]byte(expect))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("expected empty result, got %q", decoded)
	}
}

func TestEncode_SingleSymbol(t *testing.T) {
	input := bytes.Repeat([]byte{'a'}, 11)
	expect := append([]byte("11{a11;}}"), 0x00, 0x00)
	actual := Encode(input)
	if !bytes.Equal(expect, actual) {
		t.Errorf("wrong archive:\n\texpect: %q\n\tactual: %q", expect, actual)
	}
	decoded, err := Decode(actual)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(input, decoded) {
		t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", input, decoded)
	}
}

func TestRoundTrip(t *testing.T) {
	type testRow struct {
		name  string
		input []byte
	}

	testData := [...]testRow{
		{name: "empty", input: []byte{}},
		{name: "one-byte", input: []byte{0}},
		{name: "repeated", input: bytes.Repeat([]byte{0xff}, 1000)},
		{name: "two-symbols", input: []byte("abababababbbbbbbb")},
		{name: "scenario", input: []byte("AAAAAAAABBBBCCD")},
		{name: "all-bytes", input: allBytes()},
		{name: "all-bytes-twice", input: append(allBytes(), allBytes()...)},
		{name: "delimiters", input: []byte("}}};;{{{}};{}}}}")},
		{name: "digits", input: []byte("0123456789}}9;8{7")},
		{name: "text", input: []byte(strings.Repeat("the quick brown fox jumps over the lazy dog\n", 40))},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			archive := Encode(row.input)
			actual, err := Decode(archive)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if !bytes.Equal(row.input, actual) {
				t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", row.input, actual)
			}
		})
	}
}

func TestEncode_Deterministic(t *testing.T) {
	input := []byte(strings.Repeat("mississippi river banks ", 17))
	first := Encode(input)
	second := Encode(input)
	if !bytes.Equal(first, second) {
		t.Errorf("archives differ:\n\tfirst:  %q\n\tsecond: %q", first, second)
	}
}

func TestDecode_Truncated(t *testing.T) {
	inputs := [][]byte{
		[]byte("AAAAAAAABBBBCCD"),
		bytes.Repeat([]byte{'z'}, 9),
		allBytes(),
		[]byte(strings.Repeat("abcabcabd", 31)),
	}
	for _, input := range inputs {
		archive := Encode(input)
		truncated := archive[:len(archive)-1]
		decoded, err := Decode(truncated)
		if !errors.Is(err, ErrCorruptedArchive) {
			t.Errorf("expected ErrCorruptedArchive for %q, got %v (%d bytes decoded)", input, err, len(decoded))
		}
	}
}

func TestDecode_SingleSymbolMismatch(t *testing.T) {
	archive := append([]byte("2{a2;}}"), 0x40)
	_, err := Decode(archive)
	if !errors.Is(err, ErrCorruptedArchive) {
		t.Errorf("expected ErrCorruptedArchive, got %v", err)
	}
}

func TestDecode_LengthExceedsBody(t *testing.T) {
	testData := [...]string{
		"9000000000000000000{A9000000000000000000;}}\x00",
		"4611686018427387904{A2305843009213693952;B2305843009213693952;}}\x00",
		"10000000000{A10000000000;}}\x00",
		"9{A9;}}\x00",
		"3{A1;B2;}}",
	}
	for _, archive := range testData {
		_, err := Decode([]byte(archive))
		if !errors.Is(err, ErrCorruptedArchive) {
			t.Errorf("expected ErrCorruptedArchive for %q, got %v", archive, err)
		}
	}
}

func TestDecode_IgnoresTrailingPadding(t *testing.T) {
	archive := append(Encode([]byte("AAAAAAAABBBBCCD")), 0xff, 0xff)
	actual, err := Decode(archive)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if string(actual) != "AAAAAAAABBBBCCD" {
		t.Errorf("wrong output: %q", actual)
	}
}

func TestWriterAndReader(t *testing.T) {
	input := []byte(strings.Repeat("stream me through the codec ", 50))

	var archive bytes.Buffer
	w := NewWriter(&archive)
	for i := 0; i < len(input); i += 64 {
		end := min(i+64, len(input))
		if _, err := w.Write(input[i:end]); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := w.Write([]byte("late")); err == nil {
		t.Errorf("expected an error writing after Close")
	}
	if !bytes.Equal(Encode(input), archive.Bytes()) {
		t.Errorf("writer output differs from Encode")
	}

	actual, err := io.ReadAll(NewReader(&archive))
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !bytes.Equal(input, actual) {
		t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", input, actual)
	}
}

func TestReader_PropagatesErrors(t *testing.T) {
	_, err := io.ReadAll(NewReader(strings.NewReader("no delimiter here")))
	if !errors.Is(err, ErrInvalidArchiveFormat) {
		t.Errorf("expected ErrInvalidArchiveFormat, got %v", err)
	}
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Debugf(format string, v ...any) {
	l.lines = append(l.lines, format)
}

func TestCodec_Traces(t *testing.T) {
	logger := new(recordingLogger)
	codec := NewCodec(logger)
	archive := codec.Encode([]byte("trace"))
	if _, err := codec.Decode(archive); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(logger.lines) != 3 {
		t.Errorf("expected 3 trace lines, got %d: %q", len(logger.lines), logger.lines)
	}
}

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("AAAAAAAABBBBCCD"))
	f.Add([]byte("{;}}"))
	f.Add(allBytes())
	f.Fuzz(func(t *testing.T, input []byte) {
		actual, err := Decode(Encode(input))
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if !bytes.Equal(input, actual) {
			t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", input, actual)
		}
	})
}

func FuzzDecode(f *testing.F) {
	f.Add([]byte("0{}}"))
	f.Add(Encode([]byte("AAAAAAAABBBBCCD")))
	f.Add([]byte("9000000000000000000{A9000000000000000000;}}\x00"))
	f.Add([]byte("7{;2;{2;}3;}}\xff\xff"))
	f.Fuzz(func(t *testing.T, archive []byte) {
		decoded, err := Decode(archive)
		if err != nil {
			if !errors.Is(err, ErrInvalidArchiveFormat) && !errors.Is(err, ErrCorruptedArchive) {
				t.Errorf("unclassified error: %v", err)
			}
			return
		}
		header, err := ParseHeader(archive)
		if err != nil {
			t.Fatalf("ParseHeader failed after Decode succeeded: %v", err)
		}
		if len(decoded) != header.Length {
			t.Errorf("wrong length: expect %d, actual %d", header.Length, len(decoded))
		}
	})
}
