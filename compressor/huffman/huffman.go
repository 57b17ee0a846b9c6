package huffman

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// Logger receives trace lines from a Codec.
type Logger interface {
	Debugf(format string, v ...any)
}

// Codec encodes buffers into archives and decodes them back. A Codec holds
// no state between calls; the zero value is ready to use.
type Codec struct {
	logger Logger
}

// NewCodec returns a Codec that traces its steps to logger, which may be nil.
func NewCodec(logger Logger) *Codec {
	return &Codec{logger: logger}
}

func (c *Codec) debugf(format string, v ...any) {
	if c != nil && c.logger != nil {
		c.logger.Debugf(format, v...)
	}
}

// Encode returns the archive for content.
func (c *Codec) Encode(content []byte) []byte {
	var b bytes.Buffer
	if err := c.EncodeTo(&b, content); err != nil {
		// bytes.Buffer writes only fail by panicking.
		panic(err)
	}
	return b.Bytes()
}

// EncodeTo writes the archive for content to w.
func (c *Codec) EncodeTo(w io.Writer, content []byte) error {
	ft := CountFrequencies(content)
	c.debugf("[ huffman.Encode ] length: %v, distinct symbols: %v", ft.Len(), ft.Distinct())
	tree := buildTree(ft)
	ct := buildCodeTable(tree)
	c.debugf("[ huffman.Encode ] code table built for %v symbols", ct.Len())
	return writeArchive(w, content, ft, ct)
}

// Decode returns the original buffer stored in archive. Malformed headers
// and tables fail with ErrInvalidArchiveFormat; bodies that run out of bits
// or do not match the tree fail with ErrCorruptedArchive.
func (c *Codec) Decode(archive []byte) ([]byte, error) {
	header, err := ParseHeader(archive)
	if err != nil {
		return nil, err
	}
	bodySize := len(archive) - header.BodyOffset
	c.debugf("[ huffman.Decode ] length: %v, distinct symbols: %v, body bytes: %v",
		header.Length, header.Frequencies.Distinct(), bodySize)
	// every symbol costs at least one bit
	if header.Length > maxSymbols(bodySize) {
		return nil, fmt.Errorf("%w: body of %d bytes cannot hold %d symbols", ErrCorruptedArchive, bodySize, header.Length)
	}
	tree := buildTree(header.Frequencies)
	if tree != nil {
		assert.Assertf(tree.leaves() == header.Frequencies.Distinct(),
			"rebuilt tree has %d leaves for %d symbols", tree.leaves(), header.Frequencies.Distinct())
	}
	return walkBody(tree, archive[header.BodyOffset:], header.Length)
}

// Encode returns the archive for content.
func Encode(content []byte) []byte {
	return new(Codec).Encode(content)
}

// Decode returns the original buffer stored in archive.
func Decode(archive []byte) ([]byte, error) {
	return new(Codec).Decode(archive)
}

// CompressionWriter buffers everything written to it and emits the archive
// to the underlying writer on Close.
type CompressionWriter struct {
	codec  *Codec
	w      io.Writer
	buffer bytes.Buffer
	closed bool
}

func (cw *CompressionWriter) Write(data []byte) (int, error) {
	if cw.closed {
		return 0, errors.New("huffman: write to closed CompressionWriter")
	}
	return cw.buffer.Write(data)
}

func (cw *CompressionWriter) Close() error {
	if cw.closed {
		return nil
	}
	cw.closed = true
	return cw.codec.EncodeTo(cw.w, cw.buffer.Bytes())
}

// NewWriter returns a CompressionWriter for w using c.
func (c *Codec) NewWriter(w io.Writer) io.WriteCloser {
	newCW := new(CompressionWriter)
	newCW.codec = c
	newCW.w = w
	return newCW
}

// NewWriter returns a CompressionWriter for w.
func NewWriter(w io.Writer) io.WriteCloser {
	return new(Codec).NewWriter(w)
}

// DecompressionReader reads a whole archive from its source on the first
// Read and then serves the decoded bytes.
type DecompressionReader struct {
	codec   *Codec
	r       io.Reader
	decoded *bytes.Reader
	err     error
}

func (dr *DecompressionReader) Read(data []byte) (int, error) {
	if dr.err != nil {
		return 0, dr.err
	}
	if dr.decoded == nil {
		archive, err := io.ReadAll(dr.r)
		if err != nil {
			dr.err = err
			return 0, err
		}
		content, err := dr.codec.Decode(archive)
		if err != nil {
			dr.err = err
			return 0, err
		}
		dr.decoded = bytes.NewReader(content)
	}
	return dr.decoded.Read(data)
}

// NewReader returns a DecompressionReader for r using c.
func (c *Codec) NewReader(r io.Reader) io.Reader {
	newDR := new(DecompressionReader)
	newDR.codec = c
	newDR.r = r
	return newDR
}

// NewReader returns a DecompressionReader for r.
func NewReader(r io.Reader) io.Reader {
	return new(Codec).NewReader(r)
}
