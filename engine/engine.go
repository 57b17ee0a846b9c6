package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/FitrahHaque/Huffman-Archiver/compressor/huffman"
	"github.com/FitrahHaque/Huffman-Archiver/logger"
)

var Engines = [...]string{
	"huffman",
}

var (
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrVerifyFailed     = errors.New("archive does not decode to the source")
)

type Operation string

const (
	Compress   Operation = "compress"
	Decompress Operation = "decompress"
)

const (
	DefaultFileExtension = ".huf"
	DefaultOutPrefix     = "ORIGINAL_"
)

type Options struct {
	Algorithms    []string
	FileExtension string
	OutPrefix     string
	Verify        bool
	Progress      bool
	Logger        logger.Logger
}

func (o Options) withDefaults() Options {
	if len(o.Algorithms) == 0 {
		o.Algorithms = []string{"huffman"}
	}
	if o.FileExtension == "" {
		o.FileExtension = DefaultFileExtension
	}
	if o.OutPrefix == "" {
		o.OutPrefix = DefaultOutPrefix
	}
	if o.Logger == nil {
		o.Logger = logger.Nop()
	}
	return o
}

// Result is the outcome of one file job. Err is nil on success, in which
// case Destination holds the complete output.
type Result struct {
	Operation    Operation
	Source       string
	Destination  string
	OriginalSize int
	ArchiveSize  int
	Err          error
}

// Ratio returns the archive size as a percentage of the original size.
func (r Result) Ratio() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return float64(r.ArchiveSize) / float64(r.OriginalSize) * 100
}

type compressor struct {
	compressionEngine string
	compressedContent []byte
}

type algorithm struct {
	newWriter func(io.Writer, logger.Logger) io.WriteCloser
	newReader func(io.Reader, logger.Logger) io.Reader
}

var registry = map[string]algorithm{
	"huffman": {
		newWriter: func(w io.Writer, l logger.Logger) io.WriteCloser {
			return huffman.NewCodec(l).NewWriter(w)
		},
		newReader: func(r io.Reader, l logger.Logger) io.Reader {
			return huffman.NewCodec(l).NewReader(r)
		},
	},
}

func lookup(name string) (algorithm, error) {
	a, ok := registry[name]
	if !ok {
		return algorithm{}, fmt.Errorf("%w %q, choices include: %s", ErrUnknownAlgorithm, name, strings.Join(Engines[:], ", "))
	}
	return a, nil
}

func (c *compressor) write(content []byte, l logger.Logger) (int, error) {
	a, err := lookup(c.compressionEngine)
	if err != nil {
		return 0, err
	}
	var b bytes.Buffer
	w := a.newWriter(&b, l)
	if _, err := w.Write(content); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	c.compressedContent = b.Bytes()
	return len(c.compressedContent), nil
}

func (c *compressor) read(content []byte, l logger.Logger) ([]byte, error) {
	a, err := lookup(c.compressionEngine)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(a.newReader(bytes.NewReader(content), l))
}

func CompressFiles(files []string, opts Options) []Result {
	opts = opts.withDefaults()
	results := make([]Result, 0, len(files))
	for _, file := range files {
		results = append(results, compressFile(file, file+opts.FileExtension, opts))
	}
	return results
}

func DecompressFiles(files []string, opts Options) []Result {
	opts = opts.withDefaults()
	results := make([]Result, 0, len(files))
	for _, file := range files {
		results = append(results, decompressFile(file, DecompressedName(file, opts.FileExtension, opts.OutPrefix), opts))
	}
	return results
}

// DecompressedName maps dir/name<ext> to dir/<prefix>name.
func DecompressedName(archivePath, ext, prefix string) string {
	dir, base := filepath.Split(archivePath)
	return filepath.Join(dir, prefix+strings.TrimSuffix(base, ext))
}

func compressFile(filePath string, outputFileName string, opts Options) Result {
	result := Result{Operation: Compress, Source: filePath, Destination: outputFileName}
	if result.Err = ValidateSource(filePath, Compress, opts.FileExtension); result.Err != nil {
		return result
	}
	fileContent, err := readAll(filePath, opts.Progress)
	if err != nil {
		result.Err = err
		return result
	}
	opts.Logger.Debugf("[ engine.compressFile ] compressing %s (%d bytes)", filePath, len(fileContent))
	compressed, err := compress(fileContent, opts.Algorithms, opts.Logger)
	if err != nil {
		result.Err = err
		return result
	}
	if opts.Verify {
		if result.Err = verify(fileContent, compressed, opts); result.Err != nil {
			return result
		}
	}
	if result.Err = writeAll(outputFileName, compressed); result.Err != nil {
		return result
	}
	result.OriginalSize, result.ArchiveSize = len(fileContent), len(compressed)
	return result
}

func decompressFile(filePath string, outputFileName string, opts Options) Result {
	result := Result{Operation: Decompress, Source: filePath, Destination: outputFileName}
	if result.Err = ValidateSource(filePath, Decompress, opts.FileExtension); result.Err != nil {
		return result
	}
	archive, err := readAll(filePath, opts.Progress)
	if err != nil {
		result.Err = err
		return result
	}
	opts.Logger.Debugf("[ engine.decompressFile ] decompressing %s (%d bytes)", filePath, len(archive))
	content, err := decompress(archive, opts.Algorithms, opts.Logger)
	if err != nil {
		result.Err = err
		return result
	}
	if result.Err = writeAll(outputFileName, content); result.Err != nil {
		return result
	}
	result.OriginalSize, result.ArchiveSize = len(content), len(archive)
	return result
}

func compress(content []byte, algorithms []string, l logger.Logger) ([]byte, error) {
	for _, algorithm := range algorithms {
		file := compressor{
			compressionEngine: algorithm,
		}
		if _, err := file.write(content, l); err != nil {
			return nil, err
		}
		content = file.compressedContent
	}
	return content, nil
}

// decompress undoes compress, applying the algorithms in reverse order.
func decompress(content []byte, algorithms []string, l logger.Logger) ([]byte, error) {
	for i := len(algorithms) - 1; i >= 0; i-- {
		file := compressor{
			compressionEngine: algorithms[i],
		}
		var err error
		if content, err = file.read(content, l); err != nil {
			return nil, err
		}
	}
	return content, nil
}

func verify(original, compressed []byte, opts Options) error {
	decoded, err := decompress(compressed, opts.Algorithms, logger.Nop())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVerifyFailed, err)
	}
	if xxhash.Sum64(decoded) != xxhash.Sum64(original) || len(decoded) != len(original) {
		return ErrVerifyFailed
	}
	opts.Logger.Debugf("[ engine.verify ] digest %016x matches", xxhash.Sum64(original))
	return nil
}
