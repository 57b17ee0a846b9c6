package engine

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/VividCortex/ewma"
	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/mattn/go-runewidth"

	"github.com/FitrahHaque/Huffman-Archiver/logger"
)

type BenchmarkResult struct {
	File           string
	Codec          string
	OriginalSize   int
	CompressedSize int
	EncodeMBps     float64
	DecodeMBps     float64
	RoundTrip      bool
	Err            error
}

func (b BenchmarkResult) Ratio() float64 {
	if b.OriginalSize == 0 {
		return 0
	}
	return float64(b.CompressedSize) / float64(b.OriginalSize) * 100
}

type benchCodec struct {
	name   string
	encode func([]byte) ([]byte, error)
	decode func([]byte) ([]byte, error)
}

func huffmanBench(algorithms []string) benchCodec {
	return benchCodec{
		name: "huffman",
		encode: func(content []byte) ([]byte, error) {
			return compress(content, algorithms, logger.Nop())
		},
		decode: func(archive []byte) ([]byte, error) {
			return decompress(archive, algorithms, logger.Nop())
		},
	}
}

func zstdBench() benchCodec {
	return benchCodec{
		name: "zstd",
		encode: func(content []byte) ([]byte, error) {
			enc, err := zstd.NewWriter(nil)
			if err != nil {
				return nil, err
			}
			defer enc.Close()
			return enc.EncodeAll(content, nil), nil
		},
		decode: func(frame []byte) ([]byte, error) {
			dec, err := zstd.NewReader(nil)
			if err != nil {
				return nil, err
			}
			defer dec.Close()
			return dec.DecodeAll(frame, nil)
		},
	}
}

// BenchmarkFiles runs every file through each codec rounds times and
// reports sizes and smoothed throughput.
func BenchmarkFiles(files []string, rounds int, opts Options) []BenchmarkResult {
	opts = opts.withDefaults()
	if rounds < 1 {
		rounds = 1
	}
	codecs := []benchCodec{huffmanBench(opts.Algorithms), zstdBench()}
	var results []BenchmarkResult
	for _, file := range files {
		if err := ValidateSource(file, Compress, opts.FileExtension); err != nil {
			results = append(results, BenchmarkResult{File: file, Codec: "-", Err: err})
			continue
		}
		content, err := readAll(file, false)
		if err != nil {
			results = append(results, BenchmarkResult{File: file, Codec: "-", Err: err})
			continue
		}
		for _, codec := range codecs {
			opts.Logger.Debugf("[ engine.BenchmarkFiles ] %s with %s, %d rounds", file, codec.name, rounds)
			results = append(results, benchmark(file, content, codec, rounds))
		}
	}
	return results
}

func benchmark(file string, content []byte, codec benchCodec, rounds int) BenchmarkResult {
	result := BenchmarkResult{File: file, Codec: codec.name, OriginalSize: len(content)}
	digest := xxhash.Sum64(content)
	encodeRate, decodeRate := ewma.NewMovingAverage(), ewma.NewMovingAverage()
	result.RoundTrip = true
	for i := 0; i < rounds; i++ {
		start := time.Now()
		encoded, err := codec.encode(content)
		if err != nil {
			result.Err = err
			return result
		}
		encodeRate.Add(throughput(len(content), time.Since(start)))

		start = time.Now()
		decoded, err := codec.decode(encoded)
		if err != nil {
			result.Err = err
			return result
		}
		decodeRate.Add(throughput(len(content), time.Since(start)))

		result.CompressedSize = len(encoded)
		if len(decoded) != len(content) || xxhash.Sum64(decoded) != digest {
			result.RoundTrip = false
		}
	}
	result.EncodeMBps, result.DecodeMBps = encodeRate.Value(), decodeRate.Value()
	return result
}

func throughput(n int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		elapsed = time.Nanosecond
	}
	return float64(n) / (1 << 20) / elapsed.Seconds()
}

func PrintBenchmark(w io.Writer, results []BenchmarkResult) error {
	fileWidth := runewidth.StringWidth("file")
	for _, r := range results {
		fileWidth = max(fileWidth, runewidth.StringWidth(r.File))
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s  %-8s %12s %12s %8s %12s %12s  %s\n",
		runewidth.FillRight("file", fileWidth), "codec", "original", "compressed", "ratio", "enc MB/s", "dec MB/s", "round-trip")
	for _, r := range results {
		name := runewidth.FillRight(r.File, fileWidth)
		if r.Err != nil {
			fmt.Fprintf(&buf, "%s  %-8s error: %v\n", name, r.Codec, r.Err)
			continue
		}
		fmt.Fprintf(&buf, "%s  %-8s %12d %12d %7.2f%% %12.2f %12.2f  %v\n",
			name, r.Codec, r.OriginalSize, r.CompressedSize, r.Ratio(), r.EncodeMBps, r.DecodeMBps, r.RoundTrip)
	}
	_, err := buf.WriteTo(w)
	return err
}
