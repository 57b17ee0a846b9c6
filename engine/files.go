package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	pb "github.com/cheggaaa/pb/v3"
	"github.com/mattn/go-isatty"
)

var (
	ErrFileNotFound = errors.New("could not open the provided file")
	ErrNotArchive   = errors.New("file is not a Huffman archive")
)

// ValidateSource checks that path names an existing regular file and, for
// decompression, that it carries the archive extension.
func ValidateSource(path string, op Operation, ext string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w %s", ErrFileNotFound, path)
	} else if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if op == Decompress && (!strings.HasSuffix(path, ext) || len(filepath.Base(path)) == len(ext)) {
		return fmt.Errorf("%w: %s does not end in %s", ErrNotArchive, path, ext)
	}
	return nil
}

func showProgress(enabled bool) bool {
	fd := os.Stderr.Fd()
	return enabled && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}

// readAll loads the whole file, drawing a byte progress bar on terminals.
func readAll(path string, progress bool) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if !showProgress(progress) {
		return io.ReadAll(file)
	}
	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	bar := pb.New64(info.Size())
	bar.Set(pb.Bytes, true)
	bar.SetWriter(os.Stderr)
	bar.Start()
	defer bar.Finish()
	return io.ReadAll(bar.NewProxyReader(file))
}

// writeAll replaces path with content atomically: the data goes to a
// temporary file in the same directory which is renamed into place only
// once it has been written completely.
func writeAll(path string, content []byte) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(content); err != nil {
		return err
	}
	if err = tmp.Chmod(0644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
