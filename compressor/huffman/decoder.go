package huffman

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/icza/bitio"
)

// walkBody regenerates length symbols by walking the bits of body through
// tree: 0 descends left, 1 descends right, and every leaf emits its symbol
// and resets the cursor to the root. Bits left over once length symbols
// have been emitted are padding and are ignored.
func walkBody(tree huffmanTree, body []byte, length int) ([]byte, error) {
	output := make([]byte, 0, min(length, maxSymbols(len(body))))
	if length == 0 {
		return output, nil
	}
	br := bitio.NewReader(bytes.NewReader(body))
	if leaf, ok := tree.(huffmanLeaf); ok {
		return walkSingleSymbol(br, leaf.symbol, output, length)
	}
	node := tree
	for len(output) < length {
		bit, err := br.ReadBool()
		if err != nil {
			return nil, bodyError(err, len(output), length)
		}
		inner, ok := node.(huffmanNode)
		if !ok {
			return nil, fmt.Errorf("%w: traversal stepped past a leaf", ErrCorruptedArchive)
		}
		if bit {
			node = inner.right
		} else {
			node = inner.left
		}
		if leaf, ok := node.(huffmanLeaf); ok {
			output = append(output, leaf.symbol)
			node = tree
		}
	}
	return output, nil
}

// walkSingleSymbol decodes a body whose tree is a lone leaf coded as "0".
func walkSingleSymbol(br *bitio.Reader, symbol byte, output []byte, length int) ([]byte, error) {
	for len(output) < length {
		bit, err := br.ReadBool()
		if err != nil {
			return nil, bodyError(err, len(output), length)
		}
		if bit {
			return nil, fmt.Errorf("%w: unexpected 1 bit in single-symbol body at symbol %d", ErrCorruptedArchive, len(output))
		}
		output = append(output, symbol)
	}
	return output, nil
}

func bodyError(err error, emitted, length int) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: body ended after %d of %d symbols", ErrCorruptedArchive, emitted, length)
	}
	return err
}

// maxSymbols is the most symbols a body of n bytes can encode.
func maxSymbols(n int) int {
	if n > math.MaxInt/8 {
		return math.MaxInt
	}
	return 8 * n
}
