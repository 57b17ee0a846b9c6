package huffman

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// CodeTable maps every symbol present in a tree to its root-to-leaf path,
// written as a string of '0' (left) and '1' (right) characters.
type CodeTable struct {
	codes   [256]bitString
	present [256]bool
}

// Code returns the bit string assigned to symbol and whether the symbol is
// part of the table.
func (ct *CodeTable) Code(symbol byte) (string, bool) {
	return string(ct.codes[symbol]), ct.present[symbol]
}

// Len returns the number of symbols in the table.
func (ct *CodeTable) Len() int {
	n := 0
	for _, ok := range ct.present {
		if ok {
			n++
		}
	}
	return n
}

// Dump writes a programmer-readable listing of the table, one symbol per
// line in ascending byte order.
func (ct *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	for i := range ct.codes {
		if ct.present[i] {
			fmt.Fprintf(&buf, "\tCode(%d) = %q\n", i, string(ct.codes[i]))
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// BuildCodeTable builds the Huffman tree for ft and derives its code table.
func BuildCodeTable(ft FrequencyTable) *CodeTable {
	return buildCodeTable(buildTree(ft))
}

func buildCodeTable(tree huffmanTree) *CodeTable {
	ct := new(CodeTable)
	switch i := tree.(type) {
	case nil:
		return ct
	case huffmanLeaf:
		// A lone leaf has an empty path; give it a one-bit code instead.
		ct.codes[i.symbol] = singleSymbolCode
		ct.present[i.symbol] = true
		return ct
	}
	getSymbolEncoding(tree, ct, []byte{})
	assert.Assertf(ct.Len() == tree.leaves(), "code table has %d entries for %d leaves", ct.Len(), tree.leaves())
	assert.Assertf(ct.isPrefixFree(), "code table is not prefix-free")
	return ct
}

func getSymbolEncoding(tree huffmanTree, ct *CodeTable, currentPrefix []byte) {
	switch i := tree.(type) {
	case huffmanLeaf:
		ct.codes[i.symbol] = bitString(currentPrefix)
		ct.present[i.symbol] = true
	case huffmanNode:
		getSymbolEncoding(i.left, ct, append(currentPrefix, '0'))
		getSymbolEncoding(i.right, ct, append(currentPrefix, '1'))
	}
}

func (ct *CodeTable) isPrefixFree() bool {
	for i := range ct.codes {
		if !ct.present[i] {
			continue
		}
		for j := range ct.codes {
			if i == j || !ct.present[j] {
				continue
			}
			if strings.HasPrefix(string(ct.codes[j]), string(ct.codes[i])) {
				return false
			}
		}
	}
	return true
}
