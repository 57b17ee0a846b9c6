package huffman

// FrequencyTable holds the number of occurrences of every byte value in a
// buffer together with the buffer's length. It is built once per buffer and
// not modified afterwards.
type FrequencyTable struct {
	counts [256]int
	length int
}

// CountFrequencies scans content once and returns its FrequencyTable. An
// empty buffer yields an all-zero table of length 0.
func CountFrequencies(content []byte) FrequencyTable {
	var ft FrequencyTable
	for _, b := range content {
		ft.counts[b]++
	}
	ft.length = len(content)
	return ft
}

// Count returns the frequency of symbol.
func (ft FrequencyTable) Count(symbol byte) int {
	return ft.counts[symbol]
}

// Len returns the length of the buffer the table describes.
func (ft FrequencyTable) Len() int {
	return ft.length
}

// Symbols returns the symbols with a nonzero frequency in ascending order.
func (ft FrequencyTable) Symbols() []byte {
	symbols := make([]byte, 0, 256)
	for i, count := range ft.counts {
		if count != 0 {
			symbols = append(symbols, byte(i))
		}
	}
	return symbols
}

// Distinct returns how many symbols have a nonzero frequency.
func (ft FrequencyTable) Distinct() int {
	n := 0
	for _, count := range ft.counts {
		if count != 0 {
			n++
		}
	}
	return n
}
