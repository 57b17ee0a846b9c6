package huffman

import (
	"container/heap"
)

type bitString string

type huffmanTree interface {
	leaves() int
}
type huffmanLeaf struct {
	symbol byte
}
type huffmanNode struct {
	left, right huffmanTree
}

func (leaf huffmanLeaf) leaves() int {
	return 1
}

func (node huffmanNode) leaves() int {
	return node.left.leaves() + node.right.leaves()
}

// queueEntry pairs a subtree with the summed frequency of its leaves. The
// weight lives here only while the subtree waits in the queue.
type queueEntry struct {
	tree   huffmanTree
	weight int
	seq    int
}

type huffmanHeap []queueEntry

func (hub *huffmanHeap) Push(item any) {
	*hub = append(*hub, item.(queueEntry))
}

func (hub *huffmanHeap) Pop() any {
	popped := (*hub)[len(*hub)-1]
	(*hub) = (*hub)[:len(*hub)-1]
	return popped
}

func (hub huffmanHeap) Len() int {
	return len(hub)
}

// Less orders by weight, then by insertion sequence so that equal weights
// leave the queue first-in first-out.
func (hub huffmanHeap) Less(i, j int) bool {
	if hub[i].weight != hub[j].weight {
		return hub[i].weight < hub[j].weight
	}
	return hub[i].seq < hub[j].seq
}

func (hub huffmanHeap) Swap(i, j int) {
	hub[i], hub[j] = hub[j], hub[i]
}

var _ heap.Interface = (*huffmanHeap)(nil)

// priorityQueue is a min-heap of subtrees keyed by weight with a stable
// FIFO tie-break.
type priorityQueue struct {
	hub    huffmanHeap
	nextId int
}

func (pq *priorityQueue) insert(tree huffmanTree, weight int) {
	heap.Push(&pq.hub, queueEntry{
		tree:   tree,
		weight: weight,
		seq:    pq.nextId,
	})
	pq.nextId++
}

func (pq *priorityQueue) extractMin() (huffmanTree, int) {
	entry := heap.Pop(&pq.hub).(queueEntry)
	return entry.tree, entry.weight
}

func (pq *priorityQueue) peekMinWeight() int {
	return pq.hub[0].weight
}

func (pq *priorityQueue) size() int {
	return pq.hub.Len()
}

// buildTree merges the two lightest subtrees until a single root remains.
// The first extracted subtree becomes the left child. It returns nil when the
// table has no symbols.
func buildTree(ft FrequencyTable) huffmanTree {
	pq := new(priorityQueue)
	for _, symbol := range ft.Symbols() {
		pq.insert(huffmanLeaf{symbol: symbol}, ft.Count(symbol))
	}
	if pq.size() == 0 {
		return nil
	}
	for pq.size() > 1 {
		x, xWeight := pq.extractMin()
		y, yWeight := pq.extractMin()
		pq.insert(huffmanNode{
			left:  x,
			right: y,
		}, xWeight+yWeight)
	}
	root, _ := pq.extractMin()
	return root
}
