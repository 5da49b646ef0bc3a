// README: Indexed min-heap priority queue backing the shortest-path search.
package roadnet

import "rideshare/internal/types"

// MinHeap is a binary min-heap over (distance, node) pairs with an auxiliary
// node→index map. The map gives O(1) membership tests and makes an in-place
// DecreaseKey possible in O(log n), which a plain container/heap slice cannot
// offer without a linear scan for the element.
type MinHeap struct {
	items []heapItem
	pos   map[types.ID]int
}

type heapItem struct {
	dist float64
	id   types.ID
}

// NewMinHeap returns an empty queue.
func NewMinHeap() *MinHeap {
	return &MinHeap{pos: make(map[types.ID]int)}
}

// Len returns the number of queued nodes.
func (h *MinHeap) Len() int { return len(h.items) }

// IsEmpty reports whether the queue holds no nodes.
func (h *MinHeap) IsEmpty() bool { return len(h.items) == 0 }

// Contains reports whether the node is currently queued.
func (h *MinHeap) Contains(id types.ID) bool {
	_, ok := h.pos[id]
	return ok
}

// Insert queues a node with the given distance key.
func (h *MinHeap) Insert(dist float64, id types.ID) {
	h.items = append(h.items, heapItem{dist: dist, id: id})
	h.pos[id] = len(h.items) - 1
	h.siftUp(len(h.items) - 1)
}

// ExtractMin removes and returns the queued node with the smallest distance.
func (h *MinHeap) ExtractMin() (float64, types.ID, error) {
	if len(h.items) == 0 {
		return 0, "", ErrEmptyQueue
	}
	min := h.items[0]
	delete(h.pos, min.id)

	last := len(h.items) - 1
	if last > 0 {
		h.items[0] = h.items[last]
		h.pos[h.items[0].id] = 0
		h.items = h.items[:last]
		h.siftDown(0)
	} else {
		h.items = h.items[:0]
	}
	return min.dist, min.id, nil
}

// DecreaseKey lowers the distance of an already-queued node. It is a no-op
// when the node is absent or when the new distance is not strictly smaller;
// a key is never increased through this path.
func (h *MinHeap) DecreaseKey(id types.ID, dist float64) {
	i, ok := h.pos[id]
	if !ok {
		return
	}
	if dist >= h.items[i].dist {
		return
	}
	h.items[i].dist = dist
	h.siftUp(i)
}

func (h *MinHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[i].dist >= h.items[parent].dist {
			break
		}
		h.swap(i, parent)
		i = parent
	}
}

func (h *MinHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && h.items[left].dist < h.items[smallest].dist {
			smallest = left
		}
		if right < n && h.items[right].dist < h.items[smallest].dist {
			smallest = right
		}
		if smallest == i {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}

// swap exchanges two heap slots and keeps the index map in lock-step.
func (h *MinHeap) swap(i, j int) {
	h.pos[h.items[i].id] = j
	h.pos[h.items[j].id] = i
	h.items[i], h.items[j] = h.items[j], h.items[i]
}
