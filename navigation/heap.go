package navigation

// MinHeap is an array-backed binary min-heap ordered by a caller-supplied key
// Ordering among equal keys is deterministic for a fixed sequence of pushes and pops
type MinHeap[T any] struct {
	items []T
	key   func(T) float64
}

// NewMinHeap creates an empty heap with the given key function and capacity hint
func NewMinHeap[T any](key func(T) float64, capacity int) *MinHeap[T] {
	return &MinHeap[T]{
		items: make([]T, 0, capacity),
		key:   key,
	}
}

// Len returns the number of queued items
func (h *MinHeap[T]) Len() int {
	return len(h.items)
}

// Reset empties the heap, keeping its backing array
func (h *MinHeap[T]) Reset() {
	clear(h.items)
	h.items = h.items[:0]
}

// Push inserts an item in O(log n)
func (h *MinHeap[T]) Push(item T) {
	h.items = append(h.items, item)

	// Sift up
	i := len(h.items) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if h.key(h.items[parent]) <= h.key(h.items[i]) {
			break
		}
		h.items[parent], h.items[i] = h.items[i], h.items[parent]
		i = parent
	}
}

// Pop removes and returns the item with the smallest key
// ok is false when the heap is empty
func (h *MinHeap[T]) Pop() (item T, ok bool) {
	n := len(h.items)
	if n == 0 {
		return item, false
	}

	item = h.items[0]
	h.items[0] = h.items[n-1]
	var zero T
	h.items[n-1] = zero
	h.items = h.items[:n-1]

	// Sift down
	i := 0
	for {
		left := 2*i + 1
		if left >= len(h.items) {
			break
		}
		smallest := left
		if right := left + 1; right < len(h.items) && h.key(h.items[right]) < h.key(h.items[left]) {
			smallest = right
		}
		if h.key(h.items[i]) <= h.key(h.items[smallest]) {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
	return item, true
}
