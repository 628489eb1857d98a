package astar

import "container/heap"

// Comparator ranks a against b: negative when a comes out first, zero when
// they tie, positive otherwise.
type Comparator[T any] func(a, b T) int

type priorityQueueItem[T any] struct {
	value        T
	sequence     uint64
	indexInQueue int
}

// priorityQueueHeap implements heap.Interface. Equal items leave in insertion order.
type priorityQueueHeap[T any] struct {
	items   []*priorityQueueItem[T]
	compare Comparator[T]
}

var _ heap.Interface = &priorityQueueHeap[int]{}

func (queue priorityQueueHeap[T]) Len() int { return len(queue.items) }
func (queue priorityQueueHeap[T]) Less(i, j int) bool {
	if order := queue.compare(queue.items[i].value, queue.items[j].value); order != 0 {
		return order < 0
	}
	return queue.items[i].sequence < queue.items[j].sequence
}
func (queue priorityQueueHeap[T]) Swap(i, j int) {
	queue.items[i], queue.items[j] = queue.items[j], queue.items[i]
	queue.items[i].indexInQueue = i
	queue.items[j].indexInQueue = j
}

func (queue *priorityQueueHeap[T]) Push(x any) {
	item := x.(*priorityQueueItem[T])
	item.indexInQueue = len(queue.items)
	queue.items = append(queue.items, item)
}

func (queue *priorityQueueHeap[T]) Pop() any {
	oldItems := queue.items
	n := len(oldItems)
	item := oldItems[n-1]
	oldItems[n-1] = nil
	item.indexInQueue = -1
	queue.items = oldItems[:n-1]
	return item
}

// PriorityQueue is a min-priority container ordered by a Comparator.
// It is not safe for concurrent use.
type PriorityQueue[T any] struct {
	heap         priorityQueueHeap[T]
	nextSequence uint64
}

// NewPriorityQueue returns an empty queue ranked by compare.
func NewPriorityQueue[T any](compare Comparator[T]) *PriorityQueue[T] {
	queue := &PriorityQueue[T]{heap: priorityQueueHeap[T]{compare: compare}}
	heap.Init(&queue.heap)
	return queue
}

// Add inserts value in O(log n).
func (queue *PriorityQueue[T]) Add(value T) {
	heap.Push(&queue.heap, &priorityQueueItem[T]{value: value, sequence: queue.nextSequence})
	queue.nextSequence++
}

// Dequeue removes and returns the best ranked value.
func (queue *PriorityQueue[T]) Dequeue() (T, error) {
	if queue.heap.Len() == 0 {
		var zero T
		return zero, ErrEmptyQueue
	}
	item := heap.Pop(&queue.heap).(*priorityQueueItem[T])
	return item.value, nil
}

func (queue *PriorityQueue[T]) IsEmpty() bool { return queue.heap.Len() == 0 }

func (queue *PriorityQueue[T]) Len() int { return queue.heap.Len() }

// Values copies the queued values in heap order, not rank order.
func (queue *PriorityQueue[T]) Values() []T {
	values := make([]T, len(queue.heap.items))
	for i, item := range queue.heap.items {
		values[i] = item.value
	}
	return values
}
