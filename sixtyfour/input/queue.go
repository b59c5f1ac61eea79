package input

import "github.com/valerio/go-sixtyfour/sixtyfour/input/event"

// Queue is a bounded FIFO of host events. Events pushed while it is full
// are dropped and counted.
type Queue struct {
	buf     []event.Event
	head    int
	size    int
	dropped uint64
}

func NewQueue(depth int) *Queue {
	if depth < 1 {
		depth = 1
	}
	return &Queue{buf: make([]event.Event, depth)}
}

// Push appends ev, reporting false if the queue was full.
func (q *Queue) Push(ev event.Event) bool {
	if q.size == len(q.buf) {
		q.dropped++
		return false
	}
	q.buf[(q.head+q.size)%len(q.buf)] = ev
	q.size++
	return true
}

// Pop removes the oldest event.
func (q *Queue) Pop() (event.Event, bool) {
	if q.size == 0 {
		return event.Event{}, false
	}
	ev := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return ev, true
}

func (q *Queue) Len() int        { return q.size }
func (q *Queue) Cap() int        { return len(q.buf) }
func (q *Queue) Dropped() uint64 { return q.dropped }
