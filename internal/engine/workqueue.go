package engine

// workQueue is a FIFO worklist of pending units.
//
// A dispatch run is single-threaded and synchronous - stages enqueue only
// from inside Transform, which runs on the dispatch loop itself - so the
// queue needs no locking and no signaling.
type workQueue struct {
	units []*Unit
}

func newWorkQueue() *workQueue {
	return &workQueue{units: make([]*Unit, 0, 16)}
}

// Enqueue adds a unit to the back of the queue.
func (q *workQueue) Enqueue(u *Unit) {
	q.units = append(q.units, u)
}

// TryDequeue removes and returns the front unit.
// Returns (nil, false) if the queue is empty.
func (q *workQueue) TryDequeue() (*Unit, bool) {
	if len(q.units) == 0 {
		return nil, false
	}

	u := q.units[0]

	// Nil out the slot so the backing array doesn't retain the unit's
	// body (row-sets can be large) until the slice is reallocated.
	q.units[0] = nil

	if len(q.units) == 1 {
		q.units = q.units[:0]
	} else {
		q.units = q.units[1:]
	}
	return u, true
}

// Len returns the current queue length.
func (q *workQueue) Len() int {
	return len(q.units)
}
