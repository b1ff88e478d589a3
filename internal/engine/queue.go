package engine

// commandQueue buffers protocol commands issued before the engine reports
// ready. Strict FIFO, no deduplication, no priority. The queue is owned by
// the Manager and mutated only under its mutex.
type commandQueue struct {
	pending []string
}

func (q *commandQueue) enqueue(cmd string) {
	q.pending = append(q.pending, cmd)
}

// drain returns every queued command in original arrival order and leaves
// the queue empty.
func (q *commandQueue) drain() []string {
	out := q.pending
	q.pending = nil
	return out
}

func (q *commandQueue) len() int { return len(q.pending) }
