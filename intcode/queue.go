package intcode

// Queue is the first-in, first-out input queue of a Computer.
type Queue struct {
	Data []Word
}

// Push appends values to the back of the queue.
func (q *Queue) Push(values ...Word) {
	q.Data = append(q.Data, values...)
}

// Pop removes the value at the front of the queue.
func (q *Queue) Pop() (value Word, ok bool) {
	value, ok = q.Peek()
	if ok {
		q.Data = q.Data[1:]
	}
	return
}

// Empty returns true if the queue holds no values.
func (q *Queue) Empty() bool {
	return len(q.Data) == 0
}

// Len returns the number of values in the queue.
func (q *Queue) Len() int {
	return len(q.Data)
}

// Peek returns the value at the front of the queue, without removing it.
func (q *Queue) Peek() (value Word, ok bool) {
	if q.Empty() {
		return
	}

	return q.Data[0], true
}
