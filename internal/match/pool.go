package match

// Pool is the FIFO queue of connections waiting for an opponent.
type Pool struct {
	queue []ConnID
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// Enqueue appends id to the back of the queue. It does not check for
// duplicates; callers must not enqueue an id that is already waiting.
func (p *Pool) Enqueue(id ConnID) {
	p.queue = append(p.queue, id)
}

// DequeueFront removes and returns the oldest waiting id.
func (p *Pool) DequeueFront() (ConnID, bool) {
	if len(p.queue) == 0 {
		return "", false
	}
	id := p.queue[0]
	p.queue[0] = ""
	p.queue = p.queue[1:]
	return id, true
}

// Remove drops every occurrence of id, keeping the order of the rest.
// Removing an id that is not waiting is a no-op.
func (p *Pool) Remove(id ConnID) {
	kept := p.queue[:0]
	for _, queued := range p.queue {
		if queued != id {
			kept = append(kept, queued)
		}
	}
	for i := len(kept); i < len(p.queue); i++ {
		p.queue[i] = ""
	}
	p.queue = kept
}

// Contains reports whether id is waiting.
func (p *Pool) Contains(id ConnID) bool {
	for _, queued := range p.queue {
		if queued == id {
			return true
		}
	}
	return false
}

// Len returns the number of waiting ids.
func (p *Pool) Len() int {
	return len(p.queue)
}

// PushFront puts id back at the head of the queue.
func (p *Pool) PushFront(id ConnID) {
	p.queue = append([]ConnID{id}, p.queue...)
}
