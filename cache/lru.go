package cache

// node is an element of the recency list. It carries its key so that the
// store can drop the map entry when the node is evicted.
type node[K comparable] struct {
	key        K
	prev, next *node[K]
}

// recency orders keys from most recently used (front) to least (back).
// It is not synchronized; each shard guards its own list.
type recency[K comparable] struct {
	front, back *node[K]
	n           int
}

func (l *recency[K]) len() int {
	return l.n
}

// push inserts key at the front and returns its node.
func (l *recency[K]) push(key K) *node[K] {
	e := &node[K]{key: key}
	l.linkFront(e)
	return e
}

// touch marks e as most recently used.
func (l *recency[K]) touch(e *node[K]) {
	if e == nil || e == l.front {
		return
	}
	l.unlink(e)
	l.linkFront(e)
}

func (l *recency[K]) remove(e *node[K]) {
	if e != nil {
		l.unlink(e)
	}
}

// pop removes the least recently used key.
func (l *recency[K]) pop() (K, bool) {
	if l.back == nil {
		var zero K
		return zero, false
	}
	e := l.back
	l.unlink(e)
	return e.key, true
}

func (l *recency[K]) reset() {
	l.front, l.back, l.n = nil, nil, 0
}

func (l *recency[K]) linkFront(e *node[K]) {
	e.prev = nil
	e.next = l.front
	if l.front != nil {
		l.front.prev = e
	} else {
		l.back = e
	}
	l.front = e
	l.n++
}

func (l *recency[K]) unlink(e *node[K]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.front = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.back = e.prev
	}
	e.prev, e.next = nil, nil
	l.n--
}
