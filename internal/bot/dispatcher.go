package bot

import "sync"

// dispatcher runs update handlers one at a time per chat, in arrival order,
// while different chats run concurrently. Each chat gets a worker goroutine
// that drains its queue and removes the chat entry once the queue is empty,
// so the map only holds chats with work in flight.
type dispatcher struct {
	mu    sync.Mutex
	chats map[int64]*chatQueue
	wg    sync.WaitGroup
}

type chatQueue struct {
	pending []func()
}

func newDispatcher() *dispatcher {
	return &dispatcher{chats: map[int64]*chatQueue{}}
}

// dispatch enqueues handle for its chat. The caller's order of dispatch calls
// is the order handlers run in for that chat.
func (d *dispatcher) dispatch(chatID int64, handle func()) {
	d.mu.Lock()
	if q, ok := d.chats[chatID]; ok {
		q.pending = append(q.pending, handle)
		d.mu.Unlock()
		return
	}
	q := &chatQueue{pending: []func(){handle}}
	d.chats[chatID] = q
	d.mu.Unlock()

	d.wg.Add(1)
	go d.drain(chatID, q)
}

func (d *dispatcher) drain(chatID int64, q *chatQueue) {
	defer d.wg.Done()
	for {
		d.mu.Lock()
		if len(q.pending) == 0 {
			delete(d.chats, chatID)
			d.mu.Unlock()
			return
		}
		next := q.pending[0]
		q.pending = q.pending[1:]
		d.mu.Unlock()
		next()
	}
}

// wait blocks until every queued handler has run.
func (d *dispatcher) wait() {
	d.wg.Wait()
}
