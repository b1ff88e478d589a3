package engine

import "sync"

// subscriberBuffer is the per-subscriber channel capacity. A subscriber
// that falls further behind loses events rather than blocking the manager.
const subscriberBuffer = 64

// ChanPublisher fans events out to subscriber channels. It implements
// EventPublisher and backs streaming consumers such as the /events feed.
type ChanPublisher struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

func NewChanPublisher() *ChanPublisher {
	return &ChanPublisher{subs: make(map[int]chan Event)}
}

func (p *ChanPublisher) Publish(e Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ch := range p.subs {
		select {
		case ch <- e:
		default: // subscriber too slow, drop
		}
	}
}

// Subscribe returns a live event feed and a cancel func that releases it.
// Cancel must be called or the subscription leaks.
func (p *ChanPublisher) Subscribe() (<-chan Event, func()) {
	p.mu.Lock()
	id := p.next
	p.next++
	ch := make(chan Event, subscriberBuffer)
	p.subs[id] = ch
	p.mu.Unlock()
	cancel := func() {
		p.mu.Lock()
		if c, ok := p.subs[id]; ok {
			delete(p.subs, id)
			close(c)
		}
		p.mu.Unlock()
	}
	return ch, cancel
}
