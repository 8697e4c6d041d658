package application

import "sync"

// pendingSet tracks in-flight operation keys such as "add-<itemId>".
type pendingSet struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newPendingSet() *pendingSet {
	return &pendingSet{keys: map[string]struct{}{}}
}

// acquire admits key unless it is already pending.
func (p *pendingSet) acquire(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, busy := p.keys[key]; busy {
		return false
	}
	p.keys[key] = struct{}{}
	return true
}

func (p *pendingSet) release(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.keys, key)
}

func (p *pendingSet) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.keys)
}

func operationKey(verb, itemID string) string {
	return verb + "-" + itemID
}

func requestKey(verb, itemID string) string {
	return verb + "-api-" + itemID
}
