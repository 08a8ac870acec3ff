package ledgerclient

import "sync"

type listenerEntry struct {
	id ListenerID
	fn LedgerListener
}

// listenerSet is an ordered registry of ledger listeners. Emit snapshots the
// registry so a listener may remove itself (or others) while being called.
type listenerSet struct {
	mu      sync.RWMutex
	nextID  ListenerID
	entries []listenerEntry
}

func (s *listenerSet) add(fn LedgerListener) ListenerID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.entries = append(s.entries, listenerEntry{id: s.nextID, fn: fn})
	return s.nextID
}

func (s *listenerSet) remove(id ListenerID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.id == id {
			s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (s *listenerSet) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *listenerSet) emit(ev LedgerEvent) {
	s.mu.RLock()
	snapshot := make([]listenerEntry, len(s.entries))
	copy(snapshot, s.entries)
	s.mu.RUnlock()

	for _, e := range snapshot {
		if !s.registered(e.id) {
			continue
		}
		e.fn(ev)
	}
}

func (s *listenerSet) registered(id ListenerID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.id == id {
			return true
		}
	}
	return false
}
