package listing

import "sync"

// Sequencer orders concurrent computations of the same value. Each
// computation takes a ticket before it starts; its result is published only
// if no later ticket has been published already, so a slow stale result
// never overwrites a fresher one.
type Sequencer struct {
	mu        sync.Mutex
	issued    uint64
	published uint64
}

// Next hands out a ticket greater than every earlier one.
func (s *Sequencer) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Publish runs apply if ticket is newer than the last published ticket and
// reports whether it did.
func (s *Sequencer) Publish(ticket uint64, apply func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket <= s.published {
		return false
	}
	s.published = ticket
	apply()
	return true
}

// Published returns the last published ticket.
func (s *Sequencer) Published() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.published
}
