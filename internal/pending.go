package internal

import (
	"sync"
	"time"
)

const pendingTTL = 2 * time.Minute

// pendingAction is what the admin panel expects an operator's next message
// to be: a numeric user ID to ban or unban.
type pendingAction struct {
	ban     bool
	expires time.Time
}

// pendingPrompts tracks the ban/unban prompt flow per operator. An entry is
// consumed by the operator's next message or silently dropped after the TTL.
type pendingPrompts struct {
	mu      sync.Mutex
	actions map[int64]pendingAction
}

func newPendingPrompts() *pendingPrompts {
	return &pendingPrompts{actions: make(map[int64]pendingAction)}
}

func (p *pendingPrompts) set(adminID int64, ban bool, now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.actions[adminID] = pendingAction{ban: ban, expires: now.Add(pendingTTL)}
}

// take removes and returns the operator's pending action. Expired entries
// are dropped as if they never existed.
func (p *pendingPrompts) take(adminID int64, now time.Time) (pendingAction, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	action, ok := p.actions[adminID]
	if !ok {
		return pendingAction{}, false
	}
	delete(p.actions, adminID)

	if now.After(action.expires) {
		return pendingAction{}, false
	}
	return action, true
}
