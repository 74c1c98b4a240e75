package pets

import (
	"sync"
	"time"
)

// SignupNudge presents the account-creation prompt after a plan lands for an
// anonymous visitor. At most one prompt per process: once triggered, the
// pending latch stays set until the process ends, so the prompt never nags.
type SignupNudge struct {
	delay      time.Duration
	hasSession func() bool
	show       func()

	mu      sync.Mutex
	pending bool
	wg      sync.WaitGroup
}

// NewSignupNudge builds the nudge. hasSession reports whether a user session
// exists at trigger time; show presents the prompt once the delay elapses.
func NewSignupNudge(delay time.Duration, hasSession func() bool, show func()) *SignupNudge {
	return &SignupNudge{
		delay:      delay,
		hasSession: hasSession,
		show:       show,
	}
}

// PlanReady is called on every successful transition into Ready. It arms the
// delayed prompt unless a session already exists or a prompt is already
// pending.
func (n *SignupNudge) PlanReady() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.pending || n.hasSession() {
		return
	}
	n.pending = true
	n.wg.Add(1)
	time.AfterFunc(n.delay, func() {
		defer n.wg.Done()
		n.show()
	})
}

// Pending reports whether the prompt has been armed or shown this process.
func (n *SignupNudge) Pending() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pending
}

// Wait blocks until an armed prompt has fired. Used when shutting down so the
// timer goroutine does not leak.
func (n *SignupNudge) Wait() {
	n.wg.Wait()
}
