package guide

import "sync"

// Usage tracks token usage across lookups made by one process.
type Usage struct {
	mu        sync.Mutex
	inputTok  int64
	outputTok int64
	calls     int
	failures  int
}

// NewUsage creates an empty usage tracker.
func NewUsage() *Usage {
	return &Usage{}
}

// Add records token usage from a successful call.
func (u *Usage) Add(input, output int64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.inputTok += input
	u.outputTok += output
	u.calls++
}

// AddFailure records a call that reached the service but failed.
func (u *Usage) AddFailure() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls++
	u.failures++
}

// Total returns the total input and output tokens tracked.
func (u *Usage) Total() (input, output int64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.inputTok, u.outputTok
}

// Calls returns the number of service calls made, including failures.
func (u *Usage) Calls() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls
}

// Failures returns the number of failed service calls.
func (u *Usage) Failures() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.failures
}

// Reset clears all tracked usage.
func (u *Usage) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.inputTok = 0
	u.outputTok = 0
	u.calls = 0
	u.failures = 0
}
