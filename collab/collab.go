// Package collab declares the external collaborators the core depends
// on but never implements: a
// thread-local log buffer and a buffer pool that allocates volatile
// pages. Production implementations live outside this module (WAL,
// buffer manager); this package also carries small in-memory fakes for
// tests.
package collab

import "sync"

// LogSink is the thread-local log buffer interface consumed by
// storage.Registry.Create when it writes a create-log entry: one
// method, one job.
type LogSink interface {
	// ReserveNewLog reserves length bytes in the calling thread's log
	// buffer and returns a slice the caller fills in before it is
	// durably flushed by the (external) logging subsystem.
	ReserveNewLog(length int) ([]byte, error)
}

// PageAllocator is the buffer pool's volatile-page allocation surface.
// The concurrency core never allocates page memory itself; it asks an
// injected PageAllocator and then runs a page.Initializer over the
// result.
type PageAllocator interface {
	// AllocateVolatilePage returns length bytes of zeroed, exclusively
	// owned memory for a freshly constructed page.
	AllocateVolatilePage(length int) ([]byte, error)
}

// FakeLogSink is an in-memory LogSink for tests: every reservation is
// appended to Entries so a test can assert on what was logged.
type FakeLogSink struct {
	mu      sync.Mutex
	Entries [][]byte
}

// NewFakeLogSink returns a ready-to-use FakeLogSink.
func NewFakeLogSink() *FakeLogSink {
	return &FakeLogSink{}
}

// ReserveNewLog implements LogSink.
func (f *FakeLogSink) ReserveNewLog(length int) ([]byte, error) {
	buf := make([]byte, length)
	f.mu.Lock()
	f.Entries = append(f.Entries, buf)
	f.mu.Unlock()
	return buf, nil
}

// Count returns the number of log entries reserved so far.
func (f *FakeLogSink) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Entries)
}

// FakePageAllocator is an in-memory PageAllocator for tests: it just
// hands back zeroed heap memory, unpooled.
type FakePageAllocator struct {
	mu        sync.Mutex
	Allocated int
}

// NewFakePageAllocator returns a ready-to-use FakePageAllocator.
func NewFakePageAllocator() *FakePageAllocator {
	return &FakePageAllocator{}
}

// AllocateVolatilePage implements PageAllocator.
func (f *FakePageAllocator) AllocateVolatilePage(length int) ([]byte, error) {
	f.mu.Lock()
	f.Allocated++
	f.mu.Unlock()
	return make([]byte, length), nil
}
