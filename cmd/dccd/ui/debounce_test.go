package ui

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_SingleCall(t *testing.T) {
	var called int32
	debouncer := NewDebouncer(50 * time.Millisecond)

	debouncer.Debounce(func() {
		atomic.AddInt32(&called, 1)
	})

	// Wait for debounce to execute
	time.Sleep(100 * time.Millisecond)

	if atomic.LoadInt32(&called) != 1 {
		t.Errorf("Expected 1 call, got %d", called)
	}
	if debouncer.Pending() {
		t.Errorf("nothing should be pending after the call ran")
	}
}

func TestDebouncer_RapidCalls(t *testing.T) {
	var called int32
	var lastValue int32
	debouncer := NewDebouncer(50 * time.Millisecond)

	// Rapid successive calls
	for i := 1; i <= 10; i++ {
		value := int32(i)
		debouncer.Debounce(func() {
			atomic.StoreInt32(&lastValue, value)
			atomic.AddInt32(&called, 1)
		})
		time.Sleep(10 * time.Millisecond)
	}

	// Wait for final debounce
	time.Sleep(100 * time.Millisecond)

	// Should only call once with the last value
	if atomic.LoadInt32(&called) != 1 {
		t.Errorf("Expected 1 call for rapid succession, got %d", called)
	}

	if atomic.LoadInt32(&lastValue) != 10 {
		t.Errorf("Expected last value 10, got %d", lastValue)
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	var called int32
	debouncer := NewDebouncer(50 * time.Millisecond)

	debouncer.Debounce(func() {
		atomic.AddInt32(&called, 1)
	})

	time.Sleep(10 * time.Millisecond)
	debouncer.Cancel()

	time.Sleep(100 * time.Millisecond)

	if atomic.LoadInt32(&called) != 0 {
		t.Errorf("Expected 0 calls after cancel, got %d", called)
	}
}

func TestDebouncer_Flush(t *testing.T) {
	var called int32
	debouncer := NewDebouncer(time.Hour)

	debouncer.Debounce(func() {
		atomic.AddInt32(&called, 1)
	})
	if !debouncer.Pending() {
		t.Fatalf("expected a pending call")
	}

	if !debouncer.Flush() {
		t.Fatalf("Flush should report the pending call ran")
	}
	if atomic.LoadInt32(&called) != 1 {
		t.Errorf("Expected 1 call after flush, got %d", called)
	}
	if debouncer.Flush() {
		t.Errorf("second Flush should be a no-op")
	}
}

func TestDebouncer_CancelWaitsForRunningCall(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var finished int32
	debouncer := NewDebouncer(time.Millisecond)

	debouncer.Debounce(func() {
		close(started)
		<-release
		atomic.StoreInt32(&finished, 1)
	})
	<-started

	cancelled := make(chan struct{})
	go func() {
		debouncer.Cancel()
		close(cancelled)
	}()

	select {
	case <-cancelled:
		t.Fatal("Cancel returned while the call was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("Cancel did not return after the call finished")
	}
	if atomic.LoadInt32(&finished) != 1 {
		t.Errorf("the running call should have completed before Cancel returned")
	}
}

func TestDebouncer_FlushWaitsForRunningCall(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var order []string
	var mu sync.Mutex
	record := func(s string) {
		mu.Lock()
		order = append(order, s)
		mu.Unlock()
	}
	debouncer := NewDebouncer(time.Hour)

	debouncer.Debounce(func() {
		close(started)
		<-release
		record("first")
	})
	go debouncer.Flush()
	<-started

	debouncer.Debounce(func() { record("second") })
	flushed := make(chan bool)
	go func() { flushed <- debouncer.Flush() }()
	time.Sleep(20 * time.Millisecond)
	close(release)

	if !<-flushed {
		t.Fatal("Flush should run the second call")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("expected first then second, got %v", order)
	}
}

func BenchmarkDebouncer_RapidCalls(b *testing.B) {
	debouncer := NewDebouncer(10 * time.Millisecond)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		debouncer.Debounce(func() {})
	}

	debouncer.Cancel()
}
