package audio

import (
	"sync"
	"testing"
	"time"
)

func TestFrameQueueOrder(t *testing.T) {
	q := NewFrameQueue()
	q.Push(Frame{1})
	q.Push(Frame{2})
	q.Push(Frame{3})

	for want := int16(1); want <= 3; want++ {
		f, ok := q.PopWait(time.Second)
		if !ok {
			t.Fatalf("PopWait returned no frame, want frame %d", want)
		}
		if len(f) != 1 || f[0] != want {
			t.Errorf("got frame %v, want [%d]", f, want)
		}
	}
	if got := q.Len(); got != 0 {
		t.Errorf("Len() = %d after draining, want 0", got)
	}
}

func TestFrameQueuePopWaitTimeout(t *testing.T) {
	q := NewFrameQueue()

	start := time.Now()
	_, ok := q.PopWait(30 * time.Millisecond)
	elapsed := time.Since(start)

	if ok {
		t.Fatal("PopWait on empty queue returned a frame")
	}
	if elapsed < 25*time.Millisecond {
		t.Errorf("PopWait returned after %v, want at least ~30ms", elapsed)
	}
}

func TestFrameQueueWakesBlockedConsumer(t *testing.T) {
	q := NewFrameQueue()

	got := make(chan Frame, 1)
	go func() {
		f, ok := q.PopWait(2 * time.Second)
		if ok {
			got <- f
		}
		close(got)
	}()

	time.Sleep(20 * time.Millisecond)
	q.Push(Frame{7})

	select {
	case f, ok := <-got:
		if !ok {
			t.Fatal("consumer timed out instead of receiving pushed frame")
		}
		if len(f) != 1 || f[0] != 7 {
			t.Errorf("got frame %v, want [7]", f)
		}
	case <-time.After(time.Second):
		t.Fatal("consumer did not wake after Push")
	}
}

func TestFrameQueueTryPop(t *testing.T) {
	q := NewFrameQueue()

	if _, ok := q.TryPop(); ok {
		t.Error("TryPop on empty queue returned a frame")
	}

	q.Push(Frame{5})
	f, ok := q.TryPop()
	if !ok {
		t.Fatal("TryPop returned no frame after Push")
	}
	if f[0] != 5 {
		t.Errorf("got frame %v, want [5]", f)
	}
}

func TestFrameQueueConcurrentProducers(t *testing.T) {
	q := NewFrameQueue()

	const producers = 4
	const perProducer = 50

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(Frame{int16(i)})
			}
		}()
	}
	wg.Wait()

	count := 0
	for {
		_, ok := q.TryPop()
		if !ok {
			break
		}
		count++
	}
	if count != producers*perProducer {
		t.Errorf("consumed %d frames, want %d", count, producers*perProducer)
	}
}
