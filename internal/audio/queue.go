package audio

import (
	"sync"
	"time"
)

// FrameQueue is the thread-safe FIFO connecting the capture flow to the
// processing flow. Push never blocks, so the hardware callback is bounded
// by a copy and an append; PopWait gives the consumer a timed wait instead
// of a busy poll. The queue is unbounded: a consumer slower than the
// capture rate grows memory, which is accepted for meeting-length sessions
// in exchange for never dropping a frame.
type FrameQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	frames []Frame
}

func NewFrameQueue() *FrameQueue {
	q := &FrameQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends a frame and wakes a waiting consumer.
func (q *FrameQueue) Push(f Frame) {
	q.mu.Lock()
	q.frames = append(q.frames, f)
	q.mu.Unlock()
	q.cond.Signal()
}

// PopWait removes and returns the oldest frame, waiting up to d for one to
// arrive. The second return value is false when the wait expired with the
// queue still empty.
func (q *FrameQueue) PopWait(d time.Duration) (Frame, bool) {
	deadline := time.Now().Add(d)

	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.frames) == 0 {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, false
		}
		// Cond has no timed wait; the timer takes the lock before
		// broadcasting so the wakeup cannot be lost.
		timer := time.AfterFunc(remaining, func() {
			q.mu.Lock()
			q.cond.Broadcast()
			q.mu.Unlock()
		})
		q.cond.Wait()
		timer.Stop()
	}

	return q.popLocked(), true
}

// TryPop removes and returns the oldest frame without waiting.
func (q *FrameQueue) TryPop() (Frame, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.frames) == 0 {
		return nil, false
	}
	return q.popLocked(), true
}

// Len reports the number of queued frames.
func (q *FrameQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.frames)
}

func (q *FrameQueue) popLocked() Frame {
	f := q.frames[0]
	q.frames[0] = nil
	q.frames = q.frames[1:]
	return f
}
