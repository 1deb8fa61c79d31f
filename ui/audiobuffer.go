package ui

import (
	"io"
	"sync"
)

// AudioRingBuffer buffers interleaved stereo int16 samples between the
// frame-driving goroutine and oto's player, which consumes them as
// little-endian bytes through io.Reader. Write never blocks: on overflow
// the oldest samples are dropped in whole stereo frames so playback loses
// time, not channel alignment, and the frame handshake is never stalled
// by audio.
type AudioRingBuffer struct {
	samples  []int16
	readPos  int
	writePos int
	count    int
	capacity int

	// A sample converts to two bytes; an odd-length Read leaves the high
	// byte here for the next call.
	carry      byte
	carryValid bool

	mu     sync.Mutex
	cond   *sync.Cond
	closed bool
}

// NewAudioRingBuffer creates a ring buffer holding up to frames stereo
// frames.
func NewAudioRingBuffer(frames int) *AudioRingBuffer {
	rb := &AudioRingBuffer{
		samples:  make([]int16, frames*2),
		capacity: frames * 2,
	}
	rb.cond = sync.NewCond(&rb.mu)
	return rb
}

// Write adds interleaved stereo samples. Non-blocking; when the buffer is
// full the oldest samples are dropped to make room. Writes carry whole
// stereo frames, and the capacity is a whole number of frames, so the
// drop is too and left/right never swap.
func (rb *AudioRingBuffer) Write(samples []int16) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if rb.closed || len(samples) == 0 {
		return
	}

	n := len(samples)
	if n > rb.capacity {
		samples = samples[n-rb.capacity:]
		n = rb.capacity
	}

	overflow := rb.count + n - rb.capacity
	if overflow > 0 {
		rb.readPos = (rb.readPos + overflow) % rb.capacity
		rb.count -= overflow
	}

	// Write may wrap around the end of the buffer
	first := rb.capacity - rb.writePos
	if first >= n {
		copy(rb.samples[rb.writePos:], samples)
	} else {
		copy(rb.samples[rb.writePos:], samples[:first])
		copy(rb.samples, samples[first:])
	}
	rb.writePos = (rb.writePos + n) % rb.capacity
	rb.count += n

	rb.cond.Signal()
}

// Read implements io.Reader, emitting buffered samples as little-endian
// bytes. Blocks until samples are available or the buffer is closed, and
// returns io.EOF once closed and drained. An odd-length read splits a
// sample across calls.
func (rb *AudioRingBuffer) Read(p []byte) (int, error) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	for rb.count == 0 && !rb.carryValid {
		if rb.closed {
			return 0, io.EOF
		}
		rb.cond.Wait()
	}

	if len(p) == 0 {
		return 0, nil
	}

	n := 0
	if rb.carryValid {
		p[0] = rb.carry
		rb.carryValid = false
		n = 1
	}

	for n < len(p) && rb.count > 0 {
		s := rb.samples[rb.readPos]
		rb.readPos = (rb.readPos + 1) % rb.capacity
		rb.count--

		p[n] = byte(s)
		n++
		if n < len(p) {
			p[n] = byte(s >> 8)
			n++
		} else {
			rb.carry = byte(s >> 8)
			rb.carryValid = true
		}
	}
	return n, nil
}

// Buffered returns the number of samples currently in the buffer.
func (rb *AudioRingBuffer) Buffered() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.count
}

// Close signals shutdown. Subsequent Reads return io.EOF once the buffer
// is drained. Unblocks any goroutines waiting in Read.
func (rb *AudioRingBuffer) Close() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.closed = true
	rb.cond.Broadcast()
}
