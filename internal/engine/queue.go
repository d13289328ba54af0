package engine

// DefaultQueueSize is the command queue capacity used when none is given.
const DefaultQueueSize = 256

// CommandQueue carries commands from input capture to the tick loop.
// It is single-producer/single-consumer and never blocks: Push fails when the
// queue is full and Pop returns immediately when it is empty.
type CommandQueue struct {
	ch chan Command
}

// NewCommandQueue creates a queue holding up to size commands.
func NewCommandQueue(size int) *CommandQueue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &CommandQueue{ch: make(chan Command, size)}
}

// Push enqueues a command. It returns false if the queue is full.
func (q *CommandQueue) Push(cmd Command) bool {
	select {
	case q.ch <- cmd:
		return true
	default:
		return false
	}
}

// Pop dequeues at most one command.
func (q *CommandQueue) Pop() (Command, bool) {
	select {
	case cmd := <-q.ch:
		return cmd, true
	default:
		return Command{}, false
	}
}

// Len returns the number of queued commands.
func (q *CommandQueue) Len() int {
	return len(q.ch)
}

// Drain discards all queued commands.
func (q *CommandQueue) Drain() {
	for {
		if _, ok := q.Pop(); !ok {
			return
		}
	}
}
