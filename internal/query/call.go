package query

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type CallID string

// CallState tracks one asynchronous query execution.
type CallState int

const (
	CallStateExecuting CallState = iota
	CallStateDone
	CallStateFailed
	CallStateCanceled
)

func (s CallState) String() string {
	switch s {
	case CallStateExecuting:
		return "executing"
	case CallStateDone:
		return "done"
	case CallStateFailed:
		return "failed"
	case CallStateCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Call runs one request on its own goroutine. The engine itself has no
// yield points, so cancellation takes effect between stages at the
// earliest; callers wanting a hard timeout discard the call instead.
type Call struct {
	id        CallID
	req       Request
	timestamp time.Time

	// mu guards the fields the call goroutine writes, so state can be
	// polled while the call is still running
	mu        sync.Mutex
	state     CallState
	timeTaken time.Duration
	result    *ResultSet
	err       error

	cancelFunc func()
	done       chan struct{}
}

// NewCall starts executing a request in the background.
func NewCall(executor *Executor, req Request) *Call {
	c := &Call{
		id:        CallID(uuid.New().String()),
		req:       req,
		state:     CallStateExecuting,
		timestamp: time.Now(),
		done:      make(chan struct{}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancelFunc = cancel

	go func() {
		defer close(c.done)

		result, err := executor.Execute(ctx, req)

		c.mu.Lock()
		defer c.mu.Unlock()

		c.timeTaken = time.Since(c.timestamp)

		if err != nil {
			c.err = err
			if ctx.Err() != nil {
				c.state = CallStateCanceled
			} else {
				c.state = CallStateFailed
			}
			return
		}

		c.result = result
		c.state = CallStateDone
	}()

	return c
}

func (c *Call) GetID() CallID { return c.id }

func (c *Call) GetState() CallState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Call) GetTimeTaken() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timeTaken
}

func (c *Call) GetTimestamp() time.Time { return c.timestamp }

func (c *Call) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Done returns a channel that is closed when the call finishes.
func (c *Call) Done() <-chan struct{} { return c.done }

func (c *Call) Cancel() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
}

// GetResult returns the result set of a finished call.
func (c *Call) GetResult() (*ResultSet, error) {
	<-c.done

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	return c.result, nil
}
