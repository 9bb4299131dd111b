// Package notify is the fire-and-forget notification sink: transient
// user-facing status messages emitted by the session manager and the cache,
// drained by whatever surface is showing them (the CLI, in our case).
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Variant string

const (
	Success Variant = "success"
	Error   Variant = "error"
	Warning Variant = "warning"
	Info    Variant = "info"
)

// Toast is a single transient message.
type Toast struct {
	ID      string
	Variant Variant
	Message string
	Time    time.Time
}

const feedLimit = 100

// Center collects toasts and fans them out to subscribers. Publishing never
// blocks: a slow subscriber misses messages rather than stalling the caller.
type Center struct {
	mu   sync.Mutex
	feed []Toast
	subs map[string]chan Toast
	now  func() time.Time
}

func NewCenter() *Center {
	return &Center{
		subs: make(map[string]chan Toast),
		now:  time.Now,
	}
}

func (c *Center) Successf(msg string) Toast { return c.publish(Success, msg) }
func (c *Center) Errorf(msg string) Toast   { return c.publish(Error, msg) }
func (c *Center) Warningf(msg string) Toast { return c.publish(Warning, msg) }
func (c *Center) Infof(msg string) Toast    { return c.publish(Info, msg) }

func (c *Center) publish(v Variant, msg string) Toast {
	t := Toast{
		ID:      uuid.NewString(),
		Variant: v,
		Message: msg,
		Time:    c.now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.feed = append(c.feed, t)
	if len(c.feed) > feedLimit {
		c.feed = c.feed[len(c.feed)-feedLimit:]
	}

	for _, ch := range c.subs {
		select {
		case ch <- t:
		default:
		}
	}

	return t
}

// Subscribe returns a channel of future toasts and a cancel function.
func (c *Center) Subscribe() (<-chan Toast, func()) {
	id := uuid.NewString()
	ch := make(chan Toast, 16)

	c.mu.Lock()
	c.subs[id] = ch
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Recent returns a copy of the retained feed, oldest first.
func (c *Center) Recent() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Toast, len(c.feed))
	copy(out, c.feed)
	return out
}
