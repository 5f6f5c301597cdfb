// Package command provides typed, synchronous command channels.
// Subscribers run on the dispatching goroutine, in subscription order.
package command

// Command delivers parameters of type T to its subscribers.
type Command[T any] struct {
	name   string
	nextID int
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// New creates a command with the given name.
func New[T any](name string) *Command[T] {
	return &Command[T]{name: name}
}

// Name returns the command name.
func (c *Command[T]) Name() string {
	return c.name
}

// Subscribe registers fn and returns a function that removes it.
func (c *Command[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscriber[T]{id: id, fn: fn})
	return func() {
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// Dispatch invokes every subscriber with params.
func (c *Command[T]) Dispatch(params T) {
	for _, s := range c.subs {
		s.fn(params)
	}
}

// SubscriberCount returns the number of active subscribers.
func (c *Command[T]) SubscriberCount() int {
	return len(c.subs)
}
