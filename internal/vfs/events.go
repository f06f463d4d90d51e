package vfs

import (
	"context"
	"sort"
	"time"
)

// Op names the mutation that produced an Event.
type Op string

const (
	OpMakeDir Op = "mkdir"
	OpTouch   Op = "touch"
	OpWrite   Op = "write"
	OpRemove  Op = "remove"
)

// Event is published after every successful mutation.
type Event struct {
	Op     Op        `json:"op"`
	Path   string    `json:"path"`
	Parent string    `json:"parent"`
	Time   time.Time `json:"time"`
}

// Observer receives change events synchronously.
type Observer func(Event)

// SubscriptionID identifies a registered observer.
type SubscriptionID uint64

// Subscribe registers fn and returns a handle for Unsubscribe.
func (fs *FileSystem) Subscribe(fn Observer) SubscriptionID {
	fs.obsMu.Lock()
	defer fs.obsMu.Unlock()

	fs.nextSub++
	id := fs.nextSub
	fs.observers[id] = fn
	return id
}

// Unsubscribe removes an observer. Unknown ids are ignored.
func (fs *FileSystem) Unsubscribe(id SubscriptionID) {
	fs.obsMu.Lock()
	defer fs.obsMu.Unlock()

	delete(fs.observers, id)
}

// Watch streams events on a channel until ctx is done. Events are dropped when the
// reader falls more than buffer events behind. The channel is never closed; readers
// stop on ctx.Done().
func (fs *FileSystem) Watch(ctx context.Context, buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 64
	}
	ch := make(chan Event, buffer)
	done := ctx.Done()

	id := fs.Subscribe(func(ev Event) {
		select {
		case <-done:
		case ch <- ev:
		default:
			fs.logger.Warn("dropping filesystem event for slow watcher")
		}
	})

	go func() {
		<-done
		fs.Unsubscribe(id)
	}()

	return ch
}

func (fs *FileSystem) publish(ev Event) {
	fs.obsMu.RLock()
	ids := make([]SubscriptionID, 0, len(fs.observers))
	for id := range fs.observers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	observers := make([]Observer, 0, len(ids))
	for _, id := range ids {
		observers = append(observers, fs.observers[id])
	}
	fs.obsMu.RUnlock()

	for _, fn := range observers {
		fn(ev)
	}
}
