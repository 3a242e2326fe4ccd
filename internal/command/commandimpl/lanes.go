package commandimpl

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/panjf2000/ants/v2"
)

const laneBuffer = 64

var errLanesClosed = errors.New("update lanes closed")

type envelope struct {
	ctx    context.Context
	update tgbotapi.Update
}

type (
	handleFunc func(ctx context.Context, update tgbotapi.Update)
	panicFunc  func(r any, stack []byte)
)

// lanes runs one long-lived worker per lane on the ants pool. Updates with the
// same key always land on the same lane, so a user's updates keep arrival order.
type lanes struct {
	pool    *ants.Pool
	queues  []chan envelope
	handle  handleFunc
	onPanic panicFunc

	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

func newLanes(pool *ants.Pool, n int, handle handleFunc, onPanic panicFunc) (*lanes, error) {
	l := &lanes{
		pool:    pool,
		queues:  make([]chan envelope, n),
		handle:  handle,
		onPanic: onPanic,
	}

	for i := range l.queues {
		queue := make(chan envelope, laneBuffer)
		l.queues[i] = queue

		l.wg.Add(1)
		err := pool.Submit(func() {
			defer l.wg.Done()
			for env := range queue {
				l.run(env)
			}
		})
		if err != nil {
			l.wg.Done()
			return nil, fmt.Errorf("failed to start lane %d: %w", i, err)
		}
	}
	return l, nil
}

func (l *lanes) run(env envelope) {
	defer func() {
		if r := recover(); r != nil {
			l.onPanic(r, debug.Stack())
		}
	}()
	l.handle(env.ctx, env.update)
}

func (l *lanes) dispatch(ctx context.Context, key int64, update tgbotapi.Update) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return errLanesClosed
	}

	idx := key % int64(len(l.queues))
	if idx < 0 {
		idx = -idx
	}
	l.queues[idx] <- envelope{ctx: ctx, update: update}
	return nil
}

// close stops accepting updates, waits for queued ones and releases the pool.
func (l *lanes) close(timeout time.Duration) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	for _, q := range l.queues {
		close(q)
	}
	l.mu.Unlock()

	l.wg.Wait()
	return l.pool.ReleaseTimeout(timeout)
}
