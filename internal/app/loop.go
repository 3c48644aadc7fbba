package app

import (
	"context"
	"errors"
	"log"
	"runtime"
	"runtime/debug"
	"sync"
	"time"
)

// ErrStopped is returned by Do once the loop has exited.
var ErrStopped = errors.New("event loop stopped")

type ticker struct {
	interval time.Duration
	fn       func()
}

// Loop runs every piece of shelf state on one goroutine locked to its OS
// thread. Other goroutines hand it work with Do and Post.
type Loop struct {
	tasks   chan func()
	ticks   chan func()
	done    chan struct{}
	stopped sync.Once

	mu      sync.Mutex
	tickers []ticker
}

// NewLoop creates a loop that is not yet running.
func NewLoop() *Loop {
	return &Loop{
		tasks: make(chan func(), 64),
		done:  make(chan struct{}),
	}
}

// Every registers fn to run on the loop at the given interval. Ticks that
// arrive while the loop is busy are dropped. Call before Run.
func (l *Loop) Every(interval time.Duration, fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tickers = append(l.tickers, ticker{interval: interval, fn: fn})
}

// Post queues fn without waiting. Work posted after the loop stopped is
// dropped.
func (l *Loop) Post(fn func()) {
	select {
	case l.tasks <- fn:
	case <-l.done:
	}
}

// Do runs fn on the loop and waits for it to return.
func (l *Loop) Do(fn func()) error {
	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		fn()
	}
	select {
	case l.tasks <- task:
	case <-l.done:
		return ErrStopped
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrStopped
	}
}

// Done is closed when the loop exits.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Run processes work until ctx is cancelled. init runs first on the locked
// thread; its cleanup runs on the same thread before Run returns.
func (l *Loop) Run(ctx context.Context, init func() (func(), error)) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer l.stopped.Do(func() { close(l.done) })

	if init != nil {
		cleanup, err := init()
		if err != nil {
			return err
		}
		if cleanup != nil {
			defer cleanup()
		}
	}

	l.mu.Lock()
	tickers := l.tickers
	l.mu.Unlock()
	l.ticks = make(chan func(), len(tickers))

	var wg sync.WaitGroup
	tickCtx, stopTicks := context.WithCancel(ctx)
	defer func() {
		stopTicks()
		wg.Wait()
	}()
	for _, t := range tickers {
		wg.Add(1)
		go l.forward(tickCtx, &wg, t)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-l.tasks:
			l.run(fn)
		case fn := <-l.ticks:
			l.run(fn)
		}
	}
}

func (l *Loop) forward(ctx context.Context, wg *sync.WaitGroup, t ticker) {
	defer wg.Done()
	tk := time.NewTicker(t.interval)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			select {
			case l.ticks <- t.fn:
			default:
			}
		}
	}
}

// run executes one unit of work. A panic is logged and the loop carries on.
func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[loop] Recovered from panic: %v\n%s", r, debug.Stack())
		}
	}()
	fn()
}
