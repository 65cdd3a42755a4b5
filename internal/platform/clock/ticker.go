package clock

import (
	"sync"
	"time"
)

// Ticker is a single repeating tick source. Arm always cancels the
// previously armed source before starting a new one.
type Ticker struct {
	mu   sync.Mutex
	stop chan struct{}
}

func NewTicker() *Ticker {
	return &Ticker{}
}

func (t *Ticker) Arm(interval time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	stop := make(chan struct{})
	t.stop = stop
	go run(interval, fn, stop)
}

// Stop cancels the armed source, if any. It does not wait for a callback
// that is already running, so it is safe to call from inside fn.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Ticker) stopLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

func run(interval time.Duration, fn func(), stop <-chan struct{}) {
	tk := time.NewTicker(interval)
	defer tk.Stop()
	for {
		select {
		case <-stop:
			return
		case <-tk.C:
			select {
			case <-stop:
				return
			default:
			}
			fn()
		}
	}
}
