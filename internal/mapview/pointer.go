package mapview

import (
	"sync"
	"time"

	"surtigo/internal/geo"
)

// A sustained single-contact press on the map surface relocates the
// search center, mirroring the double-click path on desktop.
const longPressDuration = 700 * time.Millisecond

// pressTracker is the long-press state machine: idle until a
// single-contact pointer-down arms a timer; movement, release or
// cancellation before the threshold disarms it; the timer firing emits
// exactly one relocate event and returns to idle.
type pressTracker struct {
	threshold time.Duration
	fire      func(geo.Point)

	mu    sync.Mutex
	timer *time.Timer
}

// PointerDown arms the tracker for a single-contact press at the given
// geographic point. Additional contacts disarm any pending press.
func (p *Presenter) PointerDown(point geo.Point, contacts int) {
	if contacts != 1 {
		p.press.disarm()
		return
	}
	p.press.arm(point)
}

// PointerMove cancels a pending press.
func (p *Presenter) PointerMove() {
	p.press.disarm()
}

// PointerUp cancels a pending press.
func (p *Presenter) PointerUp() {
	p.press.disarm()
}

// PointerCancel cancels a pending press.
func (p *Presenter) PointerCancel() {
	p.press.disarm()
}

func (t *pressTracker) arm(point geo.Point) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.threshold, func() {
		t.mu.Lock()
		t.timer = nil
		fire := t.fire
		t.mu.Unlock()

		if fire != nil {
			fire(point)
		}
	})
}

func (t *pressTracker) disarm() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
