package simulacro

import "sync"

type event struct {
	tick bool
	emit func()
}

// dispatcher доставляет события наблюдателю в порядке постановки в отдельной горутине.
// push не блокируется на наблюдателе. Подряд идущие тики, которые еще не доставлены,
// схлопываются в последний.
type dispatcher struct {
	mu       sync.Mutex
	pending  []event
	draining bool
	wg       sync.WaitGroup
}

func (d *dispatcher) push(tick bool, emit func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n := len(d.pending); tick && n > 0 && d.pending[n-1].tick {
		d.pending[n-1].emit = emit
		return
	}
	d.pending = append(d.pending, event{tick: tick, emit: emit})

	if !d.draining {
		d.draining = true
		d.wg.Add(1)
		go d.drain()
	}
}

func (d *dispatcher) drain() {
	defer d.wg.Done()
	for {
		d.mu.Lock()
		if len(d.pending) == 0 {
			d.draining = false
			d.mu.Unlock()
			return
		}
		ev := d.pending[0]
		d.pending[0] = event{}
		d.pending = d.pending[1:]
		d.mu.Unlock()

		ev.emit()
	}
}

// wait ожидает доставки всех поставленных событий
func (d *dispatcher) wait() {
	d.wg.Wait()
}
