package timer

import (
	"context"
	"fmt"
	"time"
)

// Ticker источник периодических тиков обратного отсчета
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Factory создает новый Ticker с заданным интервалом
type Factory func(interval time.Duration) Ticker

type realTicker struct {
	t *time.Ticker
}

func (r *realTicker) C() <-chan time.Time { return r.t.C }
func (r *realTicker) Stop()               { r.t.Stop() }

// NewTicker обертка над time.Ticker
func NewTicker(interval time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(interval)}
}

// Run вызывает onTick на каждом тике, пока контекст не отменен или onTick не вернет false.
// Тикер останавливается при выходе.
func Run(ctx context.Context, t Ticker, onTick func() bool) {
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			// Контекст отменен, завершаем отсчет
			return
		case <-t.C():
			if !onTick() {
				return
			}
		}
	}
}

// FormatRemaining форматирует оставшееся время как mm:ss
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
