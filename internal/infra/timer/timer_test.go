package timer

import (
	"context"
	"testing"
	"time"
)

type manualTicker struct {
	ch      chan time.Time
	stopped chan struct{}
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }
func (m *manualTicker) Stop()               { close(m.stopped) }

// TestRunStopsWhenCallbackReturnsFalse проверяет, что отсчет завершается и тикер останавливается.
func TestRunStopsWhenCallbackReturnsFalse(t *testing.T) {
	tk := &manualTicker{ch: make(chan time.Time), stopped: make(chan struct{})}
	ticks := 0
	done := make(chan struct{})
	go func() {
		Run(context.Background(), tk, func() bool {
			ticks++
			return ticks < 3
		})
		close(done)
	}()

	for i := 0; i < 3; i++ {
		tk.ch <- time.Now()
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run не завершился после трех тиков")
	}
	select {
	case <-tk.stopped:
	default:
		t.Errorf("тикер не был остановлен")
	}
	if ticks != 3 {
		t.Errorf("ожидалось 3 тика, получено %d", ticks)
	}
}

// TestRunStopsOnCancel проверяет отмену через контекст.
func TestRunStopsOnCancel(t *testing.T) {
	tk := &manualTicker{ch: make(chan time.Time), stopped: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Run(ctx, tk, func() bool { return true })
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run не завершился после отмены контекста")
	}
}

func TestFormatRemaining(t *testing.T) {
	cases := map[int]string{0: "00:00", 59: "00:59", 61: "01:01", 3600: "60:00", -5: "00:00"}
	for in, want := range cases {
		if got := FormatRemaining(in); got != want {
			t.Errorf("FormatRemaining(%d) = %s, ожидалось %s", in, got, want)
		}
	}
}
