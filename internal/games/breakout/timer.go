package breakout

// Timer is a repeating countdown advanced by simulation time.
type Timer struct {
	period  float64
	elapsed float64
	running bool
}

// Start (re)arms the timer with the given period, discarding accumulated time.
func (t *Timer) Start(period float64) {
	t.period = period
	t.elapsed = 0
	t.running = period > 0
}

// Stop disarms the timer.
func (t *Timer) Stop() {
	t.running = false
	t.elapsed = 0
}

// Running reports whether the timer is armed.
func (t *Timer) Running() bool {
	return t.running
}

// Period returns the current period in seconds.
func (t *Timer) Period() float64 {
	return t.period
}

// SetPeriod changes the period without resetting accumulated time.
func (t *Timer) SetPeriod(period float64) {
	if period > 0 {
		t.period = period
	}
}

// Remaining returns the seconds until the next fire.
func (t *Timer) Remaining() float64 {
	if !t.running {
		return 0
	}
	return t.period - t.elapsed
}

// Advance adds dt seconds and returns how many periods elapsed.
func (t *Timer) Advance(dt float64) int {
	if !t.running || dt <= 0 {
		return 0
	}
	t.elapsed += dt
	fires := 0
	for t.elapsed >= t.period {
		t.elapsed -= t.period
		fires++
	}
	return fires
}
