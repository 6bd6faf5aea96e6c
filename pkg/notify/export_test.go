package notify

import "time"

// SetNow replaces the clock used to compute the notification window
func (d *Dispatcher) SetNow(now func() time.Time) { d.now = now }
