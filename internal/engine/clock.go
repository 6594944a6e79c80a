package engine

import "time"

// Clock reports the seconds elapsed since the previous tick. Values are never negative.
type Clock interface {
	Tick() float64
}

// FixedClock advances by the same step every frame
type FixedClock struct {
	Step float64
}

func (c FixedClock) Tick() float64 {
	if c.Step < 0 {
		return 0
	}
	return c.Step
}

// WallClock measures real elapsed time
type WallClock struct {
	now  func() time.Time
	last time.Time
}

func NewWallClock() *WallClock {
	return &WallClock{now: time.Now}
}

func (c *WallClock) Tick() float64 {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if dt < 0 {
		return 0
	}
	return dt
}
