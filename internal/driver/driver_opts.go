package driver

import "time"

type FrameDriverOpt func(*FrameDriver)

func WithTickLength(tickLength time.Duration) FrameDriverOpt {
	return func(d *FrameDriver) {
		if tickLength > 0 {
			d.tickLength = tickLength
		}
	}
}
