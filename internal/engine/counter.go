package engine

// Stage is the confirmed coarse phase of the movement.
type Stage string

const (
	StageNone Stage = ""
	StageUp   Stage = "up"
	StageDown Stage = "down"
)

// Counter is the debounced rep state machine. It watches two independent
// crossing levels with a shared hold counter: an angle above the down
// threshold accumulates toward a "down" confirmation, an angle below the up
// threshold toward "up", and anything in between drops the accumulated hold
// immediately so partial movements never bank debounce credit.
//
// A rep is credited only when a down confirmation lands while the confirmed
// stage is "up". The up confirmation after a down stage credits nothing; the
// asymmetry is deliberate and counts line up with it.
type Counter struct {
	upThreshold   float64
	downThreshold float64
	holdFrames    int

	stage Stage
	reps  int
	hold  int
}

// NewCounter returns a counter in the initial unset stage. The thresholds
// are two independent levels; neither ordering is assumed.
func NewCounter(upThreshold, downThreshold float64, holdFrames int) *Counter {
	return &Counter{
		upThreshold:   upThreshold,
		downThreshold: downThreshold,
		holdFrames:    holdFrames,
	}
}

// Advance feeds one smoothed angle and reports whether a rep was credited
// this frame.
func (c *Counter) Advance(angle float64) bool {
	switch {
	case angle > c.downThreshold:
		c.hold++
		if c.hold >= c.holdFrames {
			credited := c.stage == StageUp
			if credited {
				c.reps++
			}
			c.stage = StageDown
			c.hold = 0
			return credited
		}
	case angle < c.upThreshold:
		c.hold++
		if c.hold >= c.holdFrames {
			c.stage = StageUp
			c.hold = 0
		}
	default:
		// Dead zone between the levels.
		c.hold = 0
	}
	return false
}

// DropHold discards accumulated debounce credit without touching the stage.
// Called when the frame fails the visibility gate.
func (c *Counter) DropHold() {
	c.hold = 0
}

// Reset returns the counter to its initial state.
func (c *Counter) Reset() {
	c.stage = StageNone
	c.reps = 0
	c.hold = 0
}

// Stage returns the confirmed stage.
func (c *Counter) Stage() Stage { return c.stage }

// Reps returns the number of credited reps.
func (c *Counter) Reps() int { return c.reps }

// Hold returns the frames accumulated toward the next confirmation.
func (c *Counter) Hold() int { return c.hold }
