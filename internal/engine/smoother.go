// Package engine is the per-frame counting pipeline: angle smoothing, the
// debounced rep state machine, and the tracker that ties them to the active
// exercise profile and the session recorder.
package engine

// AngleHistorySize is the rolling window length for angle smoothing.
const AngleHistorySize = 5

// Smoother keeps a bounded FIFO of the most recent raw angles and reports
// their arithmetic mean. Right after a reset the buffer is shorter than the
// window, giving a smaller-sample average until it fills.
type Smoother struct {
	window []float64
	size   int
}

// NewSmoother returns a smoother over the given window length. A size of
// zero or less falls back to AngleHistorySize.
func NewSmoother(size int) *Smoother {
	if size <= 0 {
		size = AngleHistorySize
	}
	return &Smoother{window: make([]float64, 0, size), size: size}
}

// Push appends a raw angle, evicting the oldest value once the window is
// full, and returns the mean of the current contents.
func (s *Smoother) Push(v float64) float64 {
	if len(s.window) == s.size {
		copy(s.window, s.window[1:])
		s.window = s.window[:s.size-1]
	}
	s.window = append(s.window, v)
	return s.Average()
}

// Average returns the mean of the buffered angles, or 0 when empty.
func (s *Smoother) Average() float64 {
	if len(s.window) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s.window {
		sum += v
	}
	return sum / float64(len(s.window))
}

// Len returns the number of buffered angles.
func (s *Smoother) Len() int {
	return len(s.window)
}

// Clear empties the buffer. Called on exercise switch and reset.
func (s *Smoother) Clear() {
	s.window = s.window[:0]
}
