package exercise

import (
	"github.com/claude/repwatch/internal/geom"
	"github.com/claude/repwatch/internal/pose"
)

// CheckKind names one predicate in the form-check vocabulary.
type CheckKind string

const (
	// CheckHorizontalDeviation triggers when |x(A) − x(B)| exceeds Limit.
	CheckHorizontalDeviation CheckKind = "horizontal-deviation"
	// CheckVerticalDeviation triggers when |y(A) − y(B)| exceeds Limit.
	CheckVerticalDeviation CheckKind = "vertical-deviation"
	// CheckAngleBelow triggers when the angle at B formed by A and C is below Limit.
	CheckAngleBelow CheckKind = "angle-below"
	// CheckAngleAbove triggers when the angle at B formed by A and C is above Limit.
	CheckAngleAbove CheckKind = "angle-above"
)

// Rule is a named form-check predicate plus the message shown when it
// triggers. C is only used by the angle kinds.
type Rule struct {
	Name    string    `json:"name"`
	Kind    CheckKind `json:"kind"`
	A       int       `json:"a"`
	B       int       `json:"b"`
	C       int       `json:"c,omitempty"`
	Limit   float64   `json:"limit"`
	Message string    `json:"message"`
}

// Violation evaluates the rules in declared order against the full joint set
// and returns the message of the first rule that triggers, or "" when none
// do. Rules run on the raw per-frame set; a rule whose joints are missing
// from the set simply does not trigger.
func Violation(joints []pose.Joint, rules []Rule) string {
	for _, r := range rules {
		if r.triggered(joints) {
			return r.Message
		}
	}
	return ""
}

func (r Rule) triggered(joints []pose.Joint) bool {
	a, ok := pose.At(joints, r.A)
	if !ok {
		return false
	}
	b, ok := pose.At(joints, r.B)
	if !ok {
		return false
	}

	switch r.Kind {
	case CheckHorizontalDeviation:
		return abs(a.X-b.X) > r.Limit
	case CheckVerticalDeviation:
		return abs(a.Y-b.Y) > r.Limit
	case CheckAngleBelow, CheckAngleAbove:
		c, ok := pose.At(joints, r.C)
		if !ok {
			return false
		}
		angle := geom.Angle(point(a), point(b), point(c))
		if r.Kind == CheckAngleBelow {
			return angle < r.Limit
		}
		return angle > r.Limit
	}
	return false
}

func point(j pose.Joint) geom.Point {
	return geom.Point{X: j.X, Y: j.Y}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
