// Package exercise holds the static per-exercise counting parameters and
// form-check rules. Profiles are pure data; the rule predicates are a small
// interpreted vocabulary so new exercises need no new code paths.
package exercise

import "sort"

// Profile describes how one exercise is counted. The three joint indices
// name the proximal, pivot, and distal points of the tracked angle. The two
// thresholds are independent crossing levels, not a sorted pair: the stage
// labels follow the measured angle, not the visual direction of movement.
type Profile struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Joints        [3]int  `json:"joints"`
	UpThreshold   float64 `json:"up_threshold"`
	DownThreshold float64 `json:"down_threshold"`
	HoldFrames    int     `json:"hold_frames"`
	Hint          string  `json:"hint"`
	Rules         []Rule  `json:"rules"`
}

// Get returns the profile for an exercise identifier.
func Get(id string) (*Profile, bool) {
	p, ok := catalog[id]
	return p, ok
}

// All returns every registered profile, sorted by identifier.
func All() []*Profile {
	out := make([]*Profile, 0, len(catalog))
	for _, p := range catalog {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IDs returns the sorted identifiers of all registered profiles.
func IDs() []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
