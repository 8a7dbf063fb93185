// Package pose defines the joint-sample types produced by the upstream
// pose-estimation collaborator and the fixed anatomical numbering used to
// reference joints from exercise profiles.
package pose

// Landmark indices follow the 17-point COCO keypoint scheme.
const (
	Nose = iota
	LeftEye
	RightEye
	LeftEar
	RightEar
	LeftShoulder
	RightShoulder
	LeftElbow
	RightElbow
	LeftWrist
	RightWrist
	LeftHip
	RightHip
	LeftKnee
	RightKnee
	LeftAnkle
	RightAnkle

	// LandmarkCount is the number of joints in a full skeleton.
	LandmarkCount = RightAnkle + 1
)

// Joint is one tracked anatomical point for one frame: a normalized 2-D
// position (x, y in [0,1]) plus a visibility confidence in [0,1].
type Joint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"c"`
}

// Frame is one frame of a recorded joint stream. A frame may carry an
// exercise marker, which switches the active exercise before the joints
// (if any) are processed.
type Frame struct {
	Exercise string  `json:"exercise,omitempty"`
	Joints   []Joint `json:"joints,omitempty"`
}

// At returns the joint at index i and whether it is present in the set.
func At(joints []Joint, i int) (Joint, bool) {
	if i < 0 || i >= len(joints) {
		return Joint{}, false
	}
	return joints[i], true
}
