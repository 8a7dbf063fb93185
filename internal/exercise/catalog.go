package exercise

import "github.com/claude/repwatch/internal/pose"

// catalog is the built-in exercise table. Stage labels track the measured
// angle: "down" is confirmed above DownThreshold and "up" below UpThreshold,
// so for movements whose top position straightens the tracked angle (squat,
// shoulder press) the labels read inverted relative to the body. Counting is
// unaffected; a rep is one full cycle between the two levels.
var catalog = map[string]*Profile{
	"bicep_curl": {
		ID:            "bicep_curl",
		Name:          "Bicep Curl",
		Joints:        [3]int{pose.LeftShoulder, pose.LeftElbow, pose.LeftWrist},
		UpThreshold:   40,
		DownThreshold: 150,
		HoldFrames:    8,
		Hint:          "Curl the weight up to your shoulder, then lower it fully.",
		Rules: []Rule{
			{
				Name:    "elbow_drift",
				Kind:    CheckHorizontalDeviation,
				A:       pose.LeftElbow,
				B:       pose.LeftShoulder,
				Limit:   0.08,
				Message: "Keep your elbow pinned to your side",
			},
			{
				Name:    "torso_swing",
				Kind:    CheckHorizontalDeviation,
				A:       pose.LeftShoulder,
				B:       pose.LeftHip,
				Limit:   0.12,
				Message: "Don't swing your torso",
			},
		},
	},
	"squat": {
		ID:            "squat",
		Name:          "Squat",
		Joints:        [3]int{pose.LeftHip, pose.LeftKnee, pose.LeftAnkle},
		UpThreshold:   100,
		DownThreshold: 160,
		HoldFrames:    8,
		Hint:          "Sit back until your thighs are parallel, then stand tall.",
		Rules: []Rule{
			{
				Name:    "knee_cave",
				Kind:    CheckHorizontalDeviation,
				A:       pose.LeftKnee,
				B:       pose.LeftAnkle,
				Limit:   0.1,
				Message: "Keep your knee over your foot",
			},
			{
				Name:    "back_collapse",
				Kind:    CheckAngleBelow,
				A:       pose.LeftShoulder,
				B:       pose.LeftHip,
				C:       pose.LeftKnee,
				Limit:   45,
				Message: "Keep your chest up",
			},
		},
	},
	"push_up": {
		ID:            "push_up",
		Name:          "Push-Up",
		Joints:        [3]int{pose.LeftShoulder, pose.LeftElbow, pose.LeftWrist},
		UpThreshold:   80,
		DownThreshold: 155,
		HoldFrames:    6,
		Hint:          "Lower your chest to the floor, then press to lockout.",
		Rules: []Rule{
			{
				Name:    "hip_sag",
				Kind:    CheckAngleBelow,
				A:       pose.LeftShoulder,
				B:       pose.LeftHip,
				C:       pose.LeftKnee,
				Limit:   150,
				Message: "Keep your hips in line with your shoulders",
			},
			{
				Name:    "hip_pike",
				Kind:    CheckVerticalDeviation,
				A:       pose.LeftHip,
				B:       pose.LeftShoulder,
				Limit:   0.18,
				Message: "Don't pike your hips",
			},
		},
	},
	"shoulder_press": {
		ID:            "shoulder_press",
		Name:          "Shoulder Press",
		Joints:        [3]int{pose.RightShoulder, pose.RightElbow, pose.RightWrist},
		UpThreshold:   100,
		DownThreshold: 150,
		HoldFrames:    8,
		Hint:          "Press overhead to lockout, then lower to your shoulders.",
		Rules: []Rule{
			{
				Name:    "lean_back",
				Kind:    CheckHorizontalDeviation,
				A:       pose.RightShoulder,
				B:       pose.RightHip,
				Limit:   0.1,
				Message: "Don't lean back, brace your core",
			},
			{
				Name:    "wrist_drift",
				Kind:    CheckHorizontalDeviation,
				A:       pose.RightWrist,
				B:       pose.RightElbow,
				Limit:   0.09,
				Message: "Stack your wrist over your elbow",
			},
		},
	},
	"lateral_raise": {
		ID:            "lateral_raise",
		Name:          "Lateral Raise",
		Joints:        [3]int{pose.LeftHip, pose.LeftShoulder, pose.LeftElbow},
		UpThreshold:   25,
		DownThreshold: 75,
		HoldFrames:    6,
		Hint:          "Raise your arms to shoulder height, then lower with control.",
		Rules: []Rule{
			{
				Name:    "side_lean",
				Kind:    CheckHorizontalDeviation,
				A:       pose.LeftShoulder,
				B:       pose.LeftHip,
				Limit:   0.1,
				Message: "Stay upright, don't lean to the side",
			},
			{
				Name:    "elbow_bend",
				Kind:    CheckAngleBelow,
				A:       pose.LeftShoulder,
				B:       pose.LeftElbow,
				C:       pose.LeftWrist,
				Limit:   120,
				Message: "Keep a soft, fixed bend in your elbows",
			},
		},
	},
}
