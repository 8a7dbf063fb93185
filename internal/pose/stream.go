package pose

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ReadFrames parses a recorded joint stream: one JSON frame per line.
// Blank lines and lines starting with '#' are skipped.
func ReadFrames(r io.Reader) ([]Frame, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var frames []Frame
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var fr Frame
		if err := json.Unmarshal([]byte(line), &fr); err != nil {
			return nil, fmt.Errorf("parsing frame at line %d: %w", lineNum, err)
		}
		frames = append(frames, fr)
	}

	return frames, scanner.Err()
}
