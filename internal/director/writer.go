package director

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WriteScript writes a script to a YAML file
func WriteScript(script *Script, path string) error {
	data, err := yaml.Marshal(script)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadScript reads a script from a YAML file and checks its keyframes
func ReadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, err
	}

	if err := script.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &script, nil
}

// Validate checks that keyframes are ordered in time and offsets are in range
func (s *Script) Validate() error {
	if len(s.Keyframes) == 0 {
		return fmt.Errorf("script has no keyframes")
	}
	for i, kf := range s.Keyframes {
		if kf.Offset < 0 || kf.Offset > 1 {
			return fmt.Errorf("keyframe %d: offset %.3f out of [0,1]", i, kf.Offset)
		}
		if i > 0 && kf.Time < s.Keyframes[i-1].Time {
			return fmt.Errorf("keyframe %d: time %.2fs before previous %.2fs", i, kf.Time, s.Keyframes[i-1].Time)
		}
	}
	if s.Duration < s.Keyframes[len(s.Keyframes)-1].Time {
		s.Duration = s.Keyframes[len(s.Keyframes)-1].Time
	}
	return nil
}
