package director

// Script is a recorded or generated scroll session
type Script struct {
	Version   string     `yaml:"version"`
	Scene     string     `yaml:"scene,omitempty"` // scene file the script was made for
	Begin     float64    `yaml:"begin"`           // time the explore button is pressed
	Duration  float64    `yaml:"duration"`        // total length in seconds
	Keyframes []Keyframe `yaml:"keyframes"`
}

// Keyframe is a scroll target at a specific time
type Keyframe struct {
	Time   float64 `yaml:"time"`   // seconds from the start of the session
	Focus  string  `yaml:"focus"`  // what the camera is looking at
	Offset float64 `yaml:"offset"` // scroll progress in [0,1]
}
