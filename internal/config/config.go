package config

type Config struct {
	ScenePath      string
	ScriptPath     string
	OutputVideo    string
	FramesDir      string
	TotalDuration  float64
	Width          int
	Height         int
	FPS            int
	Workers        int
	Preset         string
	VideoEncoder   string
	Quality        int
	Grain          float64
	Portfolio      string
	Debug          bool
	ShowStats      bool
	GenerateScript bool
	ScriptOutput   string
	BuildVersion   string
}

type EncodeParams struct {
	Width, Height int
	FPS           int
	Duration      float64
	Filter        string
	Encoder       string
	Quality       int
}

// Params derives encoder parameters for a session of the given length.
func (c *Config) Params(duration float64, filter string) EncodeParams {
	return EncodeParams{
		Width:    c.Width,
		Height:   c.Height,
		FPS:      c.FPS,
		Duration: duration,
		Filter:   filter,
		Encoder:  c.VideoEncoder,
		Quality:  c.Quality,
	}
}

// ApplyPreset overrides the frame size for a named aspect preset.
func (c *Config) ApplyPreset() {
	switch c.Preset {
	case "16:9":
		c.Width, c.Height = 1280, 720
	case "9:16":
		c.Width, c.Height = 720, 1280
	case "4:5":
		c.Width, c.Height = 1080, 1350
	}
}
