package director

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ivlev/skyjourney/internal/system"
)

// ScriptsDir is where generated scripts are stored by default
var ScriptsDir = filepath.Join("internal", "scripts")

// GenerateScriptPath creates a timestamped script filename
func GenerateScriptPath() string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(ScriptsDir, fmt.Sprintf("script_%s.yaml", timestamp))
}

// FindLatestScript finds the most recent script file in dir
func FindLatestScript(dir string) (string, error) {
	path, err := system.FindLatest(dir, ".yaml")
	if err != nil {
		return "", fmt.Errorf("failed to find latest script: %w", err)
	}
	return path, nil
}
