package xdg

import (
	"os"
	"path/filepath"
)

// Dirs resolves per-user base directories following the XDG Base Directory
// layout.
type Dirs struct {
	dataHome   string
	configHome string
}

// NewDirs reads XDG_DATA_HOME and XDG_CONFIG_HOME, falling back to the
// defaults under the user's home directory.
func NewDirs() *Dirs {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv("HOME")
		if homeDir == "" {
			homeDir = os.TempDir()
		}
	}

	d := &Dirs{}

	d.dataHome = os.Getenv("XDG_DATA_HOME")
	if d.dataHome == "" || !filepath.IsAbs(d.dataHome) {
		d.dataHome = filepath.Join(homeDir, ".local", "share")
	}

	d.configHome = os.Getenv("XDG_CONFIG_HOME")
	if d.configHome == "" || !filepath.IsAbs(d.configHome) {
		d.configHome = filepath.Join(homeDir, ".config")
	}

	return d
}

func (d *Dirs) DataHome() string {
	return d.dataHome
}

func (d *Dirs) ConfigHome() string {
	return d.configHome
}

func (d *Dirs) AppDataDir(appName string) string {
	return filepath.Join(d.dataHome, appName)
}

func (d *Dirs) AppConfigDir(appName string) string {
	return filepath.Join(d.configHome, appName)
}

// EnsureDir creates path and its parents if they do not exist.
func (d *Dirs) EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
