package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bastiangx/votersearch/pkg/dataset"
	"github.com/charmbracelet/log"
)

// AppName names the per-user config and data directories.
const AppName = "votersearch"

// PathResolver finds the voter dataset when it is given as a bare file name.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
	workDir       string
}

// NewPathResolver records the executable, home, config and working directories.
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}
	workDir, _ := os.Getwd()

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		homeDir:       homeDir,
		configDir:     PlatformConfigDir(homeDir),
		workDir:       workDir,
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s, cwd=%s",
		pr.executableDir, pr.configDir, pr.workDir)
	return pr, nil
}

// PlatformConfigDir is the per-user config directory for the app:
// $XDG_CONFIG_HOME or ~/.config on Linux, %APPDATA% on Windows,
// ~/.config elsewhere.
func PlatformConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppName)
		}
		return filepath.Join(homeDir, ".config", AppName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppName)
	default:
		return filepath.Join(homeDir, ".config", AppName)
	}
}

// Candidates lists where a relative dataset path is looked for, in order:
// the working directory, next to the executable, then the config dir.
func (pr *PathResolver) Candidates(name string) []string {
	if filepath.IsAbs(name) {
		return []string{name}
	}
	var out []string
	for _, dir := range []string{pr.workDir, pr.executableDir, pr.configDir, filepath.Join(pr.configDir, "data")} {
		if dir == "" {
			continue
		}
		out = append(out, filepath.Join(dir, name))
	}
	return out
}

// ResolveDataFile returns the first candidate that is a regular file.
// URLs and DSNs are returned unchanged, as is name when nothing matches so
// that the loader reports a useful error.
func (pr *PathResolver) ResolveDataFile(name string) string {
	if dataset.IsRemoteLocation(name) {
		return name
	}
	for _, path := range pr.Candidates(name) {
		if stat, err := os.Stat(path); err == nil && stat.Mode().IsRegular() {
			log.Debugf("Found dataset: %s", path)
			return path
		}
		log.Debugf("Dataset candidate not found: %s", path)
	}
	return name
}

// RuntimeInfo returns debug information about the runtime environment
func (pr *PathResolver) RuntimeInfo() map[string]string {
	info := map[string]string{
		"executable_dir": pr.executableDir,
		"current_dir":    pr.workDir,
		"home_dir":       pr.homeDir,
		"config_dir":     pr.configDir,
		"os":             runtime.GOOS,
		"arch":           runtime.GOARCH,
	}
	for _, envVar := range []string{"HOME", "XDG_CONFIG_HOME", "APPDATA"} {
		if value := os.Getenv(envVar); value != "" {
			info["env_"+strings.ToLower(envVar)] = value
		}
	}
	return info
}
