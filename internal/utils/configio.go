package utils

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// DirStatus reports whether a directory exists and is writable.
type DirStatus struct {
	Exists   bool
	Writable bool
	Err      error
}

// FileExists reports whether path names an existing file or directory.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates dirPath, including any missing parents, if absent.
func EnsureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0755)
}

// ExecutableDir returns the directory containing the running binary. It is
// a fallback for config-path resolution when the user's home directory
// can't be determined; callers fall back to builtin defaults if this fails
// too.
func ExecutableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(execPath), nil
}

// AbsolutePath resolves path to an absolute form for display, returning
// "unknown" for an empty path.
func AbsolutePath(path string) string {
	if path == "" {
		return "unknown"
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// CheckDir reports whether dirPath exists (creating it if not) and is
// writable.
func CheckDir(dirPath string) DirStatus {
	if _, err := os.Stat(dirPath); err != nil {
		if mkErr := os.MkdirAll(dirPath, 0755); mkErr != nil {
			log.Warnf("cannot create directory %s: %v", dirPath, mkErr)
			return DirStatus{Err: mkErr}
		}
	}
	return DirStatus{Exists: true, Writable: isWritable(dirPath)}
}

func isWritable(dirPath string) bool {
	probe := filepath.Join(dirPath, ".write_test")
	f, err := os.Create(probe)
	if err != nil {
		log.Debugf("directory %s is not writable: %v", dirPath, err)
		return false
	}
	f.Close()
	os.Remove(probe)
	return true
}

// SaveTOML encodes v as a TOML document at path.
func SaveTOML(v any, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(v)
}

// LoadTOML decodes the TOML document at path into v.
func LoadTOML(path string, v any) error {
	_, err := toml.DecodeFile(path, v)
	return err
}

// ParseTOMLLoose decodes path into a generic map, for salvaging whichever
// sections parse when the typed decode in LoadTOML fails outright.
func ParseTOMLLoose(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any)
	if _, err := toml.Decode(string(data), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Section extracts a nested table from decoded TOML data.
func Section(data map[string]any, name string) (map[string]any, bool) {
	section, ok := data[name].(map[string]any)
	return section, ok
}

// Extract retrieves data[key] as T, reporting whether it was present and
// of that exact type. TOML decodes integers as int64 and floats as
// float64; use ExtractNumber where either literal form should be accepted.
func Extract[T comparable](data map[string]any, key string) (T, bool) {
	val, ok := data[key].(T)
	return val, ok
}

// ExtractNumber retrieves data[key] as a float64, accepting either a TOML
// float or integer literal.
func ExtractNumber(data map[string]any, key string) (float64, bool) {
	switch v := data[key].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
