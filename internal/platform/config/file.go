package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DecodeFile reads a TOML file into target. Keys that do not map to a
// field of target are reported as an error.
func DecodeFile(path string, target any) error {
	md, err := toml.DecodeFile(path, target)
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("parse config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// FilePaths lists the standard locations of app's config file, most
// specific first.
func FilePaths(app string) []string {
	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, app, "config.toml"))
	}
	if home, _ := os.UserHomeDir(); home != "" {
		paths = append(paths, filepath.Join(home, ".config", app, "config.toml"))
	}
	return paths
}

// Load fills target from a TOML file and then from environment variables.
//
// target carries its defaults in, so its fields must not use envDefault:
// only variables that are set replace a file or default value. When path
// is empty the first existing file from FilePaths(app) is used, and having
// no file at all is not an error. An explicit path must exist.
func Load(app, path string, target any) error {
	if path == "" {
		for _, p := range FilePaths(app) {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	} else if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config file %s: %w", path, err)
	}

	if path != "" {
		if err := DecodeFile(path, target); err != nil {
			return err
		}
	}
	return ParseEnv(target)
}
