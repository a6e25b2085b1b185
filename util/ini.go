package util

import (
	"gopkg.in/ini.v1"
)

// Ini loads a flat ini file into a key-value map. Only keys of the unnamed
// root section are read, named sections are ignored.
func Ini(path string) (map[string]string, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg.Section("").KeysHash(), nil
}
