package schemastore

import (
	"os"
	"path/filepath"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvFile = "OAS_FILE"
	EnvRoot = "OAS_ROOT"
)

// DefaultFile is the document location relative to the application root.
var DefaultFile = filepath.Join("schemas", "oas.json")

// Config selects where the document is loaded from.
type Config struct {
	// File is the document path. Relative paths resolve against Root.
	// Empty selects DefaultFile.
	File string

	// Root is the application root. Empty selects the working directory.
	Root string
}

// ConfigFromEnv reads OAS_FILE and OAS_ROOT.
func ConfigFromEnv() Config {
	return Config{
		File: os.Getenv(EnvFile),
		Root: os.Getenv(EnvRoot),
	}
}

// Options converts c into Open options.
func (c Config) Options() []Option {
	var opts []Option
	if c.Root != "" {
		opts = append(opts, WithRoot(c.Root))
	}
	if c.File != "" {
		opts = append(opts, WithFile(c.File))
	}
	return opts
}

// Path returns the document path c selects.
func (c Config) Path() (string, error) {
	root := c.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		root = wd
	}

	file := c.File
	if file == "" {
		file = DefaultFile
	}
	if filepath.IsAbs(file) {
		return filepath.Clean(file), nil
	}
	return filepath.Join(root, file), nil
}
