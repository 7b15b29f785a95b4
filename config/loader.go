package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed data/lots.json
var defaultLotData []byte

// DefaultLotData returns the built-in vicinity map lot document.
func DefaultLotData() []byte {
	out := make([]byte, len(defaultLotData))
	copy(out, defaultLotData)
	return out
}

// ReadLotData returns the lot document at path, or the built-in one when path is empty.
func ReadLotData(path string) ([]byte, error) {
	if path == "" {
		return DefaultLotData(), nil
	}
	return readFile(path)
}

// ReadPalette returns the palette override document at path, or nil when path is empty.
func ReadPalette(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	return readFile(path)
}

func readFile(path string) ([]byte, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return data, nil
}
