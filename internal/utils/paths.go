package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolvePath resolves path relative to baseDir. Absolute paths, and any
// path when baseDir is empty, are returned unchanged.
func ResolvePath(path, baseDir string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ResolveInputFile locates a results file given on the command line: a
// relative name is looked up in inputDir. The returned path must exist and
// be a regular file.
func ResolveInputFile(name, inputDir string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("no input file given")
	}
	p := ResolvePath(name, inputDir)
	info, err := os.Stat(p)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", p)
	}
	return p, nil
}
