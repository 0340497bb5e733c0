package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func EnsureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}
	return nil
}

// BaseName strips any directory part a client sent with an uploaded file name.
func BaseName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(SanitizeText(name))
	if base == "." || base == "/" {
		return ""
	}
	return base
}
