package common

import (
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// skipDirs are left out of the image hash; they never reach the build context.
var skipDirs = map[string]bool{
	".git":      true,
	"_examples": true,
	"infra":     true,
}

// GenerateHash fingerprints the files under root so a new image tag is pushed
// only when the source changed.
func GenerateHash(root string) (string, error) {
	var hash string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && skipDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return nil
		}

		fh, err := fileHash(path)
		if err != nil {
			return err
		}
		hash = combine(hash, fh)
		return nil
	})

	return hash, err
}

func fileHash(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func combine(a, b string) string {
	h := md5.New()
	_, _ = io.WriteString(h, a+b)
	return fmt.Sprintf("%x", h.Sum(nil))
}
