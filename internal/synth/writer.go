package synth

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteArtifacts persists artifacts under dir, creating it if needed.
// Each file is written to a temp sibling and renamed into place so a
// crash never leaves a truncated script behind. Returns the paths
// written.
func WriteArtifacts(dir string, artifacts []Artifact, overwrite bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var paths []string
	for _, art := range artifacts {
		dst := filepath.Join(dir, art.Name)
		if !overwrite {
			if _, err := os.Stat(dst); err == nil {
				return paths, fmt.Errorf("refusing to overwrite %s", dst)
			}
		}
		if err := writeAtomic(dst, []byte(art.Content)); err != nil {
			return paths, fmt.Errorf("write %s: %w", art.Name, err)
		}
		paths = append(paths, dst)
	}
	return paths, nil
}

func writeAtomic(dst string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, dst)
}
