package manual

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// ProgressFile is the name of the file holding the current milestone.
const ProgressFile = "progress.yaml"

type progress struct {
	Milestone Milestone `yaml:"milestone"`
}

// LoadProgress returns the milestone stored in dir. A missing progress
// file means the tutorial has not started.
func LoadProgress(dir string) (Milestone, error) {
	path := filepath.Join(dir, ProgressFile)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Basics, nil
	}

	if err != nil {
		return Basics, ErrProgress.With(slog.String("path", path)).Wrap(err)
	}

	var p progress
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Basics, ErrProgress.With(slog.String("path", path)).Wrap(err)
	}

	return p.Milestone, nil
}

// SaveProgress stores m in dir, creating dir if needed.
func SaveProgress(dir string, m Milestone) error {
	data, err := yaml.Marshal(progress{Milestone: m})
	if err != nil {
		return ErrProgress.Wrap(err)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return ErrProgress.With(slog.String("dir", dir)).Wrap(err)
	}

	path := filepath.Join(dir, ProgressFile)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return ErrProgress.With(slog.String("path", path)).Wrap(err)
	}

	return nil
}
