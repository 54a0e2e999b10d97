package regsvc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrNoModel is returned by Store.Load when no model has been saved.
var ErrNoModel = errors.New("regsvc: no saved model")

// Store persists the trained model.
type Store interface {
	Load() (*Model, error)
	Save(*Model) error
	Exists() bool
}

// FileStore keeps the model as a JSON file.
type FileStore struct {
	Fs   afero.Fs
	Path string
}

var _ Store = (*FileStore)(nil)

// savedModel is the file format.
type savedModel struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	R2           float64   `json:"r2_score"`
	MSE          float64   `json:"mse"`
}

func (s *FileStore) Load() (*Model, error) {
	data, err := afero.ReadFile(s.Fs, s.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, ErrNoModel
	case err != nil:
		return nil, fmt.Errorf("regsvc: failed to read model: %v", err)
	}

	var saved savedModel
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("regsvc: failed to parse model %s: %v", s.Path, err)
	}
	if len(saved.Coefficients) == 0 {
		return nil, fmt.Errorf("regsvc: model %s has no coefficients", s.Path)
	}

	return &Model{
		Coefficient: saved.Coefficients[0],
		Intercept:   saved.Intercept,
		R2:          saved.R2,
		MSE:         saved.MSE,
	}, nil
}

// Save writes the model atomically through a temporary file.
func (s *FileStore) Save(m *Model) error {
	data, err := json.MarshalIndent(savedModel{
		Coefficients: []float64{m.Coefficient},
		Intercept:    m.Intercept,
		R2:           m.R2,
		MSE:          m.MSE,
	}, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.Path); dir != "" {
		if err := s.Fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("regsvc: failed to create model dir: %v", err)
		}
	}

	tempPath := s.Path + ".tmp"
	if err := afero.WriteFile(s.Fs, tempPath, data, 0o644); err != nil {
		return fmt.Errorf("regsvc: failed to write temp model file: %v", err)
	}
	if err := s.Fs.Rename(tempPath, s.Path); err != nil {
		return fmt.Errorf("regsvc: failed to rename temp model file: %v", err)
	}
	return nil
}

func (s *FileStore) Exists() bool {
	ok, err := afero.Exists(s.Fs, s.Path)
	return err == nil && ok
}
