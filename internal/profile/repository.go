package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// ErrNotFound is returned when no profile exists for the requested id.
var ErrNotFound = errors.New("profile not found")

// Repository provides read/write access to stored student profiles. The
// scoring engine never touches a Repository directly; only the orchestration
// layer does.
type Repository interface {
	Get(id string) (*StudentProfile, error)
	Save(id string, p *StudentProfile) error
}

// FileRepository stores one YAML document per profile under a directory.
type FileRepository struct {
	dir string
}

// NewFileRepository creates the backing directory if needed.
func NewFileRepository(dir string) (*FileRepository, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("profile directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating profile directory: %w", err)
	}
	return &FileRepository{dir: dir}, nil
}

func (r *FileRepository) path(id string) string {
	return filepath.Join(r.dir, id+".yaml")
}

// Get loads the profile with the given id. Missing optional fields come back
// zeroed; the scorers treat those as "no data", not as faults.
func (r *FileRepository) Get(id string) (*StudentProfile, error) {
	data, err := os.ReadFile(r.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("reading profile %q: %w", id, err)
	}

	var p StudentProfile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile %q: %w", id, err)
	}
	return &p, nil
}

// Save writes the profile, replacing any previous version.
func (r *FileRepository) Save(id string, p *StudentProfile) error {
	if p == nil {
		return errors.New("profile is required")
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding profile %q: %w", id, err)
	}
	if err := os.WriteFile(r.path(id), data, 0o644); err != nil {
		return fmt.Errorf("writing profile %q: %w", id, err)
	}
	return nil
}

// Update applies a partial patch on top of the stored profile and saves the
// result. A missing stored profile is treated as empty so first-time updates
// succeed.
func (r *FileRepository) Update(id string, patch *StudentProfile) (*StudentProfile, error) {
	current, err := r.Get(id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	merged := Merge(current, patch)
	if err := r.Save(id, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Load reads a single profile from an arbitrary YAML file path.
func Load(path string) (*StudentProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile file: %w", err)
	}

	var p StudentProfile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile file %q: %w", path, err)
	}
	return &p, nil
}
