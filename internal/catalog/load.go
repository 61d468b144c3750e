package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

//go:embed data/universities.yaml
var universitiesYAML []byte

//go:embed data/mentors.yaml
var mentorsYAML []byte

//go:embed data/roommates.yaml
var roommatesYAML []byte

// LoadUniversities reads a university catalog from path, or the bundled
// catalog when path is empty.
func LoadUniversities(path string) (*Universities, error) {
	data, err := readAsset(path, universitiesYAML)
	if err != nil {
		return nil, fmt.Errorf("university catalog: %w", err)
	}

	var catalog Universities
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parsing university catalog: %w", err)
	}
	if catalog.Len() == 0 {
		return nil, fmt.Errorf("university catalog is empty")
	}
	return &catalog, nil
}

// LoadMentors reads a mentor catalog from path, or the bundled catalog when
// path is empty.
func LoadMentors(path string) (*Mentors, error) {
	data, err := readAsset(path, mentorsYAML)
	if err != nil {
		return nil, fmt.Errorf("mentor catalog: %w", err)
	}

	var catalog Mentors
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parsing mentor catalog: %w", err)
	}
	return &catalog, nil
}

// LoadRoommates reads a roommate-candidate catalog from path, or the bundled
// catalog when path is empty.
func LoadRoommates(path string) (*RoommateCandidates, error) {
	data, err := readAsset(path, roommatesYAML)
	if err != nil {
		return nil, fmt.Errorf("roommate catalog: %w", err)
	}

	var catalog RoommateCandidates
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parsing roommate catalog: %w", err)
	}
	return &catalog, nil
}

// LoadRegions reads a region table from path, or the bundled table when path
// is empty.
func LoadRegions(path string) (Regions, error) {
	data, err := readAsset(path, regionsYAML)
	if err != nil {
		return nil, fmt.Errorf("region table: %w", err)
	}
	regions, err := parseRegions(data)
	if err != nil {
		return nil, fmt.Errorf("parsing region table: %w", err)
	}
	return regions, nil
}

func readAsset(path string, embedded []byte) ([]byte, error) {
	if strings.TrimSpace(path) == "" {
		return embedded, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return data, nil
}
