package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"
)

//go:embed data/regions.yaml
var regionsYAML []byte

// Regions maps a region name to the countries it contains. The table is an
// explicit, injected data asset so scorer logic can be tested against a
// fixture instead of a hidden global.
type Regions map[string][]string

// DefaultRegions returns the bundled region table.
func DefaultRegions() Regions {
	regions, err := parseRegions(regionsYAML)
	if err != nil {
		// the embedded asset is validated by tests; a parse failure here is a
		// build defect, not a runtime condition
		panic(fmt.Sprintf("embedded regions table: %v", err))
	}
	return regions
}

func parseRegions(data []byte) (Regions, error) {
	var doc struct {
		Regions Regions `yaml:"regions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Regions) == 0 {
		return nil, fmt.Errorf("no regions defined")
	}
	return doc.Regions, nil
}

// Contains reports whether the country belongs to the named region. Both
// lookups are case-insensitive; an unknown region contains nothing.
func (r Regions) Contains(region, country string) bool {
	for name, countries := range r {
		if !strings.EqualFold(name, region) {
			continue
		}
		for _, c := range countries {
			if strings.EqualFold(c, country) {
				return true
			}
		}
	}
	return false
}

// ContainsAny reports whether the country belongs to any of the regions.
func (r Regions) ContainsAny(regions []string, country string) bool {
	for _, region := range regions {
		if r.Contains(region, country) {
			return true
		}
	}
	return false
}
