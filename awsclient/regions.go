package awsclient

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed regions.yaml
var regionsData []byte

// regionCatalog is the parsed region availability table.
type regionCatalog struct {
	Services map[string][]string `yaml:"services"`
}

var (
	catalogOnce sync.Once
	catalog     regionCatalog
	catalogErr  error
)

func loadCatalog() (regionCatalog, error) {
	catalogOnce.Do(func() {
		catalogErr = yaml.Unmarshal(regionsData, &catalog)
		if catalogErr != nil {
			catalogErr = fmt.Errorf("failed to parse region catalog: %w", catalogErr)
		}
	})
	return catalog, catalogErr
}

// IsServiceInRegion reports whether the given service has an endpoint in
// the given region. Unknown services report false.
func IsServiceInRegion(serviceID, regionID string) bool {
	cat, err := loadCatalog()
	if err != nil {
		return false
	}
	for _, region := range cat.Services[serviceID] {
		if region == regionID {
			return true
		}
	}
	return false
}

// RegionsForService returns the sorted regions where the service is
// available. Returns an empty slice for unknown services.
func RegionsForService(serviceID string) []string {
	cat, err := loadCatalog()
	if err != nil {
		return []string{}
	}

	regions := append([]string(nil), cat.Services[serviceID]...)
	sort.Strings(regions)
	if regions == nil {
		regions = []string{}
	}
	return regions
}
