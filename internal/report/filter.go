package report

import (
	"strings"

	"github.com/netspec/prtg-reporter/internal/config"
	"github.com/netspec/prtg-reporter/internal/prtg"
)

// Filter excludes sensors whose probe, group, device or name contains a
// configured substring. Matching is case-sensitive. An empty substring
// matches every sensor; config loading drops empty entries.
type Filter struct {
	exclusions config.Exclusions
}

// NewFilter creates a filter over the given blocklists
func NewFilter(exclusions config.Exclusions) *Filter {
	return &Filter{exclusions: exclusions}
}

// ShouldExclude reports whether the sensor is left out of the report
func (f *Filter) ShouldExclude(s prtg.Sensor) bool {
	return containsAny(s.Probe, f.exclusions.Probes) ||
		containsAny(s.Group, f.exclusions.Groups) ||
		containsAny(s.Device, f.exclusions.Devices) ||
		containsAny(s.Name, f.exclusions.Sensors)
}

func containsAny(field string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(field, sub) {
			return true
		}
	}
	return false
}
