// Package hours turns tracked-time links into the capped approved-hours figure
// used for program progression and reviewer dashboards.
package hours

import (
	"math"

	"github.com/ManuelReschke/ShellEconomy/app/models"
)

// ResolveEffectiveHours returns the override when one is set (zero included),
// otherwise the raw synced hours. Missing, non-finite or negative values
// resolve to 0 so project sums stay comparable.
func ResolveEffectiveHours(link models.TimeLink) float64 {
	if link.HasOverride() {
		return sanitize(*link.HoursOverride)
	}
	if link.RawHours != nil {
		return sanitize(*link.RawHours)
	}
	return 0
}

// ResolveProjectHours sums the effective hours of all links of a project.
func ResolveProjectHours(project models.Project) float64 {
	var total float64
	for _, link := range project.Links {
		total += ResolveEffectiveHours(link)
	}
	return total
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
