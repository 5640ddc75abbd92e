package hours

import (
	"math"
	"sort"

	"github.com/ManuelReschke/ShellEconomy/app/models"
)

const (
	// MaxRankedProjects is how many of a user's projects can contribute.
	MaxRankedProjects = 4
	// ProjectHourCap caps the contribution of a single project.
	ProjectHourCap = 15.0
	// TotalHourCap caps a user's approved hours.
	TotalHourCap = 60.0
)

// UserProject is a project annotated with the approved hours supplied by the
// review subsystem.
type UserProject struct {
	Project       models.Project
	ApprovedHours float64
}

// Contribution explains what one project added to a user's total.
type Contribution struct {
	ProjectID      uint    `json:"project_id"`
	Rank           int     `json:"rank"`
	EffectiveHours float64 `json:"effective_hours"`
	ApprovedHours  float64 `json:"approved_hours"`
	Shipped        bool    `json:"shipped"`
	Viral          bool    `json:"viral"`
	Ranked         bool    `json:"ranked"`
	Hours          float64 `json:"hours"`
}

// Result is the approved-hours figure of one user together with its breakdown.
type Result struct {
	Total         float64        `json:"total"`
	Contributions []Contribution `json:"contributions"`
}

// AggregateApprovedHours computes a user's capped approved hours.
func AggregateApprovedHours(projects []UserProject) float64 {
	return Breakdown(projects).Total
}

// Breakdown ranks the projects by effective hours (ties keep input order),
// credits the top MaxRankedProjects and caps the sum at TotalHourCap.
// Contributions are returned in rank order.
func Breakdown(projects []UserProject) Result {
	contributions := make([]Contribution, len(projects))
	for i, p := range projects {
		contributions[i] = Contribution{
			ProjectID:      p.Project.ID,
			EffectiveHours: ResolveProjectHours(p.Project),
			ApprovedHours:  p.ApprovedHours,
			Shipped:        p.Project.Shipped,
			Viral:          p.Project.Viral,
		}
	}

	sort.SliceStable(contributions, func(i, j int) bool {
		return contributions[i].EffectiveHours > contributions[j].EffectiveHours
	})

	var sum float64
	for i := range contributions {
		c := &contributions[i]
		c.Rank = i + 1
		if i >= MaxRankedProjects {
			continue
		}
		c.Ranked = true
		c.Hours = projectContribution(c.Shipped, c.Viral, c.ApprovedHours)
		sum += c.Hours
	}

	return Result{
		Total:         math.Min(sum, TotalHourCap),
		Contributions: contributions,
	}
}

// projectContribution applies the review eligibility rules. All three
// branches currently share ProjectHourCap.
func projectContribution(shipped, viral bool, approved float64) float64 {
	hasApproved := approved > 0
	switch {
	case viral && hasApproved:
		return math.Min(approved, ProjectHourCap)
	case shipped && hasApproved:
		return math.Min(approved, ProjectHourCap)
	case !shipped && !viral:
		if hasApproved {
			return math.Min(approved, ProjectHourCap)
		}
		return 0
	default:
		return 0
	}
}
