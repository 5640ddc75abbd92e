package hours

import (
	"testing"

	"github.com/ManuelReschke/ShellEconomy/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func project(id uint, effective float64, shipped, viral bool) models.Project {
	return models.Project{
		ID:      id,
		Shipped: shipped,
		Viral:   viral,
		Links:   []models.TimeLink{{RawHours: f(effective)}},
	}
}

func fiveShipped() []UserProject {
	hours := []float64{50, 40, 30, 20, 10}
	out := make([]UserProject, len(hours))
	for i, h := range hours {
		out[i] = UserProject{Project: project(uint(i+1), h, true, false), ApprovedHours: 20}
	}
	return out
}

func TestAggregateApprovedHours_TopFourCapped(t *testing.T) {
	assert.Equal(t, 60.0, AggregateApprovedHours(fiveShipped()))
}

func TestAggregateApprovedHours_FifthProjectIgnored(t *testing.T) {
	projects := fiveShipped()
	projects[4].Project.Shipped = false
	projects[4].Project.Viral = true
	projects[4].ApprovedHours = 100

	assert.Equal(t, 60.0, AggregateApprovedHours(projects))

	res := Breakdown(projects)
	require.Len(t, res.Contributions, 5)
	last := res.Contributions[4]
	assert.Equal(t, uint(5), last.ProjectID)
	assert.False(t, last.Ranked)
	assert.Equal(t, 0.0, last.Hours)
}

func TestAggregateApprovedHours_RanksByEffectiveHours(t *testing.T) {
	// Input order is not rank order: project 5 has the most hours.
	projects := []UserProject{
		{Project: project(1, 1, true, false), ApprovedHours: 2},
		{Project: project(2, 2, true, false), ApprovedHours: 3},
		{Project: project(3, 3, true, false), ApprovedHours: 4},
		{Project: project(4, 4, true, false), ApprovedHours: 5},
		{Project: project(5, 5, true, false), ApprovedHours: 6},
	}

	res := Breakdown(projects)
	assert.Equal(t, 18.0, res.Total) // 6 + 5 + 4 + 3
	assert.Equal(t, uint(5), res.Contributions[0].ProjectID)
	assert.Equal(t, uint(1), res.Contributions[4].ProjectID)
	assert.False(t, res.Contributions[4].Ranked)
}

func TestAggregateApprovedHours_TiesKeepInputOrder(t *testing.T) {
	projects := make([]UserProject, 5)
	for i := range projects {
		projects[i] = UserProject{Project: project(uint(i+1), 10, true, false), ApprovedHours: float64(i + 1)}
	}

	res := Breakdown(projects)
	for i, c := range res.Contributions {
		assert.Equal(t, uint(i+1), c.ProjectID)
		assert.Equal(t, i+1, c.Rank)
	}
	assert.Equal(t, 10.0, res.Total) // 1 + 2 + 3 + 4
}

func TestAggregateApprovedHours_FewerThanFour(t *testing.T) {
	projects := []UserProject{
		{Project: project(1, 3, false, false), ApprovedHours: 4},
		{Project: project(2, 8, true, false), ApprovedHours: 30},
	}
	assert.Equal(t, 19.0, AggregateApprovedHours(projects))
	assert.Equal(t, 0.0, AggregateApprovedHours(nil))
}

func TestProjectContribution(t *testing.T) {
	tests := []struct {
		name     string
		shipped  bool
		viral    bool
		approved float64
		want     float64
	}{
		{name: "viral capped", viral: true, approved: 40, want: 15},
		{name: "viral without approval", viral: true, approved: 0, want: 0},
		{name: "shipped under cap", shipped: true, approved: 9, want: 9},
		{name: "shipped without approval", shipped: true, approved: 0, want: 0},
		{name: "shipped and viral", shipped: true, viral: true, approved: 12, want: 12},
		{name: "unshipped with approval", approved: 20, want: 15},
		{name: "unshipped without approval", approved: 0, want: 0},
		{name: "negative approval", shipped: true, approved: -3, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, projectContribution(tt.shipped, tt.viral, tt.approved))
		})
	}
}

func TestAggregateApprovedHours_Bounds(t *testing.T) {
	for n := 0; n < 8; n++ {
		projects := make([]UserProject, n)
		for i := range projects {
			projects[i] = UserProject{Project: project(uint(i+1), float64(n-i), i%2 == 0, i%3 == 0), ApprovedHours: float64(i*7) - 3}
		}
		got := AggregateApprovedHours(projects)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, TotalHourCap)
		assert.Equal(t, got, AggregateApprovedHours(projects))
	}
}
