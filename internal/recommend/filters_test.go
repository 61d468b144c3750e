package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/uniassist/uniassist/internal/catalog"
	"github.com/uniassist/uniassist/internal/profile"
)

func roommateFixtures() []*catalog.RoommateCandidate {
	return []*catalog.RoommateCandidate{
		{
			Name:               "Alex Chen",
			Major:              "Computer Science",
			TargetUniversities: []string{"Stanford University"},
			Interests:          []string{"hiking", "technology"},
			Housing:            profile.HousingPreferences{RoomType: "shared"},
		},
		{
			Name:               "Maria Garcia",
			Major:              "Biology",
			TargetUniversities: []string{"Harvard University"},
			Interests:          []string{"reading"},
			Housing:            profile.HousingPreferences{RoomType: "single"},
		},
	}
}

func TestMentorAvailabilityFilter(t *testing.T) {
	mentors := []*catalog.Mentor{
		{Name: "Available", AvailableForMentoring: true},
		{Name: "Busy", AvailableForMentoring: false},
	}
	kept, step, err := NewMentorAvailability().Apply(mentors)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "Available", kept[0].Name)
	assert.Equal(t, Step{Initial: 2, Dropped: 1, Left: 1}, step)
}

func TestRoommateSearchFilter(t *testing.T) {
	cases := []struct {
		query string
		want  []string
	}{
		{"alex", []string{"Alex Chen"}},
		{"biology", []string{"Maria Garcia"}},
		{"TECHNOLOGY", []string{"Alex Chen"}},
		{"nobody", nil},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			kept, _, err := NewRoommateSearch(tc.query).Apply(roommateFixtures())
			require.NoError(t, err)
			names := make([]string, 0, len(kept))
			for _, c := range kept {
				names = append(names, c.Name)
			}
			if tc.want == nil {
				assert.Empty(t, names)
			} else {
				assert.Equal(t, tc.want, names)
			}
		})
	}
}

func TestRoommateSearchFilterDisabledWhenEmpty(t *testing.T) {
	assert.False(t, NewRoommateSearch("  ").IsEnabled())
	assert.True(t, NewRoommateSearch("alex").IsEnabled())
}

func TestRoommateUniversityFilter(t *testing.T) {
	kept, _, err := NewRoommateUniversity("stanford university").Apply(roommateFixtures())
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "Alex Chen", kept[0].Name)
}

func TestRoommateRoomTypeFilter(t *testing.T) {
	kept, _, err := NewRoommateRoomType("Single").Apply(roommateFixtures())
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "Maria Garcia", kept[0].Name)
}

func TestRunFiltersSkipsDisabled(t *testing.T) {
	filters := []Filter[*catalog.RoommateCandidate]{
		NewRoommateSearch(""), // disabled
		NewRoommateRoomType("shared"),
	}
	kept, err := runFilters(zap.NewNop(), filters, roommateFixtures())
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "Alex Chen", kept[0].Name)
}
