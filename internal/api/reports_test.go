package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchoolReportEndpoints(t *testing.T) {
	var timelineDays string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/analytics/school/overview":
			w.Write([]byte(`{
				"total_students": 42, "total_missions": 17,
				"missions_this_month": 9, "avg_xp": 231.5,
				"top_students": [{"nome": "Ana", "xp": 450, "nivel": 5}]
			}`))
		case "/analytics/school/activity-timeline":
			timelineDays = r.URL.Query().Get("days")
			w.Write([]byte(`[
				{"date": "2026-08-28", "missions": 3},
				{"date": "2026-08-29", "missions": 5}
			]`))
		case "/analytics/school/category-distribution":
			w.Write([]byte(`[
				{"categoria": "estudo", "count": 11},
				{"categoria": "esporte", "count": 6}
			]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("tok"))
	ctx := context.Background()

	overview, err := c.SchoolOverview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, overview.TotalStudents)
	assert.Equal(t, 9, overview.MissionsThisMonth)
	assert.InDelta(t, 231.5, overview.AvgXP, 0.001)
	require.Len(t, overview.TopStudents, 1)
	assert.Equal(t, "Ana", overview.TopStudents[0].Name)

	points, err := c.ActivityTimeline(ctx, 14)
	require.NoError(t, err)
	assert.Equal(t, "14", timelineDays)
	require.Len(t, points, 2)
	assert.Equal(t, 5, points[1].Missions)

	counts, err := c.CategoryDistribution(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "estudo", counts[0].Category)
	assert.Equal(t, 11, counts[0].Count)
}
