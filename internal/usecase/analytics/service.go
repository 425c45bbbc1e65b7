// Package analytics serves demo platform metrics generated at startup.
package analytics

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/streamflix/catalog/internal/domain"
)

// EngagementPoint is one bucket of viewing activity.
type EngagementPoint struct {
	Period      string  `json:"period"`
	ActiveUsers int     `json:"activeUsers"`
	WatchHours  float64 `json:"watchHours"`
	AvgSession  float64 `json:"avgSessionMinutes"`
}

// ContentStats summarizes one title's performance.
type ContentStats struct {
	ContentID      string  `json:"contentId"`
	Views          int     `json:"views"`
	CompletionRate float64 `json:"completionRate"`
	AvgRating      float64 `json:"avgRating"`
}

// RegionStats summarizes activity for one geographic region.
type RegionStats struct {
	Region      string `json:"region"`
	ActiveUsers int    `json:"activeUsers"`
	TopGenre    string `json:"topGenre"`
}

var regions = []string{"North America", "Europe", "Asia Pacific", "Latin America", "Middle East", "Africa"}

var regionGenres = []string{"action", "drama", "comedy", "thriller", "animation", "documentary"}

// Service holds the generated analytics snapshot.
type Service struct {
	daily       []EngagementPoint
	weekly      []EngagementPoint
	monthly     []EngagementPoint
	content     []ContentStats
	regionStats []RegionStats
}

// New generates the demo analytics snapshot. The same seed yields the same
// snapshot, which keeps the demo stable across restarts.
func New(seed int64) *Service {
	rng := rand.New(rand.NewSource(seed))
	now := time.Now().UTC()

	daily := make([]EngagementPoint, 0, 30)
	for i := 29; i >= 0; i-- {
		daily = append(daily, engagementPoint(rng, now.AddDate(0, 0, -i).Format("2006-01-02")))
	}
	weekly := make([]EngagementPoint, 0, 12)
	for i := 11; i >= 0; i-- {
		weekly = append(weekly, engagementPoint(rng, fmt.Sprintf("week-%d", 12-i)))
	}
	monthly := make([]EngagementPoint, 0, 6)
	for i := 5; i >= 0; i-- {
		monthly = append(monthly, engagementPoint(rng, now.AddDate(0, -i, 0).Format("2006-01")))
	}

	content := make([]ContentStats, 0, 10)
	for i := 0; i < 10; i++ {
		content = append(content, ContentStats{
			ContentID:      fmt.Sprintf("movie-%d", 101+i),
			Views:          1000 + rng.Intn(9000),
			CompletionRate: 0.5 + rng.Float64()*0.5,
			AvgRating:      3.0 + rng.Float64()*2.0,
		})
	}

	regionStats := make([]RegionStats, 0, len(regions))
	for i, r := range regions {
		regionStats = append(regionStats, RegionStats{
			Region:      r,
			ActiveUsers: 10000 + rng.Intn(90000),
			TopGenre:    regionGenres[i],
		})
	}

	return &Service{
		daily:       daily,
		weekly:      weekly,
		monthly:     monthly,
		content:     content,
		regionStats: regionStats,
	}
}

func engagementPoint(rng *rand.Rand, period string) EngagementPoint {
	return EngagementPoint{
		Period:      period,
		ActiveUsers: 500 + rng.Intn(1500),
		WatchHours:  1000 + rng.Float64()*4000,
		AvgSession:  20 + rng.Float64()*70,
	}
}

// Engagement returns viewing activity for the requested granularity:
// "daily", "weekly" or "monthly". Anything else falls back to daily.
func (s *Service) Engagement(granularity string) []EngagementPoint {
	switch granularity {
	case "weekly":
		return s.weekly
	case "monthly":
		return s.monthly
	default:
		return s.daily
	}
}

// ContentPerformance returns per-title viewing statistics.
func (s *Service) ContentPerformance() []ContentStats {
	return s.content
}

// Regions returns per-region activity.
func (s *Service) Regions() []RegionStats {
	return s.regionStats
}

// Status reports this service's topology node.
func (s *Service) Status() domain.ServiceStatus {
	return domain.ServiceStatus{
		Service: "Analytics Platform",
		Status:  "active",
		Counts: map[string]int{
			"engagementPoints": len(s.daily) + len(s.weekly) + len(s.monthly),
			"trackedTitles":    len(s.content),
			"regions":          len(s.regionStats),
		},
	}
}
