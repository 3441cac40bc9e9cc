package app

import (
	"context"
	"errors"
	"strings"

	"github.com/Downforcedemon/MinimalHome/internal/domain"
)

// productiveCategoryName is matched case-insensitively against category
// display names when scoring.
const productiveCategoryName = "Productivity"

// Scorer derives a productivity score from a per-app usage breakdown.
type Scorer struct {
	lookup domain.CategoryLookup
}

// NewScorer creates the productivity scorer.
func NewScorer(lookup domain.CategoryLookup) *Scorer {
	return &Scorer{lookup: lookup}
}

// Score returns 100 * productiveSeconds / totalSeconds for the breakdown,
// where seconds count as productive when their app's category name equals
// "Productivity" case-insensitively. Returns 0 for an empty breakdown; the
// result is always within [0, 100].
func (s *Scorer) Score(ctx context.Context, perApp map[string]int64) (float64, error) {
	categories := make(map[string]*domain.Category, len(perApp))
	for appName := range perApp {
		category, err := s.lookup.CategoryForApp(ctx, appName)
		if errors.Is(err, domain.ErrAppNotAssigned) {
			continue
		}
		if err != nil {
			return 0, err
		}
		categories[appName] = category
	}
	return s.ScoreResolved(perApp, categories), nil
}

// ScoreResolved is Score over categories that were already looked up, so the
// score and any breakdown built from the same map cannot disagree. Apps
// absent from categories count toward the total only.
func (s *Scorer) ScoreResolved(perApp map[string]int64, categories map[string]*domain.Category) float64 {
	var productive, total int64
	for appName, seconds := range perApp {
		total += seconds

		category, ok := categories[appName]
		if ok && strings.EqualFold(category.Name, productiveCategoryName) {
			productive += seconds
		}
	}

	if total <= 0 {
		return 0
	}
	return float64(productive) / float64(total) * 100
}
