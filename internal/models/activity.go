package models

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxMostViewed = 10

// ActivityCount is one (kind, food) group of a user's interaction log.
type ActivityCount struct {
	Kind   InteractionKind     `bson:"kind" json:"kind"`
	FoodID *primitive.ObjectID `bson:"food_id,omitempty" json:"food_id,omitempty"`
	Total  int                 `bson:"total" json:"total"`
	Recent int                 `bson:"recent" json:"recent"`
}

// FoodCount pairs a food with how often it occurred
type FoodCount struct {
	Food  Food `json:"food"`
	Count int  `json:"count"`
}

// ActivityStats summarises a user's interactions over the last Days days.
// Liked and Bookmarked cover the whole log.
type ActivityStats struct {
	Days       int                     `json:"period_days"`
	Total      int                     `json:"total_interactions"`
	ByKind     map[InteractionKind]int `json:"interaction_counts"`
	MostViewed []FoodCount             `json:"most_viewed"`
	Liked      []Food                  `json:"liked_foods"`
	Bookmarked []Food                  `json:"bookmarked_foods"`
	Categories map[Category]int        `json:"category_distribution"`
}

// IsEmpty reports whether there is nothing to show
func (s *ActivityStats) IsEmpty() bool {
	return s.Total == 0 && len(s.Liked) == 0 && len(s.Bookmarked) == 0
}

// SummarizeActivity resolves grouped counts against the catalog. Foods no longer
// in the catalog still count toward ByKind but are otherwise skipped.
func SummarizeActivity(counts []ActivityCount, catalog []Food, days int) ActivityStats {
	byID := make(map[primitive.ObjectID]Food, len(catalog))
	for _, f := range catalog {
		byID[f.ID] = f
	}

	stats := ActivityStats{
		Days:       days,
		ByKind:     map[InteractionKind]int{},
		Categories: map[Category]int{},
	}
	for _, c := range counts {
		if c.Recent > 0 {
			stats.ByKind[c.Kind] += c.Recent
			stats.Total += c.Recent
		}
		if c.FoodID == nil {
			continue
		}
		food, ok := byID[*c.FoodID]
		if !ok {
			continue
		}

		if c.Recent > 0 {
			stats.Categories[food.Category] += c.Recent
			if c.Kind == InteractionView {
				stats.MostViewed = append(stats.MostViewed, FoodCount{Food: food, Count: c.Recent})
			}
		}
		if c.Total > 0 {
			switch c.Kind {
			case InteractionLike:
				stats.Liked = append(stats.Liked, food)
			case InteractionBookmark:
				stats.Bookmarked = append(stats.Bookmarked, food)
			}
		}
	}

	sort.SliceStable(stats.MostViewed, func(i, j int) bool {
		a, b := stats.MostViewed[i], stats.MostViewed[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Food.Name < b.Food.Name
	})
	if len(stats.MostViewed) > maxMostViewed {
		stats.MostViewed = stats.MostViewed[:maxMostViewed]
	}
	byName := func(foods []Food) {
		sort.Slice(foods, func(i, j int) bool { return foods[i].Name < foods[j].Name })
	}
	byName(stats.Liked)
	byName(stats.Bookmarked)
	return stats
}
