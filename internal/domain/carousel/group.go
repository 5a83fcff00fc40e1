package carousel

import (
	"fmt"
	"slices"
)

// Group is a curated thematic tag combination with a minimum result threshold.
type Group struct {
	ID             int64   `json:"id"`
	RequiredTagIDs []int64 `json:"required_tag_ids"`
	MinScore       int     `json:"min_score"`
	Priority       int     `json:"priority"`
	Theme          string  `json:"theme"`
	Active         bool    `json:"active"`
}

// Validate checks that the group can be searched.
func (g Group) Validate() error {
	if g.ID <= 0 {
		return fmt.Errorf("carousel group id must be positive, got %d", g.ID)
	}
	if len(g.RequiredTagIDs) == 0 {
		return fmt.Errorf("carousel group %d: required_tag_ids is empty", g.ID)
	}
	if g.MinScore < 1 {
		return fmt.Errorf("carousel group %d: min_score must be at least 1", g.ID)
	}
	return nil
}

// SortByPriority orders groups by priority ascending, then id ascending.
func SortByPriority(groups []Group) {
	slices.SortStableFunc(groups, func(a, b Group) int {
		if a.Priority != b.Priority {
			return a.Priority - b.Priority
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
}
