package fallback

import (
	"encoding/json"
	"testing"

	"github.com/kailas-cloud/tagdex/internal/domain/tag"
)

func TestLevels_MonotonicExclusions(t *testing.T) {
	levels := Levels()
	for i := range levels {
		for j := i + 1; j < len(levels); j++ {
			for _, c := range levels[i].Excluded() {
				if !levels[j].Excludes(c) {
					t.Errorf("level %d excludes %v but level %d does not", i, c, j)
				}
			}
		}
	}
}

func TestLevels_Shape(t *testing.T) {
	levels := Levels()
	if len(levels) != 4 {
		t.Fatalf("expected 4 levels, got %d", len(levels))
	}
	for i, l := range levels {
		if l.Index != i {
			t.Errorf("level at %d has index %d", i, l.Index)
		}
	}
	if len(levels[0].Excluded()) != 0 {
		t.Error("level 0 must not exclude anything")
	}
	if !levels[1].Excludes(tag.Sector) || levels[1].Excludes(tag.City) {
		t.Error("level 1 must exclude only sector")
	}
	if !levels[2].Excludes(tag.City) {
		t.Error("level 2 must exclude city")
	}
	last := levels[3]
	for _, c := range tag.Categories() {
		keep := c == tag.Operation || c == tag.PropertyType || c == tag.Country
		if last.Excludes(c) == keep {
			t.Errorf("level 3: Excludes(%v) = %v", c, last.Excludes(c))
		}
	}
}

func TestLevel_Apply(t *testing.T) {
	tags := []tag.Tag{
		tag.Reconstruct(1, tag.Operation, "sale", nil, 1),
		tag.Reconstruct(2, tag.PropertyType, "apartment", nil, 1),
		tag.Reconstruct(3, tag.City, "santiago", nil, 1),
		tag.Reconstruct(4, tag.Sector, "centro", nil, 1),
		tag.Reconstruct(5, tag.Feature, "pool", nil, 1),
	}
	want := [][]int64{
		{1, 2, 3, 4, 5},
		{1, 2, 3, 5},
		{1, 2, 5},
		{1, 2},
	}
	for i, l := range Levels() {
		got := tag.IDs(l.Apply(tags))
		if len(got) != len(want[i]) {
			t.Fatalf("level %d: got %v, want %v", i, got, want[i])
		}
		for k := range got {
			if got[k] != want[i][k] {
				t.Fatalf("level %d: got %v, want %v", i, got, want[i])
			}
		}
	}
}

func TestAchieved_Name(t *testing.T) {
	if Achieved(NoResults).Name() != "no_results" {
		t.Error("NoResults name")
	}
	if Achieved(1).Name() != "without_sector" {
		t.Errorf("got %q", Achieved(1).Name())
	}
	if Achieved(NoResults).Found() {
		t.Error("NoResults must not be found")
	}

	b, err := json.Marshal(Achieved(2))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"index":2,"name":"without_city"}` {
		t.Errorf("json = %s", b)
	}
}
