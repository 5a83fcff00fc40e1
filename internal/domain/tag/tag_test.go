package tag

import (
	"strings"
	"testing"
)

func mustTag(t *testing.T, id int64, c Category, slug string) Tag {
	t.Helper()
	tg, err := New(id, c, slug, nil, 1)
	if err != nil {
		t.Fatalf("New(%d): %v", id, err)
	}
	return tg
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(c.String())
		if err != nil {
			t.Fatalf("ParseCategory(%q): %v", c.String(), err)
		}
		if got != c {
			t.Errorf("ParseCategory(%q) = %v, want %v", c.String(), got, c)
		}
	}

	if _, err := ParseCategory("galaxy"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestCategory_ZeroIsInvalid(t *testing.T) {
	var c Category
	if c.IsValid() {
		t.Fatal("zero category must be invalid")
	}
	if _, err := c.MarshalText(); err == nil {
		t.Fatal("expected marshal error for zero category")
	}
}

func TestCategory_UnmarshalText(t *testing.T) {
	var c Category
	if err := c.UnmarshalText([]byte("city")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != City {
		t.Errorf("got %v, want city", c)
	}
	if err := c.UnmarshalText([]byte("nope")); err == nil {
		t.Fatal("expected error")
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		id     int64
		c      Category
		slug   string
		weight float64
		errSub string
	}{
		{"zero id", 0, City, "santiago", 1, "positive"},
		{"bad category", 1, Category(99), "santiago", 1, "category"},
		{"empty slug", 1, City, "", 1, "slug"},
		{"negative weight", 1, City, "santiago", -1, "weight"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.id, tt.c, tt.slug, nil, tt.weight)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errSub) {
				t.Errorf("error %q should mention %q", err, tt.errSub)
			}
		})
	}
}

func TestSlugFor_FallsBackToDefault(t *testing.T) {
	tg := Reconstruct(7, Operation, "sale", map[string]string{"es": "venta", "fr": ""}, 1)

	if got := tg.SlugFor("es"); got != "venta" {
		t.Errorf("SlugFor(es) = %q, want venta", got)
	}
	if got := tg.SlugFor("en"); got != "sale" {
		t.Errorf("SlugFor(en) = %q, want sale", got)
	}
	if got := tg.SlugFor("fr"); got != "sale" {
		t.Errorf("SlugFor(fr) with empty slug = %q, want sale", got)
	}
	if got := tg.Locales(); len(got) != 2 || got[0] != "es" || got[1] != "fr" {
		t.Errorf("Locales() = %v", got)
	}
}

func TestReconstruct_CopiesLocalized(t *testing.T) {
	loc := map[string]string{"es": "venta"}
	tg := Reconstruct(1, Operation, "sale", loc, 1)
	loc["es"] = "changed"
	if tg.SlugFor("es") != "venta" {
		t.Fatal("tag must not share the caller's map")
	}
}

func TestDedup_KeepsFirst(t *testing.T) {
	a := mustTag(t, 1, Operation, "sale")
	b := mustTag(t, 2, City, "santiago")
	got := Dedup([]Tag{a, b, a, b})
	if len(got) != 2 || got[0].ID() != 1 || got[1].ID() != 2 {
		t.Fatalf("Dedup = %v", IDs(got))
	}
}

func TestSortByHierarchy(t *testing.T) {
	feature := mustTag(t, 5, Feature, "pool")
	sector := mustTag(t, 4, Sector, "centro")
	city := mustTag(t, 3, City, "santiago")
	cat := mustTag(t, 2, PropertyType, "apartment")
	op := mustTag(t, 1, Operation, "sale")
	custom := mustTag(t, 6, CustomList, "best")

	in := []Tag{feature, sector, city, custom, cat, op}
	got := IDs(SortByHierarchy(in))
	want := []int64{1, 2, 3, 4, 5, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SortByHierarchy = %v, want %v", got, want)
		}
	}
	if in[0].ID() != 5 {
		t.Fatal("SortByHierarchy must not reorder its input")
	}
}

func TestHasCategory(t *testing.T) {
	tags := []Tag{mustTag(t, 1, Operation, "sale")}
	if !HasCategory(tags, Operation) {
		t.Error("expected operation")
	}
	if HasCategory(tags, Country) {
		t.Error("unexpected country")
	}
	if HasCategory(nil, Country) {
		t.Error("nil slice has no categories")
	}
}
