package store

import (
	"testing"
)

func TestQueryReviews(t *testing.T) {
	s := testStore(t)
	seedAsset(t, s)
	if _, err := s.StoreReview("uc", "s", "high compliance with auth guidance", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.StoreReview("uc", "a", "medium compliance, tangled layering", ""); err != nil {
		t.Fatal(err)
	}

	t.Run("all reviews", func(t *testing.T) {
		reviews, err := s.QueryReviews("uc", nil)
		if err != nil {
			t.Fatalf("QueryReviews: %v", err)
		}
		if len(reviews) != 2 {
			t.Fatalf("reviews = %d, want 2", len(reviews))
		}
	})

	t.Run("filtered", func(t *testing.T) {
		reviews, err := s.QueryReviews("uc", []string{"s"})
		if err != nil {
			t.Fatal(err)
		}
		if len(reviews) != 1 {
			t.Fatalf("reviews = %d, want 1", len(reviews))
		}
		if _, ok := reviews["s"]; !ok {
			t.Error("filtered review missing")
		}
	})

	t.Run("filter omits unreviewed principles silently", func(t *testing.T) {
		reviews, err := s.QueryReviews("uc", []string{"s", "p", "nonexistent"})
		if err != nil {
			t.Fatalf("QueryReviews with loose filter = %v, want nil error", err)
		}
		if len(reviews) != 1 {
			t.Fatalf("reviews = %d, want 1", len(reviews))
		}
	})

	t.Run("unknown asset", func(t *testing.T) {
		_, err := s.QueryReviews("ghost", nil)
		if !IsCode(err, ErrCodeUnknownAsset) {
			t.Fatalf("QueryReviews(ghost) = %v, want UNKNOWN_ASSET", err)
		}
	})
}

func TestListsAreSorted(t *testing.T) {
	s := testStore(t)
	for _, e := range []struct{ short, desc string }{
		{"z", "Zone"}, {"m", "Member"}, {"b", "Billing"},
	} {
		if _, err := s.AddEntity(e.short, e.desc); err != nil {
			t.Fatal(err)
		}
	}

	entities := s.ListEntities()
	if len(entities) != 3 {
		t.Fatalf("entities = %d", len(entities))
	}
	for i, want := range []string{"b", "m", "z"} {
		if entities[i].ShortName != want {
			t.Errorf("entities[%d] = %q, want %q", i, entities[i].ShortName, want)
		}
	}

	principles := s.ListPrinciples()
	for i, want := range []string{"a", "p", "s", "u"} {
		if principles[i].ShortName != want {
			t.Errorf("principles[%d] = %q, want %q", i, principles[i].ShortName, want)
		}
	}
}

func TestGetters(t *testing.T) {
	s := testStore(t)
	seedAsset(t, s)

	p, err := s.GetPrinciple("a")
	if err != nil || p.LongName != "Architecture" {
		t.Errorf("GetPrinciple(a) = %+v, %v", p, err)
	}
	if _, err := s.GetPrinciple("z"); !IsCode(err, ErrCodeUnknownPrinciple) {
		t.Errorf("GetPrinciple(z) = %v", err)
	}

	ref, err := s.GetAssetReference("uc")
	if err != nil || ref.Path != "src/user_controller.rb" {
		t.Errorf("GetAssetReference(uc) = %+v, %v", ref, err)
	}
	if _, err := s.GetAssetReference("ghost"); !IsCode(err, ErrCodeUnknownAsset) {
		t.Errorf("GetAssetReference(ghost) = %v", err)
	}
}
