package orderbook

import "testing"

func TestLadderUpsertFindDelete(t *testing.T) {
	ladder := NewLadder()
	lvl := ladder.UpsertLevel(100)
	if lvl == nil || lvl.Price != 100 {
		t.Fatal("UpsertLevel should create the level")
	}
	if found := ladder.FindLevel(100); found != lvl {
		t.Error("FindLevel should return the created level")
	}
	if again := ladder.UpsertLevel(100); again != lvl {
		t.Error("upsert of an existing price must not create a second level")
	}

	if !ladder.DeleteLevel(100) {
		t.Error("DeleteLevel failed")
	}
	if ladder.FindLevel(100) != nil {
		t.Error("expected level 100 to be gone")
	}
	if ladder.DeleteLevel(100) {
		t.Error("expected false when deleting an absent level")
	}
}

func TestLadderKeepsPriceOrder(t *testing.T) {
	ladder := NewLadder()
	for _, p := range []Price{500, 100, 300, 200, 400} {
		ladder.UpsertLevel(p)
	}
	if ladder.Size() != 5 {
		t.Fatalf("expected 5 levels, got %d", ladder.Size())
	}
	if ladder.MinLevel().Price != 100 || ladder.MaxLevel().Price != 500 {
		t.Error("min/max do not reflect the extremes")
	}

	var asc []Price
	ladder.ForEachAscending(func(lvl *PriceLevel) bool {
		asc = append(asc, lvl.Price)
		return true
	})
	var desc []Price
	ladder.ForEachDescending(func(lvl *PriceLevel) bool {
		desc = append(desc, lvl.Price)
		return true
	})
	for i := 1; i < len(asc); i++ {
		if asc[i-1] >= asc[i] {
			t.Fatalf("ascending walk out of order: %v", asc)
		}
	}
	for i := 1; i < len(desc); i++ {
		if desc[i-1] <= desc[i] {
			t.Fatalf("descending walk out of order: %v", desc)
		}
	}
}

func TestLadderWalkEarlyStop(t *testing.T) {
	ladder := NewLadder()
	for _, p := range []Price{1, 2, 3} {
		ladder.UpsertLevel(p)
	}
	visited := 0
	ladder.ForEachDescending(func(lvl *PriceLevel) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Errorf("expected walk to stop after first level, visited %d", visited)
	}
}

func TestLadderEmpty(t *testing.T) {
	ladder := NewLadder()
	if ladder.MinLevel() != nil || ladder.MaxLevel() != nil {
		t.Error("expected nil min/max on an empty ladder")
	}
	if ladder.FindLevel(10) != nil {
		t.Error("FindLevel on empty ladder should be nil")
	}
}

func TestLadderManyInsertsAndDeletes(t *testing.T) {
	ladder := NewLadder()
	for p := Price(0); p < 1000; p++ {
		ladder.UpsertLevel(p)
	}
	if ladder.Size() != 1000 {
		t.Fatalf("expected size 1000, got %d", ladder.Size())
	}
	for p := Price(0); p < 1000; p += 2 {
		if !ladder.DeleteLevel(p) {
			t.Fatalf("delete of %d failed", p)
		}
	}
	if ladder.Size() != 500 {
		t.Fatalf("expected size 500, got %d", ladder.Size())
	}
	if ladder.MinLevel().Price != 1 || ladder.MaxLevel().Price != 999 {
		t.Error("min/max wrong after deleting even prices")
	}
}
