package asana

import "testing"

func TestCatalog_Get(t *testing.T) {
	c := NewCatalog()

	def, ok := c.Get("warrior_2")
	if !ok {
		t.Fatal("Get(warrior_2) not found")
	}
	if def.ID != "warrior_2" {
		t.Errorf("ID = %q, want warrior_2", def.ID)
	}
}

func TestCatalog_GetCaseInsensitive(t *testing.T) {
	c := NewCatalog()

	def, ok := c.Get("Warrior_2")
	if !ok {
		t.Fatal("Get(Warrior_2) not found")
	}
	if def.ID != "warrior_2" {
		t.Errorf("ID = %q, want warrior_2", def.ID)
	}
}

func TestCatalog_SanskritAliases(t *testing.T) {
	c := NewCatalog()

	aliases := map[string]string{
		"tadasana":         "mountain",
		"virabhadrasana_2": "warrior_2",
		"warrior_ii":       "warrior_2",
		"vrksasana_right":  "tree_right",
		"vrksasana_left":   "tree_left",
	}

	for alias, primary := range aliases {
		byAlias, ok := c.Get(alias)
		if !ok {
			t.Errorf("Get(%q) not found", alias)
			continue
		}
		byPrimary, _ := c.Get(primary)
		if byAlias != byPrimary {
			t.Errorf("Get(%q) and Get(%q) return different definitions", alias, primary)
		}
	}
}

func TestCatalog_GetUnknown(t *testing.T) {
	c := NewCatalog()

	if _, ok := c.Get("downward_dog"); ok {
		t.Error("Get(downward_dog) = ok, want not found")
	}
}

func TestCatalog_ListDeduplicatesAliases(t *testing.T) {
	c := NewCatalog()

	infos := c.List()

	wantIDs := []string{"mountain", "tree_left", "tree_right", "warrior_2"}
	if len(infos) != len(wantIDs) {
		t.Fatalf("len(List()) = %d, want %d: %+v", len(infos), len(wantIDs), infos)
	}
	for i, want := range wantIDs {
		if infos[i].ID != want {
			t.Errorf("List()[%d].ID = %q, want %q", i, infos[i].ID, want)
		}
	}
}

func TestTree_SideSelectsStandingLeg(t *testing.T) {
	right := Tree(SideRight)
	left := Tree(SideLeft)

	if right.ID != "tree_right" || left.ID != "tree_left" {
		t.Fatalf("IDs = %q/%q, want tree_right/tree_left", right.ID, left.ID)
	}

	// The standing knee carries the critical constraint.
	if got := right.Constraints["right_knee"].Priority; got != PriorityCritical {
		t.Errorf("tree_right right_knee priority = %v, want %v", got, PriorityCritical)
	}
	if got := left.Constraints["left_knee"].Priority; got != PriorityCritical {
		t.Errorf("tree_left left_knee priority = %v, want %v", got, PriorityCritical)
	}
}
