package tools

import "testing"

func TestRegistryRegisterAndLookup(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil)
	r.Register(&ToolConfig{ID: "a", Name: "A", Category: CategoryContent})
	r.Register(&ToolConfig{ID: "b", Name: "B", Category: CategoryAnalysis})

	if got := r.Count(); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
	if !r.Exists("a") || r.Exists("missing") {
		t.Error("Exists() gave wrong answers")
	}
	tool, ok := r.GetByID("b")
	if !ok || tool.Name != "B" {
		t.Errorf("GetByID(b) = %+v, %v", tool, ok)
	}
	if _, ok := r.GetByID("missing"); ok {
		t.Error("GetByID(missing) = true, want false")
	}
}

func TestRegistryOverwriteKeepsOrder(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil)
	r.Register(&ToolConfig{ID: "a", Name: "first"})
	r.Register(&ToolConfig{ID: "b", Name: "second"})
	r.Register(&ToolConfig{ID: "a", Name: "replacement"})

	if got := r.Count(); got != 2 {
		t.Fatalf("Count() after overwrite = %d, want 2", got)
	}
	tool, _ := r.GetByID("a")
	if tool.Name != "replacement" {
		t.Errorf("last registration must win, got %q", tool.Name)
	}

	all := r.GetAll()
	if len(all) != 2 || all[0].ID != "a" || all[1].ID != "b" {
		t.Errorf("GetAll() order broken: %v", ids(all))
	}
}

func TestRegistryGetByCategory(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil)
	r.Register(&ToolConfig{ID: "a", Category: CategoryContent})
	r.Register(&ToolConfig{ID: "b", Category: CategoryAnalysis})
	r.Register(&ToolConfig{ID: "c", Category: CategoryContent})

	got := r.GetByCategory(CategoryContent)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("GetByCategory() = %v", ids(got))
	}
}

func ids(ts []*ToolConfig) []string {
	out := make([]string, len(ts))
	for i, tc := range ts {
		out[i] = tc.ID
	}
	return out
}
