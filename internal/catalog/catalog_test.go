package catalog

import "testing"

func TestTemplatesReturnsCopy(t *testing.T) {
	first := Templates()
	if len(first) == 0 {
		t.Fatal("catalog is empty")
	}
	first[0].Title = "mutated"
	if got := Templates()[0].Title; got == "mutated" {
		t.Error("mutating a returned slice leaked into the registry")
	}
}

func TestTemplatesByCategory(t *testing.T) {
	compare := TemplatesByCategory(CategoryCompare)
	if len(compare) != 5 {
		t.Errorf("compare templates = %d, want 5", len(compare))
	}
	for _, tmpl := range compare {
		if tmpl.Category != CategoryCompare {
			t.Errorf("template %s has category %q", tmpl.ID, tmpl.Category)
		}
	}
	info := TemplatesByCategory(CategoryInfo)
	if len(info) != 5 {
		t.Errorf("info templates = %d, want 5", len(info))
	}
	guide := TemplatesByCategory(CategoryGuide)
	if len(guide) != 1 {
		t.Errorf("guide templates = %d, want 1", len(guide))
	}
	if got := TemplatesByCategory("없는 카테고리"); len(got) != 0 {
		t.Errorf("unknown category returned %d templates", len(got))
	}
}

func TestTemplateByID(t *testing.T) {
	tmpl, ok := TemplateByID("compare-carcinoma-in-situ")
	if !ok {
		t.Fatal("compare-carcinoma-in-situ missing")
	}
	if tmpl.SearchParams == nil || tmpl.SearchParams.CoverageKeyword != "제자리암" {
		t.Errorf("search params = %+v", tmpl.SearchParams)
	}
	if _, ok := TemplateByID("nope"); ok {
		t.Error("unknown id reported as found")
	}
}

func TestCategoriesInCatalogOrder(t *testing.T) {
	got := Categories()
	want := []string{CategoryCompare, CategoryInfo, CategoryGuide}
	if len(got) != len(want) {
		t.Fatalf("categories = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("categories[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestInfoTypeSetIsClosed(t *testing.T) {
	ids := []string{"coverage-start-date", "coverage-limit", "enrollment-age", "exclusions", "renewal-info"}
	all := InfoTypes()
	if len(all) != len(ids) {
		t.Fatalf("info types = %d, want %d", len(all), len(ids))
	}
	for i, id := range ids {
		if all[i].ID != id {
			t.Errorf("info type %d = %q, want %q", i, all[i].ID, id)
		}
		it, ok := InfoTypeByID(id)
		if !ok || it.Label == "" {
			t.Errorf("InfoTypeByID(%q) = %+v, %v", id, it, ok)
		}
	}
	if _, ok := InfoTypeByID("nope"); ok {
		t.Error("unknown info-type id reported as found")
	}
}

// Every info-type id doubles as a catalog template id so a picked template
// can preselect the wizard's final step.
func TestInfoTypeIDsMatchInfoTemplates(t *testing.T) {
	for _, tmpl := range TemplatesByCategory(CategoryInfo) {
		if _, ok := InfoTypeByID(tmpl.ID); !ok {
			t.Errorf("info template %q has no matching info type", tmpl.ID)
		}
	}
}
