package wizard

import (
	"testing"

	"github.com/jason-dio-so/insurance-ontology-v3/internal/catalog"
	"github.com/jason-dio-so/insurance-ontology-v3/internal/models"
)

func infoType(t *testing.T, id string) *catalog.InfoType {
	t.Helper()
	it, ok := catalog.InfoTypeByID(id)
	if !ok {
		t.Fatalf("info type %q missing from catalog", id)
	}
	return &it
}

func TestSynthesizeSingleTemplates(t *testing.T) {
	sel := Selection{
		Companies: []models.Company{{Name: "samsung", DisplayName: "삼성화재"}},
		Product:   "암보험",
		Coverage:  &models.Coverage{CoverageName: "암진단비"},
	}

	cases := []struct {
		infoType string
		want     string
	}{
		{"coverage-start-date", "삼성화재 암진단비의 보장개시일은 언제인가요?"},
		{"coverage-limit", "삼성화재 암진단비의 보장한도는 어떻게 되나요?"},
		{"enrollment-age", "삼성화재 암진단비는 몇 세까지 가입할 수 있나요?"},
		{"exclusions", "삼성화재 암진단비의 면책사항은 무엇인가요?"},
		{"renewal-info", "삼성화재 암진단비는 갱신형인가요? 감액비율은 얼마인가요?"},
	}
	for _, tc := range cases {
		sel.InfoType = infoType(t, tc.infoType)
		q := Synthesize(ModeSingle, sel)
		if q.Text != tc.want {
			t.Errorf("%s: text = %q, want %q", tc.infoType, q.Text, tc.want)
		}
		if q.TemplateID != tc.infoType {
			t.Errorf("%s: template id = %q", tc.infoType, q.TemplateID)
		}
	}
}

func TestSynthesizeCompareJoinsDisplayNames(t *testing.T) {
	sel := Selection{
		Companies: []models.Company{
			{Name: "samsung", DisplayName: "삼성화재"},
			{Name: "hanwha", DisplayName: "한화손보"},
		},
		CoverageName: "암진단비",
		InfoType:     infoType(t, "exclusions"),
	}
	q := Synthesize(ModeCompare, sel)
	want := "삼성화재, 한화손보의 암진단비 면책사항을 비교해주세요"
	if q.Text != want {
		t.Errorf("text = %q, want %q", q.Text, want)
	}
	if q.TemplateID != "compare-exclusions" {
		t.Errorf("template id = %q, want compare-exclusions", q.TemplateID)
	}
}

func TestSynthesizeCompareAllCompanies(t *testing.T) {
	sel := Selection{
		Companies: []models.Company{
			{Name: "samsung", DisplayName: "삼성화재"},
			{Name: "hyundai", DisplayName: "현대해상"},
			{Name: "hanwha", DisplayName: "한화손보"},
		},
		SelectAll:    true,
		CoverageName: "암진단비",
		InfoType:     infoType(t, "renewal-info"),
	}
	q := Synthesize(ModeCompare, sel)
	want := AllCompaniesToken + "의 암진단비 갱신조건을 비교해주세요"
	if q.Text != want {
		t.Errorf("text = %q, want %q", q.Text, want)
	}
}

func TestSynthesizeIsPure(t *testing.T) {
	sel := Selection{
		Companies:    []models.Company{{Name: "samsung", DisplayName: "삼성화재"}, {Name: "hanwha", DisplayName: "한화손보"}},
		CoverageName: "뇌출혈진단비",
		InfoType:     infoType(t, "coverage-limit"),
	}
	first := Synthesize(ModeCompare, sel)
	second := Synthesize(ModeCompare, sel)
	if first != second {
		t.Errorf("identical inputs produced %+v and %+v", first, second)
	}
}
