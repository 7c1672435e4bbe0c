// Package catalog holds the static query-template registry.
//
// The catalog is immutable data loaded once at process start: pre-written
// example questions grouped by category, plus the closed set of info types
// the query-builder wizard asks about. Accessors return copies so callers
// can never mutate the registry.
package catalog

import "github.com/jason-dio-so/insurance-ontology-v3/internal/models"

// Template is one catalog entry: a pre-written example question with
// optional structured search hints forwarded to the backend.
type Template struct {
	ID           string
	Category     string
	Title        string
	Description  string
	Example      string
	Tags         []string
	SearchParams *models.SearchParams
}

// CategoryMeta describes a template category for the sidebar.
type CategoryMeta struct {
	Name        string
	Icon        string
	Description string
}

// Category names used across the catalog.
const (
	CategoryCompare = "상품 비교"
	CategoryInfo    = "상품/담보 설명"
	CategoryGuide   = "사용법"
)

var templates = []Template{
	{
		ID:          "compare-robot-surgery",
		Category:    CategoryCompare,
		Title:       "다빈치로봇 암수술비 비교",
		Description: "7개 보험사의 다빈치로봇 암수술비를 비교합니다",
		Example:     "삼성화재와 현대해상의 다빈치로봇 암수술비를 비교해주세요",
		Tags:        []string{"비교", "로봇수술", "암수술"},
		SearchParams: &models.SearchParams{
			CoverageKeyword: "다빈치",
			DocTypes:        []string{"proposal"},
		},
	},
	{
		ID:          "compare-brain-hemorrhage",
		Category:    CategoryCompare,
		Title:       "뇌출혈 진단비 비교",
		Description: "7개 보험사의 뇌출혈 진단비를 비교합니다",
		Example:     "삼성화재와 현대해상의 뇌출혈 진단비를 비교해주세요",
		Tags:        []string{"비교", "뇌출혈", "진단비"},
		SearchParams: &models.SearchParams{
			CoverageKeyword: "뇌출혈",
			DocTypes:        []string{"proposal"},
		},
	},
	{
		ID:          "compare-quasi-cancer-surgery",
		Category:    CategoryCompare,
		Title:       "유사암 수술비 비교",
		Description: "4개 보험사의 유사암 수술비를 비교합니다",
		Example:     "롯데손보와 한화손보의 유사암 수술비를 비교해주세요",
		Tags:        []string{"비교", "유사암", "수술비"},
		SearchParams: &models.SearchParams{
			CoverageKeyword: "유사암수술",
			DocTypes:        []string{"proposal"},
		},
	},
	{
		ID:          "compare-carcinoma-in-situ",
		Category:    CategoryCompare,
		Title:       "제자리암 진단비 비교",
		Description: "삼성화재와 한화손보의 제자리암 진단비를 비교합니다 (각 600만원)",
		Example:     "삼성화재와 한화손보의 제자리암 진단비를 비교해주세요",
		Tags:        []string{"비교", "제자리암", "진단비", "유사암"},
		SearchParams: &models.SearchParams{
			CoverageKeyword: "제자리암",
			DocTypes:        []string{"proposal"},
		},
	},
	{
		ID:          "compare-borderline-tumor",
		Category:    CategoryCompare,
		Title:       "경계성종양 진단비 비교",
		Description: "삼성화재와 한화손보의 경계성종양 진단비를 비교합니다 (각 600만원)",
		Example:     "삼성화재와 한화손보의 경계성종양 진단비를 비교해주세요",
		Tags:        []string{"비교", "경계성종양", "진단비", "유사암"},
		SearchParams: &models.SearchParams{
			CoverageKeyword: "경계성종양",
			DocTypes:        []string{"proposal"},
		},
	},
	{
		ID:          "coverage-start-date",
		Category:    CategoryInfo,
		Title:       "보장개시일",
		Description: "특정 담보의 보장개시일을 확인합니다",
		Example:     "삼성화재 암진단비의 보장개시일은 언제인가요?",
		Tags:        []string{"보장개시일", "면책기간", "약관"},
	},
	{
		ID:          "coverage-limit",
		Category:    CategoryInfo,
		Title:       "보장한도",
		Description: "담보의 보장한도와 지급 제한사항을 확인합니다",
		Example:     "현대해상 암입원비의 보장한도는 어떻게 되나요?",
		Tags:        []string{"보장한도", "지급제한", "약관"},
	},
	{
		ID:          "enrollment-age",
		Category:    CategoryInfo,
		Title:       "가입나이",
		Description: "상품 또는 담보의 가입 가능 나이를 확인합니다",
		Example:     "삼성화재 다빈치로봇 암수술비는 몇 세까지 가입할 수 있나요?",
		Tags:        []string{"가입나이", "가입조건", "연령제한"},
	},
	{
		ID:          "exclusions",
		Category:    CategoryInfo,
		Title:       "면책사항",
		Description: "보장이 제외되는 경우와 면책기간을 확인합니다",
		Example:     "한화손보 암진단비의 면책사항은 무엇인가요?",
		Tags:        []string{"면책", "보장제외", "약관"},
	},
	{
		ID:          "renewal-info",
		Category:    CategoryInfo,
		Title:       "갱신기간 및 비율",
		Description: "갱신형 담보의 갱신주기와 감액비율을 확인합니다",
		Example:     "롯데손보 다빈치로봇 암수술비는 갱신형인가요? 감액비율은 얼마인가요?",
		Tags:        []string{"갱신", "감액", "갱신형"},
	},
	{
		ID:          "usage-guide",
		Category:    CategoryGuide,
		Title:       "💡 시스템 사용 방법",
		Description: "상품 비교 기능 사용 방법",
		Example:     "이 시스템은 2개 이상의 보험사 상품을 비교하거나, 특정 회사의 상품/담보 정보를 조회할 수 있습니다.",
		Tags:        []string{"가이드", "사용법"},
	},
}

var categoryMetadata = []CategoryMeta{
	{
		Name:        CategoryCompare,
		Icon:        "💡",
		Description: "여러 보험사의 담보를 비교하여 최적의 선택을 도와드립니다",
	},
	{
		Name:        CategoryInfo,
		Icon:        "📊",
		Description: "특정 담보의 보장금액, 조건, 면책사항 등을 상세하게 확인할 수 있습니다",
	},
	{
		Name:        CategoryGuide,
		Icon:        "❓",
		Description: "보험 온톨로지 AI 시스템 사용 방법을 안내합니다",
	},
}

// Templates returns a copy of the full template catalog.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// TemplatesByCategory returns the catalog entries belonging to one category,
// in catalog order.
func TemplatesByCategory(category string) []Template {
	var out []Template
	for _, t := range templates {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// TemplateByID looks up a single catalog entry.
func TemplateByID(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Categories returns the distinct category names in catalog order.
func Categories() []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range templates {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}

// CategoryMetadata returns the sidebar metadata for every category.
func CategoryMetadata() []CategoryMeta {
	out := make([]CategoryMeta, len(categoryMetadata))
	copy(out, categoryMetadata)
	return out
}
