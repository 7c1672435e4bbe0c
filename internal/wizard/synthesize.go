package wizard

import (
	"fmt"
	"strings"
)

// CompanySeparator joins company display names in compare-mode questions.
const CompanySeparator = ", "

// AllCompaniesToken stands in for the company list when every insurer was
// selected via the select-all toggle.
const AllCompaniesToken = "전체 보험사"

// Question templates for the single-company branch, keyed by info-type id.
// Parameters: company display name, coverage name.
var singleTemplates = map[string]string{
	"coverage-start-date": "%s %s의 보장개시일은 언제인가요?",
	"coverage-limit":      "%s %s의 보장한도는 어떻게 되나요?",
	"enrollment-age":      "%s %s는 몇 세까지 가입할 수 있나요?",
	"exclusions":          "%s %s의 면책사항은 무엇인가요?",
	"renewal-info":        "%s %s는 갱신형인가요? 감액비율은 얼마인가요?",
}

// Question templates for the compare branch. Parameters: joined company
// display names (or the all-companies token), coverage name.
var compareTemplates = map[string]string{
	"coverage-start-date": "%s의 %s 보장개시일을 비교해주세요",
	"coverage-limit":      "%s의 %s 보장한도를 비교해주세요",
	"enrollment-age":      "%s의 %s 가입나이를 비교해주세요",
	"exclusions":          "%s의 %s 면책사항을 비교해주세요",
	"renewal-info":        "%s의 %s 갱신조건을 비교해주세요",
}

// Synthesize builds the natural-language question and template id for a
// complete selection. It is a pure function of (mode, selection): identical
// inputs always yield the identical query.
func Synthesize(mode Mode, sel Selection) Query {
	if mode == ModeCompare {
		subject := AllCompaniesToken
		if !sel.SelectAll {
			names := make([]string, len(sel.Companies))
			for i, c := range sel.Companies {
				names[i] = c.DisplayName
			}
			subject = strings.Join(names, CompanySeparator)
		}
		return Query{
			Text:       fmt.Sprintf(compareTemplates[sel.InfoType.ID], subject, sel.CoverageName),
			TemplateID: "compare-" + sel.InfoType.ID,
		}
	}
	return Query{
		Text:       fmt.Sprintf(singleTemplates[sel.InfoType.ID], sel.Companies[0].DisplayName, sel.Coverage.CoverageName),
		TemplateID: sel.InfoType.ID,
	}
}
