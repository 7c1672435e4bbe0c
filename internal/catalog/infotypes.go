package catalog

// InfoType is one category of question the wizard can ask about a resolved
// coverage. The set is closed; IDs double as catalog template IDs.
type InfoType struct {
	ID          string
	Label       string
	Description string
}

var infoTypes = []InfoType{
	{
		ID:          "coverage-start-date",
		Label:       "보장개시일",
		Description: "보장이 시작되는 시점과 면책기간",
	},
	{
		ID:          "coverage-limit",
		Label:       "보장한도",
		Description: "보장금액의 한도와 지급 제한사항",
	},
	{
		ID:          "enrollment-age",
		Label:       "가입나이",
		Description: "가입 가능한 나이 범위",
	},
	{
		ID:          "exclusions",
		Label:       "면책사항",
		Description: "보장이 제외되는 경우",
	},
	{
		ID:          "renewal-info",
		Label:       "갱신기간 및 비율",
		Description: "갱신 주기와 감액 비율",
	},
}

// InfoTypes returns a copy of the closed info-type set, in display order.
func InfoTypes() []InfoType {
	out := make([]InfoType, len(infoTypes))
	copy(out, infoTypes)
	return out
}

// InfoTypeByID looks up an info type by its identifier.
func InfoTypeByID(id string) (InfoType, bool) {
	for _, it := range infoTypes {
		if it.ID == id {
			return it, true
		}
	}
	return InfoType{}, false
}
