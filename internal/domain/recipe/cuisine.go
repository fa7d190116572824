package recipe

// CuisineType is a closed enum of supported cuisines. Unlike the teacher's
// open-ended string enums, this one carries a display name per spec.md's
// /cuisines endpoint contract.
type CuisineType string

const (
	CuisineChinese        CuisineType = "CHINESE"
	CuisineJapanese       CuisineType = "JAPANESE"
	CuisineItalian        CuisineType = "ITALIAN"
	CuisineMexican        CuisineType = "MEXICAN"
	CuisineIndian         CuisineType = "INDIAN"
	CuisineThai           CuisineType = "THAI"
	CuisineKorean         CuisineType = "KOREAN"
	CuisineFrench         CuisineType = "FRENCH"
	CuisineAmerican       CuisineType = "AMERICAN"
	CuisineMediterranean  CuisineType = "MEDITERRANEAN"
	CuisineMiddleEastern  CuisineType = "MIDDLE_EASTERN"
	CuisineOther          CuisineType = "OTHER"
)

var displayNames = map[CuisineType]string{
	CuisineChinese:       "Chinese",
	CuisineJapanese:      "Japanese",
	CuisineItalian:       "Italian",
	CuisineMexican:       "Mexican",
	CuisineIndian:        "Indian",
	CuisineThai:          "Thai",
	CuisineKorean:        "Korean",
	CuisineFrench:        "French",
	CuisineAmerican:      "American",
	CuisineMediterranean: "Mediterranean",
	CuisineMiddleEastern: "Middle Eastern",
	CuisineOther:         "Other",
}

// AllCuisines lists every cuisine in display order, for the /cuisines endpoint.
func AllCuisines() []CuisineType {
	return []CuisineType{
		CuisineChinese, CuisineJapanese, CuisineItalian, CuisineMexican,
		CuisineIndian, CuisineThai, CuisineKorean, CuisineFrench,
		CuisineAmerican, CuisineMediterranean, CuisineMiddleEastern, CuisineOther,
	}
}

// DisplayName returns a human-readable label, falling back to the raw value
// for an unrecognized (but still well-typed) cuisine.
func (c CuisineType) DisplayName() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return string(c)
}

// ParseCuisine normalizes a caller-supplied string to a known CuisineType,
// defaulting to CuisineOther rather than failing — cuisine is descriptive,
// not a validation gate.
func ParseCuisine(s string) CuisineType {
	c := CuisineType(s)
	if _, ok := displayNames[c]; ok {
		return c
	}
	return CuisineOther
}
