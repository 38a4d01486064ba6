package dto

// StrengthRequest carries a candidate password for evaluation. The empty
// string is a valid candidate that scores zero, so the field has no
// binding rules; only malformed JSON is rejected.
type StrengthRequest struct {
	Password string `json:"password"`
}

// StrengthResponse represents the result of a strength evaluation. Markup
// is the pre-rendered meter fragment the page splices into its display
// region.
type StrengthResponse struct {
	Score   int    `json:"score"`
	Label   string `json:"label"`
	Percent int    `json:"percent"`
	Markup  string `json:"markup"`
}
