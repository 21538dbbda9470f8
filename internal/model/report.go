package model

// Report is computed on demand and never persisted. Donations counts the
// user's completed donations; Collections counts the donations the user
// currently has requested.
type Report struct {
	Donations   int `json:"donations"`
	Collections int `json:"collections"`
}
