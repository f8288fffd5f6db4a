package models

// ProjectActivity holds per-project engagement counts over a trailing window,
// the inputs to the trending score.
type ProjectActivity struct {
	Donations int `json:"donations"`
	Comments  int `json:"comments"`
	Likes     int `json:"likes"`
}

// TrendingScore weighs recent donations heaviest, then comments, then likes.
func (a ProjectActivity) TrendingScore() int {
	return a.Donations*3 + a.Comments*2 + a.Likes
}
