package domain

// Currency identifies the asset an account holds
type Currency struct {
	ID     string `json:"id"`
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
	Units  int32  `json:"units"`
}
