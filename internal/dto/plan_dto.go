package dto

type PlanResponse struct {
	Id          int     `json:"id"`
	Category    string  `json:"category"`
	Plans       string  `json:"plans"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}
