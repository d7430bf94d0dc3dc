package summary

import "time"

type CategorySpendResponse struct {
	CategoryID int64   `json:"category_id"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Icon       string  `json:"icon"`
	Spent      string  `json:"spent"`
	Percent    float64 `json:"percent"`
}

type SummaryResponse struct {
	From       string                  `json:"from"`
	To         string                  `json:"to"`
	Balance    string                  `json:"balance"`
	Income     string                  `json:"income"`
	Expense    string                  `json:"expense"`
	TotalSpent string                  `json:"total_spent"`
	Categories []CategorySpendResponse `json:"categories"`
}

func (s *Summary) ToResponse() SummaryResponse {
	resp := SummaryResponse{
		From:       s.Period.From.Format(time.DateOnly),
		To:         s.Period.To.Format(time.DateOnly),
		Balance:    s.Balance.StringFixed(2),
		Income:     s.Income.StringFixed(2),
		Expense:    s.Expense.StringFixed(2),
		TotalSpent: s.TotalSpent.StringFixed(2),
		Categories: make([]CategorySpendResponse, 0, len(s.Breakdown)),
	}
	for _, c := range s.Breakdown {
		resp.Categories = append(resp.Categories, CategorySpendResponse{
			CategoryID: c.CategoryID,
			Name:       c.Name,
			Color:      c.Color,
			Icon:       c.Icon,
			Spent:      c.Spent.StringFixed(2),
			Percent:    c.Percent,
		})
	}
	return resp
}
