package structs

type ActivityLogJsonModel struct {
	Type      string         `json:"type"`
	UserID    string         `json:"user_id,omitempty"`
	MealID    string         `json:"meal_id,omitempty"`
	Result    bool           `json:"result"`
	Statistic StatisticModel `json:"statistic"`
	Message   string         `json:"message"`
	Messages  []ErrorModel   `json:"messages"`
}

type StatisticModel struct {
	TotalRows int `json:"total_rows"`
	FailRows  int `json:"fail_rows"`
	OKRows    int `json:"ok_rows"`
}

type ErrorModel struct {
	UserID       string `json:"user_id,omitempty"`
	MealID       string `json:"meal_id,omitempty"`
	ErrorMessage string `json:"error_message"`
}
