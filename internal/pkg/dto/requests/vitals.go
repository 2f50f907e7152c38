package requests

type GetBloodPressureTrend struct {
	SessionData string
}

type ExportBloodPressureReport struct {
	Title       string `json:"title,omitempty" validate:"omitempty,max=120"`
	SessionData string
}

type ListEvaluations struct {
	Page     int
	PageSize int
}
