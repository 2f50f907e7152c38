package responses

type Evaluation struct {
	ID             string `json:"id"`
	PatientID      string `json:"patient_id"`
	ReadingCount   int    `json:"reading_count"`
	AlertTriggered bool   `json:"alert_triggered"`
	EvaluatedAt    string `json:"evaluated_at"`
}
