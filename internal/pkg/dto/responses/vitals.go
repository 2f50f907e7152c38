package responses

// Systolic/Diastolic are pointers on purpose: a missing component is
// rendered as JSON null so the chart shows a gap instead of a zero.
type BloodPressureReading struct {
	Timestamp string   `json:"timestamp"`
	Systolic  *float64 `json:"systolic"`
	Diastolic *float64 `json:"diastolic"`
	SourceID  string   `json:"source_id"`
}

type BloodPressureTrend struct {
	PatientID      string                 `json:"patient_id"`
	Readings       []BloodPressureReading `json:"readings"`
	AlertTriggered bool                   `json:"alert_triggered"`
}

type BloodPressureReport struct {
	ObjectName string `json:"object_name"`
	Bucket     string `json:"bucket"`
}
