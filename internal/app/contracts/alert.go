package contracts

import "context"

type AlertPublisher interface {
	PublishAlert(ctx context.Context, message *AlertQueueMessage) error
}

type AlertQueueMessage struct {
	ID        string   `json:"id"`
	PatientID string   `json:"patient_id"`
	Systolic  *float64 `json:"systolic"`
	Diastolic *float64 `json:"diastolic"`
	Timestamp string   `json:"timestamp"`
}
