package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EvaluationRecord is the audit trail document written after every
// dashboard evaluation. It never stores clinical values, only counts
// and the outcome flag.
type EvaluationRecord struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	PatientID      string             `bson:"patient_id"`
	ReadingCount   int                `bson:"reading_count"`
	AlertTriggered bool               `bson:"alert_triggered"`
	EvaluatedAt    time.Time          `bson:"evaluated_at"`
}
