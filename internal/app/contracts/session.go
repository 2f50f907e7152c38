package contracts

import (
	"context"
	"vitaltrend-service/internal/app/models"
)

type SessionService interface {
	ParseSessionData(ctx context.Context, sessionData string) (*models.Session, error)
	GetSessionData(ctx context.Context, sessionID string) (string, error)
	CreateSession(ctx context.Context, session *models.Session) error
}
