package session

import (
	"context"
	"time"
	"vitaltrend-service/internal/app/contracts"
	"vitaltrend-service/internal/app/models"
	"vitaltrend-service/internal/pkg/constvars"
	"vitaltrend-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
	SessionTTL      time.Duration
}

func NewSessionService(redisRepository contracts.RedisRepository, sessionTTL time.Duration) contracts.SessionService {
	return &sessionService{
		RedisRepository: redisRepository,
		SessionTTL:      sessionTTL,
	}
}

func (svc *sessionService) ParseSessionData(ctx context.Context, sessionData string) (*models.Session, error) {
	session := new(models.Session)
	err := json.Unmarshal([]byte(sessionData), session)
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return session, nil
}

func (svc *sessionService) GetSessionData(ctx context.Context, sessionID string) (string, error) {
	sessionData, err := svc.RedisRepository.Get(ctx, constvars.RedisKeySessionPrefix+sessionID)
	if err != nil {
		return "", err
	}
	if sessionData == "" {
		return "", exceptions.ErrTokenInvalidOrExpired(nil)
	}
	return sessionData, nil
}

func (svc *sessionService) CreateSession(ctx context.Context, session *models.Session) error {
	return svc.RedisRepository.Set(ctx, constvars.RedisKeySessionPrefix+session.SessionID, session, svc.SessionTTL)
}
