package contracts

import (
	"context"
	"vitaltrend-service/internal/pkg/dto/requests"
	"vitaltrend-service/internal/pkg/dto/responses"
)

type SmartUsecase interface {
	BuildAuthorizeURL(ctx context.Context, request *requests.SmartLaunch) (*responses.SmartAuthorizeURL, error)
	ExchangeCode(ctx context.Context, request *requests.SmartCallback) (*responses.SmartSession, error)
}
