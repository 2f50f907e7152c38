package smart

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
	"vitaltrend-service/internal/app/config"
	"vitaltrend-service/internal/app/models"
	"vitaltrend-service/internal/pkg/constvars"
	"vitaltrend-service/internal/pkg/dto/requests"
	"vitaltrend-service/internal/pkg/exceptions"
	"vitaltrend-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockSessionService struct {
	mock.Mock
}

func (m *mockSessionService) ParseSessionData(ctx context.Context, sessionData string) (*models.Session, error) {
	args := m.Called(ctx, sessionData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *mockSessionService) GetSessionData(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *mockSessionService) CreateSession(ctx context.Context, session *models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

type mockRedisRepository struct {
	mock.Mock
}

func (m *mockRedisRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	args := m.Called(ctx, key, value, exp)
	return args.Error(0)
}

func (m *mockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func testInternalConfig(issuer string) *config.InternalConfig {
	return &config.InternalConfig{
		FHIR: config.FHIR{BaseUrl: issuer},
		Smart: config.Smart{
			ClientID:        "vitaltrend-dashboard",
			RedirectURI:     "http://localhost:8080/api/v1/smart/callback",
			Scope:           "launch patient/Patient.read patient/Observation.read",
			StateExpMinutes: 5,
		},
		JWT: config.JWT{Secret: "test-secret", ExpTimeInHour: 1},
	}
}

func TestBuildAuthorizeURL(t *testing.T) {
	t.Run("Builds PKCE authorize URL and parks state in redis", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, constvars.SmartConfigurationPath, r.URL.Path)
			w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
			json.NewEncoder(w).Encode(map[string]string{
				"authorization_endpoint": "https://auth.example.org/authorize",
				"token_endpoint":         "https://auth.example.org/token",
			})
		}))
		defer server.Close()

		redisRepository := new(mockRedisRepository)
		var storedState *models.SmartState
		redisRepository.On("Set", mock.Anything, mock.Anything, mock.Anything, 5*time.Minute).
			Run(func(args mock.Arguments) {
				storedState = args.Get(2).(*models.SmartState)
			}).Return(nil)

		usecase := &smartUsecase{
			RedisRepository: redisRepository,
			InternalConfig:  testInternalConfig(server.URL),
			Log:             zap.NewNop(),
		}

		response, err := usecase.BuildAuthorizeURL(context.Background(), &requests.SmartLaunch{
			Issuer: server.URL,
			Launch: "launch-token",
		})
		assert.NoError(t, err)
		assert.NotNil(t, storedState)

		parsed, err := url.Parse(response.AuthorizeURL)
		assert.NoError(t, err)
		query := parsed.Query()
		assert.Equal(t, "code", query.Get("response_type"))
		assert.Equal(t, "vitaltrend-dashboard", query.Get("client_id"))
		assert.Equal(t, server.URL, query.Get("aud"))
		assert.Equal(t, "launch-token", query.Get("launch"))
		assert.Equal(t, "S256", query.Get("code_challenge_method"))
		assert.Equal(t, response.State, query.Get("state"))
		assert.Equal(t, utils.PKCEChallengeS256(storedState.CodeVerifier), query.Get("code_challenge"),
			"challenge in the URL must derive from the parked verifier")
		assert.Equal(t, "https://auth.example.org/token", storedState.TokenEndpoint)
	})

	t.Run("Unknown issuer is rejected before discovery", func(t *testing.T) {
		usecase := &smartUsecase{
			RedisRepository: new(mockRedisRepository),
			InternalConfig:  testInternalConfig("https://thas.mohw.gov.tw/v/r4/fhir"),
			Log:             zap.NewNop(),
		}

		_, err := usecase.BuildAuthorizeURL(context.Background(), &requests.SmartLaunch{
			Issuer: "https://evil.example.org/fhir",
		})
		assert.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, constvars.StatusBadGateway, customErr.StatusCode)
	})

	t.Run("Discovery document without endpoints fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		usecase := &smartUsecase{
			RedisRepository: new(mockRedisRepository),
			InternalConfig:  testInternalConfig(server.URL),
			Log:             zap.NewNop(),
		}

		_, err := usecase.BuildAuthorizeURL(context.Background(), &requests.SmartLaunch{Issuer: server.URL})
		assert.Error(t, err)
	})
}

func TestExchangeCode(t *testing.T) {
	t.Run("Exchanges code, binds patient context and opens a session", func(t *testing.T) {
		tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "authorization_code", r.Form.Get("grant_type"))
			assert.Equal(t, "auth-code", r.Form.Get("code"))
			assert.Equal(t, "verifier-123", r.Form.Get("code_verifier"))

			w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token": "access-xyz",
				"token_type":   "Bearer",
				"expires_in":   3600,
				"scope":        "patient/Observation.read",
				"patient":      "1180",
			})
		}))
		defer tokenServer.Close()

		state := &models.SmartState{
			State:         "state-1",
			Issuer:        "https://thas.mohw.gov.tw/v/r4/fhir",
			CodeVerifier:  "verifier-123",
			TokenEndpoint: tokenServer.URL,
		}
		stateJSON, _ := json.Marshal(state)

		redisRepository := new(mockRedisRepository)
		redisRepository.On("Get", mock.Anything, constvars.RedisKeySmartStatePrefix+"state-1").Return(string(stateJSON), nil)
		redisRepository.On("Delete", mock.Anything, constvars.RedisKeySmartStatePrefix+"state-1").Return(nil)

		sessionService := new(mockSessionService)
		sessionService.On("CreateSession", mock.Anything, mock.MatchedBy(func(session *models.Session) bool {
			return session.PatientID == "1180" && session.AccessToken == "access-xyz"
		})).Return(nil)

		usecase := &smartUsecase{
			SessionService:  sessionService,
			RedisRepository: redisRepository,
			InternalConfig:  testInternalConfig("https://thas.mohw.gov.tw/v/r4/fhir"),
			Log:             zap.NewNop(),
		}

		response, err := usecase.ExchangeCode(context.Background(), &requests.SmartCallback{
			Code:  "auth-code",
			State: "state-1",
		})
		assert.NoError(t, err)
		assert.Equal(t, "1180", response.PatientID)
		assert.NotEmpty(t, response.SessionToken)
		sessionService.AssertExpectations(t)
		redisRepository.AssertExpectations(t)
	})

	t.Run("Missing state is gone", func(t *testing.T) {
		redisRepository := new(mockRedisRepository)
		redisRepository.On("Get", mock.Anything, mock.Anything).Return("", nil)

		usecase := &smartUsecase{
			RedisRepository: redisRepository,
			InternalConfig:  testInternalConfig("https://thas.mohw.gov.tw/v/r4/fhir"),
			Log:             zap.NewNop(),
		}

		_, err := usecase.ExchangeCode(context.Background(), &requests.SmartCallback{Code: "c", State: "missing"})
		assert.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, constvars.StatusGone, customErr.StatusCode)
	})

	t.Run("Token response without patient context is rejected", func(t *testing.T) {
		tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token": "access-xyz",
				"token_type":   "Bearer",
			})
		}))
		defer tokenServer.Close()

		state := &models.SmartState{State: "state-1", CodeVerifier: "v", TokenEndpoint: tokenServer.URL}
		stateJSON, _ := json.Marshal(state)

		redisRepository := new(mockRedisRepository)
		redisRepository.On("Get", mock.Anything, mock.Anything).Return(string(stateJSON), nil)
		redisRepository.On("Delete", mock.Anything, mock.Anything).Return(nil)

		usecase := &smartUsecase{
			SessionService:  new(mockSessionService),
			RedisRepository: redisRepository,
			InternalConfig:  testInternalConfig("https://thas.mohw.gov.tw/v/r4/fhir"),
			Log:             zap.NewNop(),
		}

		_, err := usecase.ExchangeCode(context.Background(), &requests.SmartCallback{Code: "c", State: "state-1"})
		assert.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})
}
