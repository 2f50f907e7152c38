package smart

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
	"vitaltrend-service/internal/app/config"
	"vitaltrend-service/internal/app/contracts"
	"vitaltrend-service/internal/app/models"
	"vitaltrend-service/internal/pkg/constvars"
	"vitaltrend-service/internal/pkg/dto/requests"
	"vitaltrend-service/internal/pkg/dto/responses"
	"vitaltrend-service/internal/pkg/exceptions"
	"vitaltrend-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type smartConfiguration struct {
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
	Patient     string `json:"patient"`
}

type smartUsecase struct {
	SessionService  contracts.SessionService
	RedisRepository contracts.RedisRepository
	InternalConfig  *config.InternalConfig
	Log             *zap.Logger
}

var (
	smartUsecaseInstance contracts.SmartUsecase
	onceSmartUsecase     sync.Once
)

func NewSmartUsecase(
	sessionService contracts.SessionService,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.SmartUsecase {
	onceSmartUsecase.Do(func() {
		instance := &smartUsecase{
			SessionService:  sessionService,
			RedisRepository: redisRepository,
			InternalConfig:  internalConfig,
			Log:             logger,
		}
		smartUsecaseInstance = instance
	})
	return smartUsecaseInstance
}

// BuildAuthorizeURL runs SMART discovery against the launch issuer and
// parks the launch state (nonce, PKCE verifier, token endpoint) in
// redis until the callback arrives. The issuer must match the
// configured FHIR server: a launch from an unknown server is rejected
// before any redirect is built.
func (uc *smartUsecase) BuildAuthorizeURL(ctx context.Context, request *requests.SmartLaunch) (*responses.SmartAuthorizeURL, error) {
	configuredIssuer := strings.TrimRight(uc.InternalConfig.FHIR.BaseUrl, "/")
	if request.Issuer != configuredIssuer {
		return nil, exceptions.ErrSmartDiscovery(fmt.Errorf("issuer %q is not the configured FHIR server", request.Issuer))
	}

	configuration, err := uc.fetchSmartConfiguration(ctx, request.Issuer)
	if err != nil {
		return nil, err
	}

	state := utils.GenerateStateNonce()
	verifier, err := utils.GeneratePKCEVerifier()
	if err != nil {
		return nil, exceptions.ErrSmartDiscovery(err)
	}

	launchState := &models.SmartState{
		State:         state,
		Issuer:        request.Issuer,
		Launch:        request.Launch,
		CodeVerifier:  verifier,
		TokenEndpoint: configuration.TokenEndpoint,
	}
	stateTTL := time.Duration(uc.InternalConfig.Smart.StateExpMinutes) * time.Minute
	err = uc.RedisRepository.Set(ctx, constvars.RedisKeySmartStatePrefix+state, launchState, stateTTL)
	if err != nil {
		return nil, err
	}

	queryParams := url.Values{}
	queryParams.Set("response_type", "code")
	queryParams.Set("client_id", uc.InternalConfig.Smart.ClientID)
	queryParams.Set("redirect_uri", uc.InternalConfig.Smart.RedirectURI)
	queryParams.Set("scope", uc.InternalConfig.Smart.Scope)
	queryParams.Set("state", state)
	queryParams.Set("aud", request.Issuer)
	queryParams.Set("code_challenge", utils.PKCEChallengeS256(verifier))
	queryParams.Set("code_challenge_method", "S256")
	if request.Launch != "" {
		queryParams.Set("launch", request.Launch)
	}

	return &responses.SmartAuthorizeURL{
		AuthorizeURL: fmt.Sprintf("%s?%s", configuration.AuthorizationEndpoint, queryParams.Encode()),
		State:        state,
	}, nil
}

// ExchangeCode redeems the authorization code, binds the patient
// context from the token response and opens a dashboard session. The
// launch state is single use: it is removed from redis before the
// token request goes out.
func (uc *smartUsecase) ExchangeCode(ctx context.Context, request *requests.SmartCallback) (*responses.SmartSession, error) {
	stateKey := constvars.RedisKeySmartStatePrefix + request.State
	stateData, err := uc.RedisRepository.Get(ctx, stateKey)
	if err != nil {
		return nil, err
	}
	if stateData == "" {
		return nil, exceptions.ErrSmartStateNotFound(nil)
	}

	launchState := new(models.SmartState)
	if err := json.Unmarshal([]byte(stateData), launchState); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}

	if err := uc.RedisRepository.Delete(ctx, stateKey); err != nil {
		return nil, err
	}

	token, err := uc.exchangeToken(ctx, launchState, request.Code)
	if err != nil {
		return nil, err
	}
	if token.Patient == "" {
		return nil, exceptions.ErrSmartNoPatientContext(nil)
	}

	expiresIn := token.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 3600
	}
	session := &models.Session{
		SessionID:   utils.GenerateStateNonce(),
		PatientID:   token.Patient,
		FHIRBaseURL: launchState.Issuer,
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		Scope:       token.Scope,
		ExpiresAt:   time.Now().Add(time.Duration(expiresIn) * time.Second),
	}
	if err := uc.SessionService.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	sessionToken, err := utils.GenerateSessionJWT(session.SessionID, uc.InternalConfig.JWT.Secret, uc.InternalConfig.JWT.ExpTimeInHour)
	if err != nil {
		return nil, exceptions.ErrTokenGenerate(err)
	}

	uc.Log.Info("smart session created",
		zap.String(constvars.LoggingPatientIDKey, session.PatientID),
	)

	return &responses.SmartSession{
		SessionToken: sessionToken,
		PatientID:    session.PatientID,
		ExpiresAt:    session.ExpiresAt.Format(time.RFC3339),
	}, nil
}

func (uc *smartUsecase) fetchSmartConfiguration(ctx context.Context, issuer string) (*smartConfiguration, error) {
	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, issuer+constvars.SmartConfigurationPath, nil)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		return nil, exceptions.ErrSmartDiscovery(fmt.Errorf("smart-configuration returned status %d", resp.StatusCode))
	}

	configuration := new(smartConfiguration)
	if err := json.NewDecoder(resp.Body).Decode(configuration); err != nil {
		return nil, exceptions.ErrSmartDiscovery(err)
	}
	if configuration.AuthorizationEndpoint == "" || configuration.TokenEndpoint == "" {
		return nil, exceptions.ErrSmartDiscovery(fmt.Errorf("smart-configuration is missing endpoints"))
	}

	return configuration, nil
}

func (uc *smartUsecase) exchangeToken(ctx context.Context, launchState *models.SmartState, code string) (*tokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", uc.InternalConfig.Smart.RedirectURI)
	form.Set("client_id", uc.InternalConfig.Smart.ClientID)
	form.Set("code_verifier", launchState.CodeVerifier)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, launchState.TokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationForm)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, exceptions.ErrSmartTokenExchange(fmt.Errorf("token endpoint returned status %d: %s", resp.StatusCode, string(bodyBytes)))
	}

	token := new(tokenResponse)
	if err := json.NewDecoder(resp.Body).Decode(token); err != nil {
		return nil, exceptions.ErrSmartTokenExchange(err)
	}
	if token.AccessToken == "" {
		return nil, exceptions.ErrSmartTokenExchange(fmt.Errorf("token response has no access_token"))
	}

	return token, nil
}
