package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"url":      "must be a valid URL",
	"uuid":     "must be a valid UUID",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"oneof":    "must be one of [%s]",
	"numeric":  "must be a number",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "cannot process request, please check your request"
	ErrClientSomethingWrongWithApplication = "something is wrong with the application, please contact administrator"
	ErrClientNotAuthorized                 = "you are not authorized to access this resource"
	ErrClientNotLoggedIn                   = "your session has expired, please launch the app again"
	ErrClientServerLongRespond             = "server took too long to respond, please try again"
	ErrClientPatientNotFound               = "no patient record was found for this session"
	ErrClientAmbiguousPatient              = "more than one patient matched the launch context, please contact administrator"
	ErrClientNoObservationData             = "no blood pressure data is available for this patient"
	ErrClientFHIRServerUnreachable         = "the clinical data server cannot be reached, please try again later"
	ErrClientInvalidLaunchRequest          = "the app launch request is invalid or has expired"
	ErrClientInvalidAPIKey                 = "invalid API key"
)

// Error messages for developers
const (
	ErrDevCannotParseJSON        = "cannot parse JSON"
	ErrDevCannotMarshalJSON      = "cannot marshal JSON"
	ErrDevValidationFailed       = "validation failed"
	ErrDevCreateHTTPRequest      = "failed to create HTTP request"
	ErrDevSendHTTPRequest        = "failed to send HTTP request"
	ErrDevServerDeadlineExceeded = "deadline exceeded"
	ErrDevServerParseSessionData = "failed to parse session data"

	ErrDevFHIRGetResource      = "failed to get FHIR resource %s"
	ErrDevFHIRSearchResource   = "failed to search FHIR resource %s"
	ErrDevFHIRDecodeResponse   = "failed to decode FHIR response for %s"
	ErrDevFHIRUnexpectedType   = "unexpected resourceType %q in FHIR response"
	ErrDevFHIRNoResource       = "no usable resource in FHIR response"
	ErrDevFHIRAmbiguousPatient = "patient context bundle contains multiple distinct patients"

	ErrDevSmartDiscoveryFailed   = "failed to fetch smart-configuration from issuer"
	ErrDevSmartStateNotFound     = "smart launch state not found or expired"
	ErrDevSmartTokenExchange     = "failed to exchange authorization code for token"
	ErrDevSmartNoPatientContext  = "token response carries no patient context"
	ErrDevAuthSigningMethod      = "unexpected signing method"
	ErrDevAuthTokenMissing       = "token missing"
	ErrDevAuthTokenInvalidOrExp  = "token invalid or expired"
	ErrDevAuthGenerateToken      = "failed to generate token"
	ErrDevAuthInvalidAPIKey      = "provided API key does not match"
	ErrDevURLParamIDValidation   = "URL param %s validation failed"
	ErrDevRedisSet               = "failed to set value into redis"
	ErrDevRedisGet               = "failed to get value from redis for key %s"
	ErrDevRedisDelete            = "failed to delete value from redis"
	ErrDevDBFailedToInsert       = "failed to insert document into database"
	ErrDevDBFailedToFind         = "failed when do find document on database"
	ErrDevMinioCreateObject      = "failed to create object in bucket %s"
	ErrDevQueuePublish           = "failed to publish message to queue"
	ErrDevQueuePublishNotConfirm = "queue publish was not confirmed by broker"
)
