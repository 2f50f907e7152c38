package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_API_KEY_AUTH_KEY         ContextKey = "api_key_auth"
)

const (
	REQUEST_ID_PREFIX = "VTLTRND_SVC_"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)

const (
	RedisKeySessionPrefix    = "session:"
	RedisKeySmartStatePrefix = "smart_state:"
)

const (
	MongoCollectionEvaluations = "evaluations"
)
