package constvars

const (
	LoggingRequestIDKey  = "request_id"
	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"

	LoggingPatientIDKey    = "patient_id"
	LoggingResourceTypeKey = "resource_type"
	LoggingBundleIDKey     = "bundle_id"
	LoggingEntryIndexKey   = "entry_index"
	LoggingObservationKey  = "observation_id"
)
