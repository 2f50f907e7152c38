package constvars

const (
	URLQueryParamIssuer = "iss"
	URLQueryParamLaunch = "launch"
	URLQueryParamCode   = "code"
	URLQueryParamState  = "state"

	URLQueryParamPage     = "page"
	URLQueryParamPageSize = "page_size"
)
