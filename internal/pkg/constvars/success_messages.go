package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// SMART launch messages
	LaunchAuthorizeURLSuccess = "authorization URL built successfully"
	LaunchSessionSuccess      = "patient context bound successfully"

	// Dashboard messages
	BloodPressureTrendSuccess = "blood pressure trend fetched successfully"
	ReportExportSuccess       = "blood pressure report exported successfully"

	// Audit messages
	EvaluationListSuccess = "evaluation history fetched successfully"
)
