package config

type (
	InternalConfig struct {
		App   App
		FHIR  FHIR
		Smart Smart
		JWT   JWT
	}
	App struct {
		Env                       string
		Port                      string
		Version                   string
		Address                   string
		EndpointPrefix            string
		MaxRequests               int
		ShutdownTimeout           int
		MaxTimeRequestsPerSeconds int
		RabbitMQAlertQueue        string
		SuperadminAPIKeyHash      string
		SystolicAlertThreshold    float64
	}
	FHIR struct {
		BaseUrl string
	}
	Smart struct {
		ClientID        string
		RedirectURI     string
		Scope           string
		StateExpMinutes int
	}
	JWT struct {
		Secret        string
		ExpTimeInHour int
	}
)
