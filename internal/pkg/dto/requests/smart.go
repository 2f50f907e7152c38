package requests

type SmartLaunch struct {
	Issuer string `json:"iss" validate:"required,url"`
	Launch string `json:"launch,omitempty"`
}

type SmartCallback struct {
	Code  string `json:"code" validate:"required"`
	State string `json:"state" validate:"required,uuid"`
}
