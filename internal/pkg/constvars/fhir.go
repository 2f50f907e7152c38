package constvars

const (
	ResourceBundle      = "Bundle"
	ResourcePatient     = "Patient"
	ResourceObservation = "Observation"
)

const (
	LoincSystem = "http://loinc.org"

	LoincCodeBloodPressurePanel = "85354-9"
	LoincCodeSystolic           = "8480-6"
	LoincCodeDiastolic          = "8462-4"
)

const (
	FhirObservationStatusFinal = "final"

	FhirObservationCategoryVitalSigns = "vital-signs"
)

const (
	FhirSearchParamID      = "_id"
	FhirSearchParamPatient = "patient"
	FhirSearchParamCode    = "code"
	FhirSearchParamSort    = "_sort"
	FhirSearchParamDate    = "date"
)

const (
	SmartConfigurationPath = "/.well-known/smart-configuration"

	SmartScopePatientRead = "launch patient/Patient.read patient/Observation.read openid fhirUser"
)
