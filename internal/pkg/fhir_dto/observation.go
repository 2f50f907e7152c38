package fhir_dto

type Observation struct {
	ResourceType      string          `json:"resourceType"`
	ID                string          `json:"id,omitempty"`
	Meta              *Meta           `json:"meta,omitempty"`
	Identifier        []Identifier    `json:"identifier,omitempty"`
	Status            string          `json:"status"`
	Category          []CodeableConcept `json:"category,omitempty"`
	Code              CodeableConcept `json:"code"`
	Subject           Reference       `json:"subject"`
	Performer         []Reference     `json:"performer,omitempty"`
	EffectiveDateTime string          `json:"effectiveDateTime,omitempty"`
	Issued            string          `json:"issued,omitempty"`
	ValueQuantity     *Quantity       `json:"valueQuantity,omitempty"`
	Component         []Component     `json:"component,omitempty"`
}

type Component struct {
	Code          CodeableConcept `json:"code"`
	ValueQuantity *Quantity       `json:"valueQuantity,omitempty"`
}
