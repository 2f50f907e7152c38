package vitals

import (
	"vitaltrend-service/internal/pkg/constvars"
	"vitaltrend-service/internal/pkg/exceptions"
	"vitaltrend-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// NormalizedResource is the outcome of boundary normalization: the
// contained resource and its own canonical id. The id is always taken
// from the resource, never from an enclosing Bundle. Bundle identity
// and resource identity are distinct namespaces.
type NormalizedResource struct {
	ID           string
	ResourceType string
	Resource     json.RawMessage
}

// Normalizer turns raw FHIR response bodies into usable resources. A
// response may be a search Bundle or a bare resource delivered through
// the launch context; the distinction is resolved here, once, so the
// rest of the service never re-checks shapes.
type Normalizer struct {
	Log *zap.Logger
}

func NewNormalizer(logger *zap.Logger) *Normalizer {
	return &Normalizer{Log: logger}
}

// NormalizeContextResource extracts the single target resource from a
// patient-context response. An empty Bundle (entry absent, null or [])
// yields ErrResourceNotFound. A Bundle whose entries carry distinct
// resource ids yields ErrAmbiguousPatient instead of silently picking
// the first: a wrong pick here would bind the dashboard to the wrong
// patient.
func (n *Normalizer) NormalizeContextResource(raw json.RawMessage) (*NormalizedResource, error) {
	envelope := new(fhir_dto.Envelope)
	if err := json.Unmarshal(raw, envelope); err != nil {
		return nil, exceptions.ErrDecodeFHIRResponse(err, constvars.ResourcePatient)
	}

	if envelope.ResourceType != constvars.ResourceBundle {
		if envelope.ResourceType == "" {
			return nil, exceptions.ErrUnexpectedResourceType(envelope.ResourceType)
		}
		return &NormalizedResource{
			ID:           envelope.ID,
			ResourceType: envelope.ResourceType,
			Resource:     raw,
		}, nil
	}

	bundle := new(fhir_dto.FHIRBundle)
	if err := json.Unmarshal(raw, bundle); err != nil {
		return nil, exceptions.ErrDecodeFHIRResponse(err, constvars.ResourceBundle)
	}

	normalized := n.usableEntries(bundle)
	if len(normalized) == 0 {
		n.Log.Info("bundle has no usable entries",
			zap.String(constvars.LoggingBundleIDKey, bundle.ID),
			zap.Int("total", bundle.Total),
		)
		return nil, exceptions.ErrResourceNotFound(nil)
	}

	first := normalized[0]
	for _, candidate := range normalized[1:] {
		if candidate.ResourceType == first.ResourceType && candidate.ID != first.ID {
			return nil, exceptions.ErrAmbiguousPatient(nil)
		}
	}

	return first, nil
}

// NormalizeBundleEntries flattens a search response into its usable
// resources. Unlike context normalization, an empty result is not an
// error: zero observations is a valid trend. Malformed entries are
// skipped one by one so a single bad entry never sinks the batch.
func (n *Normalizer) NormalizeBundleEntries(raw json.RawMessage) ([]json.RawMessage, error) {
	envelope := new(fhir_dto.Envelope)
	if err := json.Unmarshal(raw, envelope); err != nil {
		return nil, exceptions.ErrDecodeFHIRResponse(err, constvars.ResourceBundle)
	}

	if envelope.ResourceType != constvars.ResourceBundle {
		if envelope.ResourceType == "" {
			return nil, exceptions.ErrUnexpectedResourceType(envelope.ResourceType)
		}
		return []json.RawMessage{raw}, nil
	}

	bundle := new(fhir_dto.FHIRBundle)
	if err := json.Unmarshal(raw, bundle); err != nil {
		return nil, exceptions.ErrDecodeFHIRResponse(err, constvars.ResourceBundle)
	}

	resources := make([]json.RawMessage, 0, len(bundle.Entry))
	for _, normalized := range n.usableEntries(bundle) {
		resources = append(resources, normalized.Resource)
	}

	return resources, nil
}

// usableEntries walks bundle.Entry tolerating absent, null and empty
// collections identically: all of them mean "no results". Entries whose
// resource is missing or undecodable are logged and dropped.
func (n *Normalizer) usableEntries(bundle *fhir_dto.FHIRBundle) []*NormalizedResource {
	normalized := make([]*NormalizedResource, 0, len(bundle.Entry))
	for index, entry := range bundle.Entry {
		if len(entry.Resource) == 0 || string(entry.Resource) == "null" {
			n.Log.Warn("skipping bundle entry without resource",
				zap.String(constvars.LoggingBundleIDKey, bundle.ID),
				zap.Int(constvars.LoggingEntryIndexKey, index),
			)
			continue
		}

		resourceEnvelope := new(fhir_dto.Envelope)
		if err := json.Unmarshal(entry.Resource, resourceEnvelope); err != nil || resourceEnvelope.ResourceType == "" {
			n.Log.Warn("skipping malformed bundle entry",
				zap.String(constvars.LoggingBundleIDKey, bundle.ID),
				zap.Int(constvars.LoggingEntryIndexKey, index),
				zap.Error(err),
			)
			continue
		}

		normalized = append(normalized, &NormalizedResource{
			ID:           resourceEnvelope.ID,
			ResourceType: resourceEnvelope.ResourceType,
			Resource:     entry.Resource,
		})
	}

	return normalized
}
