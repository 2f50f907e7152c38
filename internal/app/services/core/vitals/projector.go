package vitals

import (
	"sort"
	"time"
	"vitaltrend-service/internal/pkg/constvars"
	"vitaltrend-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Reading is one plotted point of the trend chart. Systolic and
// Diastolic are nil when the source Observation lacks the matching
// component: the chart renders a gap, never a fabricated zero.
type Reading struct {
	Timestamp         time.Time
	EffectiveDateTime string
	Systolic          *float64
	Diastolic         *float64
	SourceID          string

	timestampParsed bool
}

// Projector flattens blood-pressure Observations into chronological
// readings and classifies the latest one against the alert threshold.
// All methods are pure over their inputs.
type Projector struct {
	Log               *zap.Logger
	SystolicThreshold float64
}

func NewProjector(logger *zap.Logger, systolicThreshold float64) *Projector {
	return &Projector{
		Log:               logger,
		SystolicThreshold: systolicThreshold,
	}
}

// DecodeObservations decodes normalized bundle entries into Observation
// DTOs. Entries that fail to decode, carry the wrong resourceType or
// have no code at all are dropped individually so one bad entry cannot
// prevent the rest of the trend from rendering.
func (p *Projector) DecodeObservations(resources []json.RawMessage) []fhir_dto.Observation {
	observations := make([]fhir_dto.Observation, 0, len(resources))
	for index, resource := range resources {
		observation := new(fhir_dto.Observation)
		if err := json.Unmarshal(resource, observation); err != nil {
			p.Log.Warn("skipping undecodable observation entry",
				zap.Int(constvars.LoggingEntryIndexKey, index),
				zap.Error(err),
			)
			continue
		}
		if observation.ResourceType != constvars.ResourceObservation {
			p.Log.Warn("skipping entry with unexpected resourceType",
				zap.Int(constvars.LoggingEntryIndexKey, index),
				zap.String(constvars.LoggingResourceTypeKey, observation.ResourceType),
			)
			continue
		}
		if len(observation.Code.Coding) == 0 {
			p.Log.Warn("skipping observation without code",
				zap.String(constvars.LoggingObservationKey, observation.ID),
			)
			continue
		}
		observations = append(observations, *observation)
	}

	return observations
}

// ProjectReadings maps each Observation to a Reading and sorts the
// result chronologically. The sort is stable: readings with equal
// timestamps keep their input order, and readings whose timestamp could
// not be parsed sink to the end in input order rather than being
// dropped.
func (p *Projector) ProjectReadings(observations []fhir_dto.Observation) []Reading {
	readings := make([]Reading, 0, len(observations))
	for _, observation := range observations {
		readings = append(readings, p.projectOne(observation))
	}

	sort.SliceStable(readings, func(i, j int) bool {
		if readings[i].timestampParsed != readings[j].timestampParsed {
			return readings[i].timestampParsed
		}
		if !readings[i].timestampParsed {
			return false
		}
		return readings[i].Timestamp.Before(readings[j].Timestamp)
	})

	return readings
}

// ClassifyLatest evaluates only the most recent reading: systolic at or
// above the threshold triggers the alert. A missing systolic value
// never triggers.
func (p *Projector) ClassifyLatest(readings []Reading) bool {
	if len(readings) == 0 {
		return false
	}

	latest := readings[len(readings)-1]
	if latest.Systolic == nil {
		return false
	}

	return *latest.Systolic >= p.SystolicThreshold
}

func (p *Projector) projectOne(observation fhir_dto.Observation) Reading {
	reading := Reading{
		EffectiveDateTime: observation.EffectiveDateTime,
		SourceID:          observation.ID,
	}

	if parsed, ok := parseFhirDateTime(observation.EffectiveDateTime); ok {
		reading.Timestamp = parsed
		reading.timestampParsed = true
	}

	for _, component := range observation.Component {
		if component.ValueQuantity == nil {
			continue
		}
		for _, coding := range component.Code.Coding {
			if coding.System != "" && coding.System != constvars.LoincSystem {
				continue
			}
			switch coding.Code {
			case constvars.LoincCodeSystolic:
				value := component.ValueQuantity.Value
				reading.Systolic = &value
			case constvars.LoincCodeDiastolic:
				value := component.ValueQuantity.Value
				reading.Diastolic = &value
			}
		}
	}

	if reading.Systolic == nil || reading.Diastolic == nil {
		p.Log.Debug("observation projected with missing component",
			zap.String(constvars.LoggingObservationKey, observation.ID),
			zap.Bool("has_systolic", reading.Systolic != nil),
			zap.Bool("has_diastolic", reading.Diastolic != nil),
		)
	}

	return reading
}

func parseFhirDateTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
		"2006-01",
		"2006",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}

	return time.Time{}, false
}
