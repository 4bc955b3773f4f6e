package gateway

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/piresc/fleetsim/internal/pkg/constants"
	"github.com/piresc/fleetsim/internal/pkg/logger"
	"github.com/piresc/fleetsim/internal/pkg/models"
	natspkg "github.com/piresc/fleetsim/internal/pkg/nats"
	nsqpkg "github.com/piresc/fleetsim/internal/pkg/nsq"
	"github.com/piresc/fleetsim/internal/utils"
)

// Publisher sends an encoded message to a subject or topic
type Publisher interface {
	Publish(subject string, data []byte) error
}

// BrokerSink publishes every event as a JSON envelope to a message broker
type BrokerSink struct {
	name             string
	publisher        Publisher
	runID            string
	geohashPrecision uint
	logger           *logger.ZapLogger
}

// NewBrokerSink creates a sink publishing through publisher. name only
// appears in logs.
func NewBrokerSink(name string, publisher Publisher, runID string, geohashPrecision uint, log *logger.ZapLogger) *BrokerSink {
	return &BrokerSink{
		name:             name,
		publisher:        publisher,
		runID:            runID,
		geohashPrecision: geohashPrecision,
		logger:           log,
	}
}

// NewNATSSink creates a sink publishing to NATS subjects
func NewNATSSink(client *natspkg.Client, runID string, geohashPrecision uint, log *logger.ZapLogger) *BrokerSink {
	return NewBrokerSink("nats", client, runID, geohashPrecision, log)
}

// NewNSQSink creates a sink publishing to NSQ topics
func NewNSQSink(producer *nsqpkg.Producer, runID string, geohashPrecision uint, log *logger.ZapLogger) *BrokerSink {
	return NewBrokerSink("nsq", producer, runID, geohashPrecision, log)
}

// OnEvent publishes the event. Failures are logged and dropped.
func (s *BrokerSink) OnEvent(kind models.EventKind, data interface{}) {
	subject, ok := subjectOf(kind)
	if !ok {
		s.logger.Warn("Unknown event kind", logger.String("kind", string(kind)))
		return
	}

	envelope := models.Event{
		ID:    uuid.New().String(),
		RunID: s.runID,
		Kind:  kind,
		Data:  withGeohash(data, s.geohashPrecision),
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		s.logger.Error("Failed to encode event",
			logger.String("sink", s.name),
			logger.String("kind", string(kind)),
			logger.Err(err))
		return
	}

	if err := s.publisher.Publish(subject, payload); err != nil {
		s.logger.Error("Failed to publish event",
			logger.String("sink", s.name),
			logger.String("subject", subject),
			logger.Err(err))
	}
}

func subjectOf(kind models.EventKind) (string, bool) {
	switch kind {
	case models.EventKindVehicle:
		return constants.SubjectVehicle, true
	case models.EventKindCustomer:
		return constants.SubjectCustomer, true
	case models.EventKindSummary:
		return constants.SubjectSummary, true
	case models.EventKindScore:
		return constants.SubjectScore, true
	default:
		return "", false
	}
}

// withGeohash fills the geohash of location carrying events
func withGeohash(data interface{}, precision uint) interface{} {
	if precision == 0 {
		return data
	}
	switch ev := data.(type) {
	case models.VehicleEvent:
		ev.Geohash = utils.EncodeLocation(ev.Location, precision)
		return ev
	case models.CustomerEvent:
		ev.Geohash = utils.EncodeLocation(ev.Location, precision)
		return ev
	default:
		return data
	}
}
