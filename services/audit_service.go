package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/mileusna/useragent"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"lawfirm-cms/metrics"
	"lawfirm-cms/models"
	"lawfirm-cms/repositories"
)

const auditWriteTimeout = 5 * time.Second

// RequestMeta is what the HTTP layer knows about the caller beyond identity.
type RequestMeta struct {
	IPAddress string
	UserAgent string
	RequestID string
}

type AuditEvent struct {
	EntityType string
	EntityID   uint
	Action     string
	ActorID    uint
	Meta       RequestMeta
	Metadata   map[string]any
}

// AuditService records audit events off the request path. Record never
// reports failure to its caller; write errors are logged and counted.
type AuditService interface {
	Record(ctx context.Context, event AuditEvent)
	// Wait blocks until every event recorded so far has been written or has
	// failed.
	Wait()
}

type auditService struct {
	repo    repositories.AuditRepository
	metrics *metrics.Metrics
	log     zerolog.Logger
	wg      sync.WaitGroup
}

func NewAuditService(repo repositories.AuditRepository, m *metrics.Metrics, log zerolog.Logger) AuditService {
	return &auditService{
		repo:    repo,
		metrics: m,
		log:     log,
	}
}

func (s *auditService) Record(ctx context.Context, event AuditEvent) {
	entry := &models.AuditLog{
		EntityType: event.EntityType,
		EntityID:   event.EntityID,
		Action:     event.Action,
		ActorID:    event.ActorID,
		IPAddress:  event.Meta.IPAddress,
		Metadata:   s.buildMetadata(event),
		CreatedAt:  time.Now().UTC(),
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
		defer cancel()

		if err := s.repo.Create(writeCtx, entry); err != nil {
			s.metrics.AuditFailuresTotal.Inc()
			s.log.Error().Err(err).
				Str("entity_type", entry.EntityType).
				Uint("entity_id", entry.EntityID).
				Str("action", entry.Action).
				Uint("actor_id", entry.ActorID).
				Msg("failed to write audit log")
		}
	}()
}

func (s *auditService) Wait() {
	s.wg.Wait()
}

func (s *auditService) buildMetadata(event AuditEvent) datatypes.JSON {
	metadata := make(map[string]any, len(event.Metadata)+4)
	for k, v := range event.Metadata {
		metadata[k] = v
	}
	if event.Meta.RequestID != "" {
		metadata["request_id"] = event.Meta.RequestID
	}
	if event.Meta.UserAgent != "" {
		ua := useragent.Parse(event.Meta.UserAgent)
		metadata["user_agent"] = event.Meta.UserAgent
		metadata["client"] = map[string]any{
			"browser": orUnknown(ua.Name),
			"os":      orUnknown(ua.OS),
			"device":  deviceType(ua),
		}
	}

	raw, err := json.Marshal(metadata)
	if err != nil {
		s.log.Warn().Err(err).Str("action", event.Action).Msg("audit metadata not serialisable")
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(raw)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func deviceType(ua useragent.UserAgent) string {
	switch {
	case ua.Mobile:
		return "mobile"
	case ua.Tablet:
		return "tablet"
	case ua.Bot:
		return "bot"
	default:
		return "desktop"
	}
}
