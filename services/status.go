package services

import (
	"context"

	"github.com/rs/zerolog"

	"lawfirm-cms/metrics"
	"lawfirm-cms/models"
	"lawfirm-cms/repositories"
)

// statusRecorder writes the cached version status. The write is last-writer
// wins; nothing reads it back to decide readiness.
type statusRecorder struct {
	documents repositories.DocumentRepository
	audit     AuditService
	notifier  Notifier
	metrics   *metrics.Metrics
	log       zerolog.Logger
}

func newStatusRecorder(documents repositories.DocumentRepository, audit AuditService, notifier Notifier, m *metrics.Metrics, log zerolog.Logger) *statusRecorder {
	return &statusRecorder{
		documents: documents,
		audit:     audit,
		notifier:  notifier,
		metrics:   m,
		log:       log,
	}
}

func (r *statusRecorder) transition(ctx context.Context, actor Actor, doc *models.Document, version *models.Version, next models.VersionStatus, meta RequestMeta) {
	previous := version.Status
	if previous == next {
		return
	}

	if err := r.documents.UpdateVersionStatus(ctx, version.ID, next); err != nil {
		r.log.Error().Err(err).
			Uint("version_id", version.ID).
			Str("from", string(previous)).
			Str("to", string(next)).
			Msg("failed to update version status")
		return
	}
	version.Status = next
	r.metrics.RecordStatusTransition(string(next))

	r.audit.Record(ctx, AuditEvent{
		EntityType: models.EntityVersion,
		EntityID:   version.ID,
		Action:     models.ActionVersionStatusChanged,
		ActorID:    actor.UserID,
		Meta:       meta,
		Metadata: map[string]any{
			"document_id": doc.ID,
			"from":        string(previous),
			"to":          string(next),
		},
	})

	if next == models.StatusApproved && r.notifier != nil {
		if err := r.notifier.VersionApproved(ctx, doc, version); err != nil {
			r.log.Warn().Err(err).Uint("version_id", version.ID).Msg("approval notification failed")
		}
	}
}
