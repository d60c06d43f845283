package services

import (
	"context"

	"github.com/rs/zerolog"

	"lawfirm-cms/models"
)

// Notifier tells interested parties that a version cleared sign-off. Delivery
// (email, chat) lives outside this service.
type Notifier interface {
	VersionApproved(ctx context.Context, doc *models.Document, version *models.Version) error
}

type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) VersionApproved(_ context.Context, doc *models.Document, version *models.Version) error {
	n.log.Info().
		Uint("document_id", doc.ID).
		Str("title", doc.Title).
		Uint("version_id", version.ID).
		Int("version_number", version.VersionNumber).
		Str("content_hash", version.ContentHash).
		Msg("version approved for export")
	return nil
}
