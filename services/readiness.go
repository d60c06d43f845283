package services

import (
	"context"

	"lawfirm-cms/metrics"
	"lawfirm-cms/models"
)

// ReadinessEvaluator derives from the ledger whether a version may be
// exported. It never reads or writes the cached version status.
type ReadinessEvaluator interface {
	GetRequiredApprovals(ctx context.Context, versionID uint, targetLangs []string) (*models.RequiredApprovals, error)
	IsVersionReadyForExport(ctx context.Context, versionID uint, targetLangs []string) (bool, error)
}

type readinessEvaluator struct {
	approvals ApprovalService
	metrics   *metrics.Metrics
}

func NewReadinessEvaluator(approvals ApprovalService, m *metrics.Metrics) ReadinessEvaluator {
	return &readinessEvaluator{
		approvals: approvals,
		metrics:   m,
	}
}

func (e *readinessEvaluator) GetRequiredApprovals(ctx context.Context, versionID uint, targetLangs []string) (*models.RequiredApprovals, error) {
	langs, err := canonicalLanguages(targetLangs)
	if err != nil {
		return nil, err
	}

	source, err := e.requirement(ctx, versionID, models.TargetSource)
	if err != nil {
		return nil, err
	}

	result := &models.RequiredApprovals{
		Source:       source,
		Translations: make(map[string]models.TargetRequirement, len(langs)),
	}
	for _, lang := range langs {
		req, err := e.requirement(ctx, versionID, models.Target(lang))
		if err != nil {
			return nil, err
		}
		result.Translations[lang] = req
	}
	return result, nil
}

// IsVersionReadyForExport fails closed: on any error the answer is false.
func (e *readinessEvaluator) IsVersionReadyForExport(ctx context.Context, versionID uint, targetLangs []string) (bool, error) {
	required, err := e.GetRequiredApprovals(ctx, versionID, targetLangs)
	if err != nil {
		e.metrics.RecordReadiness(false, err)
		return false, err
	}
	ready := IsReady(*required)
	e.metrics.RecordReadiness(ready, nil)
	return ready, nil
}

func (e *readinessEvaluator) requirement(ctx context.Context, versionID uint, target models.Target) (models.TargetRequirement, error) {
	status, err := e.approvals.CheckApprovalStatus(ctx, versionID, target)
	if err != nil {
		return models.TargetRequirement{}, err
	}
	return models.TargetRequirement{
		Required: true,
		Approved: status.Approved && !status.Rejected,
		Rejected: status.Rejected,
	}, nil
}

// IsReady is the export gate: source and every listed translation must be
// approved with no rejection.
func IsReady(required models.RequiredApprovals) bool {
	if !required.Source.Satisfied() {
		return false
	}
	for _, req := range required.Translations {
		if !req.Satisfied() {
			return false
		}
	}
	return true
}

// AnyRejected reports whether some required dimension carries a rejection.
func AnyRejected(required models.RequiredApprovals) bool {
	if required.Source.Rejected {
		return true
	}
	for _, req := range required.Translations {
		if req.Rejected {
			return true
		}
	}
	return false
}

func canonicalLanguages(raw []string) ([]string, error) {
	langs := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, r := range raw {
		target, err := models.ParseTarget(r)
		if err != nil {
			return nil, err
		}
		if target.IsSource() {
			return nil, models.NewValidationError("source is always required and cannot be listed as a translation target", nil)
		}
		lang := string(target)
		if seen[lang] {
			continue
		}
		seen[lang] = true
		langs = append(langs, lang)
	}
	return langs, nil
}
