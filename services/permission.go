package services

import (
	"lawfirm-cms/config"
	"lawfirm-cms/models"
)

// approvalScope is the set of targets a role may sign off.
type approvalScope int

const (
	scopeNone approvalScope = iota
	scopeSource
	scopePrimaryTranslation
	scopeSecondaryTranslations
	scopeAll
)

// roleScopes must name every role in models.AllRoles; roles missing here get
// scopeNone.
var roleScopes = map[models.UserRole]approvalScope{
	models.RoleFamilyAgent:   scopeSource,
	models.RoleTranslator:    scopePrimaryTranslation,
	models.RoleForeignLawyer: scopeSecondaryTranslations,
	models.RoleFamilyViewer:  scopeNone,
	models.RoleAdmin:         scopeAll,
}

// ApprovalPolicy answers who may sign off which target. It performs no I/O.
type ApprovalPolicy struct {
	primary   string
	secondary map[string]bool
}

func NewApprovalPolicy(policy config.WorkflowPolicy) *ApprovalPolicy {
	secondary := make(map[string]bool, len(policy.SecondaryLanguages))
	for _, lang := range policy.SecondaryLanguages {
		secondary[lang] = true
	}
	return &ApprovalPolicy{
		primary:   policy.PrimaryLanguage,
		secondary: secondary,
	}
}

func (p *ApprovalPolicy) CanApprove(role models.UserRole, target models.Target) bool {
	scope, ok := roleScopes[role]
	if !ok || target == "" {
		return false
	}

	switch scope {
	case scopeSource:
		return target.IsSource()
	case scopePrimaryTranslation:
		return !target.IsSource() && string(target) == p.primary
	case scopeSecondaryTranslations:
		return !target.IsSource() && p.secondary[string(target)]
	case scopeAll:
		return true
	default:
		return false
	}
}

// CanTranslate reports whether role may submit translated text for target.
// Whoever signs off a translation language may also write it.
func (p *ApprovalPolicy) CanTranslate(role models.UserRole, target models.Target) bool {
	return !target.IsSource() && p.CanApprove(role, target)
}

// CanAuthor reports whether role may create documents and versions.
func (p *ApprovalPolicy) CanAuthor(role models.UserRole) bool {
	return role == models.RoleFamilyAgent || role == models.RoleAdmin
}
