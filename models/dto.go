package models

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UpdateRoleRequest struct {
	Role UserRole `json:"role" validate:"required"`
}

type CreateDocumentRequest struct {
	Title             string   `json:"title" validate:"required,min=1,max=255"`
	CaseReference     string   `json:"case_reference" validate:"max=100"`
	SourceLanguage    string   `json:"source_language"`
	RequiredLanguages []string `json:"required_languages"`
	Content           string   `json:"content" validate:"required"`
}

type CreateVersionRequest struct {
	Content string `json:"content" validate:"required"`
}

type DocumentListParams struct {
	OwnerID   uint   `form:"owner_id"`
	Status    string `form:"status"`
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=10"`
	SortOrder string `form:"sort_order,default=desc"`
}

type ApprovalRequest struct {
	VersionID  uint     `json:"versionId" validate:"required"`
	TargetLang string   `json:"targetLang" validate:"required"`
	Decision   Decision `json:"decision" validate:"required"`
	Comment    string   `json:"comment" validate:"max=4000"`
}

type ApprovalQuery struct {
	VersionID  uint   `form:"versionId" validate:"required"`
	TargetLang string `form:"targetLang" validate:"required"`
}

type ApprovalStatusResponse struct {
	Status ApprovalStatus `json:"status"`
	Chain  []Approval     `json:"chain"`
}

type SegmentInput struct {
	Position int    `json:"position" validate:"min=0"`
	Text     string `json:"text" validate:"required"`
}

type TranslationRequest struct {
	VersionID  uint           `json:"versionId" validate:"required"`
	TargetLang string         `json:"targetLang" validate:"required"`
	Segments   []SegmentInput `json:"segments" validate:"required,min=1,dive"`
}

type TranslationQuery struct {
	VersionID  uint   `form:"versionId" validate:"required"`
	TargetLang string `form:"targetLang" validate:"required"`
}

type ReadinessResponse struct {
	VersionID uint              `json:"version_id"`
	Ready     bool              `json:"ready"`
	Status    VersionStatus     `json:"status"`
	Required  RequiredApprovals `json:"required"`
}

type ExportBundle struct {
	DocumentID    uint                            `json:"document_id"`
	Title         string                          `json:"title"`
	VersionID     uint                            `json:"version_id"`
	VersionNumber int                             `json:"version_number"`
	ContentHash   string                          `json:"content_hash"`
	Source        string                          `json:"source"`
	Translations  map[string][]SegmentTranslation `json:"translations"`
	Approvals     []Approval                      `json:"approvals"`
}

type VerificationResult struct {
	VersionID     uint               `json:"version_id"`
	DocumentID    uint               `json:"document_id"`
	VersionNumber int                `json:"version_number"`
	ContentHash   string             `json:"content_hash"`
	HashMatches   *bool              `json:"hash_matches"`
	Status        VersionStatus      `json:"status"`
	Ready         *bool              `json:"ready,omitempty"`
	Required      *RequiredApprovals `json:"required,omitempty"`
	Chain         []Approval         `json:"approval_chain"`
	AuditTrail    []AuditLog         `json:"audit_trail,omitempty"`
	Warnings      []string           `json:"warnings,omitempty"`
}
