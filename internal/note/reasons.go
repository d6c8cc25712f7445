package note

// DropReason is the closed enum of machine-readable drop causes. Every
// removal of a candidate (or suppression of a section) carries one so
// regression tests can assert on causes instead of log text.
type DropReason string

const (
	DropVacuousTitle     DropReason = "vacuous_title"
	DropEvidenceEmpty    DropReason = "evidence_empty"
	DropEvidenceBounds   DropReason = "evidence_out_of_bounds"
	DropUngrounded       DropReason = "ungrounded_evidence"
	DropHeadingOnly      DropReason = "heading_only"
	DropInternalError    DropReason = "internal_error"
	DropOutOfScope       DropReason = "out_of_scope_section"
	DropProcessNoise     DropReason = "process_noise_heading"
	DropDerivative       DropReason = "derivative_section"
	DropCapExceeded      DropReason = "cap_exceeded"
	DropMerged           DropReason = "merged_into_sibling"
	DropDuplicateKey     DropReason = "duplicate_suggestion_key"
	DropNotActionable    DropReason = "section_not_actionable"
	DropConcernStatement DropReason = "concern_statement_only"
)

// Stage names the pipeline stage that recorded a drop.
type Stage string

const (
	StageClassify    Stage = "classify"
	StageSynthesize  Stage = "synthesize"
	StageValidate    Stage = "validate"
	StageScore       Stage = "score"
	StageConsolidate Stage = "consolidate"
)

// DropRecord is the machine-readable ledger entry for one removal.
// Detail is free text for humans; Reason is what tests assert on.
type DropRecord struct {
	Stage        Stage      `json:"stage"`
	Reason       DropReason `json:"reason"`
	Detail       string     `json:"detail,omitempty"`
	SectionID    string     `json:"section_id,omitempty"`
	SuggestionID string     `json:"suggestion_id,omitempty"`
}
