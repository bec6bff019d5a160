package order

import (
	"fmt"
	"time"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/pkg/errs"
)

// TransitionType classifies who or what triggered a transition.
type TransitionType int

const (
	// TransitionUnknown represents an invalid or undefined transition type.
	TransitionUnknown TransitionType = iota

	// SystemAuto marks transitions triggered by collaborators or scheduled
	// jobs. Reason is optional.
	SystemAuto

	// AdminManual marks transitions triggered by an admin user.
	AdminManual

	// AdminDelete marks cancellations issued through the deprecated admin
	// delete action; kept distinct so the audit trail records the intent.
	AdminDelete

	// ClientResponse marks transitions triggered by a client submitting
	// requested information. Reason is optional.
	ClientResponse
)

func getTransitionTypeStrings() map[TransitionType]string {
	return map[TransitionType]string{
		TransitionUnknown: "unknown",
		SystemAuto:        "system_auto",
		AdminManual:       "admin_manual",
		AdminDelete:       "admin_delete",
		ClientResponse:    "client_response",
	}
}

// String returns the persistence name of the transition type.
func (t TransitionType) String() string {
	if str, ok := getTransitionTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// TransitionTypeFromString parses a persistence transition type name.
func TransitionTypeFromString(s string) (TransitionType, error) {
	for transitionType, name := range getTransitionTypeStrings() {
		if name == s && transitionType != TransitionUnknown {
			return transitionType, nil
		}
	}
	return TransitionUnknown, errs.NewValueIsInvalidErrorWithCause(
		"transitionType",
		fmt.Errorf("%q is not a valid transition type", s),
	)
}

// Validate checks that the TransitionType is defined.
func (t TransitionType) Validate() error {
	if t == TransitionUnknown {
		return errs.NewValueIsInvalidError("transitionType")
	}
	if _, ok := getTransitionTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidError("transitionType")
	}
	return nil
}

// IsManual reports whether the transition requires a non-empty reason
// (manual transitions do, automatic and client-response ones do not).
func (t TransitionType) IsManual() bool {
	return t == AdminManual || t == AdminDelete
}

// ReasonCode enumerates the admissible reasons for a regeneration request.
type ReasonCode int

const (
	// ReasonCodeUnknown represents an invalid or undefined reason code.
	ReasonCodeUnknown ReasonCode = iota

	ReasonMissingInfo
	ReasonIncorrectWording
	ReasonToneStyle
	ReasonWrongEmphasis
	ReasonFormatting
	ReasonFactualError
	ReasonLegalCompliance
	ReasonOther
)

func getReasonCodeStrings() map[ReasonCode]string {
	return map[ReasonCode]string{
		ReasonCodeUnknown:      "unknown",
		ReasonMissingInfo:      "missing_info",
		ReasonIncorrectWording: "incorrect_wording",
		ReasonToneStyle:        "tone_style",
		ReasonWrongEmphasis:    "wrong_emphasis",
		ReasonFormatting:       "formatting",
		ReasonFactualError:     "factual_error",
		ReasonLegalCompliance:  "legal_compliance",
		ReasonOther:            "other",
	}
}

// String returns the wire name of the reason code.
func (r ReasonCode) String() string {
	if str, ok := getReasonCodeStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// ReasonCodeFromString parses a wire reason code name.
func ReasonCodeFromString(s string) (ReasonCode, error) {
	for code, name := range getReasonCodeStrings() {
		if name == s && code != ReasonCodeUnknown {
			return code, nil
		}
	}
	return ReasonCodeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"reasonCode",
		fmt.Errorf("%q is not a valid reason code", s),
	)
}

// Validate checks that the ReasonCode is one of the enumerated codes.
func (r ReasonCode) Validate() error {
	if r == ReasonCodeUnknown {
		return errs.NewValueIsInvalidError("reasonCode")
	}
	if _, ok := getReasonCodeStrings()[r]; !ok {
		return errs.NewValueIsInvalidError("reasonCode")
	}
	return nil
}

// Guardrails are regeneration constraints passed through to the document
// generator. The engine records and forwards them without interpreting them.
type Guardrails struct {
	PreserveNamesDates bool
	PreserveFormat     bool
}

// RegenerationDetail captures why and how a regeneration was requested.
// Stored on the timeline entry of the INTERNAL_REVIEW -> REGEN_REQUESTED
// transition and handed to the generator.
type RegenerationDetail struct {
	ReasonCode       ReasonCode
	AffectedSections []string
	Guardrails       Guardrails
}

// TimelineEntry is one append-only audit record of a state transition.
// Entries are never mutated or deleted; ordered by CreatedAt they are the
// sole audit source of truth for an order's status history.
type TimelineEntry struct {
	id             kernel.UUID
	orderID        kernel.UUID
	previousState  Status
	newState       Status
	transitionType TransitionType
	reason         string
	triggeredBy    string
	regeneration   *RegenerationDetail
	createdAt      time.Time
}

// NewTimelineEntry creates a timeline entry. Reason is required for manual
// transition types and optional otherwise. TriggeredBy must always name the
// actor ("system" for automatic transitions).
func NewTimelineEntry(
	orderID kernel.UUID,
	previousState, newState Status,
	transitionType TransitionType,
	reason, triggeredBy string,
	createdAt time.Time,
) (TimelineEntry, error) {
	if err := orderID.Validate(); err != nil {
		return TimelineEntry{}, err
	}
	if err := previousState.Validate(); err != nil {
		return TimelineEntry{}, err
	}
	if err := newState.Validate(); err != nil {
		return TimelineEntry{}, err
	}
	if err := transitionType.Validate(); err != nil {
		return TimelineEntry{}, err
	}
	if transitionType.IsManual() && reason == "" {
		return TimelineEntry{}, errs.NewValueIsRequiredError("reason")
	}
	if triggeredBy == "" {
		return TimelineEntry{}, errs.NewValueIsRequiredError("triggeredBy")
	}
	if createdAt.IsZero() {
		return TimelineEntry{}, errs.NewValueIsRequiredError("createdAt")
	}

	return TimelineEntry{
		id:             kernel.NewUUID(),
		orderID:        orderID,
		previousState:  previousState,
		newState:       newState,
		transitionType: transitionType,
		reason:         reason,
		triggeredBy:    triggeredBy,
		createdAt:      createdAt,
	}, nil
}

// RestoreTimelineEntry reconstructs an entry from persistence without
// re-running creation-time rules.
func RestoreTimelineEntry(
	id, orderID kernel.UUID,
	previousState, newState Status,
	transitionType TransitionType,
	reason, triggeredBy string,
	regeneration *RegenerationDetail,
	createdAt time.Time,
) TimelineEntry {
	return TimelineEntry{
		id:             id,
		orderID:        orderID,
		previousState:  previousState,
		newState:       newState,
		transitionType: transitionType,
		reason:         reason,
		triggeredBy:    triggeredBy,
		regeneration:   regeneration,
		createdAt:      createdAt,
	}
}

// ID returns the entry identifier.
func (e TimelineEntry) ID() kernel.UUID { return e.id }

// OrderID returns the owning order's identifier.
func (e TimelineEntry) OrderID() kernel.UUID { return e.orderID }

// PreviousState returns the status the order left.
func (e TimelineEntry) PreviousState() Status { return e.previousState }

// NewState returns the status the order entered.
func (e TimelineEntry) NewState() Status { return e.newState }

// TransitionType returns who or what triggered the transition.
func (e TimelineEntry) TransitionType() TransitionType { return e.transitionType }

// Reason returns the caller-supplied reason (empty for reasonless
// automatic transitions).
func (e TimelineEntry) Reason() string { return e.reason }

// TriggeredBy returns the actor identity, or "system".
func (e TimelineEntry) TriggeredBy() string { return e.triggeredBy }

// Regeneration returns the regeneration detail attached to the entry,
// or nil for non-regeneration transitions.
func (e TimelineEntry) Regeneration() *RegenerationDetail { return e.regeneration }

// CreatedAt returns the entry timestamp; timeline order is CreatedAt ascending.
func (e TimelineEntry) CreatedAt() time.Time { return e.createdAt }

func (e *TimelineEntry) attachRegeneration(detail RegenerationDetail) {
	e.regeneration = &detail
}
