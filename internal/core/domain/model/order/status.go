package order

import (
	"fmt"

	"compliance/internal/pkg/errs"
)

// Status represents the lifecycle state of a compliance order.
// It implements the pipeline state machine; every transition goes through
// the engine and is validated against the allowed-transition table below.
//
// Pipeline (happy path):
//
//	CREATED -> PAID -> QUEUED -> IN_PROGRESS -> DRAFT_READY -> INTERNAL_REVIEW
//	    -> FINALISING -> DELIVERING -> COMPLETED -> ARCHIVED
//
// From INTERNAL_REVIEW the order can detour through REGEN_REQUESTED ->
// REGENERATING or CLIENT_INPUT_REQUIRED and return to INTERNAL_REVIEW.
// FAILED allows a retry back to QUEUED or an explicit rollback to a status
// the order previously occupied. COMPLETED, CANCELLED and ARCHIVED are sinks.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status: the order exists but payment has not
	// been confirmed yet.
	Created

	// Paid indicates payment capture was confirmed by the payment collaborator.
	Paid

	// Queued indicates the order is waiting for document generation capacity.
	Queued

	// InProgress indicates the document generator is producing the first draft.
	InProgress

	// DraftReady indicates a draft document version exists and awaits review intake.
	DraftReady

	// InternalReview indicates an admin is reviewing the current document version.
	InternalReview

	// RegenRequested indicates an admin asked for a corrected document version.
	RegenRequested

	// Regenerating indicates the generator is producing the corrected version.
	Regenerating

	// ClientInputRequired indicates the order is blocked on information from
	// the client; the SLA clock is paused while in this status.
	ClientInputRequired

	// Finalising indicates the approved version is being prepared for delivery.
	Finalising

	// Delivering indicates delivery to the client is in flight.
	Delivering

	// Completed is a terminal status: the order was delivered.
	// The only operation still accepted is archiving.
	Completed

	// DeliveryFailed indicates the delivery attempt failed and may be retried.
	DeliveryFailed

	// Failed indicates a processing failure requiring admin intervention.
	Failed

	// Cancelled is a terminal status: the order was cancelled.
	Cancelled

	// Archived is a terminal status: a completed order moved out of the
	// active pipeline.
	Archived
)

// AllStatuses lists every valid status in pipeline order. Used by the read
// side to produce complete snapshots including zero counts.
func AllStatuses() []Status {
	return []Status{
		Created, Paid, Queued, InProgress, DraftReady, InternalReview,
		RegenRequested, Regenerating, ClientInputRequired, Finalising,
		Delivering, Completed, DeliveryFailed, Failed, Cancelled, Archived,
	}
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:             "UNKNOWN",
		Created:             "CREATED",
		Paid:                "PAID",
		Queued:              "QUEUED",
		InProgress:          "IN_PROGRESS",
		DraftReady:          "DRAFT_READY",
		InternalReview:      "INTERNAL_REVIEW",
		RegenRequested:      "REGEN_REQUESTED",
		Regenerating:        "REGENERATING",
		ClientInputRequired: "CLIENT_INPUT_REQUIRED",
		Finalising:          "FINALISING",
		Delivering:          "DELIVERING",
		Completed:           "COMPLETED",
		DeliveryFailed:      "DELIVERY_FAILED",
		Failed:              "FAILED",
		Cancelled:           "CANCELLED",
		Archived:            "ARCHIVED",
	}
}

// String returns the wire/persistence name of the status, e.g. "INTERNAL_REVIEW".
// Implements fmt.Stringer and is safe on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// StatusFromString parses a wire/persistence status name.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks that the Status is one of the defined pipeline statuses.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", int(s)),
		)
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", int(s)),
		)
	}
	return nil
}

// IsTerminal reports whether the status is a sink. Terminal orders reject
// every operation except archiving a completed order.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled || s == Archived
}

// actionTable is the single source of truth for the allowed-transition graph:
// for each status, the admin/system actions it accepts and the status each
// action leads to. Rollback from FAILED is intentionally absent; it is
// resolved against the order's own timeline (see Order.Rollback).
func actionTable() map[Status]map[Action]Status {
	return map[Status]map[Action]Status{
		Created: {
			ActionMarkPaid: Paid,
			ActionCancel:   Cancelled,
		},
		Paid: {
			ActionQueue:  Queued,
			ActionCancel: Cancelled,
		},
		Queued: {
			ActionStart:  InProgress,
			ActionCancel: Cancelled,
		},
		InProgress: {
			ActionDraftReady: DraftReady,
			ActionFail:       Failed,
		},
		DraftReady: {
			ActionSubmitReview: InternalReview,
		},
		InternalReview: {
			ActionApprove:     Finalising,
			ActionRegenerate:  RegenRequested,
			ActionRequestInfo: ClientInputRequired,
			ActionCancel:      Cancelled,
		},
		RegenRequested: {
			ActionStartRegeneration: Regenerating,
		},
		Regenerating: {
			ActionRegenerationComplete: InternalReview,
			ActionFail:                 Failed,
		},
		ClientInputRequired: {
			ActionResume: InternalReview,
		},
		Finalising: {
			ActionDeliver: Delivering,
			ActionFail:    Failed,
		},
		Delivering: {
			ActionComplete:       Completed,
			ActionDeliveryFailed: DeliveryFailed,
		},
		DeliveryFailed: {
			ActionRetryDelivery: Delivering,
			ActionFail:          Failed,
		},
		Failed: {
			ActionRetry: Queued,
		},
		Completed: {
			ActionArchive: Archived,
		},
	}
}

// AllowedActions returns the actions accepted in this status, in a stable
// order. Surfaced to callers on rejection so UIs can resynchronise.
func (s Status) AllowedActions() []Action {
	accepted := actionTable()[s]
	actions := make([]Action, 0, len(accepted))
	for _, action := range allActions() {
		if _, ok := accepted[action]; ok {
			actions = append(actions, action)
		}
	}
	return actions
}

// AllowedTargets returns the statuses reachable from this status through
// the action table, in a stable order.
func (s Status) AllowedTargets() []Status {
	accepted := actionTable()[s]
	seen := make(map[Status]bool, len(accepted))
	targets := make([]Status, 0, len(accepted))
	for _, action := range allActions() {
		if target, ok := accepted[action]; ok && !seen[target] {
			seen[target] = true
			targets = append(targets, target)
		}
	}
	return targets
}

func allowedTargetStrings(s Status) []string {
	targets := s.AllowedTargets()
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = t.String()
	}
	return names
}

// Resolve maps an action to its target status from this status.
// Returns an InvalidTransitionError naming the source, the requested action
// and the allowed target set when the action is not accepted.
func (s Status) Resolve(action Action) (Status, error) {
	if target, ok := actionTable()[s][action]; ok {
		return target, nil
	}
	return Unknown, errs.NewInvalidTransitionErrorWithCause(
		s.String(),
		action.String(),
		allowedTargetStrings(s),
		fmt.Errorf("action %s is not accepted in status %s", action, s),
	)
}

// CanTransitionTo reports whether target is reachable from this status
// through any action in the table.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range actionTable()[s] {
		if t == target {
			return true
		}
	}
	return false
}
