package order

import (
	"fmt"

	"compliance/internal/pkg/errs"
)

// Action identifies an engine operation requested against an order.
// Actions resolve to target statuses through the per-status action table;
// the same action name can lead to different targets depending on the
// current status (e.g. "fail" from IN_PROGRESS, REGENERATING, FINALISING
// or DELIVERY_FAILED).
type Action int

const (
	// ActionUnknown represents an invalid or undefined action.
	ActionUnknown Action = iota

	// ActionMarkPaid records payment confirmation (CREATED -> PAID).
	ActionMarkPaid

	// ActionQueue hands a paid order to the generation queue.
	ActionQueue

	// ActionStart marks generation of the first draft as started.
	ActionStart

	// ActionDraftReady records that the first draft exists.
	ActionDraftReady

	// ActionSubmitReview moves a draft into internal review.
	ActionSubmitReview

	// ActionApprove approves the current document version. The only action
	// whose reason is optional.
	ActionApprove

	// ActionRegenerate requests a corrected document version.
	ActionRegenerate

	// ActionRequestInfo asks the client for missing information.
	ActionRequestInfo

	// ActionResume returns a client-input order to internal review.
	ActionResume

	// ActionStartRegeneration records the generator picking up a
	// regeneration request.
	ActionStartRegeneration

	// ActionRegenerationComplete records the generator returning a new version.
	ActionRegenerationComplete

	// ActionDeliver starts delivery of the finalised document.
	ActionDeliver

	// ActionComplete records successful delivery.
	ActionComplete

	// ActionDeliveryFailed records a failed delivery attempt.
	ActionDeliveryFailed

	// ActionRetryDelivery retries a failed delivery.
	ActionRetryDelivery

	// ActionFail escalates a processing or delivery failure.
	ActionFail

	// ActionRetry sends a failed order back to the queue.
	ActionRetry

	// ActionRollback returns a failed order to a status it previously
	// occupied; the target is caller-supplied and validated against the
	// order's timeline.
	ActionRollback

	// ActionCancel cancels the order. The deprecated admin "delete" is an
	// alias recorded with transition type admin_delete.
	ActionCancel

	// ActionArchive archives a completed order.
	ActionArchive
)

func allActions() []Action {
	return []Action{
		ActionMarkPaid, ActionQueue, ActionStart, ActionDraftReady,
		ActionSubmitReview, ActionApprove, ActionRegenerate, ActionRequestInfo,
		ActionResume, ActionStartRegeneration, ActionRegenerationComplete,
		ActionDeliver, ActionComplete, ActionDeliveryFailed, ActionRetryDelivery,
		ActionFail, ActionRetry, ActionRollback, ActionCancel, ActionArchive,
	}
}

func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionUnknown:              "unknown",
		ActionMarkPaid:             "mark_paid",
		ActionQueue:                "queue",
		ActionStart:                "start",
		ActionDraftReady:           "draft_ready",
		ActionSubmitReview:         "submit_review",
		ActionApprove:              "approve",
		ActionRegenerate:           "regenerate",
		ActionRequestInfo:          "request_info",
		ActionResume:               "resume",
		ActionStartRegeneration:    "start_regeneration",
		ActionRegenerationComplete: "regeneration_complete",
		ActionDeliver:              "deliver",
		ActionComplete:             "complete",
		ActionDeliveryFailed:       "delivery_failed",
		ActionRetryDelivery:        "retry_delivery",
		ActionFail:                 "fail",
		ActionRetry:                "retry",
		ActionRollback:             "rollback",
		ActionCancel:               "cancel",
		ActionArchive:              "archive",
	}
}

// String returns the wire name of the action, e.g. "request_info".
func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "unknown"
}

// ActionFromString parses a wire action name.
func ActionFromString(s string) (Action, error) {
	for action, name := range getActionStrings() {
		if name == s && action != ActionUnknown {
			return action, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause(
		"action",
		fmt.Errorf("%q is not a valid action", s),
	)
}

// Validate checks that the Action is one of the defined actions.
func (a Action) Validate() error {
	if a == ActionUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"action",
			fmt.Errorf("%d is not a valid action", int(a)),
		)
	}
	if _, ok := getActionStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"action",
			fmt.Errorf("%d is not a valid action", int(a)),
		)
	}
	return nil
}

// ReasonOptional reports whether the action may be applied without a reason.
// Approve is the only admin action exempt from the non-empty reason rule;
// automatic and client-response transitions carry their own exemption via
// the transition type.
func (a Action) ReasonOptional() bool {
	return a == ActionApprove
}
