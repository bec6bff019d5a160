package order

import (
	"errors"
	"fmt"
	"time"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrServiceIsNotConstructed is returned when a Service value was not
	// created through NewService.
	ErrServiceIsNotConstructed = errors.New("Service must be created via NewService")
)

// Service describes the compliance product an order is for.
type Service struct {
	name     string
	code     string
	category string

	isConstructed bool
}

// NewService creates a validated Service value. Name and code are required;
// category may be empty.
func NewService(name, code, category string) (Service, error) {
	if name == "" {
		return Service{}, errs.NewValueIsRequiredError("service name")
	}
	if code == "" {
		return Service{}, errs.NewValueIsRequiredError("service code")
	}
	return Service{
		name:          name,
		code:          code,
		category:      category,
		isConstructed: true,
	}, nil
}

// Name returns the service display name.
func (s Service) Name() string { return s.name }

// Code returns the service code used by pricing and reporting.
func (s Service) Code() string { return s.code }

// Category returns the service category, possibly empty.
func (s Service) Category() string { return s.category }

// Validate ensures the value was created via NewService.
func (s Service) Validate() error {
	if !s.isConstructed {
		return ErrServiceIsNotConstructed
	}
	return nil
}

// Order is the aggregate root of the compliance pipeline. It owns the
// order's status, SLA bookkeeping, version lock and client-input exchange,
// and is the only place status transitions are applied.
//
// Invariants:
//   - Status changes only through the transition methods below, which
//     validate against the allowed-transition table and emit exactly one
//     TimelineEntry per accepted transition.
//   - UpdatedAt changes on every accepted transition and marks entry into
//     the current status.
//   - VersionLocked is set together with ApprovedVersion by Approve and is
//     never cleared.
//   - The SLA clock pauses on entering CLIENT_INPUT_REQUIRED and resumes
//     on leaving it; paused time accumulates in SLAPausedTotal.
type Order struct {
	id       kernel.UUID
	status   Status
	priority bool

	customer Customer
	service  Service
	pricing  kernel.Money

	slaHours       *int
	slaPausedAt    *time.Time
	slaPausedTotal time.Duration

	versionLocked   bool
	approvedVersion int

	internalNotes        string
	clientInputRequest   *ClientInputRequest
	clientInputResponses []ClientInputResponse

	createdAt time.Time
	updatedAt time.Time

	// aggregateVersion backs optimistic concurrency in the store; bumped
	// on every successful write, never by the domain.
	aggregateVersion int

	isConstructed bool
}

// guardedActions are actions with dedicated operations carrying extra state;
// ApplyAction rejects them so their invariants cannot be bypassed.
func guardedActions() map[Action]string {
	return map[Action]string{
		ActionApprove:     "approve requires a document version; use the approve operation",
		ActionRegenerate:  "regenerate requires correction notes; use the regeneration operation",
		ActionRequestInfo: "request_info requires a client input request; use the request-info operation",
		ActionRollback:    "rollback requires an explicit target; use the rollback operation",
	}
}

// NewOrder creates an order in CREATED status.
//
// slaHours, when set, is the SLA budget in active hours and must be positive.
func NewOrder(
	id kernel.UUID,
	customer Customer,
	service Service,
	pricing kernel.Money,
	slaHours *int,
	priority bool,
	internalNotes string,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customer.Validate(),
		service.Validate(),
		pricing.Validate(),
	); err != nil {
		return nil, err
	}
	if slaHours != nil && *slaHours <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"slaHours",
			fmt.Errorf("%d is not greater than 0", *slaHours),
		)
	}
	if now.IsZero() {
		return nil, errs.NewValueIsRequiredError("now")
	}

	return &Order{
		id:            id,
		status:        Created,
		priority:      priority,
		customer:      customer,
		service:       service,
		pricing:       pricing,
		slaHours:      slaHours,
		internalNotes: internalNotes,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence. The status must be a
// valid pipeline status; creation-time rules are not re-run.
func RestoreOrder(
	id kernel.UUID,
	customer Customer,
	service Service,
	pricing kernel.Money,
	slaHours *int,
	priority bool,
	status Status,
	versionLocked bool,
	approvedVersion int,
	internalNotes string,
	clientInputRequest *ClientInputRequest,
	clientInputResponses []ClientInputResponse,
	slaPausedAt *time.Time,
	slaPausedTotal time.Duration,
	createdAt, updatedAt time.Time,
	aggregateVersion int,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:                   id,
		status:               status,
		priority:             priority,
		customer:             customer,
		service:              service,
		pricing:              pricing,
		slaHours:             slaHours,
		slaPausedAt:          slaPausedAt,
		slaPausedTotal:       slaPausedTotal,
		versionLocked:        versionLocked,
		approvedVersion:      approvedVersion,
		internalNotes:        internalNotes,
		clientInputRequest:   clientInputRequest,
		clientInputResponses: clientInputResponses,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
		aggregateVersion:     aggregateVersion,
		isConstructed:        true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// Status returns the current pipeline status.
func (o *Order) Status() Status { return o.status }

// Priority reports whether the order is flagged as priority.
func (o *Order) Priority() bool { return o.priority }

// Customer returns the order's customer.
func (o *Order) Customer() Customer { return o.customer }

// Service returns the ordered compliance service.
func (o *Order) Service() Service { return o.service }

// Pricing returns the agreed price.
func (o *Order) Pricing() kernel.Money { return o.pricing }

// SLAHours returns the SLA budget in active hours, or nil when unbounded.
func (o *Order) SLAHours() *int { return o.slaHours }

// SLAPausedAt returns the start of the current SLA pause, or nil when the
// clock is running.
func (o *Order) SLAPausedAt() *time.Time { return o.slaPausedAt }

// SLAPausedTotal returns the accumulated paused duration.
func (o *Order) SLAPausedTotal() time.Duration { return o.slaPausedTotal }

// VersionLocked reports whether a document version has been approved.
func (o *Order) VersionLocked() bool { return o.versionLocked }

// ApprovedVersion returns the approved document version number, 0 when none.
func (o *Order) ApprovedVersion() int { return o.approvedVersion }

// InternalNotes returns the free-text admin notes.
func (o *Order) InternalNotes() string { return o.internalNotes }

// ClientInputRequest returns the open information request, or nil.
func (o *Order) ClientInputRequest() *ClientInputRequest { return o.clientInputRequest }

// ClientInputResponses returns the recorded client responses in submission order.
func (o *Order) ClientInputResponses() []ClientInputResponse {
	responses := make([]ClientInputResponse, len(o.clientInputResponses))
	copy(responses, o.clientInputResponses)
	return responses
}

// CreatedAt returns the order creation time.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the time of the last accepted transition, which is also
// the time the order entered its current status.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// AggregateVersion returns the optimistic-concurrency version of the record.
func (o *Order) AggregateVersion() int { return o.aggregateVersion }

// ApplyAction validates and applies a plain transition: it resolves the
// action against the current status, enforces the reason rule and terminal
// guard, adjusts the SLA clock and returns the resulting timeline entry.
//
// Actions with dedicated operations (approve, regenerate, request_info,
// rollback) are rejected here so their extra invariants cannot be skipped.
func (o *Order) ApplyAction(
	action Action,
	transitionType TransitionType,
	reason, actor string,
	now time.Time,
) (TimelineEntry, error) {
	if err := o.Validate(); err != nil {
		return TimelineEntry{}, err
	}
	if err := action.Validate(); err != nil {
		return TimelineEntry{}, err
	}
	if err := transitionType.Validate(); err != nil {
		return TimelineEntry{}, err
	}
	if hint, ok := guardedActions()[action]; ok {
		return TimelineEntry{}, errs.NewValueIsInvalidErrorWithCause("action", errors.New(hint))
	}
	// A locked order is bound to its approved document version; actions
	// that produce a new version are rejected. The lock survives rollback.
	if o.versionLocked && (action == ActionDraftReady || action == ActionRegenerationComplete) {
		return TimelineEntry{}, errs.NewAlreadyLockedError(o.approvedVersion, 0)
	}
	if err := o.checkNotTerminal(action); err != nil {
		return TimelineEntry{}, err
	}

	target, err := o.status.Resolve(action)
	if err != nil {
		return TimelineEntry{}, err
	}
	if transitionType.IsManual() && !action.ReasonOptional() && reason == "" {
		return TimelineEntry{}, errs.NewValueIsRequiredError("reason")
	}

	return o.transitionTo(target, transitionType, reason, actor, now)
}

// Approve approves the given document version, locks the order and moves it
// to FINALISING. The version must already be validated against the document
// store by the caller.
//
// Approving the already-approved version is an idempotent no-op returning a
// nil entry. Approving while a different version is approved fails with
// AlreadyLocked.
func (o *Order) Approve(version int, notes, actor string, now time.Time) (*TimelineEntry, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if version <= 0 {
		return nil, errs.NewVersionIsInvalidErrorWithCause(
			"version",
			fmt.Errorf("%d is not a positive version number", version),
		)
	}
	if o.approvedVersion == version {
		return nil, nil
	}
	if o.versionLocked {
		return nil, errs.NewAlreadyLockedError(o.approvedVersion, version)
	}
	if err := o.checkNotTerminal(ActionApprove); err != nil {
		return nil, err
	}

	target, err := o.status.Resolve(ActionApprove)
	if err != nil {
		return nil, err
	}

	// Approve is the one manual action exempt from the reason rule.
	if notes == "" {
		notes = fmt.Sprintf("version %d approved", version)
	}
	entry, err := o.transitionTo(target, AdminManual, notes, actor, now)
	if err != nil {
		return nil, err
	}

	// Lock only after the transition is accepted so a rejected approve
	// leaves the aggregate untouched.
	o.versionLocked = true
	o.approvedVersion = version
	return &entry, nil
}

// RequestRegeneration asks for a corrected document version, recording the
// reason code, correction notes, affected sections and guardrails on the
// timeline entry. Rejected when the order is version locked.
func (o *Order) RequestRegeneration(
	detail RegenerationDetail,
	correctionNotes, actor string,
	now time.Time,
) (TimelineEntry, error) {
	if err := o.Validate(); err != nil {
		return TimelineEntry{}, err
	}
	if correctionNotes == "" {
		return TimelineEntry{}, errs.NewValueIsRequiredError("correctionNotes")
	}
	if err := detail.ReasonCode.Validate(); err != nil {
		return TimelineEntry{}, err
	}
	if o.versionLocked {
		return TimelineEntry{}, errs.NewAlreadyLockedError(o.approvedVersion, 0)
	}
	if err := o.checkNotTerminal(ActionRegenerate); err != nil {
		return TimelineEntry{}, err
	}

	target, err := o.status.Resolve(ActionRegenerate)
	if err != nil {
		return TimelineEntry{}, err
	}

	entry, err := o.transitionTo(target, AdminManual, correctionNotes, actor, now)
	if err != nil {
		return TimelineEntry{}, err
	}

	entry.attachRegeneration(detail)
	return entry, nil
}

// RequestClientInfo moves the order to CLIENT_INPUT_REQUIRED, records the
// information request and pauses the SLA clock. Rejected when version locked.
func (o *Order) RequestClientInfo(
	requestedFields []string,
	requestNotes string,
	deadlineDays *int,
	actor string,
	now time.Time,
) (TimelineEntry, error) {
	if err := o.Validate(); err != nil {
		return TimelineEntry{}, err
	}
	if o.versionLocked {
		return TimelineEntry{}, errs.NewAlreadyLockedError(o.approvedVersion, 0)
	}
	if err := o.checkNotTerminal(ActionRequestInfo); err != nil {
		return TimelineEntry{}, err
	}

	request, err := NewClientInputRequest(requestedFields, requestNotes, deadlineDays, now, actor)
	if err != nil {
		return TimelineEntry{}, err
	}

	target, err := o.status.Resolve(ActionRequestInfo)
	if err != nil {
		return TimelineEntry{}, err
	}

	entry, err := o.transitionTo(target, AdminManual, requestNotes, actor, now)
	if err != nil {
		return TimelineEntry{}, err
	}

	o.clientInputRequest = &request
	return entry, nil
}

// RecordClientResponse appends a client response, resumes the SLA clock and
// returns the order to INTERNAL_REVIEW with a client_response entry.
func (o *Order) RecordClientResponse(
	payload map[string]string,
	now time.Time,
) (ClientInputResponse, TimelineEntry, error) {
	if err := o.Validate(); err != nil {
		return ClientInputResponse{}, TimelineEntry{}, err
	}
	if len(payload) == 0 {
		return ClientInputResponse{}, TimelineEntry{}, errs.NewValueIsRequiredError("payload")
	}
	if err := o.checkNotTerminal(ActionResume); err != nil {
		return ClientInputResponse{}, TimelineEntry{}, err
	}

	target, err := o.status.Resolve(ActionResume)
	if err != nil {
		return ClientInputResponse{}, TimelineEntry{}, err
	}

	entry, err := o.transitionTo(target, ClientResponse, "", "client", now)
	if err != nil {
		return ClientInputResponse{}, TimelineEntry{}, err
	}

	copied := make(map[string]string, len(payload))
	for k, v := range payload {
		copied[k] = v
	}
	response := ClientInputResponse{
		version:     len(o.clientInputResponses) + 1,
		payload:     copied,
		submittedAt: now,
	}
	o.clientInputResponses = append(o.clientInputResponses, response)
	// The open request is satisfied; the responses and timeline keep the audit.
	o.clientInputRequest = nil

	return response, entry, nil
}

// Rollback returns a FAILED order to a status it previously occupied.
// The target is caller-supplied and validated against history: it must be a
// non-terminal status present in the order's own timeline.
func (o *Order) Rollback(
	target Status,
	history []Status,
	reason, actor string,
	now time.Time,
) (TimelineEntry, error) {
	if err := o.Validate(); err != nil {
		return TimelineEntry{}, err
	}
	if err := target.Validate(); err != nil {
		return TimelineEntry{}, err
	}
	if reason == "" {
		return TimelineEntry{}, errs.NewValueIsRequiredError("reason")
	}
	if o.status != Failed {
		if o.status.IsTerminal() {
			return TimelineEntry{}, errs.NewOrderTerminalError(o.status.String())
		}
		return TimelineEntry{}, errs.NewInvalidTransitionErrorWithCause(
			o.status.String(),
			target.String(),
			allowedTargetStrings(o.status),
			errors.New("rollback is only available from FAILED"),
		)
	}

	allowed := rollbackTargets(history)
	if target.IsTerminal() || !containsStatus(allowed, target) {
		return TimelineEntry{}, errs.NewInvalidTransitionErrorWithCause(
			o.status.String(),
			target.String(),
			statusStrings(allowed),
			errors.New("rollback target must be a non-terminal status the order previously occupied"),
		)
	}

	return o.transitionTo(target, AdminManual, reason, actor, now)
}

// checkNotTerminal rejects operations on sink statuses. Archiving a
// completed order is the single exception.
func (o *Order) checkNotTerminal(action Action) error {
	if o.status == Completed && action == ActionArchive {
		return nil
	}
	if o.status.IsTerminal() {
		return errs.NewOrderTerminalError(o.status.String())
	}
	return nil
}

// transitionTo performs the accepted transition: builds the timeline entry,
// adjusts the SLA clock on entering/leaving CLIENT_INPUT_REQUIRED and
// advances status and updatedAt.
func (o *Order) transitionTo(
	target Status,
	transitionType TransitionType,
	reason, actor string,
	now time.Time,
) (TimelineEntry, error) {
	if actor == "" {
		actor = "system"
	}

	entry, err := NewTimelineEntry(o.id, o.status, target, transitionType, reason, actor, now)
	if err != nil {
		return TimelineEntry{}, err
	}

	if o.status == ClientInputRequired && target != ClientInputRequired && o.slaPausedAt != nil {
		o.slaPausedTotal += now.Sub(*o.slaPausedAt)
		o.slaPausedAt = nil
	}
	if target == ClientInputRequired {
		paused := now
		o.slaPausedAt = &paused
	}

	o.status = target
	o.updatedAt = now
	return entry, nil
}

func rollbackTargets(history []Status) []Status {
	seen := make(map[Status]bool, len(history))
	targets := make([]Status, 0, len(history))
	for _, s := range history {
		if s.IsTerminal() || seen[s] {
			continue
		}
		seen[s] = true
		targets = append(targets, s)
	}
	return targets
}

func containsStatus(statuses []Status, target Status) bool {
	for _, s := range statuses {
		if s == target {
			return true
		}
	}
	return false
}

func statusStrings(statuses []Status) []string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = s.String()
	}
	return names
}
