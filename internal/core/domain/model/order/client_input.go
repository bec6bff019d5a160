package order

import (
	"time"

	"compliance/internal/pkg/errs"
)

// ClientInputRequest is the structured information request created when an
// order enters CLIENT_INPUT_REQUIRED. At most one request is open per order;
// it is satisfied by the next ClientInputResponse.
type ClientInputRequest struct {
	requestedFields []string
	requestNotes    string
	deadlineDays    *int
	requestedAt     time.Time
	requestedBy     string
}

// NewClientInputRequest creates a validated request. Notes are mandatory;
// requestedFields may be empty when the notes alone describe what is needed.
func NewClientInputRequest(
	requestedFields []string,
	requestNotes string,
	deadlineDays *int,
	requestedAt time.Time,
	requestedBy string,
) (ClientInputRequest, error) {
	if requestNotes == "" {
		return ClientInputRequest{}, errs.NewValueIsRequiredError("requestNotes")
	}
	if requestedBy == "" {
		return ClientInputRequest{}, errs.NewValueIsRequiredError("requestedBy")
	}
	if deadlineDays != nil && *deadlineDays <= 0 {
		return ClientInputRequest{}, errs.NewValueIsOutOfRangeError("deadlineDays", *deadlineDays, 1, 365)
	}

	fields := make([]string, len(requestedFields))
	copy(fields, requestedFields)

	return ClientInputRequest{
		requestedFields: fields,
		requestNotes:    requestNotes,
		deadlineDays:    deadlineDays,
		requestedAt:     requestedAt,
		requestedBy:     requestedBy,
	}, nil
}

// RestoreClientInputRequest reconstructs a request from persistence.
func RestoreClientInputRequest(
	requestedFields []string,
	requestNotes string,
	deadlineDays *int,
	requestedAt time.Time,
	requestedBy string,
) ClientInputRequest {
	return ClientInputRequest{
		requestedFields: requestedFields,
		requestNotes:    requestNotes,
		deadlineDays:    deadlineDays,
		requestedAt:     requestedAt,
		requestedBy:     requestedBy,
	}
}

// RequestedFields returns the field ids the client is asked to provide.
func (r ClientInputRequest) RequestedFields() []string {
	fields := make([]string, len(r.requestedFields))
	copy(fields, r.requestedFields)
	return fields
}

// RequestNotes returns the admin's description of what is needed.
func (r ClientInputRequest) RequestNotes() string { return r.requestNotes }

// DeadlineDays returns the response deadline in days, or nil when open-ended.
func (r ClientInputRequest) DeadlineDays() *int { return r.deadlineDays }

// RequestedAt returns when the request was raised.
func (r ClientInputRequest) RequestedAt() time.Time { return r.requestedAt }

// RequestedBy returns the admin who raised the request.
func (r ClientInputRequest) RequestedBy() string { return r.requestedBy }

// ClientInputResponse is one submission from the client portal. Versions
// are sequential per order, starting at 1.
type ClientInputResponse struct {
	version     int
	payload     map[string]string
	submittedAt time.Time
}

// RestoreClientInputResponse reconstructs a response from persistence.
func RestoreClientInputResponse(version int, payload map[string]string, submittedAt time.Time) ClientInputResponse {
	return ClientInputResponse{
		version:     version,
		payload:     payload,
		submittedAt: submittedAt,
	}
}

// Version returns the response sequence number.
func (r ClientInputResponse) Version() int { return r.version }

// Payload returns the submitted field values.
func (r ClientInputResponse) Payload() map[string]string {
	payload := make(map[string]string, len(r.payload))
	for k, v := range r.payload {
		payload[k] = v
	}
	return payload
}

// SubmittedAt returns when the client submitted the response.
func (r ClientInputResponse) SubmittedAt() time.Time { return r.submittedAt }
