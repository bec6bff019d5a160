package queries

import "compliance/internal/core/domain/model/order"

// statusName maps a stored status discriminant to its wire name.
func statusName(status int) string {
	return order.Status(status).String()
}

// transitionTypeName maps a stored transition type discriminant to its wire name.
func transitionTypeName(transitionType int) string {
	return order.TransitionType(transitionType).String()
}
