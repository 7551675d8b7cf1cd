package order

// Action is a seller- or coordinator-facing operation that can be performed
// on an order in a given status. The mapping from status to actions is a
// fixed lookup table, mirroring the transition edges.
type Action string

const (
	ActionAccept         Action = "accept"
	ActionDecline        Action = "decline"
	ActionStartPreparing Action = "start_preparing"
	ActionMarkReady      Action = "mark_ready"
	ActionAssignPartner  Action = "assign_partner"
	ActionStartDelivery  Action = "start_delivery"
	ActionMarkDelivered  Action = "mark_delivered"
	ActionCancel         Action = "cancel"
)

// AvailableActions returns the legal actions for a status: the single
// primary forward action first, followed by decline/cancel where applicable.
// It is a pure lookup with no side effects; terminal and invalid statuses
// yield an empty slice.
func AvailableActions(s Status) []Action {
	switch s {
	case StatusNew:
		return []Action{ActionAccept, ActionDecline, ActionCancel}
	case StatusAccepted:
		return []Action{ActionStartPreparing, ActionCancel}
	case StatusPreparing:
		return []Action{ActionMarkReady, ActionCancel}
	case StatusReady:
		return []Action{ActionAssignPartner, ActionCancel}
	case StatusAssigned:
		return []Action{ActionStartDelivery}
	case StatusOutForDelivery:
		return []Action{ActionMarkDelivered}
	default:
		return []Action{}
	}
}
