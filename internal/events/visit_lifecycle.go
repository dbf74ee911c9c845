package events

import "time"

const VisitLifecycleTopic = "vms.visit.lifecycle.v1"

// AggregateVisit is the outbox aggregate type of visit events.
const AggregateVisit = "visit"

const (
	VisitRegistered     = "visit_registered"
	VisitSelfRegistered = "visit_self_registered"
	VisitApproved       = "visit_approved"
	VisitExited         = "visit_exited"
)

// VisitLifecycleEvent is published for every state change of a visit.
// HostID is empty while the visit waits for approval.
type VisitLifecycleEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	VisitID        string    `json:"visit_id"`
	BranchID       string    `json:"branch_id"`
	HostID         string    `json:"host_id,omitempty"`
	Estado         string    `json:"estado"`
	VisitorName    string    `json:"visitor_name"`
	DocumentNumber string    `json:"document_number"`
	Purpose        string    `json:"purpose,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// RequiresApproval reports whether staff must act on the event.
func (e VisitLifecycleEvent) RequiresApproval() bool {
	return e.EventType == VisitSelfRegistered
}
