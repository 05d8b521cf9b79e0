package constant

import "fmt"

// AppointmentStatus defines the possible states of an appointment.
type AppointmentStatus string

const (
	// StatusPending is the state every new reservation starts in.
	StatusPending AppointmentStatus = "PENDING"
	// StatusConfirmed is set once the customer has been notified over LINE.
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	// StatusCompleted marks a visit that took place.
	StatusCompleted AppointmentStatus = "COMPLETED"
	// StatusCancelled marks a reservation that will not take place.
	StatusCancelled AppointmentStatus = "CANCELLED"
)

var statusLabels = map[AppointmentStatus]string{
	StatusPending:   "待審核",
	StatusConfirmed: "已確認",
	StatusCompleted: "已完成",
	StatusCancelled: "已取消",
}

// transitions lists the targets reachable from each status besides itself.
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusCompleted},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusPending},
	StatusCompleted: nil,
	StatusCancelled: nil,
}

// Statuses returns every status in display order.
func Statuses() []AppointmentStatus {
	return []AppointmentStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}
}

func (s AppointmentStatus) String() string {
	return string(s)
}

// Label returns the dashboard label.
func (s AppointmentStatus) Label() string {
	return statusLabels[s]
}

// Valid reports whether s is one of the known statuses.
func (s AppointmentStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// CanTransition reports whether an appointment in status s may move to next.
// Staying in the same status is always allowed.
func (s AppointmentStatus) CanTransition(next AppointmentStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// ParseStatus accepts either the stored code ("PENDING") or the dashboard label ("待審核").
func ParseStatus(v string) (AppointmentStatus, error) {
	if s := AppointmentStatus(v); s.Valid() {
		return s, nil
	}
	for s, label := range statusLabels {
		if label == v {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown appointment status %q", v)
}
