package booking

// Status values mirror the booking lifecycle owned by the scheduling side.
// This service only ever reads bookings; it never transitions them.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsCompleted() bool { return s == StatusCompleted }
