package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusAccepted   BookingStatus = "accepted"
	StatusInProgress BookingStatus = "in-progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusRejected   BookingStatus = "rejected"
)

// ActiveStatuses hold a provider's time. Only these count toward conflicts.
var ActiveStatuses = []BookingStatus{StatusPending, StatusAccepted, StatusInProgress}

// IsValid reports whether s is a known booking status.
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// IsActive reports whether s still claims the provider's slot.
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusAccepted || s == StatusInProgress
}

// IsTerminal reports whether no further transitions leave s.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}

// PaymentStatus is owned by the payment collaborator.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func (p PaymentStatus) IsValid() bool {
	return p == PaymentPending || p == PaymentPaid || p == PaymentRefunded
}

// CancellationBy records which party cancelled.
type CancellationBy string

const (
	CancelledByUser     CancellationBy = "user"
	CancelledByProvider CancellationBy = "provider"
	CancelledByAdmin    CancellationBy = "admin"
)

// Field length limits.
const (
	MaxSpecialInstructionsLength = 500
	MaxNotesLength               = 500
	MaxCancellationReasonLength  = 200
)

// BookingAddon is an addon line frozen at booking time. Price is the line
// total (unit price times quantity).
type BookingAddon struct {
	AddonID  string  `bson:"addonId" json:"addonId"`
	Name     string  `bson:"name" json:"name"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Price    float64 `bson:"price" json:"price"`
}

// Booking is a reservation of a provider's time for a service.
type Booking struct {
	ID         string `bson:"id" json:"id"`
	ServiceID  string `bson:"serviceId" json:"serviceId"`
	CustomerID string `bson:"customerId" json:"customerId"`
	ProviderID string `bson:"providerId" json:"providerId"`

	ScheduledAt     time.Time `bson:"scheduledAt" json:"scheduledAt"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	EndsAt          time.Time `bson:"endsAt" json:"endsAt"`

	Status        BookingStatus  `bson:"status" json:"status"`
	Addons        []BookingAddon `bson:"addons" json:"addons"`
	Price         float64        `bson:"price" json:"price"`
	PaymentStatus PaymentStatus  `bson:"paymentStatus" json:"paymentStatus"`
	Address       Address        `bson:"address" json:"address"`

	SpecialInstructions string `bson:"specialInstructions,omitempty" json:"specialInstructions,omitempty"`
	ProviderNotes       string `bson:"providerNotes,omitempty" json:"providerNotes,omitempty"`
	CustomerNotes       string `bson:"customerNotes,omitempty" json:"customerNotes,omitempty"`

	CancellationReason string         `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CancellationBy     CancellationBy `bson:"cancellationBy,omitempty" json:"cancellationBy,omitempty"`
	CancellationTime   *time.Time     `bson:"cancellationTime,omitempty" json:"cancellationTime,omitempty"`
	CompletedAt        *time.Time     `bson:"completedAt,omitempty" json:"completedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Window returns the half-open interval [start, end) the booking reserves.
func (b *Booking) Window() (time.Time, time.Time) {
	return b.ScheduledAt, b.ScheduledAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// BookingStatusUpdate is the set of fields a status transition writes.
type BookingStatusUpdate struct {
	From               BookingStatus
	To                 BookingStatus
	ProviderNotes      *string
	CustomerNotes      *string
	CancellationReason string
	CancellationBy     CancellationBy
	CancellationTime   *time.Time
	CompletedAt        *time.Time
	UpdatedAt          time.Time
}

// BookingFilter narrows booking listings.
type BookingFilter struct {
	CustomerID string
	ProviderID string
	Status     BookingStatus
	Page       int
	Limit      int
}

// StatusStat is one row of the booking statistics.
type StatusStat struct {
	Status      BookingStatus `bson:"_id" json:"status"`
	Count       int64         `bson:"count" json:"count"`
	TotalAmount float64       `bson:"totalAmount" json:"totalAmount"`
}

// BookingStats summarises all bookings.
type BookingStats struct {
	Total    int64        `json:"total"`
	ByStatus []StatusStat `json:"byStatus"`
}

// BookingFieldUpdate is an administrative patch. A nil pointer leaves the
// field unchanged; a pointer to "" clears a text field.
type BookingFieldUpdate struct {
	ScheduledAt         *time.Time
	EndsAt              *time.Time
	Address             *Address
	SpecialInstructions *string
	ProviderNotes       *string
	CustomerNotes       *string
	UpdatedAt           time.Time
}
