package models

import (
	"math"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer's rating of a completed booking. Only verified,
// unreported reviews are public and count toward a service's rating.
type Review struct {
	ID         string `bson:"id" json:"id"`
	BookingID  string `bson:"bookingId" json:"bookingId"`
	ReviewerID string `bson:"reviewerId" json:"reviewerId"`
	ProviderID string `bson:"providerId" json:"providerId"`
	ServiceID  string `bson:"serviceId" json:"serviceId"`

	Rating  int    `bson:"rating" json:"rating"`
	Comment string `bson:"comment" json:"comment"`

	IsVerified    bool   `bson:"isVerified" json:"isVerified"`
	IsReported    bool   `bson:"isReported" json:"isReported"`
	ReportReason  string `bson:"reportReason,omitempty" json:"reportReason,omitempty"`
	AdminResponse string `bson:"adminResponse,omitempty" json:"adminResponse,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsPublic reports whether anonymous callers may see the review.
func (r *Review) IsPublic() bool {
	return r.IsVerified && !r.IsReported
}

// ReviewFilter narrows review listings. PublicOnly hides unverified and
// reported reviews.
type ReviewFilter struct {
	ProviderID string
	ServiceID  string
	Rating     int
	PublicOnly bool
	Page       int
	Limit      int
}

// Rating is the aggregate score of a service.
type Rating struct {
	Average float64 `bson:"average" json:"average"`
	Count   int64   `bson:"count" json:"count"`
}

// RoundRating rounds an average to one decimal place.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
