package models

import "time"

// ChildcareBooking is the read-side view of a childcare arrangement made in
// the booking subsystem. The calendar deriver only cares that one exists for
// a given user and date.
type ChildcareBooking struct {
	ID         string    `bson:"id" json:"id"`
	UserID     string    `bson:"userId" json:"userId"`
	Date       string    `bson:"date" json:"date"` // YYYY-MM-DD
	ProviderID string    `bson:"providerId" json:"providerId"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
