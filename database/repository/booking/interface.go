package bookingRepo

// BookingRepository is the read-side view of the childcare booking
// subsystem. The calendar deriver only consumes booleans from it; writes
// belong to the booking service.
type BookingRepository interface {
	// HasChildcareBooking reports whether a confirmed childcare booking
	// exists for the user on the given date (YYYY-MM-DD).
	HasChildcareBooking(userID, date string) (bool, error)
	// ChildcareMap resolves a set of dates in one query.
	ChildcareMap(userID string, dates []string) (map[string]bool, error)
}
