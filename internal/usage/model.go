package usage

import "time"

// Record is one user's quota accounting row.
type Record struct {
	UserKey  string
	Plan     string
	Limit    int
	Used     int
	ResetsAt time.Time
}

// Status is the quota view returned to the client.
type Status struct {
	Plan      string    `json:"plan"`
	Limit     int       `json:"limit"`
	Used      int       `json:"used"`
	Remaining int       `json:"remaining"`
	ResetsAt  time.Time `json:"resetsAt"`
}

// PlanGuest is the only plan; every caller is an anonymous session.
const PlanGuest = "guest"

// NextReset returns the first instant of the next calendar month in UTC.
func NextReset(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}
