package model

import "time"

// Response is the envelope used by the console's own JSON endpoints.
type Response struct {
	Status    string    `json:"status"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Error     *APIError `json:"error"`
}

// DateRange is the from/to filter shared by finance and company reports.
// Both bounds are YYYY-MM-DD strings and either may be empty.
type DateRange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// IsZero reports whether neither bound is set.
func (d DateRange) IsZero() bool {
	return d.From == "" && d.To == ""
}

// Valid reports whether From is not after To when both are set.
func (d DateRange) Valid() bool {
	if d.From == "" || d.To == "" {
		return true
	}
	from, err1 := time.Parse(time.DateOnly, d.From)
	to, err2 := time.Parse(time.DateOnly, d.To)
	if err1 != nil || err2 != nil {
		return false
	}
	return !from.After(to)
}
