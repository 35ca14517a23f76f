package booking

import "time"

type CreateBookingRequest struct {
	UserID     int64
	ResourceID int64
	StartTime  time.Time
	EndTime    time.Time
}

type createBookingBody struct {
	ResourceID int64  `json:"resource_id" binding:"required"`
	Start      string `json:"start" binding:"required"`
	End        string `json:"end" binding:"required"`
}

type payBody struct {
	Method string `json:"method" binding:"required"`
}

type adminUpdateBody struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

type cancelResult struct {
	Booking  interface{} `json:"booking"`
	Refunded bool        `json:"refunded"`
	Note     string      `json:"note"`
}
