package schedule

// Entry is one occupied range on a resource's calendar. Viewers only see
// booking details for their own bookings; everything else is redacted down
// to the time range and the "Occupied" label. Admins see everything.
type Entry struct {
	Start     string  `json:"start"`
	End       string  `json:"end"`
	Label     string  `json:"label"`
	BookingID int64   `json:"booking_id,omitempty"`
	UserID    int64   `json:"user_id,omitempty"`
	Status    string  `json:"status,omitempty"`
	Price     float64 `json:"price,omitempty"`
}

type FreeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Schedule struct {
	ResourceID int64      `json:"resource_id"`
	From       string     `json:"from"`
	To         string     `json:"to"`
	Entries    []Entry    `json:"entries"`
	FreeSlots  []FreeSlot `json:"free_slots"`
}
