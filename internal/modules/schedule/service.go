package schedule

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"smartbooking/internal/domain"
	"smartbooking/internal/pkg/timeslot"
	"smartbooking/internal/pkg/timeutil"
)

const (
	occupiedLabel = "Occupied"
	maxWindow     = 92 * 24 * time.Hour
)

type Service struct {
	bookings  BookingLister
	resources ResourceGetter
}

func NewService(bookings BookingLister, resources ResourceGetter) *Service {
	return &Service{bookings: bookings, resources: resources}
}

// Schedule returns the occupied ranges and the remaining free slots on a
// resource inside [from, to). The occupied view is built from the same
// active-status window query the conflict check uses, so a slot shown free
// here is bookable right now.
func (s *Service) Schedule(ctx context.Context, viewerID int64, viewerRole string, resourceID int64, from, to time.Time) (*Schedule, error) {
	if !to.After(from) || to.Sub(from) > maxWindow {
		return nil, ErrValidation
	}

	if _, err := s.resources.GetByID(ctx, resourceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	bookings, err := s.bookings.ListActiveInWindow(ctx, resourceID, from, to)
	if err != nil {
		return nil, err
	}

	admin := viewerRole == string(domain.RoleAdmin)
	entries := make([]Entry, 0, len(bookings))
	busy := make([]timeslot.Slot, 0, len(bookings))
	for _, b := range bookings {
		busy = append(busy, timeslot.Slot{Start: b.StartTime, End: b.EndTime})

		e := Entry{
			Start: timeutil.Format(b.StartTime),
			End:   timeutil.Format(b.EndTime),
			Label: occupiedLabel,
		}
		if admin || b.UserID == viewerID {
			e.BookingID = b.ID
			e.UserID = b.UserID
			e.Status = string(b.Status)
			e.Price = b.Price
		}
		entries = append(entries, e)
	}

	free := timeslot.Subtract(from, to, busy)
	freeSlots := make([]FreeSlot, 0, len(free))
	for _, f := range free {
		freeSlots = append(freeSlots, FreeSlot{
			Start: timeutil.Format(f.Start),
			End:   timeutil.Format(f.End),
		})
	}

	return &Schedule{
		ResourceID: resourceID,
		From:       timeutil.Format(from),
		To:         timeutil.Format(to),
		Entries:    entries,
		FreeSlots:  freeSlots,
	}, nil
}

// CheckSlot is the preview probe behind slot pickers: it loads the occupied
// index for the candidate range once and answers from it. The verdict is
// advisory; CreateBooking re-checks under the resource lock.
func (s *Service) CheckSlot(ctx context.Context, resourceID int64, start, end time.Time) (bool, error) {
	slot, err := timeslot.New(start, end)
	if err != nil {
		return false, ErrValidation
	}

	if _, err := s.resources.GetByID(ctx, resourceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	bookings, err := s.bookings.ListActiveInWindow(ctx, resourceID, start, end)
	if err != nil {
		return false, err
	}

	index := timeslot.NewSet()
	for _, b := range bookings {
		index.Insert(timeslot.Slot{Start: b.StartTime, End: b.EndTime})
	}
	return !index.Conflicts(slot), nil
}
