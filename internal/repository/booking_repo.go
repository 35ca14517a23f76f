package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"smartbooking/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID         int64          `gorm:"column:id;primaryKey"`
	ResourceID int64          `gorm:"column:resource_id;index"`
	UserID     int64          `gorm:"column:user_id;index"`
	StartTime  time.Time      `gorm:"column:start_time;index"`
	EndTime    time.Time      `gorm:"column:end_time"`
	Price      float64        `gorm:"column:price"`
	Status     string         `gorm:"column:status"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:         m.ID,
		ResourceID: m.ResourceID,
		UserID:     m.UserID,
		StartTime:  m.StartTime,
		EndTime:    m.EndTime,
		Price:      m.Price,
		Status:     domain.BookingStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:         b.ID,
		ResourceID: b.ResourceID,
		UserID:     b.UserID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Price:      b.Price,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func activeStatusStrings() []string {
	out := make([]string, 0, len(domain.ActiveStatuses))
	for _, s := range domain.ActiveStatuses {
		out = append(out, string(s))
	}
	return out
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// CountOverlapping counts active bookings on the resource overlapping the
// half-open range [start, end). The predicate start_time < end AND
// end_time > start mirrors timeslot.Overlaps; a booking ending exactly at
// start does not count. excludeBookingID lets an admin edit re-check a range
// without colliding with the booking being edited (pass 0 to exclude none).
func (r *BookingRepository) CountOverlapping(ctx context.Context, resourceID int64, start, end time.Time, excludeBookingID int64) (int64, error) {
	var cnt int64
	q := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("resource_id = ?", resourceID).
		Where("status IN ?", activeStatusStrings()).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeBookingID > 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}
	if err := q.Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

// UpdateStatusCAS flips the status only if the row still holds expected.
// Returns false when a concurrent writer got there first.
func (r *BookingRepository) UpdateStatusCAS(ctx context.Context, bookingID int64, expected, next domain.BookingStatus) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", bookingID, string(expected)).
		Updates(map[string]any{
			"status":     string(next),
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// UpdateRange rewrites start/end/price for an admin edit, guarded by the
// same expected-status check so a concurrent transition fails the edit
// instead of being overwritten.
func (r *BookingRepository) UpdateRange(ctx context.Context, bookingID int64, expected domain.BookingStatus, start, end time.Time, price float64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", bookingID, string(expected)).
		Updates(map[string]any{
			"start_time": start,
			"end_time":   end,
			"price":      price,
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// SoftDelete removes the booking from every active view; the row and its
// audit entries survive for the trail.
func (r *BookingRepository) SoftDelete(ctx context.Context, bookingID int64) error {
	tx := r.db.WithContext(ctx).Delete(&bookingModel{}, bookingID)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListActiveInWindow returns active bookings on the resource intersecting
// [from, to), ordered by start time. Same predicate as CountOverlapping so
// what a client sees as occupied is exactly what blocks new bookings.
func (r *BookingRepository) ListActiveInWindow(ctx context.Context, resourceID int64, from, to time.Time) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Where("status IN ?", activeStatusStrings()).
		Where("start_time < ? AND end_time > ?", to, from).
		Order("start_time").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) ListPending(ctx context.Context) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("status = ?", string(domain.BookingRequested)).
		Order("created_at").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}
