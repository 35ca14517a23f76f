package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"smartbooking/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

type paymentModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	BookingID int64     `gorm:"column:booking_id;index"`
	Amount    float64   `gorm:"column:amount"`
	Method    string    `gorm:"column:method"`
	Kind      string    `gorm:"column:kind"`
	Reference string    `gorm:"column:reference"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (paymentModel) TableName() string { return "payments" }

func toDomainPayment(m paymentModel) domain.Payment {
	return domain.Payment{
		ID:        m.ID,
		BookingID: m.BookingID,
		Amount:    m.Amount,
		Method:    m.Method,
		Kind:      domain.PaymentKind(m.Kind),
		Reference: m.Reference,
		CreatedAt: m.CreatedAt,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	m := paymentModel{
		BookingID: p.BookingID,
		Amount:    p.Amount,
		Method:    p.Method,
		Kind:      string(p.Kind),
		Reference: p.Reference,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = toDomainPayment(m)
	return nil
}

func (r *PaymentRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	var rows []paymentModel
	tx := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).Order("id").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Payment, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainPayment(m))
	}
	return out, nil
}
