package payments

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	CreateRecord(ctx context.Context, record *PaymentRecord) error
	GetByGatewayPaymentID(ctx context.Context, paymentID string) (*PaymentRecord, error)
	ExistsByGatewayPaymentID(ctx context.Context, paymentID string) (bool, error)

	SaveOutcome(ctx context.Context, outcome *CheckoutOutcome) error
	GetOutcomeByBookingID(ctx context.Context, bookingID string) (*CheckoutOutcome, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateRecord(ctx context.Context, record *PaymentRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) GetByGatewayPaymentID(ctx context.Context, paymentID string) (*PaymentRecord, error) {
	var record PaymentRecord
	err := r.db.WithContext(ctx).Where("gateway_payment_id = ?", paymentID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) ExistsByGatewayPaymentID(ctx context.Context, paymentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PaymentRecord{}).
		Where("gateway_payment_id = ?", paymentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) SaveOutcome(ctx context.Context, outcome *CheckoutOutcome) error {
	return r.db.WithContext(ctx).Create(outcome).Error
}

func (r *repository) GetOutcomeByBookingID(ctx context.Context, bookingID string) (*CheckoutOutcome, error) {
	var outcome CheckoutOutcome
	err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&outcome).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &outcome, nil
}
