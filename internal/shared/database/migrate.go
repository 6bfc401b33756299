package database

import (
	"venuepay/internal/payments"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&payments.PaymentRecord{},
		&payments.CheckoutOutcome{},
	)
}
