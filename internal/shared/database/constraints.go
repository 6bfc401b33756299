package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for payment integrity
func MigrateConstraints(db *gorm.DB) error {
	// A gateway payment id may settle exactly once
	err := db.Exec(`
		ALTER TABLE payment_records
		ADD CONSTRAINT IF NOT EXISTS unique_gateway_payment
		UNIQUE (gateway_payment_id);
	`).Error
	if err != nil {
		return err
	}

	// Index for outcome lookups by booking
	err = db.Exec(`
		CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_checkout_outcomes_booking_id
		ON checkout_outcomes (booking_id);
	`).Error
	if err != nil {
		return err
	}

	// Index for payment lookups by gateway order
	err = db.Exec(`
		CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_payment_records_order_id
		ON payment_records (gateway_order_id);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
