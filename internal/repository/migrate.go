package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates every table the engine persists. The
// column-tagged models live in this package, so migration does too.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&resourceModel{},
		&bookingModel{},
		&auditLogModel{},
		&paymentModel{},
		&notificationModel{},
	); err != nil {
		return err
	}
	return migrateOverlapConstraint(db)
}

// migrateOverlapConstraint installs the no-overbooking exclusion constraint
// on Postgres: at most one active, non-deleted booking per resource for any
// overlapping tsrange. The range type is half-open, so it agrees with the
// service-level predicate. SQLite deployments rely on the in-process
// resource lock alone.
func migrateOverlapConstraint(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return err
	}

	return db.Exec(`
DO $$
BEGIN
    IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap') THEN
        ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
            EXCLUDE USING gist (
                resource_id WITH =,
                tsrange(start_time, end_time) WITH &&
            )
            WHERE (status IN ('requested', 'approved', 'paid') AND deleted_at IS NULL);
    END IF;
END
$$`).Error
}
