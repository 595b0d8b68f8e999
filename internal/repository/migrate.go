package repository

import "gorm.io/gorm"

// AutoMigrate creates the schema for every table the repositories own,
// plus the partial unique index that backstops the one-active-deposit
// rule when two transactions race.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&agencyModel{},
		&userModel{},
		&propertyModel{},
		&bedroomModel{},
		&applicationModel{},
		&depositModel{},
		&emailModel{},
	)
	if err != nil {
		return err
	}

	return db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_one_active_deposit
ON holding_deposits (agency_id, application_id)
WHERE status = 'held'
`).Error
}
