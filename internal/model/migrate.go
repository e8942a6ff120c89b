package model

import "gorm.io/gorm"

// All returns every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&PersonalAccessToken{},
		&Tag{},
		&Note{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
