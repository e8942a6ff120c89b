package specification

import "gorm.io/gorm"

// TagUsedByUser keeps tags referenced by at least one note of the user.
type TagUsedByUser struct {
	UserID uint
}

func (s TagUsedByUser) Apply(db *gorm.DB) *gorm.DB {
	sub := db.Session(&gorm.Session{NewDB: true}).
		Table("notes").
		Select("notes.tag_id").
		Where("notes.user_id = ?", s.UserID)
	return db.Where("tags.id IN (?)", sub)
}

type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}

// AlphabeticalByName orders by name, id breaking ties between duplicates.
type AlphabeticalByName struct{}

func (s AlphabeticalByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC").Order("id ASC")
}
