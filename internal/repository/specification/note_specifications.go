package specification

import "gorm.io/gorm"

type NoteOwnedByUser struct {
	UserID uint
}

func (s NoteOwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.user_id = ?", s.UserID)
}

// NewestUpdatedFirst orders by last modification, id breaking ties.
type NewestUpdatedFirst struct{}

func (s NewestUpdatedFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("updated_at DESC").Order("id DESC")
}
