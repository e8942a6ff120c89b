package specification

import "gorm.io/gorm"

// ByEmail is an exact, case-sensitive match.
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// Token Specs

type TokenOwnedBy struct {
	UserID uint
}

func (s TokenOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByTokenHash struct {
	Hash string
}

func (s ByTokenHash) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("token = ?", s.Hash)
}
