package model

import "time"

type User struct {
	Id              uint       `gorm:"primaryKey;autoIncrement"`
	Name            string     `gorm:"type:varchar(255);not null"`
	Email           string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password        string     `gorm:"type:varchar(255);not null"`
	EmailVerifiedAt *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

type PersonalAccessToken struct {
	Id         uint   `gorm:"primaryKey;autoIncrement"`
	UserId     uint   `gorm:"not null;index"`
	User       *User  `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	Name       string `gorm:"type:varchar(255);not null"`
	Token      string `gorm:"type:varchar(64);uniqueIndex;not null"`
	LastUsedAt *time.Time
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (PersonalAccessToken) TableName() string {
	return "personal_access_tokens"
}
