package model

import "time"

type Note struct {
	Id        uint      `gorm:"primaryKey;autoIncrement"`
	UserId    uint      `gorm:"not null;index"`
	User      *User     `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	TagId     uint      `gorm:"not null;index"`
	Tag       *Tag      `gorm:"foreignKey:TagId;constraint:OnDelete:RESTRICT"`
	Text      *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;index"`
}

func (Note) TableName() string {
	return "notes"
}
