package entity

import "time"

// Tag is global: it has no owner and is shared by the notes of every user.
type Tag struct {
	Id        uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
