package entity

import "time"

type Note struct {
	Id        uint
	UserId    uint
	TagId     uint
	Text      *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Tag is filled by the note service after an explicit fetch, never by the store.
	Tag *Tag
}
