package dto

import (
	"bytes"
	"encoding/json"
)

// OptionalText distinguishes an absent "text" key from an explicit null.
type OptionalText struct {
	Present bool
	Value   *string
}

func (o *OptionalText) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

type CreateNoteRequest struct {
	Text  *string `json:"text" validate:"omitempty,max=65535"`
	TagId *uint   `json:"tag_id" validate:"required"`
}

type UpdateNoteRequest struct {
	Text  OptionalText `json:"text" validate:"omitempty,max=65535"`
	TagId *uint        `json:"tag_id"`
}

type NoteTagDTO struct {
	Id   uint   `json:"id"`
	Name string `json:"name"`
}

type NoteResponse struct {
	Id        uint        `json:"id"`
	UserId    uint        `json:"user_id"`
	TagId     uint        `json:"tag_id"`
	Tag       *NoteTagDTO `json:"tag,omitempty"`
	Text      *string     `json:"text"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
}
