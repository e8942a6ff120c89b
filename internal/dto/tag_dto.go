package dto

type CreateTagRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type TagResponse struct {
	Id        uint   `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
