package dto

type CreateThreadRequest struct {
	Title    string  `json:"title" validate:"required,min=3,max=200"`
	Content  string  `json:"content" validate:"required"`
	Category string  `json:"category" validate:"required,max=50"`
	Image    *string `json:"image,omitempty"`
}

type UpdateThreadRequest struct {
	Title   string `json:"title" validate:"required,min=3,max=200"`
	Content string `json:"content" validate:"required"`
}

type ThreadListQuery struct {
	Category string `query:"category"`
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
}
