package dto

// ReplyingToDTO mirrors the snapshot the client captures when quoting:
// name and content text at send time, not a live reference.
type ReplyingToDTO struct {
	Name    string `json:"name" validate:"required,max=50"`
	Content string `json:"content" validate:"required"`
}

type CreateReplyRequest struct {
	Content    string         `json:"content" validate:"required"`
	Image      *string        `json:"image,omitempty"`
	ReplyingTo *ReplyingToDTO `json:"replying_to,omitempty"`
}

type LikeReplyResponse struct {
	Likes int64 `json:"likes"`
	Liked bool  `json:"liked"`
}
