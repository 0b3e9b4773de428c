package models

import "time"

// Thread is a forum post that opens a discussion.
type Thread struct {
	ThreadID  int64     `json:"id"`
	Title     string    `json:"title"`
	CreatorID int64     `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
	Tag       string    `json:"tag,omitempty"`
	Content   string    `json:"content"`
}

// NewThread is the body of a thread creation request.
type NewThread struct {
	Title   string `json:"title" validate:"required,max=200"`
	Tag     string `json:"tag" validate:"max=32"`
	Content string `json:"content" validate:"required"`
}

// Comment is a reply inside a thread.
type Comment struct {
	CommentID int64     `json:"id"`
	ThreadID  int64     `json:"thread_id"`
	CreatorID int64     `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
	Content   string    `json:"content"`
}

// NewComment is the body of a comment creation request.
type NewComment struct {
	Content string `json:"content" validate:"required,max=10000"`
}
