package models

import "encoding/json"

const PostFieldContent = "content"

// Post is owned by exactly one user; UserID is a plain reference, never an embedded User.
type Post struct {
	ID      int    `json:"id"`
	Content string `json:"content"`
	UserID  int    `json:"user_id"`
}

// PostPatchers is the allow-list used by PATCH /posts/:id.
var PostPatchers = Patchers[Post]{
	PostFieldContent: func(p *Post, raw json.RawMessage) error {
		return decodeText(raw, &p.Content)
	},
}
