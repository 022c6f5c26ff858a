package validation

import "devconnect/internal/models"

// PostInput is the request body for creating a post or a comment.
type PostInput struct {
	Text string `json:"text"`
}

// ValidatePost checks post/comment input: text is required and capped at 300
// characters.
func ValidatePost(in PostInput) (models.FieldErrors, bool) {
	errs := models.FieldErrors{}

	if len(in.Text) > 300 {
		errs["text"] = "Post must be no more than 300 characters"
	}
	if in.Text == "" {
		errs["text"] = "Text field is required"
	}

	return errs, len(errs) == 0
}
