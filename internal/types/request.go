//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// RewriteRequest represents the decoded multipart form of a rewrite request.
type RewriteRequest struct {
	Resume         []byte `validate:"required,min=1"`
	ContentType    string `validate:"omitempty,max=255"`
	Filename       string `validate:"omitempty,max=255"`
	JobDescription string `validate:"required"`
}

// Validate validates the RewriteRequest using the validator.
func (r *RewriteRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
