package handler

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	dErrors "idcheck/pkg/domain-errors"
)

// maxNumberLen is generous; no supported scheme is longer than 18 characters
// plus brackets and padding.
const maxNumberLen = 32

// NumberRequest is the HTTP request body for the single-number endpoints.
type NumberRequest struct {
	Number string `json:"number"`
}

// Validate trims and validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *NumberRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Number = strings.TrimSpace(r.Number)
	err := validation.ValidateStruct(r,
		validation.Field(&r.Number, validation.Required, validation.Length(1, maxNumberLen)),
	)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, err.Error())
	}
	return nil
}

// BatchRequest is the HTTP request body for POST /v1/idcards/batch. The upper
// bound on the number of entries is enforced by the service.
type BatchRequest struct {
	Numbers []string `json:"numbers"`
}

// Validate checks the batch is non-empty and each entry is of sane length.
func (r *BatchRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	err := validation.ValidateStruct(r,
		validation.Field(&r.Numbers,
			validation.Required,
			validation.Each(validation.Length(0, maxNumberLen)),
		),
	)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, err.Error())
	}
	return nil
}
