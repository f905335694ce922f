package http

import (
	"encoding/json"
	"errors"
	"fmt"

	pkgErrors "chat-realtime/pkg/errors"

	"github.com/gin-gonic/gin"
)

type validator interface {
	validate() error
}

// bind decodes the JSON body into req and validates it.
func (h Handler) bind(c *gin.Context, req validator) error {
	if err := c.ShouldBindJSON(req); err != nil {
		h.l.Warnf(c.Request.Context(), "internal.broadcast.delivery.http.bind: %v", err)
		return bindError(err)
	}
	if err := req.validate(); err != nil {
		h.l.Warnf(c.Request.Context(), "internal.broadcast.delivery.http.validate: %v", err)
		return h.mapError(err)
	}
	return nil
}

// bindError names the offending field when the body has a value of the wrong type.
func bindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return pkgErrors.NewValidationErrorCollector().
			Add(pkgErrors.NewValidationError(errWrongBody.Code, typeErr.Field, fmt.Sprintf("must be %s", typeErr.Type))).
			Err()
	}
	return errWrongBody
}
