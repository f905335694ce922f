package response

import (
	"fmt"
	"net/http"

	"chat-realtime/pkg/discord"
	"chat-realtime/pkg/errors"

	"github.com/gin-gonic/gin"
)

// NewOKResp returns a new OK response with the given data.
func NewOKResp(data any) Resp {
	return Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	}
}

// OK sends 200 JSON with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// Unauthorized aborts with 401.
func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(parseError(errors.NewUnauthorizedHTTPError(), c, nil))
}

// Forbidden aborts with 403.
func Forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(parseError(errors.NewForbiddenHTTPError(), c, nil))
}

func parseError(err error, c *gin.Context, d discord.IDiscord) (int, Resp) {
	switch parsedErr := err.(type) {
	case *errors.ValidationError:
		return http.StatusBadRequest, Resp{
			ErrorCode: parsedErr.Code,
			Message:   parsedErr.Error(),
		}
	case *errors.ValidationErrorCollector:
		return http.StatusBadRequest, Resp{
			ErrorCode: ValidationErrorCode,
			Message:   ValidationErrorMsg,
			Errors:    parsedErr.Errors(),
		}
	case *errors.HTTPError:
		statusCode := parsedErr.StatusCode
		if statusCode == 0 {
			statusCode = http.StatusBadRequest
		}
		return statusCode, Resp{
			ErrorCode: parsedErr.Code,
			Message:   parsedErr.Message,
		}
	default:
		if d != nil && err != nil {
			sendDiscordMessageAsync(d, buildInternalServerErrorDataForReportBug(c, err.Error(), captureStackTrace()))
		}
		return http.StatusInternalServerError, Resp{
			ErrorCode: InternalServerErrorCode,
			Message:   DefaultErrorMessage,
		}
	}
}

// Error sends error response (status + JSON from parseError).
func Error(c *gin.Context, err error, d discord.IDiscord) {
	statusCode, resp := parseError(err, c, d)
	c.JSON(statusCode, resp)
}

// ErrorWithMap looks up err in eMap and sends corresponding HTTPError, else Error.
func ErrorWithMap(c *gin.Context, err error, eMap ErrorMapping) {
	if httpErr, ok := eMap[err]; ok {
		Error(c, httpErr, nil)
		return
	}
	Error(c, err, nil)
}

// PanicError handles panic recovery and sends error response.
func PanicError(c *gin.Context, err any, d discord.IDiscord) {
	errVal, ok := err.(error)
	if !ok {
		errVal = fmt.Errorf("%v", err)
	}
	statusCode, resp := parseError(errVal, c, d)
	c.AbortWithStatusJSON(statusCode, resp)
}
