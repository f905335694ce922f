package errors

const (
	MessageUnauthorized = "Unauthorized"
	MessageForbidden    = "Forbidden"
)
