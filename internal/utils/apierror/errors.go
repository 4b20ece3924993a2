package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

var (
	MalformedJSONError  = NewSimple(400, "Malformed JSON body")
	InternalServerError = NewSimple(500, "Internal server error")
	InvalidIDError      = NewSimple(400, "The provided ID is invalid")

	NotFoundError       = NewSimple(404, "Resource not found")
	ParentNotFoundError = NewSimple(404, "Parent not found")
	BookNotFoundError   = NewSimple(404, "Book not found")
	NoteNotFoundError   = NewSimple(404, "Note not found")
	AddonNotFoundError  = NewSimple(404, "Add-on not found")
	ReminderNotFoundError = NewSimple(404, "Reminder not found")

	// Rejected before any mutation: an entity can never be its own parent.
	CircularReferenceError = NewSimple(400, "Entity cannot be its own parent")
	// Reparenting under one of the entity's own descendants.
	DescendantParentError = NewSimple(400, "Entity cannot be moved under its own descendant")

	UnauthorizedError  = NewSimple(401, "Missing or invalid credentials")
	ForbiddenError     = NewSimple(403, "Missing access")
	InvalidTokenError  = NewSimple(401, "Invalid or expired token")
	ExistingEmailError = NewSimple(409, "Email already registered")
	EmailInUseError    = NewSimple(409, "Email already in use")
	BadCredentialsError = NewSimple(401, "Invalid email or password")
	WrongPasswordError  = NewSimple(401, "Current password is incorrect")
)

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "This field is required")
		case "notblank":
			problems[field] = append(problems[field], "This field cannot be blank")
		case "min":
			problems[field] = append(problems[field], "Value is too short, min: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Value is too long, max: "+fe.Param())
		case "email":
			problems[field] = append(problems[field], "Value must be a valid email address")
		case "nodupes":
			problems[field] = append(problems[field], "Value cannot contain duplicates")
		case "oneof":
			problems[field] = append(problems[field], "Value must be one of: "+fe.Param())

		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &StructuredError{
		Errors: problems,
		Status: http.StatusBadRequest,
	}
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' has invalid type, expected: %s", name, dataType)
}

func NewValidationError(field, problem string) *StructuredError {
	serr := NewStructured(http.StatusBadRequest)
	serr.Add(field, problem)
	return serr
}
