package errs

import "errors"

// Kind classifies an error for the HTTP surface.
type Kind uint8

const (
	// Internal is any failure the core does not classify.
	Internal Kind = iota
	// NotFound is returned when a resource cannot be found by its natural key.
	NotFound
	// Forbidden is returned when the requester is authenticated but not the owner.
	Forbidden
	// BadRequest is returned for semantically invalid input, e.g. a self-follow.
	BadRequest
	// Unauthorized is returned for missing or invalid credentials.
	Unauthorized
	// Conflict is returned when the store reports a uniqueness violation.
	Conflict
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "Not Found"
	case Forbidden:
		return "Forbidden"
	case BadRequest:
		return "Bad Request"
	case Unauthorized:
		return "Unauthorized"
	case Conflict:
		return "Conflict"
	default:
		return "Internal Server Error"
	}
}

// Messages shown to clients.
const (
	UserNotFound            = "User not found"
	ArticleNotFound         = "Article not found"
	CommentNotFound         = "Comment not found"
	ArticleForbiddenUpdate  = "You do not have permission to edit this article"
	ArticleForbiddenDelete  = "You do not have permission to delete this article"
	CommentForbiddenDelete  = "You do not have permission to delete this comment"
	EmailUsernameExists     = "Email or username already exists"
	SlugExists              = "An article with this slug already exists"
	AccountNotExists        = "Account does not exist"
	WrongPassword           = "Wrong password"
	CurrentPasswordRequired = "Please enter current password to change to new password"
	CurrentPasswordInvalid  = "Current password is incorrect"
	CannotFollowYourself    = "You cannot follow yourself"
	TokenInvalid            = "Invalid or expired token"
	FirebaseTokenInvalid    = "Invalid Firebase ID token"
	FirebaseNotConfigured   = "Firebase login is not configured"
	InternalServerError     = "Internal server error"
)

// Error is a classified error. Message is safe to show to clients; Err is not.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Public returns the client-facing message.
func (e *Error) Public() string {
	if e.Kind == Internal {
		return InternalServerError
	}
	return e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
