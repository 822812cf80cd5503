package types

// Message is a bilingual user-facing message. Both locales are always
// populated; clients pick the one they render.
type Message struct {
	EN string `json:"en"`
	AR string `json:"ar"`
}

// ErrorKind classifies service failures so controllers can map them to
// HTTP status codes without inspecting message text.
type ErrorKind int

const (
	ErrorKindValidation ErrorKind = iota + 1
	ErrorKindNotFound
	ErrorKindBusinessRule
	ErrorKindInternal
)

// AppError is the structured failure every service operation returns in
// place of a raw error. The English text doubles as the Go error string.
type AppError struct {
	Kind ErrorKind `json:"-"`
	Msg  Message   `json:"message"`
}

func (e *AppError) Error() string {
	return e.Msg.EN
}

// NewValidationError builds a validation-kind AppError.
func NewValidationError(en, ar string) *AppError {
	return &AppError{Kind: ErrorKindValidation, Msg: Message{EN: en, AR: ar}}
}

// NewNotFoundError builds a not-found-kind AppError.
func NewNotFoundError(en, ar string) *AppError {
	return &AppError{Kind: ErrorKindNotFound, Msg: Message{EN: en, AR: ar}}
}

// NewBusinessError builds a business-rule-kind AppError.
func NewBusinessError(en, ar string) *AppError {
	return &AppError{Kind: ErrorKindBusinessRule, Msg: Message{EN: en, AR: ar}}
}

// ErrSomethingWentWrong is the generic response for unexpected system
// errors; the underlying cause is logged, never returned to the caller.
func ErrSomethingWentWrong() *AppError {
	return &AppError{
		Kind: ErrorKindInternal,
		Msg:  Message{EN: "something went wrong", AR: "حدث خطأ ما"},
	}
}

// Result is the uniform envelope controllers serialize. Status false
// always carries a bilingual message.
type Result struct {
	Status  bool        `json:"status"`
	Message *Message    `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// OK wraps successful data in a Result.
func OK(data interface{}) Result {
	return Result{Status: true, Data: data}
}

// OKMessage wraps a success that carries a message but no data.
func OKMessage(en, ar string) Result {
	return Result{Status: true, Message: &Message{EN: en, AR: ar}}
}

// Fail wraps an AppError in a Result.
func Fail(err *AppError) Result {
	msg := err.Msg
	return Result{Status: false, Message: &msg}
}
