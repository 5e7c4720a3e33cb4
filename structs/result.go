package structs

import "fmt"

type ResultStatus int

const (
	StatusLoading ResultStatus = iota
	StatusSuccess
	StatusError
)

// Result is what every facade operation hands back to the application layer.
// Exactly one of Value (StatusSuccess) or Cause/Message (StatusError) is meaningful;
// StatusLoading carries neither.
type Result[T any] struct {
	Status  ResultStatus
	Value   T
	Cause   error
	Message string
}

func Success[T any](value T) Result[T] {
	return Result[T]{Status: StatusSuccess, Value: value}
}

func Failure[T any](cause error, message string) Result[T] {
	if message == "" && cause != nil {
		message = cause.Error()
	}
	return Result[T]{Status: StatusError, Cause: cause, Message: message}
}

func Loading[T any]() Result[T] {
	return Result[T]{Status: StatusLoading}
}

func (r Result[T]) IsSuccess() bool { return r.Status == StatusSuccess }

func (r Result[T]) IsError() bool { return r.Status == StatusError }

func (r Result[T]) IsLoading() bool { return r.Status == StatusLoading }

// Unwrap returns the value, or the cause when the result is not a success.
func (r Result[T]) Unwrap() (T, error) {
	switch r.Status {
	case StatusSuccess:
		return r.Value, nil
	case StatusError:
		if r.Cause == nil {
			return r.Value, fmt.Errorf("%s", r.Message)
		}
		return r.Value, r.Cause
	default:
		return r.Value, fmt.Errorf("result still loading")
	}
}

func (r Result[T]) String() string {
	switch r.Status {
	case StatusSuccess:
		return fmt.Sprintf("Success(%v)", r.Value)
	case StatusError:
		return fmt.Sprintf("Error(%s)", r.Message)
	default:
		return "Loading"
	}
}
