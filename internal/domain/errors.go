package domain

import "errors"

var (
	ErrInvalidBirthData  = errors.New("invalid birth data")
	ErrCalculationFailed = errors.New("astrological calculation failed")
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidInput      = errors.New("invalid input")
	ErrAlreadyExists     = errors.New("already exists")
	ErrPaymentRequired   = errors.New("payment required")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrStorageDisabled   = errors.New("storage is not configured")
)

// BusinessError ошибка бизнес-логики, которая уже залогирована в UseCase
type BusinessError struct {
	Err error
}

func (e *BusinessError) Error() string {
	return e.Err.Error()
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func WrapBusinessError(err error) error {
	if err == nil {
		return nil
	}
	return &BusinessError{Err: err}
}

func IsBusinessError(err error) bool {
	var businessErr *BusinessError
	return errors.As(err, &businessErr)
}
