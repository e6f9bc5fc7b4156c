package graphql

import (
	"errors"

	"github.com/DRSN-tech/catalog-admin/pkg/e"
)

// publicError — ошибка, текст которой можно отдать клиенту.
type publicError struct {
	message string
	cause   error
}

func (p *publicError) Error() string { return p.message }

func (p *publicError) Unwrap() error { return p.cause }

func newPublicError(message string, cause error) error {
	return &publicError{message: message, cause: cause}
}

// toGraphQLError переводит ошибку usecase в ошибку ответа. Известные ошибки валидации
// и поиска отдаются с указанием поля, остальные заменяются на "internal server error".
func toGraphQLError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, e.ErrInvalidCategory):
		return newPublicError("Invalid category: must be one of Shirts, Jeans, Jackets, Sweaters, Accessories", err)
	case errors.Is(err, e.ErrPricePrecision):
		return newPublicError("Invalid price: "+e.ErrPricePrecision.Error(), err)
	case errors.Is(err, e.ErrInvalidPrice):
		return newPublicError("Invalid price: must be a non-negative number", err)
	case errors.Is(err, e.ErrProductNotFound):
		return newPublicError("Product not found", err)
	default:
		return newPublicError(e.ErrInternalServerError.Error(), err)
	}
}

// isInternal сообщает, что ошибка была скрыта от клиента.
func isInternal(err error) bool {
	var pub *publicError
	return errors.As(err, &pub) && pub.message == e.ErrInternalServerError.Error()
}
