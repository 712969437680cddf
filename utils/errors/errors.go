package errors

import (
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/constant"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/model"
)

type CustomError struct {
	errType constant.ErrorType
}

func (c CustomError) Error() string {
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func (c CustomError) Type() constant.ErrorType {
	return c.errType
}

// Is makes errors.Is match on the error type rather than on the message.
func (c CustomError) Is(target error) bool {
	t, ok := target.(CustomError)
	return ok && t.errType == c.errType
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// Item builds the per-row entry that goes into an itemized run result.
func Item(index int, id uint64, errorType constant.ErrorType, detail string) model.ItemError {
	return model.ItemError{
		Index:   index,
		ID:      id,
		Code:    constant.ErrorTypeCode[errorType],
		Message: constant.ErrorTypeMessage[errorType],
		Detail:  detail,
	}
}
