package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrBusy
	ErrValidation
	ErrCapacityExhausted
	ErrTransactionFailure
	ErrCancelled
	WarnStockClassDefaulted
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:              "success",
	ErrInternal:             "error internal",
	ErrNotFound:             "data not found",
	ErrInvalidRequest:       "invalid request",
	ErrUnauthorize:          "unauthorize request",
	ErrBusy:                 "another inventory run is in progress",
	ErrValidation:           "invalid row",
	ErrCapacityExhausted:    "no bin has room for the quantity",
	ErrTransactionFailure:   "database transaction failed",
	ErrCancelled:            "run cancelled before this item",
	WarnStockClassDefaulted: "no stock class mapping, defaulted to REGULAR",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:              http.StatusOK,
	ErrInternal:             http.StatusInternalServerError,
	ErrNotFound:             http.StatusNotFound,
	ErrInvalidRequest:       http.StatusBadRequest,
	ErrUnauthorize:          http.StatusUnauthorized,
	ErrBusy:                 http.StatusConflict,
	ErrValidation:           http.StatusUnprocessableEntity,
	ErrCapacityExhausted:    http.StatusUnprocessableEntity,
	ErrTransactionFailure:   http.StatusInternalServerError,
	ErrCancelled:            http.StatusRequestTimeout,
	WarnStockClassDefaulted: http.StatusOK,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:              "0000",
	ErrInternal:             "0001",
	ErrNotFound:             "0002",
	ErrInvalidRequest:       "0003",
	ErrUnauthorize:          "0004",
	ErrBusy:                 "0005",
	ErrValidation:           "1001",
	ErrCapacityExhausted:    "1002",
	ErrTransactionFailure:   "1003",
	ErrCancelled:            "1004",
	WarnStockClassDefaulted: "2001",
}
