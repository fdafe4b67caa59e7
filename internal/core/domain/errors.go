package domain

import "errors"

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrInquiryNotFound = errors.New("inquiry not found")

	// ErrInvalidStatus возвращается при попытке перевести заявку
	// в неизвестный статус.
	ErrInvalidStatus = errors.New("invalid inquiry status")

	// ErrForbidden возвращается, когда роль и личность запрашивающего
	// не дают доступа к операции или записи.
	ErrForbidden = errors.New("operation is not allowed for this user")

	ErrTokenInvalid = errors.New("token is invalid or expired")
)
