package store

import "errors"

var (
	ErrTicketNotFound = errors.New("ticket not found")
	ErrPlantNotFound  = errors.New("plant not found")
	ErrCodeTaken      = errors.New("ticket code already taken")
	ErrInvalidInput   = errors.New("invalid input")
)
