package domain

import "errors"

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyContent = errors.New("empty message content")
	ErrUnauthorized = errors.New("unauthorized")
)
