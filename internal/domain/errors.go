package domain

import "errors"

var (
	ErrKeyNotFound        = errors.New("key not found")
	ErrUnknownRole        = errors.New("unknown role")
	ErrUnknownLocale      = errors.New("unknown locale")
	ErrRoleSwitchDisabled = errors.New("role switch is disabled")
	ErrDoctorNotFound     = errors.New("doctor not found")
	ErrBookingNotFound    = errors.New("booking not found")
)
