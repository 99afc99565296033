package domain

import "errors"

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrRecordNotFound     = errors.New("record not found")
	ErrEditConflict       = errors.New("edit conflict")
	ErrRoomsUnavailable   = errors.New("not enough rooms available for the requested dates")
	ErrExtraInUse         = errors.New("optional extra is referenced by existing bookings")
	ErrRoomTypeInUse      = errors.New("room type is referenced by existing bookings")
	ErrAccommodationInUse = errors.New("accommodation still has room types or extras")
)
