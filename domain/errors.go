package domain

import "errors"

var (
	ErrMalformedMessage    = errors.New("malformed message")
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomFull            = errors.New("room is full")
	ErrInsufficientPlayers = errors.New("need 4 players to start")
	ErrNotRoomOwner        = errors.New("only the room owner can start the game")
	ErrRolesNotAssigned    = errors.New("roles have not been assigned")
	ErrRoundNotActive      = errors.New("round already resolved")
	ErrNotMantri           = errors.New("only the Mantri can guess")
	ErrUnknownPlayer       = errors.New("player is not in this room")
	ErrAlreadyInRoom       = errors.New("already in a room")
	ErrInvalidName         = errors.New("name is required")
	ErrRateLimited         = errors.New("rate limit exceeded")
)
