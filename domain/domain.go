package domain

import (
	"context"
	"encoding/json"
)

type Role string

const (
	RoleNone   Role = ""
	RoleRaja   Role = "Raja"
	RoleMantri Role = "Mantri"
	RoleChor   Role = "Chor"
	RoleSipahi Role = "Sipahi"
)

// Phase is the round state of a room.
type Phase string

const (
	PhaseWaiting     Phase = "waiting"
	PhaseRoundActive Phase = "round_active"
	PhaseRoundOver   Phase = "round_over"
)

type Player struct {
	ID    string
	Name  string
	Score int
	Role  Role
}

type Connection interface {
	ID() string
	Send(data []byte) error
	Close() error
}

type Registry interface {
	Register(conn Connection)
	Unregister(id string)
	Send(id string, data []byte)
	Stats() (connections int)
}

type MessageHandler interface {
	Handle(conn Connection, data []byte)
	Disconnect(id string)
}

// Limiter decides whether a connection may have another frame processed.
type Limiter interface {
	Allow(ctx context.Context, key string) error
}

type Envelope struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
