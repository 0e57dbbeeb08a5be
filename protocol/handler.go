package protocol

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/SatyamS-71/rmcs/domain"
	"github.com/SatyamS-71/rmcs/game"
	"github.com/SatyamS-71/rmcs/room"
)

const limiterTimeout = 500 * time.Millisecond

// Handler routes inbound frames to the room store and game rules. Every frame
// and every disconnect is processed to completion under one lock, so room
// state only ever sees one mutation at a time.
type Handler struct {
	mu       sync.Mutex
	store    *room.Store
	registry domain.Registry
	limiter  domain.Limiter
	rng      *rand.Rand
}

type Option func(*Handler)

func WithLimiter(l domain.Limiter) Option {
	return func(h *Handler) { h.limiter = l }
}

func WithRand(rng *rand.Rand) Option {
	return func(h *Handler) { h.rng = rng }
}

func NewHandler(r domain.Registry, opts ...Option) *Handler {
	h := &Handler{registry: r}
	for _, opt := range opts {
		opt(h)
	}
	if h.rng == nil {
		h.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	h.store = room.NewStore(h.rng)
	return h
}

type outbound struct {
	Kind    string `json:"kind"`
	Payload any    `json:"payload"`
}

func (h *Handler) Handle(conn domain.Connection, data []byte) {
	if err := h.allow(conn.ID()); err != nil {
		slog.Warn("message rejected", "clientId", conn.ID(), "error", err)
		h.sendError(conn.ID(), err)
		return
	}

	var env domain.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		slog.Warn("invalid message", "clientId", conn.ID(), "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("handler panic", "clientId", conn.ID(), "kind", env.Kind, "panic", r)
		}
	}()

	var err error
	switch env.Kind {
	case domain.KindCreateRoom:
		var p domain.CreateRoomPayload
		if err = decode(env.Payload, &p); err == nil {
			err = h.createRoom(conn.ID(), p)
		}
	case domain.KindJoinRoom:
		var p domain.JoinRoomPayload
		if err = decode(env.Payload, &p); err == nil {
			err = h.joinRoom(conn.ID(), p)
		}
	case domain.KindStartGame:
		var p domain.StartGamePayload
		if err = decode(env.Payload, &p); err == nil {
			err = h.startGame(conn.ID(), p)
		}
	case domain.KindGameMove:
		var p domain.GameMovePayload
		if err = decode(env.Payload, &p); err == nil {
			err = h.gameMove(p)
		}
	case domain.KindPing:
		var p domain.PingPayload
		if err = decode(env.Payload, &p); err == nil {
			h.send(conn.ID(), domain.KindPong, domain.PongPayload{Timestamp: p.Timestamp})
		}
	default:
		slog.Warn("unknown message kind", "clientId", conn.ID(), "kind", env.Kind)
		return
	}

	switch {
	case err == nil:
	case errors.Is(err, domain.ErrMalformedMessage):
		slog.Warn("invalid payload", "clientId", conn.ID(), "kind", env.Kind, "error", err)
	default:
		slog.Warn("request rejected", "clientId", conn.ID(), "kind", env.Kind, "error", err)
		h.sendError(conn.ID(), err)
	}
}

// Disconnect removes the connection from its room, if any, and forgets it.
func (h *Handler) Disconnect(id string) {
	h.mu.Lock()
	h.store.RemoveConnection(id)
	h.mu.Unlock()

	h.registry.Unregister(id)
}

func (h *Handler) Stats() (rooms, players int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store.Stats()
}

func (h *Handler) createRoom(senderID string, p domain.CreateRoomPayload) error {
	r, err := h.store.Create(senderID, p.Name)
	if err != nil {
		return err
	}
	h.send(senderID, domain.KindRoomCreated, domain.RoomCreatedPayload{RoomCode: r.Code, SelfID: senderID})
	return nil
}

func (h *Handler) joinRoom(senderID string, p domain.JoinRoomPayload) error {
	r, err := h.store.Join(p.RoomCode, senderID, p.Name)
	if err != nil {
		return err
	}
	h.broadcast(r, domain.KindRoomJoined, domain.RoomJoinedPayload{
		RoomCode: r.Code,
		OwnerID:  r.OwnerID,
		Players:  domain.Roster(r.Players),
	})
	return nil
}

func (h *Handler) startGame(senderID string, p domain.StartGamePayload) error {
	r, ok := h.store.Get(p.RoomCode)
	if !ok {
		return domain.ErrRoomNotFound
	}
	if r.OwnerID != senderID {
		return domain.ErrNotRoomOwner
	}
	if err := game.AssignRoles(h.rng, r.Players); err != nil {
		return err
	}
	r.Phase = domain.PhaseRoundActive
	r.Round++

	slog.Info("round started", "room", r.Code, "round", r.Round, "players", len(r.Players))

	roster := domain.Roster(r.Players)
	for _, pl := range r.Players {
		h.send(pl.ID, domain.KindRolesAssigned, domain.RolesAssignedPayload{
			RoomCode: r.Code,
			OwnerID:  r.OwnerID,
			YourRole: pl.Role,
			Players:  roster,
		})
	}
	return nil
}

func (h *Handler) gameMove(p domain.GameMovePayload) error {
	r, ok := h.store.Get(p.RoomCode)
	if !ok {
		return domain.ErrRoomNotFound
	}
	switch r.Phase {
	case domain.PhaseWaiting:
		return domain.ErrRolesNotAssigned
	case domain.PhaseRoundOver:
		return domain.ErrRoundNotActive
	}

	out, err := game.ResolveGuess(r.Players, p.GuesserID, p.GuessedID)
	if err != nil {
		return err
	}
	r.Phase = domain.PhaseRoundOver

	slog.Info("round resolved", "room", r.Code, "round", r.Round, "correct", out.WasCorrect)

	h.broadcast(r, domain.KindRoundResult, domain.RoundResultPayload{
		GuesserName: out.GuesserName,
		GuessedName: out.GuessedName,
		WasCorrect:  out.WasCorrect,
		Roles:       out.Roles,
	})
	return nil
}

func (h *Handler) allow(id string) error {
	if h.limiter == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), limiterTimeout)
	defer cancel()
	return h.limiter.Allow(ctx, id)
}

func (h *Handler) broadcast(r *room.Room, kind string, payload any) {
	data, err := encode(kind, payload)
	if err != nil {
		slog.Error("marshal error", "room", r.Code, "kind", kind, "error", err)
		return
	}
	for _, p := range r.Players {
		h.registry.Send(p.ID, data)
	}
}

func (h *Handler) send(id, kind string, payload any) {
	data, err := encode(kind, payload)
	if err != nil {
		slog.Error("marshal error", "clientId", id, "kind", kind, "error", err)
		return
	}
	h.registry.Send(id, data)
}

func (h *Handler) sendError(id string, err error) {
	h.send(id, domain.KindError, domain.ErrorPayload{Message: clientMessage(err)})
}

var clientErrors = []error{
	domain.ErrRoomNotFound,
	domain.ErrRoomFull,
	domain.ErrInsufficientPlayers,
	domain.ErrNotRoomOwner,
	domain.ErrRolesNotAssigned,
	domain.ErrRoundNotActive,
	domain.ErrNotMantri,
	domain.ErrUnknownPlayer,
	domain.ErrAlreadyInRoom,
	domain.ErrInvalidName,
	domain.ErrRateLimited,
}

// clientMessage strips internal context so clients only see the sentinel text.
func clientMessage(err error) string {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return "internal error"
}

func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return domain.ErrMalformedMessage
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Join(domain.ErrMalformedMessage, err)
	}
	return nil
}

func encode(kind string, payload any) ([]byte, error) {
	return json.Marshal(outbound{Kind: kind, Payload: payload})
}
