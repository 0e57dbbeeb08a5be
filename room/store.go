package room

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/SatyamS-71/rmcs/domain"
)

const (
	MaxPlayers = 4

	codeLength   = 4
	codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeAttempts = 64
)

var ErrCodeExhausted = errors.New("no free room code")

type Room struct {
	Code    string
	OwnerID string
	Players []*domain.Player
	Phase   domain.Phase
	Round   int
}

func (r *Room) Player(id string) *domain.Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) Full() bool {
	return len(r.Players) >= MaxPlayers
}

// Store owns every live room. It is not safe for concurrent use; the caller
// serializes access.
type Store struct {
	rooms   map[string]*Room
	members map[string]string
	rng     *rand.Rand
}

func NewStore(rng *rand.Rand) *Store {
	return &Store{
		rooms:   make(map[string]*Room),
		members: make(map[string]string),
		rng:     rng,
	}
}

func (s *Store) Create(ownerID, ownerName string) (*Room, error) {
	name, err := validName(ownerName)
	if err != nil {
		return nil, err
	}
	if code, ok := s.members[ownerID]; ok {
		return nil, fmt.Errorf("create room (in %s): %w", code, domain.ErrAlreadyInRoom)
	}

	code, err := s.newCode()
	if err != nil {
		return nil, err
	}

	r := &Room{
		Code:    code,
		OwnerID: ownerID,
		Players: []*domain.Player{{ID: ownerID, Name: name}},
		Phase:   domain.PhaseWaiting,
	}
	s.rooms[code] = r
	s.members[ownerID] = code

	slog.Info("room created", "room", code, "owner", ownerID)
	return r, nil
}

func (s *Store) Join(code, playerID, playerName string) (*Room, error) {
	name, err := validName(playerName)
	if err != nil {
		return nil, err
	}

	r, ok := s.Get(code)
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	if current, ok := s.members[playerID]; ok {
		return nil, fmt.Errorf("join %s (in %s): %w", r.Code, current, domain.ErrAlreadyInRoom)
	}
	if r.Full() {
		return nil, domain.ErrRoomFull
	}

	r.Players = append(r.Players, &domain.Player{ID: playerID, Name: name})
	s.members[playerID] = r.Code

	slog.Info("player joined", "room", r.Code, "clientId", playerID, "players", len(r.Players))
	return r, nil
}

func (s *Store) Get(code string) (*Room, bool) {
	r, ok := s.rooms[strings.ToUpper(strings.TrimSpace(code))]
	return r, ok
}

func (s *Store) RoomOf(playerID string) (*Room, bool) {
	code, ok := s.members[playerID]
	if !ok {
		return nil, false
	}
	return s.Get(code)
}

// RemoveConnection takes the player out of its room and reports the room it
// left. The returned room may already be deleted from the store when it
// became empty.
func (s *Store) RemoveConnection(playerID string) (*Room, bool) {
	r, ok := s.RoomOf(playerID)
	delete(s.members, playerID)
	if !ok {
		return nil, false
	}

	kept := r.Players[:0]
	for _, p := range r.Players {
		if p.ID != playerID {
			kept = append(kept, p)
		}
	}
	clear(r.Players[len(kept):])
	r.Players = kept

	if len(r.Players) == 0 {
		delete(s.rooms, r.Code)
		slog.Info("room removed", "room", r.Code)
		return r, true
	}

	if r.OwnerID == playerID {
		r.OwnerID = r.Players[0].ID
		slog.Info("room owner changed", "room", r.Code, "owner", r.OwnerID)
	}

	if r.Phase == domain.PhaseRoundActive {
		for _, p := range r.Players {
			p.Role = domain.RoleNone
		}
		r.Phase = domain.PhaseWaiting
		slog.Info("round cancelled", "room", r.Code, "round", r.Round)
	}

	slog.Info("player left", "room", r.Code, "clientId", playerID, "players", len(r.Players))
	return r, true
}

func (s *Store) Stats() (rooms, players int) {
	return len(s.rooms), len(s.members)
}

func (s *Store) newCode() (string, error) {
	buf := make([]byte, codeLength)
	for range codeAttempts {
		for i := range buf {
			buf[i] = codeAlphabet[s.rng.IntN(len(codeAlphabet))]
		}
		code := string(buf)
		if _, taken := s.rooms[code]; !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("%d attempts: %w", codeAttempts, ErrCodeExhausted)
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrInvalidName
	}
	return name, nil
}
