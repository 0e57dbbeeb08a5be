package domain

// Inbound kinds.
const (
	KindCreateRoom = "create_room"
	KindJoinRoom   = "join_room"
	KindStartGame  = "start_game"
	KindGameMove   = "game_move"
	KindPing       = "ping"
)

// Outbound kinds.
const (
	KindRoomCreated   = "room_created"
	KindRoomJoined    = "room_joined"
	KindRolesAssigned = "roles_assigned"
	KindRoundResult   = "round_result"
	KindPong          = "pong"
	KindError         = "error"
)

type CreateRoomPayload struct {
	Name string `json:"name"`
}

type JoinRoomPayload struct {
	RoomCode string `json:"roomCode"`
	Name     string `json:"name"`
}

type StartGamePayload struct {
	RoomCode string `json:"roomCode"`
}

type GameMovePayload struct {
	RoomCode  string `json:"roomCode"`
	GuesserID string `json:"guesserId"`
	GuessedID string `json:"guessedId"`
}

type PingPayload struct {
	Timestamp int64 `json:"timestamp"`
}

// PlayerView is the public roster entry. Roles are never part of it.
type PlayerView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type RoleView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	Score int    `json:"score"`
}

type RoomCreatedPayload struct {
	RoomCode string `json:"roomCode"`
	SelfID   string `json:"selfId"`
}

type RoomJoinedPayload struct {
	RoomCode string       `json:"roomCode"`
	OwnerID  string       `json:"ownerId"`
	Players  []PlayerView `json:"players"`
}

type RolesAssignedPayload struct {
	RoomCode string       `json:"roomCode"`
	OwnerID  string       `json:"ownerId"`
	YourRole Role         `json:"yourRole"`
	Players  []PlayerView `json:"players"`
}

type RoundResultPayload struct {
	GuesserName string     `json:"guesserName"`
	GuessedName string     `json:"guessedName"`
	WasCorrect  bool       `json:"wasCorrect"`
	Roles       []RoleView `json:"roles"`
}

type PongPayload struct {
	Timestamp int64 `json:"timestamp"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// Roster builds the public player list in room order.
func Roster(players []*Player) []PlayerView {
	views := make([]PlayerView, 0, len(players))
	for _, p := range players {
		views = append(views, PlayerView{ID: p.ID, Name: p.Name, Score: p.Score})
	}
	return views
}
