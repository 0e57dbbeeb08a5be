// Package game holds the round rules: who gets which role and who scores.
package game

import (
	"math/rand/v2"

	"github.com/SatyamS-71/rmcs/domain"
)

const (
	MinPlayers = 4

	RajaBonus   = 1000
	SipahiBonus = 500
	GuessBonus  = 800
)

// AssignRoles deals a fresh set of roles over a uniform shuffle of players and
// adds the role bonuses on top of the existing scores. The order of players
// itself is left untouched.
func AssignRoles(rng *rand.Rand, players []*domain.Player) error {
	if len(players) < MinPlayers {
		return domain.ErrInsufficientPlayers
	}

	for _, p := range players {
		p.Role = domain.RoleNone
	}

	order := make([]*domain.Player, len(players))
	copy(order, players)
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	order[0].Role = domain.RoleRaja
	order[0].Score += RajaBonus
	order[1].Role = domain.RoleMantri
	order[2].Role = domain.RoleChor
	for _, p := range order[3:] {
		p.Role = domain.RoleSipahi
		p.Score += SipahiBonus
	}
	return nil
}

type Outcome struct {
	GuesserName string
	GuessedName string
	WasCorrect  bool
	Roles       []domain.RoleView
}

// ResolveGuess settles the Mantri's guess. The Mantri scores on a hit, the
// Chor on a miss.
func ResolveGuess(players []*domain.Player, guesserID, guessedID string) (Outcome, error) {
	var mantri, chor, guessed *domain.Player
	for _, p := range players {
		switch p.Role {
		case domain.RoleMantri:
			mantri = p
		case domain.RoleChor:
			chor = p
		}
		if p.ID == guessedID {
			guessed = p
		}
	}

	if mantri == nil || chor == nil {
		return Outcome{}, domain.ErrRolesNotAssigned
	}
	if mantri.ID != guesserID {
		return Outcome{}, domain.ErrNotMantri
	}
	if guessed == nil {
		return Outcome{}, domain.ErrUnknownPlayer
	}

	correct := guessed == chor
	if correct {
		mantri.Score += GuessBonus
	} else {
		chor.Score += GuessBonus
	}

	roles := make([]domain.RoleView, 0, len(players))
	for _, p := range players {
		roles = append(roles, domain.RoleView{ID: p.ID, Name: p.Name, Role: p.Role, Score: p.Score})
	}

	return Outcome{
		GuesserName: mantri.Name,
		GuessedName: guessed.Name,
		WasCorrect:  correct,
		Roles:       roles,
	}, nil
}
