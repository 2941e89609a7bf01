package players

// Player is one roster entry as served by the game-detail endpoint.
type Player struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Line      *int   `json:"line,omitempty"`
	Injured   bool   `json:"injured,omitempty"`
	Suspended bool   `json:"suspended,omitempty"`
	Removed   bool   `json:"removed,omitempty"`
}

// IsActive reports whether the player is dressed for the game: on a line and not injured, suspended or removed.
func (p Player) IsActive() bool {
	return p.Line != nil && !p.Injured && !p.Suspended && !p.Removed
}

// Clone returns a deep copy.
func (p Player) Clone() Player {
	if p.Line != nil {
		line := *p.Line
		p.Line = &line
	}
	return p
}

// Roster is a team's player list for one game.
type Roster []Player

// Active returns the subset of players eligible for name disambiguation.
func (r Roster) Active() Roster {
	out := make(Roster, 0, len(r))
	for _, p := range r {
		if p.IsActive() {
			out = append(out, p)
		}
	}
	return out
}

// ByID indexes the roster by player id.
func (r Roster) ByID() map[int]Player {
	out := make(map[int]Player, len(r))
	for _, p := range r {
		out[p.ID] = p
	}
	return out
}

// Clone returns a deep copy of the roster.
func (r Roster) Clone() Roster {
	if r == nil {
		return nil
	}
	out := make(Roster, len(r))
	for i, p := range r {
		out[i] = p.Clone()
	}
	return out
}

// LineAt is a convenience for building active players.
func LineAt(n int) *int {
	return &n
}
