package names

import "liiga-teletext/internal/domain/players"

// Context resolves scorer names for one team in one game.
type Context struct {
	display  map[int]string
	lastOnly map[int]string
}

// NewContext disambiguates the active part of roster. Inactive players stay resolvable by last name.
func NewContext(roster players.Roster) *Context {
	c := &Context{
		display:  Disambiguate(roster.Active()),
		lastOnly: make(map[int]string, len(roster)),
	}
	for _, p := range roster {
		c.lastOnly[p.ID] = FormatLastName(p.LastName)
		if _, ok := c.display[p.ID]; !ok {
			c.display[p.ID] = c.lastOnly[p.ID]
		}
	}
	return c
}

// Has reports whether id is on the roster.
func (c *Context) Has(id int) bool {
	_, ok := c.lastOnly[id]
	return ok
}

// DisplayName returns the disambiguated name, or the fallback for unknown ids.
func (c *Context) DisplayName(id int) string {
	if name, ok := c.display[id]; ok {
		return name
	}
	return Fallback(id)
}

// LastNameOnly returns the plain last name, or the fallback for unknown ids.
func (c *Context) LastNameOnly(id int) string {
	if name, ok := c.lastOnly[id]; ok {
		return name
	}
	return Fallback(id)
}

// IsDisambiguated reports whether id carries a first-name suffix.
func (c *Context) IsDisambiguated(id int) bool {
	name, ok := c.display[id]
	return ok && name != c.lastOnly[id]
}
