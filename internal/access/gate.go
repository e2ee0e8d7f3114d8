package access

// Gate — простая ролевая карта admin/user: список админов из конфига.
type Gate struct {
	admins map[string]struct{}
}

func NewGate(adminIDs []string) *Gate {
	g := &Gate{admins: make(map[string]struct{}, len(adminIDs))}
	for _, id := range adminIDs {
		if id != "" {
			g.admins[id] = struct{}{}
		}
	}
	return g
}

func (g *Gate) IsAdmin(userID string) bool {
	_, ok := g.admins[userID]
	return ok
}
