package domain

// Question is the single query section of a message.
// Type and Class hold the raw wire values; a query may name types the store has no variant for.
type Question struct {
	Name  Name
	Type  RRType
	Class RRClass
}

// Matches reports whether r answers the question: same owner name, type and class.
func (q Question) Matches(r Record) bool {
	return r.Name() == q.Name && r.Type() == q.Type && r.Class() == q.Class
}
