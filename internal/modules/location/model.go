// README: Delivery location model.
package location

// Location is a named delivery destination an admin can assign to agents.
// Names are stored with their original spelling; matching normalizes on the
// fly so the canonical form shown to customers is always the admin's.
type Location struct {
	ID   int64
	Name string
}
