package entity

// Role names carried in access tokens
const (
	RoleAdmin   = "admin"
	RolePatient = "patient"
)

// Actor identifies the authenticated caller of an operation
type Actor struct {
	Role string
	ID   uint
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) IsPatient() bool {
	return a.Role == RolePatient
}
