package domain

// ActorRole enumerates caller roles carried in tokens and audit rows.
// Authorization beyond the two admin-gated transitions is delegated to
// the calling system.
type ActorRole string

const (
	RoleAdmin      ActorRole = "admin"
	RoleTechnician ActorRole = "technician"
	RoleOperator   ActorRole = "operator"
	RoleClient     ActorRole = "client"
)

// Actor identifies who performed an operation.
type Actor struct {
	ID   string
	Name string
	Role ActorRole
}
