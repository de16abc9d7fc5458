package model

type UserRole string

const (
	UserRoleClient UserRole = "client"
	UserRoleVet    UserRole = "vet"
	UserRoleAdmin  UserRole = "admin"
)

// Owner is a user record. Only client-role rows participate in pet
// ownership; vets and admins never own pets.
type Owner struct {
	ID      string   `db:"id" json:"id"`
	Name    string   `db:"name" json:"name"`
	Phone   string   `db:"phone" json:"phone"`
	Email   string   `db:"email" json:"email"`
	Address string   `db:"address" json:"address"`
	Role    UserRole `db:"role" json:"role"`
}

// IsClient reports whether the owner participates in ownership.
func (o *Owner) IsClient() bool {
	return o.Role == UserRoleClient
}
