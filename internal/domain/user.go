package domain

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

type User struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	Role string `db:"role"` // buyer | seller
}
