package mall

// Role is a user's access level in the mall system.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleSeller   Role = "seller"
	RoleDelivery Role = "delivery"
)

// DefaultRole is applied when a create payload leaves the role empty.
const DefaultRole = RoleCustomer

// User mirrors the payload returned by /api/users. The password is
// write-only and never appears on the read model.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Role  Role   `json:"role,omitempty"`
}

// Shop mirrors the payload returned by /api/shops. OwnerUserID is a plain
// string reference to a User id; the server does not guarantee it exists.
type Shop struct {
	ID            string `json:"id"`
	ShopName      string `json:"shopName"`
	Description   string `json:"description,omitempty"`
	OwnerUserID   string `json:"ownerUserId"`
	ContactNumber string `json:"contactNumber,omitempty"`
	Address       string `json:"address,omitempty"`
}

// Product mirrors the payload returned by /api/products. ShopID is a plain
// string reference to a Shop id; the server does not guarantee it exists.
type Product struct {
	ID          string  `json:"id"`
	ProductName string  `json:"productName"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Category    string  `json:"category,omitempty"`
	ShopID      string  `json:"shopId"`
}

// CreateUser is the POST /api/users request body.
type CreateUser struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,excludesall=0123456789"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,len=10,number"`
	Role     Role   `json:"role,omitempty" validate:"omitempty,oneof=customer admin seller delivery"`
}

// UpdateUser is the PUT /api/users/{id} request body. The contract is a
// full-state replace for the fields sent: an empty Password keeps the
// current one, everything else is the desired end state.
type UpdateUser struct {
	Name     string `json:"name" validate:"required,excludesall=0123456789"`
	Password string `json:"password,omitempty"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,len=10,number"`
	Role     Role   `json:"role,omitempty" validate:"omitempty,oneof=customer admin seller delivery"`
}

// CreateShop is the POST /api/shops request body.
type CreateShop struct {
	ShopName      string `json:"shopName" validate:"required"`
	Description   string `json:"description,omitempty"`
	OwnerUserID   string `json:"ownerUserId" validate:"required"`
	ContactNumber string `json:"contactNumber,omitempty" validate:"omitempty,len=10,number"`
	Address       string `json:"address,omitempty"`
}

// UpdateShop is the PUT /api/shops/{id} request body. Callers send the full
// desired state; omitted optional fields are left unspecified by the server
// contract.
type UpdateShop struct {
	ShopName      string `json:"shopName" validate:"required"`
	Description   string `json:"description,omitempty"`
	OwnerUserID   string `json:"ownerUserId" validate:"required"`
	ContactNumber string `json:"contactNumber,omitempty" validate:"omitempty,len=10,number"`
	Address       string `json:"address,omitempty"`
}

// CreateProduct is the POST /api/products request body.
type CreateProduct struct {
	ProductName string  `json:"productName" validate:"required"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Category    string  `json:"category,omitempty"`
	ShopID      string  `json:"shopId" validate:"required"`
}

// UpdateProduct is the PUT /api/products/{id} request body.
type UpdateProduct struct {
	ProductName string  `json:"productName" validate:"required"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Category    string  `json:"category,omitempty"`
	ShopID      string  `json:"shopId" validate:"required"`
}

// ProductFilter narrows ListProducts. A zero value lists everything.
type ProductFilter struct {
	ShopID string
}

// Credentials is the POST /api/auth/login request body.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserLabel composes the display label for a user reference.
func UserLabel(u User) string {
	return u.Name + " (" + u.Email + ")"
}

// ShopLabel composes the display label for a shop reference.
func ShopLabel(s Shop) string {
	return s.ShopName
}
