package entity

import "time"

// Session is the per-visitor state. It carries only an identity reference;
// the profile is resolved from the account directory when needed.
type Session struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user_id,omitempty"` // 0 when anonymous
	Role      Role      `json:"role,omitempty"`
	Cart      Cart      `json:"cart"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Session) Authenticated() bool { return s.UserID > 0 }

func (s *Session) IsAdmin() bool { return s.Authenticated() && s.Role == RoleAdmin }

// Forget drops the identity and the cart.
func (s *Session) Forget() {
	s.UserID = 0
	s.Role = ""
	s.Cart.Clear()
}
