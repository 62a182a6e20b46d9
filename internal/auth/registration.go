package auth

import (
	"errors"
	"time"

	"restaurant-manager-go/pkg/model"
)

// validRoles is the set of staff roles an admin can assign.
var validRoles = map[string]bool{
	model.RoleAdmin:   true,
	model.RoleWaiter:  true,
	model.RoleKitchen: true,
}

// RegisterUser creates a staff account. Only admins reach this path;
// the role middleware enforces that before the handler runs.
func (s *AuthService) RegisterUser(req model.RegistrationRequest) (int64, error) {
	// Check if username already exists
	var count int
	err := s.db.Get(&count, "SELECT COUNT(*) FROM users WHERE username = $1", req.Username)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, errors.New("username already exists")
	}

	// Check if email already exists
	err = s.db.Get(&count, "SELECT COUNT(*) FROM users WHERE email = $1", req.Email)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, errors.New("email already exists")
	}

	if !validRoles[req.Role] {
		return 0, errors.New("invalid role")
	}

	// Hash password
	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		return 0, err
	}

	// Insert new user
	var userID int64
	err = s.db.QueryRow(
		`INSERT INTO users (username, password_hash, email, role, two_factor_enabled, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $6)
         RETURNING id`,
		req.Username, hashedPassword, req.Email, req.Role, false, time.Now()).Scan(&userID)
	if err != nil {
		return 0, err
	}

	return userID, nil
}
