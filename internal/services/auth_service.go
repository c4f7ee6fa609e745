package services

import (
	"errors"

	"ramtekagro/internal/domain"
	"ramtekagro/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	Users *repos.UserRepo
}

// Login checks the credential table and binds the session on success. The
// returned user never carries the password hash. A failed login changes nothing.
func (s *AuthService) Login(sid, email, password string) (*domain.StaffUser, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	u.Hash = ""
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.StaffUser, error) {
	u, err := s.Users.SessionUser(sid)
	if err != nil {
		return nil, err
	}
	u.Hash = ""
	return u, nil
}
