package auth

import (
	"context"
	"strings"
	"time"

	"talentnest/internal/domain/access"
	"talentnest/internal/pkg/apperr"
	"talentnest/internal/pkg/jwt"
)

type Service struct {
	users UserRepositoryInterface
	jwt   *jwt.Service
}

func NewService(users UserRepositoryInterface, jwtSvc *jwt.Service) *Service {
	return &Service{users: users, jwt: jwtSvc}
}

type AuthResult struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
	User      *User  `json:"user"`
}

// Register creates a student or artisan account and signs it in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	role, err := access.ParseSelfServiceRole(req.Role)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:          NormalizeEmail(req.Email),
		Role:           role,
		DisplayName:    strings.TrimSpace(req.DisplayName),
		Phone:          strings.TrimSpace(req.Phone),
		WhatsAppNumber: strings.TrimSpace(req.WhatsAppNumber),
		BusinessName:   strings.TrimSpace(req.BusinessName),
		Department:     strings.TrimSpace(req.Department),
		StudentID:      strings.TrimSpace(req.StudentID),
		IsActive:       true,
	}
	if err := s.create(ctx, u, req.Password); err != nil {
		return nil, err
	}
	return s.issue(u)
}

// CreateAdmin provisions an admin account. Admins never self-register.
func (s *Service) CreateAdmin(ctx context.Context, email, password, name string) (*User, error) {
	if len(password) < 8 {
		return nil, apperr.Validation("password must be at least 8 characters")
	}
	u := &User{
		Email:       NormalizeEmail(email),
		Role:        access.RoleAdmin,
		DisplayName: strings.TrimSpace(name),
		IsActive:    true,
	}
	if u.DisplayName == "" {
		u.DisplayName = "Administrator"
	}
	if err := s.create(ctx, u, password); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) create(ctx context.Context, u *User, password string) error {
	exists, err := s.users.ExistsByEmail(ctx, u.Email)
	if err != nil {
		return apperr.Dependency(err, "check email")
	}
	if exists {
		return ErrEmailAlreadyExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return apperr.Wrap(err, apperr.KindInternal, "INTERNAL_ERROR", "failed to hash password")
	}
	u.PasswordHash = hash

	if err := s.users.Create(ctx, u); err != nil {
		return apperr.FromRepo(err, ErrUserNotFound, "create user")
	}
	return nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.FromRepo(err, ErrInvalidCredentials, "load user")
	}
	if CheckPassword(req.Password, u.PasswordHash) != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrAccountDisabled
	}
	return s.issue(u)
}

// Me returns the current user's record.
func (s *Service) Me(ctx context.Context, actor access.Actor) (*User, error) {
	if !actor.Authenticated() {
		return nil, access.ErrUnauthenticated
	}
	u, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, apperr.FromRepo(err, ErrUserNotFound, "load user")
	}
	return u, nil
}

// UpdateProfile applies the non-nil fields. Role and email are immutable.
func (s *Service) UpdateProfile(ctx context.Context, actor access.Actor, req UpdateProfileRequest) (*User, error) {
	u, err := s.Me(ctx, actor)
	if err != nil {
		return nil, err
	}

	apply := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	apply(&u.DisplayName, req.DisplayName)
	apply(&u.Phone, req.Phone)
	apply(&u.WhatsAppNumber, req.WhatsAppNumber)
	apply(&u.BusinessName, req.BusinessName)
	apply(&u.Bio, req.Bio)
	apply(&u.Department, req.Department)
	apply(&u.StudentID, req.StudentID)
	apply(&u.AvatarURL, req.AvatarURL)

	if u.DisplayName == "" {
		return nil, apperr.Validation("display_name must not be empty")
	}

	if err := s.users.UpdateProfile(ctx, u); err != nil {
		return nil, apperr.FromRepo(err, ErrUserNotFound, "update user")
	}
	return s.Me(ctx, actor)
}

func (s *Service) issue(u *User) (*AuthResult, error) {
	token, err := s.jwt.GenerateToken(u.ID, u.Role.String())
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "INTERNAL_ERROR", "failed to issue token")
	}
	return &AuthResult{
		Token:     token,
		ExpiresIn: int64(s.jwt.TTL() / time.Second),
		User:      u,
	}, nil
}
