package auth

import "context"

// UserRepositoryInterface lists only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, u *User) error
}

// UserByEmail is what the OIDC resolver needs to map an ID token to a user.
type UserByEmail interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
}
