package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"talentnest/internal/domain/access"
	"talentnest/internal/pkg/apperr"
	"talentnest/internal/pkg/jwt"
	"talentnest/internal/testutil"
)

func init() {
	passwordCost = bcrypt.MinCost
}

func newTestService(t *testing.T) (*Service, *UserRepository, *jwt.Service) {
	svc, repo, jwtSvc, _ := newTestServiceDB(t)
	return svc, repo, jwtSvc
}

func newTestServiceDB(t *testing.T) (*Service, *UserRepository, *jwt.Service, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t, &User{})
	repo := NewUserRepository(db)
	jwtSvc := jwt.New("test-secret", time.Hour)
	return NewService(repo, jwtSvc), repo, jwtSvc, db
}

func registerReq(email, role string) RegisterRequest {
	return RegisterRequest{
		Email:       email,
		Password:    "correct-horse",
		Role:        role,
		DisplayName: "Ada Obi",
	}
}

func TestRegister_IssuesTokenWithRole(t *testing.T) {
	svc, _, jwtSvc := newTestService(t)

	res, err := svc.Register(context.Background(), registerReq(" Ada@Uni.EDU ", "artisan"))
	require.NoError(t, err)

	assert.Equal(t, "ada@uni.edu", res.User.Email)
	assert.Equal(t, access.RoleArtisan, res.User.Role)
	assert.False(t, res.User.IsVerified)
	assert.True(t, res.User.IsActive)
	assert.Equal(t, int64(3600), res.ExpiresIn)

	claims, err := jwtSvc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, "artisan", claims.Role)
}

func TestRegister_RejectsAdminRole(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), registerReq("root@uni.edu", "admin"))
	assert.ErrorIs(t, err, access.ErrInvalidRole)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("ada@uni.edu", "student"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerReq("ADA@uni.edu", "artisan"))
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestRepositoryCreate_UniqueViolation(t *testing.T) {
	_, repo, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &User{Email: "x@uni.edu", PasswordHash: "h", Role: access.RoleStudent, DisplayName: "X", IsActive: true}))
	err := repo.Create(ctx, &User{Email: "X@uni.edu", PasswordHash: "h", Role: access.RoleStudent, DisplayName: "X", IsActive: true})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, _, _, db := newTestServiceDB(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerReq("ada@uni.edu", "student"))
	require.NoError(t, err)

	t.Run("ok", func(t *testing.T) {
		res, err := svc.Login(ctx, LoginRequest{Email: "ADA@uni.edu", Password: "correct-horse"})
		require.NoError(t, err)
		assert.Equal(t, reg.User.ID, res.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Email: "ada@uni.edu", Password: "nope-nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Email: "ghost@uni.edu", Password: "correct-horse"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("disabled", func(t *testing.T) {
		require.NoError(t, db.Model(&User{}).Where("id = ?", reg.User.ID).Update("is_active", false).Error)

		_, err = svc.Login(ctx, LoginRequest{Email: "ada@uni.edu", Password: "correct-horse"})
		assert.ErrorIs(t, err, ErrAccountDisabled)
	})
}

func TestUpdateProfile_KeepsRole(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerReq("ada@uni.edu", "artisan"))
	require.NoError(t, err)

	biz := "  Ada Prints "
	wa := "+2348031234567"
	u, err := svc.UpdateProfile(ctx, reg.User.Actor(), UpdateProfileRequest{BusinessName: &biz, WhatsAppNumber: &wa})
	require.NoError(t, err)

	assert.Equal(t, "Ada Prints", u.BusinessName)
	assert.Equal(t, "Ada Prints", u.ContactName())
	assert.Equal(t, "+2348031234567", u.ContactNumber())
	assert.Equal(t, access.RoleArtisan, u.Role)

	blank := " "
	_, err = svc.UpdateProfile(ctx, reg.User.Actor(), UpdateProfileRequest{DisplayName: &blank})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestMe_Anonymous(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Me(context.Background(), access.Actor{})
	assert.ErrorIs(t, err, access.ErrUnauthenticated)
}

func TestCreateAdmin(t *testing.T) {
	svc, _, _ := newTestService(t)

	u, err := svc.CreateAdmin(context.Background(), "Admin@Uni.edu", "super-secret", "")
	require.NoError(t, err)
	assert.Equal(t, access.RoleAdmin, u.Role)
	assert.Equal(t, "admin@uni.edu", u.Email)

	_, err = svc.CreateAdmin(context.Background(), "x@uni.edu", "short", "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestUserRepository_ListAndSetVerified(t *testing.T) {
	svc, repo, _, db := newTestServiceDB(t)
	ctx := context.Background()

	a, err := svc.Register(ctx, registerReq("artisan@uni.edu", "artisan"))
	require.NoError(t, err)
	_, err = svc.Register(ctx, registerReq("student@uni.edu", "student"))
	require.NoError(t, err)

	users, total, err := repo.List(ctx, UserFilter{Role: access.RoleArtisan, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)

	_, total, err = repo.List(ctx, UserFilter{Query: "STUDENT@", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = repo.List(ctx, UserFilter{Query: "_", Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)

	require.NoError(t, SetVerified(db, a.User.ID, true))
	got, err := repo.GetByID(ctx, a.User.ID)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)

	assert.ErrorIs(t, SetVerified(db, 9999, true), gorm.ErrRecordNotFound)
}

// racingUsers lets another writer land between UpdateProfile's read and
// its write.
type racingUsers struct {
	*UserRepository
	between func()
}

func (r *racingUsers) GetByID(ctx context.Context, id int64) (*User, error) {
	u, err := r.UserRepository.GetByID(ctx, id)
	if r.between != nil {
		fn := r.between
		r.between = nil
		fn()
	}
	return u, err
}

func TestUpdateProfile_KeepsConcurrentWrites(t *testing.T) {
	svc, repo, jwtSvc, db := newTestServiceDB(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerReq("ada@uni.edu", "artisan"))
	require.NoError(t, err)
	id := reg.User.ID

	racing := &racingUsers{UserRepository: repo}
	racing.between = func() {
		require.NoError(t, SetVerified(db, id, true))
		require.NoError(t, db.Model(&User{}).Where("id = ?", id).
			Updates(map[string]any{"rating": 4.5, "review_count": 2}).Error)
	}

	bio := "Screen printing since 2022"
	u, err := NewService(racing, jwtSvc).UpdateProfile(ctx, reg.User.Actor(), UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, u.Bio)

	stored, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, bio, stored.Bio)
	assert.True(t, stored.IsVerified)
	assert.InDelta(t, 4.5, stored.Rating, 0.0001)
	assert.Equal(t, 2, stored.ReviewCount)
	assert.Equal(t, access.RoleArtisan, stored.Role)
}
