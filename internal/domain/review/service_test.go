package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"talentnest/internal/domain/access"
	"talentnest/internal/domain/auth"
	"talentnest/internal/domain/booking"
	"talentnest/internal/events"
	"talentnest/internal/pkg/pagination"
	"talentnest/internal/testutil"
)

type stubBookings map[int64]*booking.Booking

func (s stubBookings) GetByID(_ context.Context, id int64) (*booking.Booking, error) {
	b, ok := s[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

type fixture struct {
	svc       *Service
	users     *auth.UserRepository
	bookings  stubBookings
	published *events.Recorder

	provider *auth.User
	client   *auth.User
	admin    *auth.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db := testutil.NewDB(t, append([]any{&auth.User{}}, Models()...)...)
	users := auth.NewUserRepository(db)

	mk := func(email string, role access.Role) *auth.User {
		u := &auth.User{Email: email, PasswordHash: "x", Role: role, DisplayName: email[:3], IsActive: true}
		require.NoError(t, users.Create(ctx, u))
		return u
	}

	f := &fixture{
		users:     users,
		published: events.NewRecorder(),
		provider:  mk("pro@uni.edu", access.RoleArtisan),
		client:    mk("cli@uni.edu", access.RoleStudent),
		admin:     mk("adm@uni.edu", access.RoleAdmin),
	}
	f.bookings = stubBookings{}
	f.svc = NewService(NewRepository(db), f.bookings, f.published)
	f.svc.now = func() time.Time { return time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func (f *fixture) booking(id int64, status booking.Status) {
	f.bookings[id] = &booking.Booking{
		ID:         id,
		ServiceID:  7,
		ClientID:   f.client.ID,
		ProviderID: f.provider.ID,
		Status:     status,
	}
}

func TestCreate_UpdatesProviderRating(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.booking(1, booking.StatusCompleted)
	f.booking(2, booking.StatusCompleted)
	f.booking(3, booking.StatusCompleted)

	for id, rating := range map[int64]int{1: 5, 2: 4, 3: 4} {
		rv, err := f.svc.Create(ctx, f.client.Actor(), id, CreateRequest{Rating: rating, Comment: "  great work "})
		require.NoError(t, err)
		assert.Equal(t, f.provider.ID, rv.ProviderID)
		assert.Equal(t, "great work", rv.Comment)
	}

	u, err := f.users.GetByID(ctx, f.provider.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, u.ReviewCount)
	assert.InDelta(t, 4.33, u.Rating, 0.0001)

	assert.Equal(t, []string{events.SubjectReviewCreated, events.SubjectReviewCreated, events.SubjectReviewCreated}, f.published.Subjects())
}

func TestCreate_OncePerBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.booking(1, booking.StatusCompleted)

	_, err := f.svc.Create(ctx, f.client.Actor(), 1, CreateRequest{Rating: 5})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.client.Actor(), 1, CreateRequest{Rating: 1})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	u, err := f.users.GetByID(ctx, f.provider.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, u.ReviewCount)
	assert.InDelta(t, 5.0, u.Rating, 0.0001)
}

func TestCreate_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.booking(1, booking.StatusInProgress)
	f.booking(2, booking.StatusCompleted)

	_, err := f.svc.Create(ctx, f.client.Actor(), 1, CreateRequest{Rating: 5})
	assert.ErrorIs(t, err, ErrBookingNotCompleted)

	_, err = f.svc.Create(ctx, f.client.Actor(), 2, CreateRequest{Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidRating)

	// the provider is a participant but not the reviewer
	_, err = f.svc.Create(ctx, f.provider.Actor(), 2, CreateRequest{Rating: 5})
	assert.ErrorIs(t, err, ErrNotClient)

	_, err = f.svc.Create(ctx, f.admin.Actor(), 2, CreateRequest{Rating: 5})
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = f.svc.Create(ctx, f.client.Actor(), 99, CreateRequest{Rating: 5})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.svc.Create(ctx, access.Actor{}, 2, CreateRequest{Rating: 5})
	assert.ErrorIs(t, err, access.ErrUnauthenticated)
}

func TestRespond(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.booking(1, booking.StatusCompleted)

	rv, err := f.svc.Create(ctx, f.client.Actor(), 1, CreateRequest{Rating: 3})
	require.NoError(t, err)

	_, err = f.svc.Respond(ctx, f.client.Actor(), rv.ID, "thanks")
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = f.svc.Respond(ctx, f.provider.Actor(), rv.ID, "   ")
	assert.ErrorIs(t, err, ErrResponseRequired)

	got, err := f.svc.Respond(ctx, f.provider.Actor(), rv.ID, "Thanks for the feedback")
	require.NoError(t, err)
	require.NotNil(t, got.ProviderResponse)
	assert.Equal(t, "Thanks for the feedback", *got.ProviderResponse)
	require.NotNil(t, got.RespondedAt)

	_, err = f.svc.Respond(ctx, f.provider.Actor(), rv.ID, "again")
	assert.ErrorIs(t, err, ErrAlreadyResponded)

	_, err = f.svc.Respond(ctx, f.provider.Actor(), 404, "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListForProvider(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for id := int64(1); id <= 3; id++ {
		f.booking(id, booking.StatusCompleted)
		_, err := f.svc.Create(ctx, f.client.Actor(), id, CreateRequest{Rating: int(id)})
		require.NoError(t, err)
	}

	page, err := f.svc.ListForProvider(ctx, f.provider.ID, pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Items, 2)
	// same timestamp, so id breaks the tie
	assert.Equal(t, int64(3), page.Items[0].BookingID)

	empty, err := f.svc.ListForProvider(ctx, f.client.ID, pagination.Params{})
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.NotNil(t, empty.Items)
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, string, any) error { return errors.New("nats down") }
func (failingPublisher) Close()                                    {}

func TestCreate_PublishFailureIgnored(t *testing.T) {
	f := newFixture(t)
	f.svc.publisher = failingPublisher{}
	f.booking(1, booking.StatusCompleted)

	rv, err := f.svc.Create(context.Background(), f.client.Actor(), 1, CreateRequest{Rating: 4})
	require.NoError(t, err)
	assert.NotZero(t, rv.ID)
}
