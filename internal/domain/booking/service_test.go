package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentnest/internal/domain/access"
	"talentnest/internal/domain/auth"
	"talentnest/internal/domain/catalog"
	"talentnest/internal/domain/contact"
	"talentnest/internal/events"
	"talentnest/internal/testutil"
)

type fixture struct {
	svc       *Service
	repo      BookingRepository
	listings  *catalog.ListingRepository
	published *events.Recorder

	provider *auth.User
	client   *auth.User
	outsider *auth.User
	admin    *auth.User
	listing  *catalog.Listing
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	models := append([]any{&auth.User{}, &catalog.Listing{}, &contact.ContactEvent{}}, Models()...)
	db := testutil.NewDB(t, models...)

	users := auth.NewUserRepository(db)
	listings := catalog.NewListingRepository(db)
	repo := NewBookingRepository(db)
	rec := events.NewRecorder()

	mk := func(email string, role access.Role, wa string) *auth.User {
		u := &auth.User{Email: email, PasswordHash: "x", Role: role, DisplayName: email[:3], WhatsAppNumber: wa, IsActive: true}
		require.NoError(t, users.Create(ctx, u))
		return u
	}

	f := &fixture{
		repo:      repo,
		listings:  listings,
		published: rec,
		provider:  mk("pro@uni.edu", access.RoleArtisan, "+2348031234567"),
		client:    mk("cli@uni.edu", access.RoleStudent, "+2348039876543"),
		outsider:  mk("out@uni.edu", access.RoleStudent, ""),
		admin:     mk("adm@uni.edu", access.RoleAdmin, ""),
	}
	require.NoError(t, auth.SetVerified(db, f.provider.ID, true))

	catalogSvc := catalog.NewService(listings, users)
	l, err := catalogSvc.CreateService(ctx, f.provider.Actor(), catalog.CreateServiceRequest{
		Title:       "Logo design",
		Description: "Vector logos for student brands",
		Category:    "design",
	})
	require.NoError(t, err)
	l, err = catalogSvc.SetServiceStatus(ctx, f.admin.Actor(), l.ID, "active")
	require.NoError(t, err)
	f.listing = l

	contacts := contact.NewService(users, contact.NewEventRepository(db), rec, contact.NewLinkBuilder(""))
	f.svc = NewService(repo, catalogSvc, users, contacts, rec)
	return f
}

func (f *fixture) book(t *testing.T) *Booking {
	t.Helper()
	b, err := f.svc.CreateBooking(context.Background(), f.client.Actor(), CreateBookingRequest{
		ServiceID: f.listing.ID,
		Message:   "Can you do it by Friday?",
	})
	require.NoError(t, err)
	return b
}

func statusPath(evs []Event) []Status {
	out := make([]Status, 0, len(evs))
	for _, e := range evs {
		out = append(out, e.ToStatus)
	}
	return out
}

func TestHappyPath_PendingToCompleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pro := f.provider.Actor()

	b := f.book(t)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, f.provider.ID, b.ProviderID)
	assert.Equal(t, "Logo design", b.Title)
	assert.False(t, b.WhatsAppChatInitiated)

	b, err := f.svc.Accept(ctx, pro, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, b.Status)
	assert.NotNil(t, b.AcceptedAt)

	b, err = f.svc.Start(ctx, pro, b.ID)
	require.NoError(t, err)
	assert.NotNil(t, b.StartedAt)

	b, err = f.svc.Complete(ctx, pro, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, b.Status)
	assert.NotNil(t, b.CompletedAt)

	evs, err := f.svc.History(ctx, f.client.Actor(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, []Status{StatusPending, StatusAccepted, StatusInProgress, StatusCompleted}, statusPath(evs))
	for i := 1; i < len(evs); i++ {
		assert.True(t, CanTransition(evs[i].FromStatus, evs[i].ToStatus))
		assert.Equal(t, evs[i-1].ToStatus, evs[i].FromStatus)
	}

	l, err := f.listings.GetByID(ctx, f.listing.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), l.OrderCount)

	assert.Len(t, f.published.Subjects(), 4)
}

func TestInvalidTransitionsLeaveBookingUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pro := f.provider.Actor()

	b := f.book(t)

	_, err := f.svc.Start(ctx, pro, b.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	_, err = f.svc.Complete(ctx, pro, b.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	_, err = f.svc.Cancel(ctx, f.client.Actor(), b.ID, "changed my mind")
	require.NoError(t, err)

	_, err = f.svc.Accept(ctx, pro, b.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	got, err := f.svc.GetBooking(ctx, pro, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
	assert.Equal(t, "changed my mind", got.CancellationReason)
	require.NotNil(t, got.CancelledBy)
	assert.Equal(t, f.client.ID, *got.CancelledBy)
}

func TestWrongPartyAndOutsiders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t)

	_, err := f.svc.Accept(ctx, f.client.Actor(), b.ID)
	assert.ErrorIs(t, err, ErrWrongParty)

	_, err = f.svc.Decline(ctx, f.client.Actor(), b.ID, "")
	assert.ErrorIs(t, err, ErrWrongParty)

	_, err = f.svc.Accept(ctx, f.outsider.Actor(), b.ID)
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = f.svc.GetBooking(ctx, f.outsider.Actor(), b.ID)
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = f.svc.InitiateContact(ctx, f.outsider.Actor(), b.ID)
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = f.svc.Accept(ctx, f.admin.Actor(), b.ID)
	assert.ErrorIs(t, err, access.ErrForbidden)

	got, err := f.svc.GetBooking(ctx, f.admin.Actor(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)

	b, err = f.svc.Accept(ctx, f.provider.Actor(), b.ID)
	require.NoError(t, err)
	_, err = f.svc.Start(ctx, f.client.Actor(), b.ID)
	assert.ErrorIs(t, err, ErrWrongParty)
}

func TestDecline(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t)

	got, err := f.svc.Decline(ctx, f.provider.Actor(), b.ID, "fully booked")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
	assert.NotNil(t, got.CancelledAt)

	_, err = f.svc.Decline(ctx, f.provider.Actor(), b.ID, "")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestCreateBooking_Rules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateBooking(ctx, f.admin.Actor(), CreateBookingRequest{ServiceID: f.listing.ID})
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = f.svc.CreateBooking(ctx, f.provider.Actor(), CreateBookingRequest{ServiceID: f.listing.ID})
	assert.ErrorIs(t, err, ErrSelfBooking)

	wrong := f.outsider.ID
	_, err = f.svc.CreateBooking(ctx, f.client.Actor(), CreateBookingRequest{ServiceID: f.listing.ID, ProviderID: &wrong})
	assert.ErrorIs(t, err, ErrProviderMismatch)

	neg := -1.0
	_, err = f.svc.CreateBooking(ctx, f.client.Actor(), CreateBookingRequest{ServiceID: f.listing.ID, AgreedPrice: &neg})
	assert.ErrorIs(t, err, ErrNegativePrice)

	_, err = f.svc.CreateBooking(ctx, f.client.Actor(), CreateBookingRequest{ServiceID: 9999})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	require.NoError(t, f.listings.SetActive(ctx, f.listing.ID, false))
	_, err = f.svc.CreateBooking(ctx, f.client.Actor(), CreateBookingRequest{ServiceID: f.listing.ID})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	require.NoError(t, f.listings.SetActive(ctx, f.listing.ID, true))
	right := f.provider.ID
	price := 5000.0
	b, err := f.svc.CreateBooking(ctx, f.client.Actor(), CreateBookingRequest{ServiceID: f.listing.ID, ProviderID: &right, AgreedPrice: &price})
	require.NoError(t, err)
	require.NotNil(t, b.AgreedPrice)
	assert.Equal(t, 5000.0, *b.AgreedPrice)
}

func TestCompareAndSetRejectsStaleWriter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t)

	_, err := f.svc.Accept(ctx, f.provider.Actor(), b.ID)
	require.NoError(t, err)

	// A writer that still believes the booking is pending.
	err = f.repo.Transition(ctx, TransitionInput{
		BookingID: b.ID, From: StatusPending, To: StatusCancelled, ActorID: f.client.ID, At: time.Now(),
	})
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	evs, err := f.repo.History(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []Status{StatusPending, StatusAccepted}, statusPath(evs))
}

func TestInitiateContact_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t)

	res, err := f.svc.InitiateContact(ctx, f.client.Actor(), b.ID)
	require.NoError(t, err)
	assert.True(t, res.Booking.WhatsAppChatInitiated)
	assert.Contains(t, res.Link.URL, "phone=2348031234567")
	assert.Contains(t, res.Link.Message, `This is about my booking "Logo design".`)

	res, err = f.svc.InitiateContact(ctx, f.client.Actor(), b.ID)
	require.NoError(t, err)
	assert.True(t, res.Booking.WhatsAppChatInitiated)

	// the provider reaches the client's number
	res, err = f.svc.InitiateContact(ctx, f.provider.Actor(), b.ID)
	require.NoError(t, err)
	assert.Contains(t, res.Link.URL, "phone=2348039876543")

	got, err := f.svc.GetBooking(ctx, f.client.Actor(), b.ID)
	require.NoError(t, err)
	assert.True(t, got.WhatsAppChatInitiated)
	assert.Equal(t, StatusPending, got.Status)
}

func TestListForUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t)
	f.book(t)
	_, err := f.svc.Accept(ctx, f.provider.Actor(), b.ID)
	require.NoError(t, err)

	mine, err := f.svc.ListForUser(ctx, f.client.Actor(), "")
	require.NoError(t, err)
	assert.Len(t, mine.AsClient, 2)
	assert.Empty(t, mine.AsProvider)

	theirs, err := f.svc.ListForUser(ctx, f.provider.Actor(), "accepted")
	require.NoError(t, err)
	assert.Len(t, theirs.AsProvider, 1)

	_, err = f.svc.ListForUser(ctx, f.client.Actor(), "bogus")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
