package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentnest/internal/config"
	"talentnest/internal/events"
	"talentnest/internal/testutil"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type api struct {
	t   *testing.T
	srv *Server
	h   http.Handler
}

func newAPI(t *testing.T) (*api, *events.Recorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	db := testutil.NewDB(t, Models()...)
	rec := events.NewRecorder()
	srv := New(cfg, db, rec)
	return &api{t: t, srv: srv, h: srv.Handler()}, rec
}

func (a *api) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.h.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "" && bytes.HasPrefix(w.Body.Bytes(), []byte("{")) {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func (a *api) data(env envelope, dst any) {
	a.t.Helper()
	require.NoError(a.t, json.Unmarshal(env.Data, dst))
}

func (a *api) token(env envelope) string {
	var res struct {
		Token string `json:"token"`
	}
	a.data(env, &res)
	require.NotEmpty(a.t, res.Token)
	return res.Token
}

func (a *api) register(email, role string, extra map[string]string) string {
	body := map[string]string{
		"email":        email,
		"password":     "correct-horse",
		"role":         role,
		"display_name": "User " + role,
	}
	for k, v := range extra {
		body[k] = v
	}
	code, env := a.do(http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(a.t, http.StatusCreated, code, env.Error)
	return a.token(env)
}

type idOnly struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

func TestMarketplaceFlow(t *testing.T) {
	a, rec := newAPI(t)
	ctx := context.Background()

	artisan := a.register("ada@uni.edu", "artisan", map[string]string{
		"whatsapp_number": "+234 803 123 4567",
		"business_name":   "Ada Prints",
	})
	student := a.register("tobi@uni.edu", "student", nil)

	_, err := a.srv.Services.Auth.CreateAdmin(ctx, "admin@uni.edu", "admin-pass-123", "Admin")
	require.NoError(t, err)
	code, env := a.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "admin@uni.edu", "password": "admin-pass-123"})
	require.Equal(t, http.StatusOK, code)
	admin := a.token(env)

	// listing starts pending and cannot go live before the owner is verified
	code, env = a.do(http.MethodPost, "/api/v1/services", artisan, map[string]any{
		"title":       "Custom T-shirt printing",
		"description": "Screen printing for clubs and departments",
		"category":    "printing",
		"tags":        []string{"shirts", "Shirts", "merch"},
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	var listing idOnly
	a.data(env, &listing)
	assert.Equal(t, "pending", listing.Status)

	statusPath := fmt.Sprintf("/api/v1/admin/services/%d/status", listing.ID)
	code, env = a.do(http.MethodPatch, statusPath, admin, map[string]string{"status": "active"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "OWNER_NOT_VERIFIED", env.Error.Code)

	// verification
	code, _ = a.do(http.MethodPost, "/api/v1/verification", student, map[string]any{
		"full_name": "Tobi", "student_id": "X", "business_name": "None",
	})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = a.do(http.MethodPost, "/api/v1/verification", artisan, map[string]any{
		"full_name":     "Ada Obi",
		"student_id":    "CSC/2021/041",
		"business_name": "Ada Prints",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	var vr idOnly
	a.data(env, &vr)

	code, _ = a.do(http.MethodPost, fmt.Sprintf("/api/v1/admin/verifications/%d/approve", vr.ID), admin, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	for _, c := range []string{"matric_number", "business_name", "certificates", "bio"} {
		code, env = a.do(http.MethodPatch, fmt.Sprintf("/api/v1/admin/verifications/%d/checks", vr.ID), admin, map[string]any{"check": c, "value": true})
		require.Equal(t, http.StatusOK, code, env.Error)
	}
	code, env = a.do(http.MethodPost, fmt.Sprintf("/api/v1/admin/verifications/%d/approve", vr.ID), admin, map[string]string{"notes": "all good"})
	require.Equal(t, http.StatusOK, code, env.Error)
	a.data(env, &vr)
	assert.Equal(t, "approved", vr.Status)

	code, env = a.do(http.MethodGet, "/api/v1/auth/me", artisan, nil)
	require.Equal(t, http.StatusOK, code)
	var me struct {
		ID         int64 `json:"id"`
		IsVerified bool  `json:"is_verified"`
	}
	a.data(env, &me)
	assert.True(t, me.IsVerified)

	code, env = a.do(http.MethodPatch, statusPath, admin, map[string]string{"status": "active"})
	require.Equal(t, http.StatusOK, code, env.Error)

	// public browsing
	code, env = a.do(http.MethodGet, "/api/v1/services?q=printing", "", nil)
	require.Equal(t, http.StatusOK, code)
	var page struct {
		Items []idOnly `json:"items"`
		Total int64    `json:"total"`
	}
	a.data(env, &page)
	assert.Equal(t, int64(1), page.Total)

	// booking and contact
	code, env = a.do(http.MethodPost, "/api/v1/bookings", student, map[string]any{"service_id": listing.ID, "message": "20 shirts please"})
	require.Equal(t, http.StatusCreated, code, env.Error)
	var b idOnly
	a.data(env, &b)
	assert.Equal(t, "pending", b.Status)

	code, _ = a.do(http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/accept", b.ID), student, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = a.do(http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/accept", b.ID), artisan, nil)
	require.Equal(t, http.StatusOK, code, env.Error)

	code, env = a.do(http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/contact", b.ID), student, nil)
	require.Equal(t, http.StatusOK, code, env.Error)
	var contact struct {
		Link struct {
			URL string `json:"url"`
		} `json:"link"`
	}
	a.data(env, &contact)
	assert.Contains(t, contact.Link.URL, "https://api.whatsapp.com/send?phone=2348031234567")

	code, _ = a.do(http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/complete", b.ID), artisan, nil)
	assert.Equal(t, http.StatusConflict, code)

	// admin console
	code, env = a.do(http.MethodGet, "/api/v1/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, code)
	var stats struct {
		TotalUsers       int64            `json:"total_users"`
		VerifiedArtisans int64            `json:"verified_artisans"`
		BookingsByStatus map[string]int64 `json:"bookings_by_status"`
		ContactEvents    int64            `json:"contact_events"`
	}
	a.data(env, &stats)
	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.VerifiedArtisans)
	assert.Equal(t, int64(1), stats.BookingsByStatus["accepted"])
	assert.Equal(t, int64(1), stats.ContactEvents)

	code, _ = a.do(http.MethodGet, "/api/v1/admin/stats", student, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// review after completion
	code, _ = a.do(http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/review", b.ID), student, map[string]any{"rating": 5})
	assert.Equal(t, http.StatusConflict, code)

	code, env = a.do(http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/start", b.ID), artisan, nil)
	require.Equal(t, http.StatusOK, code, env.Error)
	code, env = a.do(http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/complete", b.ID), artisan, nil)
	require.Equal(t, http.StatusOK, code, env.Error)

	code, env = a.do(http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/review", b.ID), student, map[string]any{"rating": 4, "comment": "Sharp prints"})
	require.Equal(t, http.StatusCreated, code, env.Error)
	var rv idOnly
	a.data(env, &rv)

	code, env = a.do(http.MethodPost, fmt.Sprintf("/api/v1/reviews/%d/response", rv.ID), artisan, map[string]string{"response": "Thank you"})
	require.Equal(t, http.StatusOK, code, env.Error)

	code, env = a.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/reviews", me.ID), "", nil)
	require.Equal(t, http.StatusOK, code)
	a.data(env, &page)
	assert.Equal(t, int64(1), page.Total)

	code, env = a.do(http.MethodGet, "/api/v1/auth/me", artisan, nil)
	require.Equal(t, http.StatusOK, code)
	var rated struct {
		Rating      float64 `json:"rating"`
		ReviewCount int     `json:"review_count"`
	}
	a.data(env, &rated)
	assert.Equal(t, 1, rated.ReviewCount)
	assert.InDelta(t, 4.0, rated.Rating, 0.0001)

	assert.Contains(t, rec.Subjects(), events.SubjectReviewCreated)
	assert.Contains(t, rec.Subjects(), events.SubjectVerificationReviewed)
	assert.Contains(t, rec.Subjects(), events.SubjectBookingStatusChanged)
	assert.Contains(t, rec.Subjects(), events.SubjectContactInitiated)
}

func TestHealthAndMetrics(t *testing.T) {
	a, _ := newAPI(t)

	code, env := a.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	a.h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "talentnest_http_requests_total")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	a, _ := newAPI(t)

	code, env := a.do(http.MethodGet, "/api/v1/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "AUTH_HEADER_MISSING", env.Error.Code)

	code, _ = a.do(http.MethodGet, "/api/v1/admin/verifications", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}
