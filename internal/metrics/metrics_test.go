package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingTransitionsCounter(t *testing.T) {
	before := testutil.ToFloat64(BookingTransitions.WithLabelValues("pending", "accepted"))
	BookingTransitions.WithLabelValues("pending", "accepted").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(BookingTransitions.WithLabelValues("pending", "accepted")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	ContactLinks.WithLabelValues("direct_service").Inc()

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "talentnest_contact_links_total")
}
