package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	require.NoError(t, c.Tokens.Save("tok-123"))

	_, err := c.SearchHotels(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_NoBearerWhenStoreEmpty(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.SearchHotels(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_APIErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"no rooms available"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.CreateBooking(context.Background(), CreateBookingInput{
		HotelID:      1,
		CheckInDate:  "2026-03-10",
		CheckOutDate: "2026-03-12",
		GuestCount:   2,
	})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "no rooms available", apiErr.Message)
}

func TestClient_APIErrorFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("nginx says no"))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.GetHotel(context.Background(), 5)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestClient_ContextCancellationAbortsRequest(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := New(srv.URL, nil)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := c.SearchHotels(ctx, "")
		errCh <- err
	}()

	<-started
	cancel()

	err := <-errCh
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "expected context.Canceled, got %v", err)
}

// Pre-submission validation must short-circuit before the transport: an
// operator registration without a register code never reaches the server.
func TestClient_RegisterValidationSkipsNetwork(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Register(context.Background(), RegisterInput{
		Email:    "op@example.com",
		Password: "longenough",
		Role:     "operator",
	})
	require.Error(t, err)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "registerCode", fieldErr.Field)
	assert.Equal(t, int64(0), hits.Load(), "no request should have been sent")
}

func TestClient_BookingDateValidationSkipsNetwork(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.CreateBooking(context.Background(), CreateBookingInput{
		HotelID:      1,
		CheckInDate:  "2026-03-12",
		CheckOutDate: "2026-03-10",
		GuestCount:   1,
	})
	require.Error(t, err)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "checkOutDate", fieldErr.Field)
	assert.Equal(t, int64(0), hits.Load())

	// same-day stays are rejected too
	_, err = c.CreateBooking(context.Background(), CreateBookingInput{
		HotelID:      1,
		CheckInDate:  "2026-03-10",
		CheckOutDate: "2026-03-10",
		GuestCount:   1,
	})
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, int64(0), hits.Load())
}
