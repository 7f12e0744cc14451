package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHotelReqValidate(t *testing.T) {
	tests := []struct {
		name string
		req  hotelReq
		want string
	}{
		{"valid", hotelReq{Name: "Ritz", Address: "1 Main St", Price: 120, AvailableRooms: 4}, ""},
		{"trims and rejects blank name", hotelReq{Name: "   ", Address: "1 Main St", Price: 120}, "name is required"},
		{"missing address", hotelReq{Name: "Ritz", Price: 120}, "address is required"},
		{"zero price", hotelReq{Name: "Ritz", Address: "1 Main St"}, "price must be positive"},
		{"negative rooms", hotelReq{Name: "Ritz", Address: "1 Main St", Price: 120, AvailableRooms: -1}, "availableRooms must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.validate(); got != tt.want {
				t.Errorf("validate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetUserID_ClaimTypes(t *testing.T) {
	e := echo.New()
	newCtx := func() echo.Context {
		req := httptest.NewRequest("GET", "/", nil)
		return e.NewContext(req, httptest.NewRecorder())
	}

	// jwt MapClaims deliver numbers as float64; the setter may also use
	// native ints in tests and internal calls.
	for name, v := range map[string]interface{}{
		"float64": float64(42),
		"int":     int(42),
		"int64":   int64(42),
		"uint64":  uint64(42),
		"string":  "42",
	} {
		c := newCtx()
		c.Set("user_id", v)
		id, err := getUserID(c)
		if err != nil {
			t.Errorf("%s: unexpected error %v", name, err)
		}
		if id != 42 {
			t.Errorf("%s: got %d, want 42", name, id)
		}
	}

	c := newCtx()
	if _, err := getUserID(c); err == nil {
		t.Error("missing claim should error")
	}
}

func TestPathID(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest("GET", "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("17")

	id, err := pathID(c, "id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 17 {
		t.Errorf("got %d, want 17", id)
	}

	c.SetParamValues("not-a-number")
	if _, err := pathID(c, "id"); err == nil {
		t.Error("non-numeric id should error")
	}
}
