package model

import (
	"testing"
	"time"
)

func TestPermittedActions(t *testing.T) {
	tests := []struct {
		name   string
		status BookingStatus
		role   string
		want   []BookingAction
	}{
		{"operator confirms pending", StatusPending, RoleOperator, []BookingAction{ActionConfirm}},
		{"user cancels pending", StatusPending, RoleUser, []BookingAction{ActionCancel}},
		{"operator completes confirmed", StatusConfirmed, RoleOperator, []BookingAction{ActionComplete}},
		{"user cannot touch confirmed", StatusConfirmed, RoleUser, nil},
		{"unknown role gets nothing", StatusPending, "admin", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PermittedActions(tt.status, tt.role)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("action %d: got %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPermittedActions_TerminalStatuses(t *testing.T) {
	for _, status := range []BookingStatus{StatusCancelled, StatusCompleted} {
		if !status.Terminal() {
			t.Errorf("%s should be terminal", status)
		}
		for _, role := range []string{RoleUser, RoleOperator, ""} {
			if got := PermittedActions(status, role); len(got) != 0 {
				t.Errorf("%s/%q: expected no actions, got %v", status, role, got)
			}
		}
	}
}

func TestCanTransition(t *testing.T) {
	if !CanTransition(StatusPending, RoleOperator, ActionConfirm) {
		t.Error("operator should be able to confirm a pending booking")
	}
	if CanTransition(StatusPending, RoleUser, ActionConfirm) {
		t.Error("user must not confirm")
	}
	if CanTransition(StatusConfirmed, RoleUser, ActionCancel) {
		t.Error("confirmed bookings are not cancellable by the user")
	}
	if CanTransition(StatusCompleted, RoleOperator, ActionComplete) {
		t.Error("completed is terminal")
	}
}

func TestActionTarget(t *testing.T) {
	if got := ActionConfirm.Target(); got != StatusConfirmed {
		t.Errorf("confirm target = %s", got)
	}
	if got := ActionComplete.Target(); got != StatusCompleted {
		t.Errorf("complete target = %s", got)
	}
	if got := ActionCancel.Target(); got != StatusCancelled {
		t.Errorf("cancel target = %s", got)
	}
}

func TestBookingStatus_Valid(t *testing.T) {
	for _, s := range []BookingStatus{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if BookingStatus("archived").Valid() {
		t.Error("unknown status should be invalid")
	}
}

func TestBooking_Nights(t *testing.T) {
	checkIn := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	b := Booking{CheckInDate: checkIn, CheckOutDate: checkIn.AddDate(0, 0, 3)}
	if got := b.Nights(); got != 3 {
		t.Errorf("Nights() = %d, want 3", got)
	}
}

func TestRoleHome(t *testing.T) {
	if got := RoleHome(RoleOperator); got != "/operator" {
		t.Errorf("operator home = %s", got)
	}
	if got := RoleHome(RoleUser); got != "/" {
		t.Errorf("user home = %s", got)
	}
	if got := RoleHome("something-else"); got != "/" {
		t.Errorf("unknown role home = %s", got)
	}
}
