package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/parkwise/parking-client/internal/core/domain"
	"github.com/parkwise/parking-client/internal/core/ports"
	"github.com/parkwise/parking-client/internal/infrastructure/store"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, ports.CredentialStore, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	creds := store.NewMemory()
	d := NewDispatcher(DispatcherConfig{
		BaseURL:     srv.URL,
		Credentials: creds,
		HTTPClient:  srv.Client(),
		Logger:      zerolog.Nop(),
	})
	return NewClient(d, creds, zerolog.Nop()), creds, srv.Close
}

func TestClient_LoginPersistsCredential(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in loginRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatalf("decoding login request: %v", err)
		}
		if in.Username != "alice" || in.Password != "s3cret" || in.Role != "user" {
			t.Fatalf("unexpected login payload: %+v", in)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message":       "Login successful",
			"access_token":  "tok-1",
			"refresh_token": "ref-1",
			"user":          map[string]any{"id": 7, "username": "alice"},
		})
	})
	client, creds, done := newTestClient(t, mux)
	defer done()

	cred, err := client.Login(context.Background(), "alice", "s3cret", "")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if cred.Role() != domain.RoleUser {
		t.Fatalf("role = %q, want requested role filled in", cred.Role())
	}

	stored, _ := creds.Get()
	if stored.AccessToken != "tok-1" || stored.RefreshToken != "ref-1" {
		t.Fatalf("credential not persisted: %+v", stored)
	}
	if stored.User == nil || stored.User.ID != 7 {
		t.Fatalf("user not persisted: %+v", stored.User)
	}
}

func TestClient_LoginFailureLeavesStoreEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "Incorrect password. Please try again"}`))
	})
	client, creds, done := newTestClient(t, mux)
	defer done()

	if _, err := client.Login(context.Background(), "alice", "wrong", "user"); err == nil {
		t.Fatal("expected login to fail")
	}
	stored, _ := creds.Get()
	if stored.Authenticated() {
		t.Fatalf("failed login left a credential behind: %+v", stored)
	}
}

func TestClient_LogoutClearsEvenWhenServerFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	client, creds, done := newTestClient(t, mux)
	defer done()

	seedCredential(t, creds, "tok-1", "ref-1")
	if err := client.Logout(context.Background()); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	stored, _ := creds.Get()
	if stored.AccessToken != "" || stored.User != nil {
		t.Fatalf("logout did not clear the store: %+v", stored)
	}
}

func TestClient_ActiveBookingsDecodesServerShape(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/bookings", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{
				"id": 12,
				"spot_id": 3,
				"lot_id": 1,
				"vehicle_number": "KA-01-1234",
				"parking_timestamp": "2026-08-30T09:15:00.123456",
				"leaving_timestamp": null,
				"parking_cost": null,
				"is_active": true
			}
		]`))
	})
	client, creds, done := newTestClient(t, mux)
	defer done()
	seedCredential(t, creds, "tok-1", "ref-1")

	bookings, err := client.ActiveBookings(context.Background())
	if err != nil {
		t.Fatalf("ActiveBookings returned error: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("got %d bookings, want 1", len(bookings))
	}
	b := bookings[0]
	if !b.Active() {
		t.Fatal("open booking reported inactive")
	}
	if b.FinalCost != nil {
		t.Fatalf("open booking has a final cost: %v", *b.FinalCost)
	}
	if b.ParkingTimestamp.Hour() != 9 || b.ParkingTimestamp.Minute() != 15 {
		t.Fatalf("parking timestamp decoded wrong: %v", b.ParkingTimestamp)
	}
}

func TestClient_ReleaseDecodesFinalCost(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/bookings/12/release", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("release method = %s", r.Method)
		}
		_, _ = w.Write([]byte(`{
			"message": "Spot released successfully",
			"booking": {
				"id": 12,
				"parking_timestamp": "2026-08-30T09:00:00",
				"leaving_timestamp": "2026-08-30T11:30:00",
				"parking_cost": 125.0,
				"is_active": false
			},
			"duration_hours": 2.5,
			"cost": 125.0
		}`))
	})
	client, creds, done := newTestClient(t, mux)
	defer done()
	seedCredential(t, creds, "tok-1", "ref-1")

	result, err := client.Release(context.Background(), 12)
	if err != nil {
		t.Fatalf("Release returned error: %v", err)
	}
	if result.FinalCost != 125.0 || result.DurationHours != 2.5 {
		t.Fatalf("unexpected release result: %+v", result)
	}
	if result.Booking.Active() {
		t.Fatal("released booking still reported active")
	}
	if result.Booking.FinalCost == nil || *result.Booking.FinalCost != 125.0 {
		t.Fatalf("booking final cost not decoded: %+v", result.Booking.FinalCost)
	}
}

func TestClient_BookConflictSurfacesServerMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/bookings", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error": "You already have an active booking"}`))
	})
	client, creds, done := newTestClient(t, mux)
	defer done()
	seedCredential(t, creds, "tok-1", "ref-1")

	_, err := client.Book(context.Background(), ports.BookInput{LotID: 2})
	re, ok := err.(*domain.RequestError)
	if !ok {
		t.Fatalf("err = %v, want RequestError", err)
	}
	if re.Status != http.StatusConflict || re.Message != "You already have an active booking" {
		t.Fatalf("unexpected error: %+v", re)
	}
}

func TestClient_UpdateProfileRefreshesCachedUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Fatalf("profile update method = %s", r.Method)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 7, "username": "alice", "role": "user", "full_name": "Alice B",
		})
	})
	client, creds, done := newTestClient(t, mux)
	defer done()
	seedCredential(t, creds, "tok-1", "ref-1")

	user, err := client.UpdateProfile(context.Background(), ports.ProfileUpdate{FullName: "Alice B"})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if user.FullName != "Alice B" {
		t.Fatalf("full name = %q", user.FullName)
	}

	stored, _ := creds.Get()
	if stored.User == nil || stored.User.FullName != "Alice B" {
		t.Fatalf("cached user not refreshed: %+v", stored.User)
	}
	if stored.AccessToken != "tok-1" {
		t.Fatal("profile update clobbered tokens")
	}
}

func TestClient_TriggerExportUnwrapsEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/export", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{
			"message": "Export started",
			"job": {"id": 4, "user_id": 7, "status": "pending"}
		}`))
	})
	mux.HandleFunc("/user/export/4", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 4, "user_id": 7, "status": "completed"}`))
	})
	client, creds, done := newTestClient(t, mux)
	defer done()
	seedCredential(t, creds, "tok-1", "ref-1")

	job, err := client.TriggerExport(context.Background())
	if err != nil {
		t.Fatalf("TriggerExport returned error: %v", err)
	}
	if job.ID != 4 || job.Status != domain.ExportPending || job.Done() {
		t.Fatalf("unexpected job: %+v", job)
	}

	job, err = client.ExportStatus(context.Background(), 4)
	if err != nil {
		t.Fatalf("ExportStatus returned error: %v", err)
	}
	if !job.Done() {
		t.Fatalf("completed job not terminal: %+v", job)
	}
}

func TestClient_AdminStatsSummaryUnwrapsLotStats(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/stats/summary", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"lot_stats": [
				{"name": "Downtown", "total_bookings": 40, "revenue": 1250.5, "available": 3, "occupied": 7}
			]
		}`))
	})
	client, creds, done := newTestClient(t, mux)
	defer done()
	seedCredential(t, creds, "tok-1", "ref-1")

	stats, err := client.StatsSummary(context.Background())
	if err != nil {
		t.Fatalf("StatsSummary returned error: %v", err)
	}
	if len(stats) != 1 || stats[0].Name != "Downtown" || stats[0].Revenue != 1250.5 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestClient_PublicLotsNeedNoCredential(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/parking-lots", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Fatal("public call carried a bearer token")
		}
		_, _ = w.Write([]byte(`[
			{"id": 1, "prime_location_name": "Downtown", "price": 50, "number_of_spots": 10, "available_spots": 3, "occupied_spots": 7}
		]`))
	})
	client, _, done := newTestClient(t, mux)
	defer done()

	lots, err := client.PublicLots(context.Background())
	if err != nil {
		t.Fatalf("PublicLots returned error: %v", err)
	}
	if len(lots) != 1 || lots[0].Name != "Downtown" || lots[0].AvailableSpots != 3 {
		t.Fatalf("unexpected lots: %+v", lots)
	}
}
