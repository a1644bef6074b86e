package helper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"pgx 23505", &pgconn.PgError{Code: "23505"}, true},
		{"pgx 23505 terbungkus", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{"pgx kode lain", &pgconn.PgError{Code: "23503"}, false},
		{"sqlite via string", errors.New("UNIQUE constraint failed: registrations.registration_event_id"), true},
		{"error biasa", errors.New("connection refused"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUniqueViolation(tc.err); got != tc.want {
				t.Fatalf("IsUniqueViolation(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
