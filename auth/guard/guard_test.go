package guard

import (
	"testing"

	"github.com/google/uuid"

	"memberserver/auth/users"
)

func TestCheck(t *testing.T) {
	g := New("/login", "/")
	member := users.User{ID: uuid.New(), Email: "a@x.com"}
	anonymous := users.User{}

	tests := []struct {
		name         string
		user         users.User
		policy       Policy
		wantAllow    bool
		wantRedirect string
	}{
		{
			name:      "open anonymous",
			user:      anonymous,
			policy:    Open,
			wantAllow: true,
		},
		{
			name:      "open member",
			user:      member,
			policy:    Open,
			wantAllow: true,
		},
		{
			name:         "auth required anonymous",
			user:         anonymous,
			policy:       RequireAuth,
			wantAllow:    false,
			wantRedirect: "/login",
		},
		{
			name:      "auth required member",
			user:      member,
			policy:    RequireAuth,
			wantAllow: true,
		},
		{
			name:      "guest required anonymous",
			user:      anonymous,
			policy:    RequireGuest,
			wantAllow: true,
		},
		{
			name:         "guest required member",
			user:         member,
			policy:       RequireGuest,
			wantAllow:    false,
			wantRedirect: "/",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := g.Check(tt.user, tt.policy)
			if d.Allow != tt.wantAllow {
				t.Errorf("Allow = %v, want %v", d.Allow, tt.wantAllow)
			}
			if d.RedirectTo != tt.wantRedirect {
				t.Errorf("RedirectTo = %q, want %q", d.RedirectTo, tt.wantRedirect)
			}
			if d.Allow && d.Flash != "" {
				t.Errorf("allowed decision must not carry a flash message, got %q", d.Flash)
			}
			if !d.Allow && d.Flash == "" {
				t.Error("denied decision must carry a flash message")
			}
		})
	}
}
