package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		have     []Role
		required []Role
		wantErr  error
	}{
		{
			name:     "manager allowed for manager-only",
			have:     []Role{RoleManager},
			required: []Role{RoleManager},
		},
		{
			name:     "one of several roles matches",
			have:     []Role{RoleSupport, RoleManager},
			required: []Role{RoleAdmin, RoleManager},
		},
		{
			name:     "support rejected for manager-only",
			have:     []Role{RoleSupport},
			required: []Role{RoleManager},
			wantErr:  ErrForbidden,
		},
		{
			name:     "no roles at all",
			have:     nil,
			required: []Role{RoleManager},
			wantErr:  ErrForbidden,
		},
		{
			name:     "empty required set rejects everyone",
			have:     []Role{RoleAdmin},
			required: nil,
			wantErr:  ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.have, tt.required...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"support", "manager", "admin"} {
		role, ok := ParseRole(valid)
		require.True(t, ok, valid)
		assert.Equal(t, Role(valid), role)
	}

	for _, invalid := range []string{"", "Manager", "superuser", "user"} {
		_, ok := ParseRole(invalid)
		assert.False(t, ok, invalid)
	}
}

func TestValidTicketStatus(t *testing.T) {
	for _, valid := range []string{"new", "triaging", "in_progress", "in_review", "done", "closed"} {
		assert.True(t, ValidTicketStatus(valid), valid)
	}

	for _, invalid := range []string{"", "NEW", "open", "resolved"} {
		assert.False(t, ValidTicketStatus(invalid), invalid)
	}
}
