package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocator(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{
			name:       "valid locator",
			input:      "s3://ticketdesk-imports/tickets/7f3a.json",
			wantBucket: "ticketdesk-imports",
			wantKey:    "tickets/7f3a.json",
		},
		{
			name:       "key with nested path",
			input:      "s3://b/a/b/c.json",
			wantBucket: "b",
			wantKey:    "a/b/c.json",
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "wrong scheme",
			input:   "gs://bucket/key",
			wantErr: true,
		},
		{
			name:    "missing key",
			input:   "s3://bucket",
			wantErr: true,
		},
		{
			name:    "empty key after slash",
			input:   "s3://bucket/",
			wantErr: true,
		},
		{
			name:    "empty bucket",
			input:   "s3:///key",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := ParseLocator(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidLocator)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, loc.Bucket)
			assert.Equal(t, tt.wantKey, loc.Key)
			assert.Equal(t, tt.input, loc.String())
		})
	}
}
