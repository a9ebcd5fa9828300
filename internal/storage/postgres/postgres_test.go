package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rawURL   string
		forceTLS bool
		want     string
	}{
		{
			name:   "plain host untouched",
			rawURL: "postgres://u:p@localhost:5432/app",
			want:   "postgres://u:p@localhost:5432/app",
		},
		{
			name:   "managed provider gets sslmode",
			rawURL: "postgres://u:p@ep-cool-sky.eu-central-1.aws.neon.tech/app",
			want:   "postgres://u:p@ep-cool-sky.eu-central-1.aws.neon.tech/app?sslmode=require",
		},
		{
			name:   "existing sslmode wins",
			rawURL: "postgres://u:p@db.example.supabase.co/app?sslmode=disable",
			want:   "postgres://u:p@db.example.supabase.co/app?sslmode=disable",
		},
		{
			name:     "forceTLS applies anywhere",
			rawURL:   "postgres://u:p@localhost:5432/app",
			forceTLS: true,
			want:     "postgres://u:p@localhost:5432/app?sslmode=require",
		},
		{
			name:   "rds host",
			rawURL: "postgres://u:p@mydb.cluster-abc.us-east-1.rds.amazonaws.com/app",
			want:   "postgres://u:p@mydb.cluster-abc.us-east-1.rds.amazonaws.com/app?sslmode=require",
		},
		{
			name:   "unparseable passes through",
			rawURL: "://not a url",
			want:   "://not a url",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeURL(tt.rawURL, tt.forceTLS))
		})
	}
}
