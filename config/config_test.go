package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ELASTICSEARCH_ADDRESSES", " http://es1:9200 , ,http://es2:9200")
	t.Setenv("SEARCH_SYNC_MODE", "BROKER")
	t.Setenv("SEARCH_SYNC_BUFFER", "not-a-number")

	cfg := Load()

	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.ES.Addresses)
	assert.Equal(t, "userinfo", cfg.ES.Index)
	assert.Equal(t, SyncModeBroker, cfg.Sync.Mode)
	assert.Equal(t, defaultSyncBuffer, cfg.Sync.BufferSize)
}

func TestConfig_DBDSN(t *testing.T) {
	tests := []struct {
		name    string
		db      DB
		want    string
		wantErr bool
	}{
		{
			name:    "incomplete",
			db:      DB{User: "u", Host: "h"},
			wantErr: true,
		},
		{
			name: "plain",
			db:   DB{User: "u", Password: "p", Name: "app", Host: "h", Port: "5432"},
			want: "postgres://u:p@h:5432/app",
		},
		{
			name: "escaped password and sslmode",
			db:   DB{User: "u", Password: "p@ss", Name: "app", Host: "h", Port: "5432", SSLMode: "disable"},
			want: "postgres://u:p%40ss@h:5432/app?sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn, err := Config{DB: tt.db}.DBDSN()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, dsn)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	base := Config{
		App:  APP{JWTSecret: "s"},
		ES:   ES{Addresses: []string{"http://localhost:9200"}},
		Sync: Sync{Mode: SyncModeLocal},
	}
	require.NoError(t, base.Validate())

	noSecret := base
	noSecret.App.JWTSecret = ""
	assert.Error(t, noSecret.Validate())

	badMode := base
	badMode.Sync.Mode = "sometimes"
	assert.Error(t, badMode.Validate())

	noES := base
	noES.ES.Addresses = nil
	assert.Error(t, noES.Validate())
}
