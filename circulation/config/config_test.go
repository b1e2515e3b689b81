package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "ok",
			cfg:  Config{Storage: Storage{Driver: DriverMemory}, Circulation: Circulation{IssuePoints: 10, ReturnPoints: 5}},
		},
		{
			name:    "unknown driver",
			cfg:     Config{Storage: Storage{Driver: "mysql"}, Circulation: Circulation{IssuePoints: 10, ReturnPoints: 5}},
			wantErr: true,
		},
		{
			name:    "zero reward",
			cfg:     Config{Storage: Storage{Driver: DriverPostgres}, Circulation: Circulation{IssuePoints: 10}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		err := tt.cfg.validate()
		if tt.wantErr {
			require.Error(t, err, tt.name)
		} else {
			require.NoError(t, err, tt.name)
		}
	}
}

func TestOptions(t *testing.T) {
	t.Parallel()
	var cfg Config
	for _, op := range []Option{
		WithLogLevel(zapcore.DebugLevel),
		WithWriteTimeout(time.Minute),
		WithStorageDriver(DriverMemory),
	} {
		op(&cfg)
	}
	require.Equal(t, zapcore.DebugLevel, cfg.Log.LogLevel)
	require.Equal(t, time.Minute, cfg.Server.WriteTimeout)
	require.Equal(t, DriverMemory, cfg.Storage.Driver)
}

func TestValidate_DefaultDriver(t *testing.T) {
	t.Parallel()
	cfg := Config{Circulation: Circulation{IssuePoints: 10, ReturnPoints: 5}}
	require.NoError(t, cfg.validate())
	require.Equal(t, DriverPostgres, cfg.Storage.Driver)
}

// NewConfig runs once per process, so this is the only test calling it.
func TestNewConfig_OptionsSurviveEnv(t *testing.T) {
	for _, key := range []string{"STORAGE_DRIVER", "HTTP_WRITE", "LOG_LEVEL", "CIRCULATION_HTTP_PORT", "REWARD_ISSUE_POINTS"} {
		if prev, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { os.Setenv(key, prev) }) //nolint:errcheck
		}
	}

	cfg := NewConfig(
		WithStorageDriver(DriverMemory),
		WithWriteTimeout(time.Minute),
		WithLogLevel(zapcore.DebugLevel),
	)
	require.Equal(t, DriverMemory, cfg.Storage.Driver)
	require.Equal(t, time.Minute, cfg.Server.WriteTimeout)
	require.Equal(t, zapcore.DebugLevel, cfg.Log.LogLevel)
	require.EqualValues(t, 10, cfg.Circulation.IssuePoints)
	require.Equal(t, "8080", cfg.Server.Port)
}
