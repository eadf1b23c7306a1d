package config_test

import (
	"os"
	"testing"
	"time"

	"parcelhub/internal/config"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func resetFlags(t *testing.T) {
	t.Helper()
	old := pflag.CommandLine
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	t.Cleanup(func() {
		pflag.CommandLine = old
	})
}

func TestLoad_Defaults(t *testing.T) {
	resetFlags(t)

	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_DB", "")
	t.Setenv("OPERATION_TIMEOUT", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	require.Equal(t, 3000, cfg.Port)
	require.Equal(t, "mongodb://127.0.0.1:27017", cfg.Mongo.URI)
	require.Equal(t, "parcelDB", cfg.Mongo.Database)
	require.Equal(t, 3*time.Second, cfg.OperationTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	resetFlags(t)

	t.Setenv("PORT", "9090")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DB", "parcels_test")
	t.Setenv("OPERATION_TIMEOUT", "5s")
	t.Setenv("PAYMENT_GATEWAY_KEY", "sk_test_123")
	t.Setenv("FIREBASE_CRED_FILE", "firebase-admin-key.json")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	require.Equal(t, "parcels_test", cfg.Mongo.Database)
	require.Equal(t, 5*time.Second, cfg.OperationTimeout)
	require.Equal(t, "sk_test_123", cfg.StripeKey)
	require.Equal(t, "firebase-admin-key.json", cfg.FirebaseCredFile)
}

func TestLoad_InvalidPort(t *testing.T) {
	resetFlags(t)

	t.Setenv("PORT", "70000")
	t.Setenv("MONGO_URI", "")

	cfg, err := config.Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoad_BadTimeoutFallsBack(t *testing.T) {
	resetFlags(t)

	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("OPERATION_TIMEOUT", "soon")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, config.DefaultOperationTimeout(), cfg.OperationTimeout)
}
