package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
env:
  env: test
  serviceName: pricecompare
  log:
    level: debug
http:
  port: 9090
secretKey:
  access: from-file
auth:
  accessTokenTTL: 30m
mail:
  provider: log
  verificationBaseUrl: http://example.test/verify_account
`

func TestLoadWithEnv_FileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(testYAML), 0o600))
	t.Chdir(dir)
	t.Setenv("SECRETKEY_ACCESS", "from-env")
	t.Setenv("HTTP_PORT", "9191")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "pricecompare", cfg.Env.ServiceName)
	assert.Equal(t, "from-env", cfg.SecretKey.Access)
	assert.Equal(t, 9191, cfg.HTTP.Port)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL)
	require.NotNil(t, cfg.Mail)
	assert.Equal(t, "http://example.test/verify_account", cfg.Mail.VerificationBaseURL)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config.yaml not found")
}
