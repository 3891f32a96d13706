package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/errorlog/pkg/config"
	"github.com/dmitrymomot/errorlog/pkg/environment"
)

type defaultsConfig struct {
	Runtime environment.Runtime `env:"CFG_TEST_DEFAULT_RUNTIME" envDefault:"server"`
	Window  time.Duration       `env:"CFG_TEST_DEFAULT_WINDOW" envDefault:"30s"`
}

type cachedConfig struct {
	Value string `env:"CFG_TEST_CACHED" envDefault:"default"`
}

type requiredConfig struct {
	Value string `env:"CFG_TEST_REQUIRED,required"`
}

type fileConfig struct {
	Value  string `env:"CFG_TEST_FILE_VALUE"`
	Quoted string `env:"CFG_TEST_FILE_QUOTED"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, environment.Server, cfg.Runtime)
	assert.Equal(t, 30*time.Second, cfg.Window)
}

func TestLoad_CachesPerType(t *testing.T) {
	t.Setenv("CFG_TEST_CACHED", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Value)

	t.Setenv("CFG_TEST_CACHED", "second")
	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)

	config.ResetCache()
	var third cachedConfig
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "second", third.Value)
}

func TestLoad_RequiredMissing(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	t.Setenv("CFG_TEST_REQUIRED", "present")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "present", cfg.Value)
}

func TestLoad_NilPointer(t *testing.T) {
	assert.ErrorIs(t, config.Load[cachedConfig](nil), config.ErrNilPointer)
	assert.ErrorIs(t, config.Parse[cachedConfig](nil, nil), config.ErrNilPointer)
}

func TestMustLoad_Panics(t *testing.T) {
	type mustConfig struct {
		Value string `env:"CFG_TEST_MUST,required"`
	}
	var cfg mustConfig
	assert.Panics(t, func() { config.MustLoad(&cfg) })
}

func TestLoadEnv(t *testing.T) {
	require.NoError(t, config.LoadEnv("testdata/.env.test"))
	t.Cleanup(func() {
		_ = os.Unsetenv("CFG_TEST_FILE_VALUE")
		_ = os.Unsetenv("CFG_TEST_FILE_QUOTED")
	})

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-file", cfg.Value)
	assert.Equal(t, "quoted value", cfg.Quoted)

	assert.ErrorIs(t, config.LoadEnv("testdata/missing.env"), config.ErrLoadingEnvFile)
	assert.NoError(t, config.LoadEnv())
}

func TestParse(t *testing.T) {
	t.Parallel()

	var cfg defaultsConfig
	require.NoError(t, config.Parse(&cfg, map[string]string{
		"CFG_TEST_DEFAULT_RUNTIME": "client",
		"CFG_TEST_DEFAULT_WINDOW":  "1m",
	}))
	assert.Equal(t, environment.Client, cfg.Runtime)
	assert.Equal(t, time.Minute, cfg.Window)

	err := config.Parse(&cfg, map[string]string{"CFG_TEST_DEFAULT_RUNTIME": "edge"})
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}
