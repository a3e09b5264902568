package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// 设置测试环境变量
	os.Setenv("BACKEND_URL", "http://localhost:5000")
	os.Setenv("HTTP_ADDR", ":8080")
	defer func() {
		os.Unsetenv("BACKEND_URL")
		os.Unsetenv("HTTP_ADDR")
	}()

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "http://localhost:5000", cfg.Backend.URL)
}

func TestLoadDefaults(t *testing.T) {
	// 只设置必需的配置
	os.Setenv("BACKEND_URL", "http://localhost:5000")
	defer os.Unsetenv("BACKEND_URL")

	cfg, err := Load()
	require.NoError(t, err)

	// 验证默认值
	assert.Equal(t, ":27080", cfg.HTTP.Addr)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Production)
}

func TestLoad_MissingBackendURL(t *testing.T) {
	os.Unsetenv("BACKEND_URL")

	_, err := Load()
	assert.Error(t, err, "缺少 BACKEND_URL 应该报错")
}

func TestLoad_TrimsTrailingSlash(t *testing.T) {
	os.Setenv("BACKEND_URL", "http://localhost:5000/")
	defer os.Unsetenv("BACKEND_URL")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.Backend.URL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *Config
		wantError bool
	}{
		{
			name: "valid config",
			cfg: &Config{
				HTTP:    HTTPConfig{Addr: ":27080"},
				Backend: BackendConfig{URL: "http://localhost:5000"},
			},
			wantError: false,
		},
		{
			name: "missing backend url",
			cfg: &Config{
				HTTP: HTTPConfig{Addr: ":27080"},
			},
			wantError: true,
		},
		{
			name: "backend url without scheme",
			cfg: &Config{
				HTTP:    HTTPConfig{Addr: ":27080"},
				Backend: BackendConfig{URL: "localhost:5000"},
			},
			wantError: true,
		},
		{
			name: "missing http addr",
			cfg: &Config{
				Backend: BackendConfig{URL: "http://localhost:5000"},
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
