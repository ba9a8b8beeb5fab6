package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alicia-launcher/internal/domain"
)

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name        string
		configJSON  string
		envVars     map[string]string
		expectError bool
		validate    func(*testing.T, *Config)
	}{
		{
			name: "Valid config",
			configJSON: `{
				"webInfoId": "alicia-webinfo",
				"webInfoContent": {
					"GameId": "ALICIA",
					"MemberNo": 42,
					"LoginId": "bob",
					"AuthKey": "secret",
					"InstallUrl": "http://127.0.0.1",
					"ServerType": 0,
					"ServerInfo": "127.0.0.1:10030",
					"Age": 20,
					"Sex": 2,
					"Birthday": "2000-01-01",
					"WardNo": 1,
					"CityCode": 5,
					"ZipCode": "00000",
					"PcBangNo": 3,
					"CloseTime": "2359"
				},
				"executableProgram": "Alicia.exe",
				"executableArguments": "-GameID ALICIA",
				"launch": true
			}`,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "alicia-webinfo", cfg.WebInfoID)
				assert.Equal(t, "ALICIA", cfg.WebInfoContent.GameID)
				assert.Equal(t, uint64(42), cfg.WebInfoContent.MemberNo)
				assert.Equal(t, domain.SexMale, cfg.WebInfoContent.Sex)
				assert.Equal(t, uint32(5), cfg.WebInfoContent.CityCode)
				assert.Equal(t, uint32(3), cfg.WebInfoContent.PCBangNo)
				assert.Equal(t, "Alicia.exe", cfg.ExecutableProgram)
				assert.True(t, cfg.Launch)
				assert.Empty(t, cfg.MetricsFile)
			},
		},
		{
			name: "Launch disabled without program",
			configJSON: `{
				"webInfoId": "alicia-webinfo",
				"webInfoContent": {"GameId": "ALICIA"},
				"launch": false
			}`,
			validate: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.Launch)
				assert.Empty(t, cfg.ExecutableProgram)
			},
		},
		{
			name: "Launch enabled without program",
			configJSON: `{
				"webInfoId": "alicia-webinfo",
				"launch": true
			}`,
			expectError: true,
		},
		{
			name:        "Missing web info id",
			configJSON:  `{"launch": false}`,
			expectError: true,
		},
		{
			name:        "Web info id with path separator",
			configJSON:  `{"webInfoId": "../escape", "launch": false}`,
			expectError: true,
		},
		{
			name: "Unknown sex value",
			configJSON: `{
				"webInfoId": "alicia-webinfo",
				"webInfoContent": {"Sex": 4}
			}`,
			expectError: true,
		},
		{
			name: "Sex value past 32 bits",
			configJSON: `{
				"webInfoId": "alicia-webinfo",
				"webInfoContent": {"Sex": 4294967298}
			}`,
			expectError: true,
		},
		{
			name:        "Web info id is a dot",
			configJSON:  `{"webInfoId": ".", "launch": false}`,
			expectError: true,
		},
		{
			name:        "Invalid JSON",
			configJSON:  `{"webInfoId": `,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create temporary config file
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "settings.json")
			err := os.WriteFile(configPath, []byte(tt.configJSON), 0644)
			require.NoError(t, err)

			// Set environment variables
			t.Setenv("CONFIG_PATH", configPath)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			// Test config loading
			cfg, err := NewConfig()
			if tt.expectError {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestNewConfigMissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.json"))

	_, err := NewConfig()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCredentials(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected domain.Credentials
		ok       bool
	}{
		{"No arguments", nil, domain.Credentials{}, false},
		{"Only login id", []string{"bob"}, domain.Credentials{}, false},
		{"Login id and auth key", []string{"bob", "xyz"}, domain.Credentials{LoginID: "bob", AuthKey: "xyz"}, true},
		{"Extra arguments ignored", []string{"bob", "xyz", "extra"}, domain.Credentials{LoginID: "bob", AuthKey: "xyz"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, ok := Credentials(tt.args)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, creds)
		})
	}
}

func TestConfigWebInfo(t *testing.T) {
	cfg := &Config{}
	cfg.WebInfoContent.LoginID = "from-settings"
	cfg.WebInfoContent.AuthKey = "settings-key"
	cfg.WebInfoContent.GameID = "ALICIA"

	info := cfg.WebInfo(domain.Credentials{})
	assert.Equal(t, "from-settings", info.LoginID)

	info = cfg.WebInfo(domain.Credentials{LoginID: "bob", AuthKey: "xyz"})
	assert.Equal(t, "bob", info.LoginID)
	assert.Equal(t, "xyz", info.AuthKey)
	assert.Equal(t, "ALICIA", info.GameID)
	assert.Equal(t, "from-settings", cfg.WebInfoContent.LoginID)
}
