package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func TestCreateRootCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	// Test basic command properties
	if cmd.Use != "phonobridge [word]" {
		t.Errorf("Expected Use to be 'phonobridge [word]', got %s", cmd.Use)
	}

	if !strings.Contains(cmd.Short, "pronunciation translator") {
		t.Errorf("Expected Short description to contain 'pronunciation translator'")
	}

	// Test that flags are set up
	flagTests := []struct {
		name     string
		expected bool
	}{
		{"config", true},
		{"from", true},
		{"to", true},
		{"batch", true},
		{"dictionary-only", true},
		{"stats", true},
		{"list-models", true},
		{"verbose", true},
		{"dict-dir", true},
		{"dict-db", true},
		{"export-db", true},
		{"tokenizer-dir", true},
		{"model-dir", true},
		{"table", true},
		{"policy", true},
		{"architecture", true},
		{"config-hash", true},
		{"cache-size", true},
		{"rerank", true},
		{"openai-model", true},
		{"gemini-model", true},
	}

	for _, tt := range flagTests {
		t.Run("flag_"+tt.name, func(t *testing.T) {
			var flag *pflag.Flag
			if tt.name == "config" {
				flag = cmd.PersistentFlags().Lookup(tt.name)
			} else {
				flag = cmd.Flags().Lookup(tt.name)
			}
			if flag == nil && tt.expected {
				t.Errorf("Expected flag %s to exist", tt.name)
			}
		})
	}
}

func TestSetupFlags(t *testing.T) {
	cmd := &cobra.Command{}
	flags := NewFlags()

	setupFlags(cmd, flags)

	// Test default values
	dictFlag := cmd.Flags().Lookup("dict-dir")
	if dictFlag == nil {
		t.Fatal("dict-dir flag not found")
	}

	home, _ := os.UserHomeDir()
	expectedDefault := filepath.Join(home, ".local", "share", "phonobridge", "dictionaries")
	if dictFlag.DefValue != expectedDefault {
		t.Errorf("Expected default dict dir to be %s, got %s", expectedDefault, dictFlag.DefValue)
	}

	// Test policy default
	policyFlag := cmd.Flags().Lookup("policy")
	if policyFlag == nil {
		t.Fatal("policy flag not found")
	}
	if policyFlag.DefValue != "last" {
		t.Errorf("Expected default policy to be last, got %s", policyFlag.DefValue)
	}
}

func TestInitConfig(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	tests := []struct {
		name      string
		cfgFile   string
		setupFunc func(t *testing.T) string
	}{
		{
			name:    "with config file",
			cfgFile: "test-config.yaml",
			setupFunc: func(t *testing.T) string {
				tmpDir := t.TempDir()
				cfgPath := filepath.Join(tmpDir, "test-config.yaml")
				content := `dictionary:
  policy: first
rerank:
  openai_key: test-key`
				err := os.WriteFile(cfgPath, []byte(content), 0644)
				if err != nil {
					t.Fatalf("Failed to create test config: %v", err)
				}
				return cfgPath
			},
		},
		{
			name:    "without config file",
			cfgFile: "",
			setupFunc: func(t *testing.T) string {
				return ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset viper for each test
			viper.Reset()

			cfgPath := tt.setupFunc(t)
			if tt.cfgFile != "" && cfgPath != "" {
				tt.cfgFile = cfgPath
			}

			InitConfig(tt.cfgFile)

			// Test environment variable prefix
			os.Setenv("PHONOBRIDGE_TEST_VAR", "test-value")
			defer os.Unsetenv("PHONOBRIDGE_TEST_VAR")

			if viper.GetString("test_var") != "test-value" {
				t.Error("Environment variable not properly loaded")
			}
		})
	}
}

func TestGetOpenAIKey(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	tests := []struct {
		name      string
		envKey    string
		configKey string
		expected  string
	}{
		{
			name:      "from environment",
			envKey:    "env-test-key",
			configKey: "config-test-key",
			expected:  "env-test-key",
		},
		{
			name:      "from config when no env",
			envKey:    "",
			configKey: "config-test-key",
			expected:  "config-test-key",
		},
		{
			name:      "empty when neither set",
			envKey:    "",
			configKey: "",
			expected:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset viper
			viper.Reset()

			// Set up environment
			if tt.envKey != "" {
				os.Setenv("OPENAI_API_KEY", tt.envKey)
				defer os.Unsetenv("OPENAI_API_KEY")
			} else {
				os.Unsetenv("OPENAI_API_KEY")
			}

			// Set up config
			if tt.configKey != "" {
				viper.Set("rerank.openai_key", tt.configKey)
			}

			got := GetOpenAIKey()
			if got != tt.expected {
				t.Errorf("GetOpenAIKey() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBindFlagsToViper(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	// Reset viper
	viper.Reset()

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	// Set some flag values
	cmd.Flags().Set("policy", "first")
	cmd.Flags().Set("model-dir", "/test/models")
	cmd.Flags().Set("rerank", "gemini")

	bindFlagsToViper(cmd)

	// Test that values are bound
	if viper.GetString("dictionary.policy") != "first" {
		t.Errorf("Expected dictionary.policy to be first, got %s", viper.GetString("dictionary.policy"))
	}

	if viper.GetString("models.dir") != "/test/models" {
		t.Errorf("Expected models.dir to be /test/models, got %s", viper.GetString("models.dir"))
	}

	if viper.GetString("rerank.provider") != "gemini" {
		t.Errorf("Expected rerank.provider to be gemini, got %s", viper.GetString("rerank.provider"))
	}
}
