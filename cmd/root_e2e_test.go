package cmd_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// testBinaryName is the name of the test binary for E2E tests.
	testBinaryName = "spot-grabber-test"
)

// TestMain builds the binary before running E2E tests.
func TestMain(m *testing.M) {
	// Build the binary for testing.
	//nolint:noctx // TestMain doesn't have access to context, and build is needed before tests run.
	buildCmd := exec.Command("go", "build", "-o", testBinaryName, "../.")
	if err := buildCmd.Run(); err != nil {
		os.Exit(1)
	}

	// Run tests.
	code := m.Run()

	// Cleanup.
	_ = os.Remove(testBinaryName)

	os.Exit(code)
}

// validationOutput mirrors the JSON printed by the validate command.
type validationOutput struct {
	Valid   bool    `json:"valid"`
	Type    *string `json:"type"`
	URL     string  `json:"url"`
	Message string  `json:"message"`
}

// TestE2E_Validate tests the validate command output.
func TestE2E_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		expectValid  bool
		expectedType string
		expectedURL  string
	}{
		{
			name:         "track web link with query",
			input:        "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC?si=abc",
			expectValid:  true,
			expectedType: "track",
			expectedURL:  "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC",
		},
		{
			name:         "album URI",
			input:        "spotify:album:1DFixLWuPkv3KT3TnV35m3",
			expectValid:  true,
			expectedType: "album",
			expectedURL:  "https://open.spotify.com/album/1DFixLWuPkv3KT3TnV35m3",
		},
		{
			name:        "foreign host",
			input:       "https://example.com/track/4uLU6hMCjMI75M1A2tKUQC",
			expectValid: false,
			expectedURL: "https://example.com/track/4uLU6hMCjMI75M1A2tKUQC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			//nolint:gosec,noctx // Test binary name is a constant, not user input. No context available in test.
			cmd := exec.Command("./"+testBinaryName, "--config", writeConfig(t), "validate", tt.input)

			output, err := cmd.Output()
			require.NoError(t, err)

			var result validationOutput
			require.NoError(t, json.Unmarshal(output, &result), "output: %s", string(output))

			assert.Equal(t, tt.expectValid, result.Valid)
			assert.Equal(t, tt.expectedURL, result.URL)

			if tt.expectValid {
				require.NotNil(t, result.Type)
				assert.Equal(t, tt.expectedType, *result.Type)
				assert.Empty(t, result.Message)
			} else {
				assert.Nil(t, result.Type)
				assert.Equal(t, "Invalid Spotify URL", result.Message)
			}
		})
	}
}

// TestE2E_FlagOverrides_InvalidValues tests that invalid flag values are rejected.
func TestE2E_FlagOverrides_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		flags            []string
		expectedErrorMsg string
	}{
		{
			name:             "invalid bitrate",
			flags:            []string{"--bitrate", "loud"},
			expectedErrorMsg: "bitrate must be a positive integer",
		},
		{
			name:             "invalid format",
			flags:            []string{"--format", "ogg"},
			expectedErrorMsg: "unknown audio format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Prepare arguments.
			args := []string{
				"--config", writeConfig(t),
				"https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC",
			}
			args = append(args, tt.flags...)

			// Run the binary.
			//nolint:gosec,noctx // Test binary name is a constant, not user input. No context available in test.
			cmd := exec.Command("./"+testBinaryName, args...)
			output, err := cmd.CombinedOutput()

			// Should fail with error.
			require.Error(t, err)

			outputStr := string(output)

			// Verify error message.
			assert.Contains(t, strings.ToLower(outputStr), strings.ToLower(tt.expectedErrorMsg),
				"Expected error message about '%s' but got: %s", tt.expectedErrorMsg, outputStr)
		})
	}
}

// writeConfig writes a minimal configuration file into a temporary directory.
func writeConfig(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test-config.yaml")
	content := "log_level: \"info\"\noutput_path: \"" + filepath.ToSlash(filepath.Join(tempDir, "out")) + "\"\n"

	err := os.WriteFile(configPath, []byte(content), 0o644) //nolint:gosec // It's a test file.
	require.NoError(t, err)

	return configPath
}
