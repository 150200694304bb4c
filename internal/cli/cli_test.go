package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "smsgate.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestProvidersListsBuiltins(t *testing.T) {
	out, err := runCommand(t, "providers")
	require.NoError(t, err)
	assert.Contains(t, out, "sms_ir")
	assert.Contains(t, out, "kavenegar")
	assert.Contains(t, out, "sns")
}

func TestSendDebugWritesToConsole(t *testing.T) {
	cfg := writeConfig(t, "debug = true\n")

	out, err := runCommand(t, "send", "+15550001111", "hello", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Recipient: +15550001111")
	assert.Contains(t, out, "Message: hello")
}

func TestSendDebugAbsentFallsBackToConsole(t *testing.T) {
	cfg := writeConfig(t, "[provider]\nname = \"sms_ir\"\n")

	out, err := runCommand(t, "verify", "+15550001111", "482913", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Verification Code: 482913")
}

func TestBulkDebugWritesEachRecipient(t *testing.T) {
	cfg := writeConfig(t, "debug = true\n")

	out, err := runCommand(t, "bulk", "hi", "+15550001111", "+15550002222", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Recipient: +15550001111")
	assert.Contains(t, out, "Recipient: +15550002222")
}

func TestSendMissingProviderName(t *testing.T) {
	cfg := writeConfig(t, "debug = false\n")

	_, err := runCommand(t, "send", "+15550001111", "hello", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider name")
}

func TestSendUnknownProvider(t *testing.T) {
	cfg := writeConfig(t, "debug = false\n\n[provider]\nname = \"not_registered\"\n")

	_, err := runCommand(t, "send", "+15550001111", "hello", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not_registered")
}

func TestVersion(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "smsgate")
}
