package e2e

import (
	"bytes"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/jiranismart/jirani-cli/internal/adapters/api/apitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	backend := apitest.New(t)
	require.NoError(t, writeConfigFile(home, backend.BaseURL()))

	_, stderr, err := runJirani(t, binaryPath, home,
		"auth", "login", "--plain",
		"--phone", "+254712345678",
		"--role", "Buyer",
		"--password", "secret1",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	reqs := backend.RequestsTo(http.MethodPost, "/auth/login")
	require.Len(t, reqs, 1)
	assert.Equal(t, "+254712345678", reqs[0].JSON()["phone"])

	stdout, stderr, err := runJirani(t, binaryPath, home, "buyer", "sellers", "--plain", "--category", "pharmacy")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Duka la Dawa")
	assert.NotContains(t, stdout, "Mama Mboga")

	_, stderr, err = runJirani(t, binaryPath, home, "auth", "logout")
	require.NoError(t, err, "stderr: %s", stderr)

	_, _, err = runJirani(t, binaryPath, home, "dash", "--plain")
	require.Error(t, err)
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "jirani-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/jirani")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build jirani binary: %s", string(output))
	return binaryPath
}

func runJirani(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(),
		"JIRANI_HOME="+home,
		"JIRANI_LOCATION_PROVIDER=fixed",
		"JIRANI_API_BASE_URL=",
	)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

// writeConfigFile points the binary at the backend through config.toml, the
// way a user would without exporting anything.
func writeConfigFile(home, baseURL string) error {
	if err := os.MkdirAll(home, 0o755); err != nil {
		return err
	}

	config := `[api]
base_url = "` + baseURL + `"

[location]
provider = "fixed"
`

	return os.WriteFile(filepath.Join(home, "config.toml"), []byte(config), 0o644)
}
