package envfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertReplacesMatchingLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	orig := "# gmail credentials\nGMAIL_CLIENT_ID=abc\nGMAIL_REFRESH_TOKEN=old\nNASA_API_KEY=DEMO_KEY\n"
	require.NoError(t, os.WriteFile(path, []byte(orig), 0600))

	require.NoError(t, Upsert(path, "GMAIL_REFRESH_TOKEN", "new-token"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"# gmail credentials\nGMAIL_CLIENT_ID=abc\nGMAIL_REFRESH_TOKEN=new-token\nNASA_API_KEY=DEMO_KEY\n",
		string(data))
}

func TestUpsertAppendsWhenAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GMAIL_CLIENT_ID=abc\n"), 0600))

	require.NoError(t, Upsert(path, "GMAIL_REFRESH_TOKEN", "tok"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "GMAIL_CLIENT_ID=abc\nGMAIL_REFRESH_TOKEN=tok\n", string(data))
}

func TestUpsertCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	require.NoError(t, Upsert(path, "GMAIL_REFRESH_TOKEN", "tok"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "GMAIL_REFRESH_TOKEN=tok\n", string(data))
}

func TestUpsertMatchesKeyPrefixOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	// GMAIL_CLIENT_ID must not be mistaken for GMAIL_CLIENT.
	require.NoError(t, os.WriteFile(path, []byte("GMAIL_CLIENT_ID=abc\n"), 0600))

	require.NoError(t, Upsert(path, "GMAIL_CLIENT", "x"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "GMAIL_CLIENT_ID=abc\nGMAIL_CLIENT=x\n", string(data))
}

func TestUpsertEmptyKey(t *testing.T) {
	err := Upsert(filepath.Join(t.TempDir(), ".env"), "", "v")
	assert.Error(t, err)
}
