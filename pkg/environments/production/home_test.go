package production

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/CoreumFoundation/node-installer/pkg/errors"
	"github.com/CoreumFoundation/node-installer/pkg/logging"
	"github.com/CoreumFoundation/node-installer/pkg/prompt"
	"github.com/CoreumFoundation/node-installer/pkg/shell"
	"github.com/CoreumFoundation/node-installer/pkg/shell/shelltest"
)

func testPrompter(input string) (*prompt.Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return prompt.New(strings.NewReader(input), &out, prompt.WithClear(func() {})), &out
}

// fakeInit simulates `cored init` by writing a fresh app.toml.
func fakeInit(cmd shell.Command) error {
	var home, chainID string
	for i := 0; i+1 < len(cmd.Args); i++ {
		switch cmd.Args[i] {
		case "--home":
			home = cmd.Args[i+1]
		case "--chain-id":
			chainID = cmd.Args[i+1]
		}
	}
	path := AppConfigPath(home, chainID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(pristineAppToml), 0o644)
}

func TestHomeInitializeWipesAndInits(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	require.NoError(t, os.MkdirAll(home, 0o755))
	stale := filepath.Join(home, "stale.txt")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	rec := shelltest.NewRecorder().On("cored init", fakeInit)
	p, _ := testPrompter("")
	hi := NewHomeInitializer(p, rec, logging.NewNopLogger(), "/usr/local/bin/cored", false)

	err := hi.Initialize(context.Background(), HomeRequest{
		Home: home, ChainID: "coreum-mainnet-1", Moniker: "test", Overwrite: true,
	})
	require.NoError(t, err)

	assert.NoFileExists(t, stale)
	assert.FileExists(t, AppConfigPath(home, "coreum-mainnet-1"))
	assert.Equal(t, []string{"cored init test -o --home " + home + " --chain-id coreum-mainnet-1"}, rec.Commands())
	assert.Equal(t, "/usr/local/bin/cored", rec.Raw()[0].Name)
}

func TestHomeInitializeConfirm(t *testing.T) {
	home := t.TempDir()
	rec := shelltest.NewRecorder()
	p, out := testPrompter("1\n")
	hi := NewHomeInitializer(p, rec, logging.NewNopLogger(), "cored", false)

	require.NoError(t, hi.Initialize(context.Background(), HomeRequest{Home: home, ChainID: "coreum-testnet-1", Moniker: "m"}))
	assert.Contains(t, out.String(), "cannot be recovered")
	assert.True(t, rec.Ran("cored init m"))
}

func TestHomeInitializeDeclineKeepsDirectory(t *testing.T) {
	home := t.TempDir()
	keep := filepath.Join(home, "keep.txt")
	require.NoError(t, os.WriteFile(keep, []byte("x"), 0o644))

	rec := shelltest.NewRecorder()
	p, _ := testPrompter("2\n")
	hi := NewHomeInitializer(p, rec, logging.NewNopLogger(), "cored", false)

	err := hi.Initialize(context.Background(), HomeRequest{Home: home, ChainID: "coreum-testnet-1", Moniker: "m"})
	require.ErrorIs(t, err, errs.ErrAborted)
	assert.Equal(t, errs.ExitOK, errs.ExitCode(err))
	assert.FileExists(t, keep)
	assert.Empty(t, rec.Commands())
}

func TestHomeInitializeInitFailure(t *testing.T) {
	rec := shelltest.NewRecorder().Fail("cored init")
	p, _ := testPrompter("")
	hi := NewHomeInitializer(p, rec, logging.NewNopLogger(), "cored", false)

	err := hi.Initialize(context.Background(), HomeRequest{Home: t.TempDir(), ChainID: "coreum-testnet-1", Moniker: "m", Overwrite: true})
	require.Error(t, err)
	assert.Equal(t, errs.CodeCommandFailed, errs.GetCode(err))
	assert.Contains(t, err.Error(), "writable")
	assert.Contains(t, err.Error(), "exit status 1")
}

func TestHomeInitializeDryRunKeepsFiles(t *testing.T) {
	home := t.TempDir()
	keep := filepath.Join(home, "keep.txt")
	require.NoError(t, os.WriteFile(keep, []byte("x"), 0o644))

	rec := shelltest.NewRecorder()
	p, out := testPrompter("")
	hi := NewHomeInitializer(p, rec, logging.NewNopLogger(), "cored", true)

	require.NoError(t, hi.Initialize(context.Background(), HomeRequest{Home: home, ChainID: "coreum-testnet-1", Moniker: "m", Overwrite: true}))
	assert.FileExists(t, keep)
	assert.Contains(t, out.String(), "[dry-run] rm -rf "+home)
}
