package prompt

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/CoreumFoundation/node-installer/pkg/errors"
)

type mode int

const (
	modeNode mode = iota + 1
	modeClient
)

func modeMenu() Menu[mode] {
	return Menu[mode]{
		Field: "install",
		Title: "Please choose the desired installation:",
		Hint:  "You can select the installation using the --install flag.",
		Choices: []Choice[mode]{
			{Key: "1", Keyword: "node", Label: "node", Value: modeNode},
			{Key: "2", Keyword: "client", Label: "client", Value: modeClient},
		},
	}
}

func newTestPrompter(input string, opts ...Option) (*Prompter, *bytes.Buffer, *int) {
	var out bytes.Buffer
	clears := 0
	opts = append([]Option{WithClear(func() { clears++ })}, opts...)
	return New(strings.NewReader(input), &out, opts...), &out, &clears
}

func TestSelectPreset(t *testing.T) {
	ctx := context.Background()
	p, out, clears := newTestPrompter("")

	got, err := Select(ctx, p, modeMenu(), "client")
	require.NoError(t, err)
	assert.Equal(t, modeClient, got)
	assert.NotContains(t, out.String(), "Please choose")
	assert.Equal(t, 1, *clears)

	// flag values are case-sensitive
	_, err = Select(ctx, p, modeMenu(), "NODE")
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestSelectInvalidPresetIsFatal(t *testing.T) {
	ctx := context.Background()
	// input is available but must never be read
	p, out, clears := newTestPrompter("1\n")

	_, err := Select(ctx, p, modeMenu(), "validator")
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.Contains(t, err.Error(), `invalid install "validator"`)
	assert.Contains(t, err.Error(), "node, client")
	assert.Empty(t, out.String())
	assert.Zero(t, *clears)
}

func TestSelectInteractive(t *testing.T) {
	ctx := context.Background()
	p, out, clears := newTestPrompter("  2  \n")

	got, err := Select(ctx, p, modeMenu(), "")
	require.NoError(t, err)
	assert.Equal(t, modeClient, got)
	assert.Contains(t, out.String(), "1) node")
	assert.Contains(t, out.String(), "2) client")
	assert.Contains(t, out.String(), "--install flag")
	assert.Equal(t, 1, *clears)
}

func TestSelectAcceptsKeyword(t *testing.T) {
	ctx := context.Background()
	for _, answer := range []string{"client", "Client", "CLIENT"} {
		p, _, _ := newTestPrompter(answer + "\n")

		got, err := Select(ctx, p, modeMenu(), "")
		require.NoError(t, err)
		assert.Equal(t, modeClient, got)
	}
}

func TestSelectRetriesUntilValid(t *testing.T) {
	ctx := context.Background()
	p, out, _ := newTestPrompter("3\n\nfoo\n1\n")

	got, err := Select(ctx, p, modeMenu(), "")
	require.NoError(t, err)
	assert.Equal(t, modeNode, got)
	assert.Equal(t, 3, strings.Count(out.String(), "Invalid input"))
	assert.Contains(t, out.String(), "Accepted values: [ 1 , 2 ]")
}

func TestSelectExit(t *testing.T) {
	ctx := context.Background()
	for _, word := range []string{"exit", "EXIT", "  Exit  "} {
		t.Run(word, func(t *testing.T) {
			p, out, clears := newTestPrompter(word + "\n1\n")

			_, err := Select(ctx, p, modeMenu(), "")
			require.ErrorIs(t, err, errs.ErrAborted)
			assert.Equal(t, errs.ExitOK, errs.ExitCode(err))
			assert.Contains(t, out.String(), "Exiting the program...")
			assert.Zero(t, *clears)
		})
	}
}

func TestSelectInputClosed(t *testing.T) {
	ctx := context.Background()
	p, _, _ := newTestPrompter("9\n")

	_, err := Select(ctx, p, modeMenu(), "")
	require.ErrorIs(t, err, errs.ErrInputClosed)
	assert.Equal(t, errs.ExitFailure, errs.ExitCode(err))
}

func TestSelectLastLineWithoutNewline(t *testing.T) {
	ctx := context.Background()
	p, _, _ := newTestPrompter("2")

	got, err := Select(ctx, p, modeMenu(), "")
	require.NoError(t, err)
	assert.Equal(t, modeClient, got)
}

func TestVerboseEchoesChoice(t *testing.T) {
	ctx := context.Background()
	p, out, _ := newTestPrompter("", WithVerbose(true))

	_, err := Select(ctx, p, modeMenu(), "node")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Chosen install: node")
}

func TestYesNo(t *testing.T) {
	ctx := context.Background()
	menu := YesNo("cosmovisor", "Do you want to install cosmovisor?", "Yes", "No", "")

	p, _, _ := newTestPrompter("2\n")
	got, err := Select(ctx, p, menu, "")
	require.NoError(t, err)
	assert.False(t, got)

	got, err = Select(ctx, p, menu, "yes")
	require.NoError(t, err)
	assert.True(t, got)
}

func TestWarningIsRendered(t *testing.T) {
	ctx := context.Background()
	menu := YesNo("overwrite", "Do you want to initialize the Coreum home directory at '/tmp/x'?",
		"Yes, proceed with initialization", "No, quit", "")
	menu.Warning = "All contents of the directory will be deleted."

	p, out, _ := newTestPrompter("1\n")
	_, err := Select(ctx, p, menu, "")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "All contents of the directory will be deleted.")
}

func TestText(t *testing.T) {
	ctx := context.Background()
	p, out, _ := newTestPrompter("\n   \n/data/coreum\n")

	got, err := p.Text(ctx, "Enter the path for Coreum home: ", "Invalid path. Please enter a valid directory.")
	require.NoError(t, err)
	assert.Equal(t, "/data/coreum", got)
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid path"))

	p, _, _ = newTestPrompter("exit\n")
	_, err = p.Text(ctx, "Enter the custom moniker: ", "Invalid moniker.")
	require.ErrorIs(t, err, errs.ErrAborted)
}

func TestParse(t *testing.T) {
	got, err := modeMenu().Parse("client")
	require.NoError(t, err)
	assert.Equal(t, modeClient, got)

	_, err = modeMenu().Parse("Client")
	require.Error(t, err)

	_, err = modeMenu().Parse("2")
	require.Error(t, err, "numeric keys are interactive only")
}

// startedReader reports the first Read, so a test knows a prompt is waiting.
type startedReader struct {
	once    sync.Once
	started chan struct{}
	r       io.Reader
}

func newStartedReader(r io.Reader) *startedReader {
	return &startedReader{started: make(chan struct{}), r: r}
}

func (s *startedReader) Read(b []byte) (int, error) {
	s.once.Do(func() { close(s.started) })
	return s.r.Read(b)
}

func TestSelectInterrupted(t *testing.T) {
	// the pipe stays open so the read blocks until ctx is cancelled
	r, w := io.Pipe()
	defer w.Close()
	in := newStartedReader(r)

	var out bytes.Buffer
	p := New(in, &out, WithClear(func() {}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := Select(ctx, p, modeMenu(), "")
		done <- err
	}()

	<-in.started
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, errs.ErrInterrupted)
		assert.Equal(t, errs.ExitFailure, errs.ExitCode(err))
		assert.Contains(t, out.String(), "Enter your choice")
	case <-time.After(2 * time.Second):
		t.Fatal("Select did not return after cancellation")
	}

	_, err := p.Text(ctx, "Enter the custom moniker: ", "Invalid moniker.")
	require.ErrorIs(t, err, errs.ErrInterrupted)
}

func TestTextResumesPendingRead(t *testing.T) {
	r, w := io.Pipe()
	in := newStartedReader(r)
	p := New(in, io.Discard, WithClear(func() {}))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-in.started
		cancel()
	}()
	_, err := p.Text(ctx, "Enter the custom moniker: ", "Invalid moniker.")
	require.ErrorIs(t, err, errs.ErrInterrupted)

	go func() {
		_, _ = w.Write([]byte("val\n"))
		_ = w.Close()
	}()
	got, err := p.Text(context.Background(), "Enter the custom moniker: ", "Invalid moniker.")
	require.NoError(t, err)
	assert.Equal(t, "val", got)
}
