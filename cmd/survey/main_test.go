package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	logFile := filepath.Join(dir, "survey.log")
	require.NoError(t, os.WriteFile(envFile, []byte("SURVEY_STORE=memory\nSURVEY_LOG_FILE="+logFile+"\n"), 0o600))

	for _, key := range []string{"SURVEY_STORE", "SURVEY_LOG_FILE", "GEMINI_API_KEY", "DATABASE_URL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return envFile
}

func execute(t *testing.T, ctx context.Context, input string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	out := &bytes.Buffer{}
	cmd := newRootCommand()
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestInteractiveSession(t *testing.T) {
	envFile := memoryEnv(t)

	out, err := execute(t, context.Background(),
		"1\nM\n1\n1\n9\n\n2\n1\nM\n\n8\n4\n",
		"--env-file", envFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Apple Vision Pro Product Survey!")
	assert.Contains(t, out, "Data has been successfully inserted into the spreadsheet.")
	assert.Contains(t, out, "Likelihood of purchase for Male is 90.00%")
	assert.Contains(t, out, "Exiting the program...")

	logData, err := os.ReadFile(filepath.Join(filepath.Dir(envFile), "survey.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logData), "STATE: session started (store=memory)")
}

func TestInteractiveSession_Interrupted(t *testing.T) {
	envFile := memoryEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := execute(t, ctx, "", "--env-file", envFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Exiting the program...")
}

func TestInteractiveSession_InterruptedWhileWaitingForInput(t *testing.T) {
	envFile := memoryEnv(t)

	in, w := io.Pipe()
	t.Cleanup(func() { w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	cmd := newRootCommand()
	cmd.SetIn(in)
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"--env-file", envFile})

	start := time.Now()
	require.NoError(t, cmd.ExecuteContext(ctx))
	assert.Less(t, time.Since(start), 5*time.Second)

	logData, err := os.ReadFile(filepath.Join(filepath.Dir(envFile), "survey.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logData), "session still waiting on input")
	assert.Contains(t, string(logData), "STATE: session interrupted")
}

func TestInvalidStore(t *testing.T) {
	envFile := memoryEnv(t)
	t.Setenv("SURVEY_STORE", "excel")

	_, err := execute(t, context.Background(), "", "--env-file", envFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SURVEY_STORE")
}

func TestServeCommandFlags(t *testing.T) {
	cmd := newRootCommand()
	serve, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())
	assert.NotNil(t, serve.Flags().Lookup("port"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("env-file"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("creds"))
}
