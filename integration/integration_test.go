//go:build integration

package integration

import (
	"context"
	"io"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	webviewbridge "github.com/wagiedev/webview-bridge-go"
)

// nativeProcess is a child process standing in for the native app. It reads
// envelopes on stdin and writes envelopes on stdout.
type nativeProcess struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
}

// startNative starts name with args, skipping the test if the command is not
// installed. The process is stopped when the test ends.
func startNative(t *testing.T, name string, args ...string) *nativeProcess {
	t.Helper()

	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not installed", name)
	}

	cmd := exec.Command(name, args...)

	stdin, err := cmd.StdinPipe()
	require.NoError(t, err)

	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)

	require.NoError(t, cmd.Start())

	p := &nativeProcess{cmd: cmd, stdin: stdin, stdout: stdout}

	t.Cleanup(func() {
		_ = p.stdin.Close()
		_ = p.cmd.Process.Kill()
		_ = p.cmd.Wait()
	})

	return p
}

// startBridge starts a bridge talking to p over a pipe and closes it when
// the test ends.
func startBridge(ctx context.Context, t *testing.T, p *nativeProcess, opts ...webviewbridge.Option) webviewbridge.Bridge {
	t.Helper()

	pipe := webviewbridge.NewPipe(nil, p.stdout, p.stdin)

	b := webviewbridge.New(append([]webviewbridge.Option{webviewbridge.WithTransport(pipe)}, opts...)...)
	t.Cleanup(func() { _ = b.Close() })

	require.NoError(t, b.Start(ctx))

	return b
}

// echoApp starts a native app answering every request with the request
// itself.
func echoApp(t *testing.T) *nativeProcess {
	t.Helper()

	return startNative(t, "cat")
}
