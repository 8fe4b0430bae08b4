package webviewbridge

import (
	"io"
	"log/slog"

	"github.com/wagiedev/webview-bridge-go/internal/config"
	"github.com/wagiedev/webview-bridge-go/internal/stdio"
)

// Transport carries envelopes over a stream instead of in-process bindings.
// Implement this to bridge to a native app over any bidirectional channel.
type Transport = config.Transport

// Pipe is a Transport exchanging one JSON envelope per line over a reader
// and a writer.
type Pipe = stdio.Pipe

// NewPipe creates a pipe reading inbound lines from r and writing outbound
// lines to w. A nil logger disables logging.
func NewPipe(logger *slog.Logger, r io.Reader, w io.Writer) *Pipe {
	return stdio.NewPipe(loggerOrNop(logger), r, w)
}
