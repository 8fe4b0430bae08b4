package stdio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/webview-bridge-go/internal/errors"
	"github.com/wagiedev/webview-bridge-go/internal/host"
)

const (
	// BindingName identifies the pipe binding in logs.
	BindingName = "stdio"

	// maxScanTokenSize is the maximum size of a single inbound line.
	maxScanTokenSize = 1024 * 1024 // 1MB

	// outboundBuffer is the number of messages queued before posting blocks.
	outboundBuffer = 64
)

// Pipe is a newline-delimited envelope transport over a reader and a writer.
//
// Messages posted through the binding are queued and written by Serve. Until
// Serve runs, posting blocks once the queue is full. Once Serve returns, for
// end of input, a write failure or cancellation, the binding detaches:
// Lookup returns nil and posts through an earlier SendFunc are dropped.
type Pipe struct {
	log *slog.Logger
	r   io.Reader
	w   io.Writer

	outbound chan string
	done     chan struct{}
	stopped  chan struct{}

	mu       sync.Mutex
	closed   bool
	serving  bool
	detached bool
}

// Compile-time verification that Pipe implements host.Binding.
var _ host.Binding = (*Pipe)(nil)

// NewPipe creates a pipe reading inbound lines from r and writing outbound
// lines to w.
func NewPipe(log *slog.Logger, r io.Reader, w io.Writer) *Pipe {
	return &Pipe{
		log:      log.With("component", "stdio"),
		r:        r,
		w:        w,
		outbound: make(chan string, outboundBuffer),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Name implements host.Binding.
func (p *Pipe) Name() string {
	return BindingName
}

// Lookup implements host.Binding. It returns nil once the pipe is closed or
// Serve has returned.
func (p *Pipe) Lookup() host.SendFunc {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.detached {
		return nil
	}

	return p.post
}

func (p *Pipe) post(raw string) {
	select {
	case p.outbound <- raw:
	case <-p.done:
		p.log.Debug("Dropping outbound message after close", "data_len", len(raw))
	case <-p.stopped:
		p.log.Debug("Dropping outbound message after pipe stopped", "data_len", len(raw))
	}
}

// Serve reads inbound lines into inbound and writes queued outbound messages
// until the input ends, ctx is cancelled, or Close is called.
//
// Lines rejected by inbound are logged and skipped. Serve returns nil when
// the input ends or the pipe is closed, and ctx.Err() on cancellation.
// A pipe is served once; afterwards Serve returns ErrTransportClosed.
// A blocked read keeps its goroutine alive until the reader returns; readers
// that implement io.Closer are closed by Close.
func (p *Pipe) Serve(ctx context.Context, inbound host.InboundFunc) error {
	p.mu.Lock()

	if p.closed || p.detached {
		p.mu.Unlock()

		return errors.ErrTransportClosed
	}

	if p.serving {
		p.mu.Unlock()

		return errors.ErrTransportBusy
	}

	p.serving = true
	p.mu.Unlock()

	defer p.detach()

	lines, scanErr := p.scan()

	g, gCtx := errgroup.WithContext(ctx)
	stop := make(chan struct{})

	g.Go(func() error {
		defer close(stop)

		return p.readLoop(gCtx, lines, scanErr, inbound)
	})

	g.Go(func() error {
		return p.writeLoop(gCtx, stop)
	})

	err := g.Wait()
	if err != nil && ctx.Err() == nil {
		p.log.Error("Pipe stopped with error", "error", err)

		return err
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	p.log.Debug("Pipe stopped")

	return nil
}

// detach makes the binding unavailable after Serve returns.
func (p *Pipe) detach() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.detached {
		return
	}

	p.detached = true
	close(p.stopped)
}

// scan starts the goroutine that splits the input into lines. The lines
// channel is closed at end of input; scanErr then holds the scanner error.
func (p *Pipe) scan() (<-chan string, <-chan error) {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(p.r)
		buf := make([]byte, maxScanTokenSize)
		scanner.Buffer(buf, maxScanTokenSize)

		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}

			select {
			case lines <- line:
			case <-p.done:
				return
			}
		}

		if err := scanner.Err(); err != nil {
			scanErr <- fmt.Errorf("scanner error: %w", err)
		}
	}()

	return lines, scanErr
}

func (p *Pipe) readLoop(
	ctx context.Context,
	lines <-chan string,
	scanErr <-chan error,
	inbound host.InboundFunc,
) error {
	messageCount := 0

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-p.done:
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case <-p.done:
					return nil
				default:
				}

				select {
				case err := <-scanErr:
					return err
				default:
				}

				p.log.Debug("Input closed", "message_count", messageCount)

				return nil
			}

			messageCount++

			if err := inbound(line); err != nil {
				p.log.Debug("Inbound message rejected", "error", err)
			}
		}
	}
}

func (p *Pipe) writeLoop(ctx context.Context, stop <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-stop:
			return p.flush()
		case raw := <-p.outbound:
			if err := p.write(raw); err != nil {
				return err
			}
		}
	}
}

// flush writes whatever is already queued.
func (p *Pipe) flush() error {
	for {
		select {
		case raw := <-p.outbound:
			if err := p.write(raw); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (p *Pipe) write(raw string) error {
	if _, err := io.WriteString(p.w, raw+"\n"); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	p.log.Debug("Wrote outbound message", "data_len", len(raw))

	return nil
}

// Close stops Serve and makes the binding unavailable. Serve still writes
// the messages queued before Close.
// It's safe to call Close multiple times.
func (p *Pipe) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.closed = true
	close(p.done)

	if c, ok := p.r.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("close input: %w", err)
		}
	}

	return nil
}
