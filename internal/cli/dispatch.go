package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/cybergodev/fetch"
	"github.com/cybergodev/fetch/internal/logging"
)

var (
	// ErrSend means no response was received.
	ErrSend = errors.New("request failed")

	// ErrBodyCopy means the response arrived but its body could not be written out.
	ErrBodyCopy = errors.New("copying response body failed")
)

// Dispatcher sends a RequestSpec through a fetch.Client and reports the
// response on out. It keeps no per-request state.
type Dispatcher struct {
	client fetch.Client
	out    io.Writer
	logger *slog.Logger
}

func NewDispatcher(client fetch.Client, out io.Writer, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Dispatcher{
		client: client,
		out:    out,
		logger: logger,
	}
}

// Dispatch sends exactly one request. The head is written as soon as it
// arrives; the body is read only when PrintBody is set. On a send failure
// nothing is written to out and the error wraps ErrSend.
func (d *Dispatcher) Dispatch(ctx context.Context, spec RequestSpec) error {
	method := spec.Method.String()
	d.logger.Info("fetching", slog.String("method", method), slog.String("url", spec.URL))

	result, err := d.client.Stream(ctx, method, spec.URL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSend, err)
	}
	defer result.Close()

	if _, err := io.WriteString(d.out, formatHead(result.Response)); err != nil {
		return fmt.Errorf("writing response head: %w", err)
	}

	if !spec.PrintBody {
		return nil
	}

	n, err := result.WriteBody(d.out)
	if err != nil {
		return fmt.Errorf("%w after %d bytes: %w", ErrBodyCopy, n, err)
	}
	d.logger.Debug("body written", slog.Int64("bytes", n))
	return nil
}

// formatHead renders the status line and headers, names sorted and values in
// the order they were received, followed by a blank line.
func formatHead(resp *fetch.ResponseInfo) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Response: %s %s\n", resp.Proto, resp.Status)
	b.WriteString("Headers:\n")

	for _, name := range slices.Sorted(maps.Keys(resp.Headers)) {
		for _, value := range resp.Headers[name] {
			fmt.Fprintf(&b, "%s: %s\n", name, value)
		}
	}
	b.WriteByte('\n')

	return b.String()
}
