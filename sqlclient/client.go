// Package sqlclient is a synchronous TCP client for the docsqlwire protocol.
package sqlclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"docsql/internal/sql/executor"
	"docsql/server/docsqlwire"
)

// Client sends one statement at a time over a single connection; concurrent
// Exec calls serialize on it. Request ids pair each response with its request
// so a desynced stream is detected instead of silently mismatched.
type Client struct {
	conn net.Conn
	mu   sync.Mutex
	id   atomic.Uint64

	// Optional per-request timeout (0 = no timeout).
	timeout time.Duration
}

func Dial(addr string, timeout time.Duration) (*Client, error) {
	return DialContext(context.Background(), addr, timeout)
}

func DialContext(ctx context.Context, addr string, timeout time.Duration) (*Client, error) {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// SetTimeout sets a read/write deadline applied to each Exec, so a dead
// server surfaces as an error instead of a hang.
func (c *Client) SetTimeout(d time.Duration) {
	if c == nil {
		return
	}
	c.timeout = d
}

func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *Client) Exec(sql string) (*executor.Result, error) {
	return c.ExecContext(context.Background(), sql)
}

func (c *Client) ExecContext(ctx context.Context, sql string) (*executor.Result, error) {
	if c == nil || c.conn == nil {
		return nil, errors.New("sqlclient: not connected")
	}

	req := docsqlwire.ExecuteRequest{ID: c.id.Add(1), SQL: sql}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := c.roundTrip(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return resp.Result, nil
}

// roundTrip writes one request frame and reads its response under the
// effective deadline (the context's if set, the client timeout otherwise).
// The caller must hold mu.
func (c *Client) roundTrip(ctx context.Context, req docsqlwire.ExecuteRequest) (*docsqlwire.ExecuteResponse, error) {
	deadline := time.Time{}
	if dl, ok := ctx.Deadline(); ok {
		deadline = dl
	} else if c.timeout > 0 {
		deadline = time.Now().Add(c.timeout)
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		return nil, err
	}
	defer func() {
		// Clear the deadline so an idle connection does not expire.
		_ = c.conn.SetDeadline(time.Time{})
	}()

	if err := docsqlwire.WriteFrame(c.conn, req); err != nil {
		return nil, err
	}

	var resp docsqlwire.ExecuteResponse
	if err := docsqlwire.ReadFrame(c.conn, &resp); err != nil {
		return nil, err
	}
	if resp.ID != req.ID {
		return nil, fmt.Errorf("sqlclient: response id mismatch: got=%d want=%d", resp.ID, req.ID)
	}
	return &resp, nil
}
