package websocket

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"phonebook/internal/models"
)

type Connection struct {
	Conn *websocket.Conn
}

// FeedURL turns the REST base url into the address of its change feed.
func FeedURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("invalid base url %q: unsupported scheme", baseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	return u.String(), nil
}

func Connect(ctx context.Context, baseURL string) (*Connection, error) {
	feed, err := FeedURL(baseURL)
	if err != nil {
		return nil, err
	}

	c, _, err := websocket.DefaultDialer.DialContext(ctx, feed, nil)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	return &Connection{Conn: c}, nil
}

// Events streams change events until ctx is done or the server goes away.
// The error channel receives at most one value and is closed with the
// event channel.
func (c *Connection) Events(ctx context.Context) (<-chan models.Event, <-chan error) {
	events := make(chan models.Event, 16)
	errs := make(chan error, 1)

	go func() {
		<-ctx.Done()
		c.Conn.Close()
	}()

	go func() {
		defer close(events)
		defer close(errs)
		for {
			var ev models.Event
			if err := c.Conn.ReadJSON(&ev); err != nil {
				if ctx.Err() == nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					errs <- err
				}
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, errs
}

func (c *Connection) Close() {
	c.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.Conn.Close()
}
