package netsync

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"snakenet/internal/engine"
)

// Sink receives remote snakes. session.Game implements it.
type Sink interface {
	Enqueue(id string, snap engine.Snapshot)
	Forget(id string)
}

// Client is one participant's connection to the relay.
type Client struct {
	*link
	log  *slog.Logger
	id   string
	own  map[string]bool
	sink Sink

	mu     sync.Mutex
	owners map[string]string // remote snake -> participant
}

// Dial connects to the relay at url, waits for the welcome and announces
// the local snakes. Snapshots of other participants are fed to sink until
// the connection closes; their snakes are then forgotten.
func Dial(ctx context.Context, url string, snakes []string, sink Sink, log *slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("netsync: dial %s: %w", url, err)
	}

	conn.SetReadDeadline(time.Now().Add(writeWait))
	_, data, err := conn.ReadMessage()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("netsync: waiting for welcome: %w", err)
	}
	welcome, err := Decode(data)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if welcome.Type != MsgWelcome || welcome.Client == "" {
		conn.Close()
		return nil, fmt.Errorf("%w: expected welcome, got %q", ErrBadMessage, welcome.Type)
	}

	c := &Client{
		link:   newLink(conn),
		log:    log.With("client", welcome.Client),
		id:     welcome.Client,
		own:    make(map[string]bool, len(snakes)),
		sink:   sink,
		owners: make(map[string]string),
	}
	for _, s := range snakes {
		c.own[s] = true
	}

	go c.writePump()
	if err := c.queue(mustEncode(Message{Type: MsgHello, Snakes: snakes})); err != nil {
		c.close()
		return nil, err
	}
	go c.run()

	c.log.Info("relay connected", "url", url, "roster", welcome.Snakes)
	return c, nil
}

// ID returns the participant ID the relay assigned.
func (c *Client) ID() string { return c.id }

// Done is closed once the connection is gone.
func (c *Client) Done() <-chan struct{} { return c.done }

// Publish sends a local snake's snapshot. It never blocks; a full queue
// drops the snapshot and returns ErrQueueFull.
func (c *Client) Publish(snake string, snap engine.Snapshot) error {
	return c.queue(mustEncode(Message{Type: MsgSnapshot, Snake: snake, Snapshot: ToWire(snap)}))
}

func (c *Client) Close() error {
	c.close()
	return nil
}

func (c *Client) run() {
	if err := c.readPump(c.handle); err != nil {
		c.log.Warn("relay read failed", "err", err)
	}

	c.mu.Lock()
	gone := make([]string, 0, len(c.owners))
	for snake := range c.owners {
		gone = append(gone, snake)
	}
	c.owners = make(map[string]string)
	c.mu.Unlock()
	for _, snake := range gone {
		c.sink.Forget(snake)
	}
	c.log.Info("relay disconnected", "forgotten", len(gone))
}

func (c *Client) handle(data []byte) {
	msg, err := Decode(data)
	if err != nil {
		c.log.Warn("dropping message", "err", err)
		return
	}

	switch msg.Type {
	case MsgSnapshot:
		if c.own[msg.Snake] {
			return
		}
		c.mu.Lock()
		c.owners[msg.Snake] = msg.Client
		c.mu.Unlock()
		c.sink.Enqueue(msg.Snake, msg.Snapshot.Engine())
	case MsgHello:
		c.log.Info("participant joined", "peer", msg.Client, "snakes", msg.Snakes)
	case MsgBye:
		c.forgetParticipant(msg.Client, msg.Snakes)
		c.log.Info("participant left", "peer", msg.Client, "snakes", msg.Snakes)
	}
}

// forgetParticipant drops the announced snakes of a participant and any
// snake it was seen publishing.
func (c *Client) forgetParticipant(client string, snakes []string) {
	gone := make(map[string]bool)
	for _, s := range snakes {
		if !c.own[s] {
			gone[s] = true
		}
	}
	c.mu.Lock()
	for snake, owner := range c.owners {
		if owner == client {
			gone[snake] = true
		}
	}
	for snake := range gone {
		delete(c.owners, snake)
	}
	c.mu.Unlock()
	for snake := range gone {
		c.sink.Forget(snake)
	}
}
