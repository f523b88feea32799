package status

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/pkmntrade/gbtrade/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Broadcaster fans Status snapshots out to any number of connected
// observers. It is a status-observation surface only: no observer can
// send anything back that changes a session's state.
type Broadcaster struct {
	clients    map[*observerClient]bool
	broadcast  chan Status
	register   chan *observerClient
	unregister chan *observerClient

	mu   sync.RWMutex
	last Status
}

// NewBroadcaster constructs a Broadcaster. Call Run in its own
// goroutine to start fanning out, and ServeHTTP from an http.Handler
// to accept observer connections.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients:    make(map[*observerClient]bool),
		broadcast:  make(chan Status, 16),
		register:   make(chan *observerClient),
		unregister: make(chan *observerClient),
	}
}

// Publish pushes a new Status snapshot to every connected observer.
// Safe to call from the session controller's single goroutine after
// every engine step.
func (b *Broadcaster) Publish(s Status) {
	b.mu.Lock()
	b.last = s
	b.mu.Unlock()
	b.broadcast <- s
}

// Last returns the most recently published Status, for an observer
// that connects between publishes.
func (b *Broadcaster) Last() Status {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.last
}

// Run drives the broadcaster's register/unregister/broadcast loop
// until stop is closed. A single goroutine owns the client map, so
// client registration never needs its own lock.
func (b *Broadcaster) Run(stop <-chan struct{}) {
	for {
		select {
		case c := <-b.register:
			b.clients[c] = true
		case c := <-b.unregister:
			if _, ok := b.clients[c]; ok {
				delete(b.clients, c)
				close(c.send)
			}
		case s := <-b.broadcast:
			data, err := json.Marshal(s)
			if err != nil {
				log.Error("status: marshal snapshot", log.F("error", err))
				continue
			}
			for c := range b.clients {
				select {
				case c.send <- data:
				default:
					delete(b.clients, c)
					close(c.send)
				}
			}
		case <-stop:
			return
		}
	}
}

// ServeHTTP upgrades the connection to a websocket and registers it as
// an observer. It sends the last known snapshot immediately, then
// streams every subsequent Publish until the connection closes.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("status: websocket upgrade failed", log.F("error", err))
		return
	}

	c := &observerClient{conn: conn, send: make(chan []byte, 8)}
	b.register <- c

	if last := b.Last(); last.SessionID != "" {
		if data, err := json.Marshal(last); err == nil {
			c.send <- data
		}
	}

	go c.writePump(b)
}

// observerClient is one connected status observer. It only ever
// receives; there is no ReadPump because this surface accepts no
// input from observers.
type observerClient struct {
	conn *websocket.Conn
	send chan []byte
}

func (c *observerClient) writePump(b *Broadcaster) {
	defer func() {
		b.unregister <- c
		c.conn.Close()
	}()

	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
