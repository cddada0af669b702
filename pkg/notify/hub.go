// Package notify fans user-facing notices ("no access", backend errors, saved records) out to
// every open browser tab of a user over Server-Sent Events.
package notify

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dukahub/dukaweb/pkg/clog"
	"github.com/hashicorp/go-uuid"
)

type Kind string

const (
	Info    Kind = "info"
	Success Kind = "success"
	Warning Kind = "warning"
	Error   Kind = "error"
)

type Notification struct {
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

const subscriberBuffer = 64

// Hub maps user ids to their open subscriber channels.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[string]chan Notification
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[string]chan Notification),
	}
}

func (h *Hub) Subscribe(userID string) (string, <-chan Notification) {
	ch := make(chan Notification, subscriberBuffer)
	id, err := uuid.GenerateUUID()
	if err != nil {
		id = fmt.Sprintf("%d", time.Now().UnixNano())
	}
	subscriptionID := "sse-" + userID + "-" + id

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[string]chan Notification)
	}
	h.subscribers[userID][subscriptionID] = ch

	return subscriptionID, ch
}

func (h *Hub) Unsubscribe(userID, subscriptionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.subscribers[userID]
	if !ok {
		return
	}

	if ch, exists := subs[subscriptionID]; exists {
		close(ch)
		delete(subs, subscriptionID)
	}

	if len(subs) == 0 {
		delete(h.subscribers, userID)
	}
}

// Publish never blocks; a subscriber whose buffer is full misses the notification.
func (h *Hub) Publish(userID string, n Notification) {
	if n.Time.IsZero() {
		n.Time = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, ch := range h.subscribers[userID] {
		select {
		case ch <- n:
		default:
			clog.UsingCtx("notify").Warnf("dropping notification for %s (channel full)", id)
		}
	}
}

func (h *Hub) SubscriberCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[userID])
}

// For binds the hub to one user.
func (h *Hub) For(userID string) *UserNotifier {
	return &UserNotifier{hub: h, userID: userID}
}

// UserNotifier publishes to one user and remembers what it sent, so a request handler can also
// return the notices in its response body.
type UserNotifier struct {
	hub    *Hub
	userID string
	mu     sync.Mutex
	sent   []Notification
}

func (n *UserNotifier) Notify(kind Kind, message string) {
	notification := Notification{Kind: kind, Message: message, Time: time.Now()}

	n.mu.Lock()
	n.sent = append(n.sent, notification)
	n.mu.Unlock()

	if n.hub != nil {
		n.hub.Publish(n.userID, notification)
	}
}

func (n *UserNotifier) Sent() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	sent := make([]Notification, len(n.sent))
	copy(sent, n.sent)
	return sent
}

// ServeSSE streams notifications for userID until the client goes away.
func (h *Hub) ServeSSE(w http.ResponseWriter, r *http.Request, userID string) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	subscriptionID, ch := h.Subscribe(userID)
	defer h.Unsubscribe(userID, subscriptionID)

	_, _ = fmt.Fprint(w, "data: {\"kind\":\"connected\"}\n\n")
	flusher.Flush()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return

		case n, ok := <-ch:
			if !ok {
				return
			}

			data, err := json.Marshal(n)
			if err != nil {
				clog.UsingCtx("notify").Errorf("unable to marshal notification: %s", err)
				continue
			}
			_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()

		case <-ticker.C:
			_, _ = fmt.Fprint(w, "data: {\"kind\":\"keepalive\"}\n\n")
			flusher.Flush()
		}
	}
}
