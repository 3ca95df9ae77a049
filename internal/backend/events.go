package backend

import (
	"bufio"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/zorkosss/GameHub/internal/domain"
)

const (
	eventsPath       = "/api/events"
	reconnectBackoff = 2 * time.Second
	maxBackoff       = 30 * time.Second
)

// EventStream implements domain.EventSource over the backend's SSE
// endpoint. Events are delivered on a single channel in arrival order;
// the stream reconnects with backoff until the context is cancelled.
type EventStream struct {
	baseURL  string
	clientID string
	logger   *slog.Logger

	// No client timeout: the stream stays open indefinitely.
	httpClient *http.Client
	events     chan domain.Event
}

// NewEventStream creates a push-event subscription for the backend.
func NewEventStream(baseURL, clientID string, logger *slog.Logger) *EventStream {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventStream{
		baseURL:    baseURL,
		clientID:   clientID,
		logger:     logger,
		httpClient: &http.Client{},
		events:     make(chan domain.Event, 16),
	}
}

// Events returns the ordered event channel. Closed when Run returns.
func (s *EventStream) Events() <-chan domain.Event {
	return s.events
}

// Run connects to the event stream and pumps events until ctx is
// cancelled, reconnecting on transient failures.
func (s *EventStream) Run(ctx context.Context) error {
	defer close(s.events)

	backoff := reconnectBackoff
	for {
		connected, err := s.consume(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if connected {
			// A session that got through resets the backoff ladder, so
			// a drop hours later retries promptly again.
			backoff = reconnectBackoff
		}

		s.logger.Warn("event stream disconnected, reconnecting", "error", err, "backoff", backoff)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

// consume opens one stream connection and reads it to exhaustion.
// Reports whether the connection was established.
func (s *EventStream) consume(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+eventsPath, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-GameHub-Client", s.clientID)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false, domain.ErrBackendOffline
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, domain.ErrBackendOffline
	}

	s.logger.Info("event stream connected")

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var eventName, data string
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == "":
			// Blank line terminates one event frame.
			if evt, ok := decodeEvent(eventName, data); ok {
				select {
				case s.events <- evt:
				case <-ctx.Done():
					return true, ctx.Err()
				}
			} else if eventName != "" {
				s.logger.Debug("ignoring unknown push event", "event", eventName)
			}
			eventName, data = "", ""

		case strings.HasPrefix(line, "event:"):
			eventName = strings.TrimSpace(strings.TrimPrefix(line, "event:"))

		case strings.HasPrefix(line, "data:"):
			chunk := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if data == "" {
				data = chunk
			} else {
				data += "\n" + chunk
			}
		}
		// Comment lines (":keepalive") and unknown fields are skipped.
	}

	if err := scanner.Err(); err != nil {
		return true, err
	}
	return true, nil
}

// decodeEvent maps one SSE frame to a domain event.
func decodeEvent(name, data string) (domain.Event, bool) {
	switch domain.EventType(name) {
	case domain.EventFileSystemChanged:
		return domain.Event{Type: domain.EventFileSystemChanged, Message: messageFrom(data)}, true

	case domain.EventScanFinished:
		return domain.Event{Type: domain.EventScanFinished, Message: messageFrom(data)}, true

	case domain.EventGameFieldsChanged:
		var dto gameDTO
		if err := json.Unmarshal([]byte(data), &dto); err != nil {
			return domain.Event{}, false
		}
		entry := mapGame(dto)
		return domain.Event{Type: domain.EventGameFieldsChanged, Entry: &entry}, true

	default:
		return domain.Event{}, false
	}
}

// messageFrom extracts the optional human-readable detail from a push
// payload like {"message": "Scan complete"}.
func messageFrom(data string) string {
	var payload struct {
		Message string `json:"message"`
		Data    string `json:"data"`
	}
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Data
}
