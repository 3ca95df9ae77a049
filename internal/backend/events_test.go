package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/zorkosss/GameHub/internal/domain"
)

func TestEventStreamDeliversInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "text/event-stream" {
			t.Errorf("Accept = %q", got)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)

		frames := []string{
			"event: library_updated\ndata: {\"data\": \"Library file changed\"}\n\n",
			": keepalive\n\n",
			"event: game_updated\ndata: {\"name\": \"Apex\", \"source\": \"EA\", \"favorite\": true}\n\n",
			"event: unknown_event\ndata: {}\n\n",
			"event: scan_complete\ndata: {\"message\": \"Scan complete\"}\n\n",
		}
		for _, f := range frames {
			w.Write([]byte(f))
			flusher.Flush()
		}
		// Hold the connection open until the client goes away.
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := NewEventStream(srv.URL, "test-client", nil)
	go stream.Run(ctx)

	want := []domain.EventType{
		domain.EventFileSystemChanged,
		domain.EventGameFieldsChanged,
		domain.EventScanFinished,
	}

	for i, wantType := range want {
		select {
		case evt := <-stream.Events():
			if evt.Type != wantType {
				t.Fatalf("event %d = %s, want %s", i, evt.Type, wantType)
			}
			if wantType == domain.EventGameFieldsChanged {
				if evt.Entry == nil || evt.Entry.Name != "Apex" || !evt.Entry.Favorite {
					t.Fatalf("game event entry = %+v", evt.Entry)
				}
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for event %d (%s)", i, wantType)
		}
	}
}

func TestConsumeReportsConnected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte(": keepalive\n\n"))
	}))
	defer srv.Close()

	stream := NewEventStream(srv.URL, "test-client", nil)

	connected, _ := stream.consume(context.Background())
	if !connected {
		t.Error("consume against a live server reported connected = false")
	}

	srv.Close()
	connected, err := stream.consume(context.Background())
	if connected {
		t.Error("consume against a closed server reported connected = true")
	}
	if err != domain.ErrBackendOffline {
		t.Errorf("err = %v, want ErrBackendOffline", err)
	}
}

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name   string
		event  string
		data   string
		wantOK bool
	}{
		{"scan finished", "scan_complete", `{"message": "done"}`, true},
		{"fs changed", "library_updated", `{"data": "changed"}`, true},
		{"game updated", "game_updated", `{"name": "X", "source": "Steam"}`, true},
		{"game updated with bad payload", "game_updated", `{broken`, false},
		{"unknown event", "update_progress", `{}`, false},
		{"empty frame", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := decodeEvent(tt.event, tt.data)
			if ok != tt.wantOK {
				t.Errorf("decodeEvent(%q) ok = %v, want %v", tt.event, ok, tt.wantOK)
			}
		})
	}
}

func TestDecodeEventMessage(t *testing.T) {
	evt, ok := decodeEvent("scan_complete", `{"message": "Covers updated"}`)
	if !ok || evt.Message != "Covers updated" {
		t.Errorf("evt = %+v ok=%v", evt, ok)
	}
}
