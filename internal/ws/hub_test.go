package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaqqye/evaluasi_backend/internal/editor"
	"github.com/zaqqye/evaluasi_backend/internal/middleware"
	"github.com/zaqqye/evaluasi_backend/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// serve mounts the handler behind a stub that injects identity and the
// session it was resolved under.
func serve(t *testing.T, hub *Hub, identity models.Identity, session string) string {
	t.Helper()
	r := gin.New()
	r.GET("/ws", func(c *gin.Context) {
		c.Set(middleware.IdentityKey, identity)
		c.Set(middleware.SessionIDKey, session)
		c.Next()
	}, Handler(hub))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) <-chan Event {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	events := make(chan Event, 16)
	go func() {
		defer close(events)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var ev Event
			if json.Unmarshal(data, &ev) == nil {
				events <- ev
			}
		}
	}()
	return events
}

// await rebroadcasts until the client has registered and an event arrives.
func await(t *testing.T, events <-chan Event, send func()) Event {
	t.Helper()
	deadline := time.After(3 * time.Second)
	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()
	for {
		send()
		select {
		case ev := <-events:
			return ev
		case <-deadline:
			t.Fatal("no event received")
			return Event{}
		case <-tick.C:
		}
	}
}

// awaitType is await that skips events of other types.
func awaitType(t *testing.T, events <-chan Event, want EventType, send func()) Event {
	t.Helper()
	for {
		ev := await(t, events, send)
		if ev.Type == want {
			return ev
		}
	}
}

func requireClosed(t *testing.T, events <-chan Event) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("connection still open")
		}
	}
}

func runHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func TestHub_RosterCommittedReachesEveryone(t *testing.T) {
	hub := runHub(t)
	student := dial(t, serve(t, hub, models.Identity{Role: models.RoleStudent, StudentID: "murid-1"}, "s1"))

	ev := await(t, student, func() { hub.RosterCommitted("Matematika") })
	assert.Equal(t, EventRosterCommitted, ev.Type)
	assert.Equal(t, "Matematika", ev.Subject)
}

func TestHub_NoticesAreSubjectScoped(t *testing.T) {
	hub := runHub(t)
	math := dial(t, serve(t, hub, models.Identity{Role: models.RoleAdmin, Subject: "Matematika"}, "s1"))
	info := dial(t, serve(t, hub, models.Identity{Role: models.RoleAdmin, Subject: "Informatika"}, "s1"))

	expires := time.Date(2025, 3, 1, 9, 0, 3, 0, time.UTC)
	ev := await(t, math, func() {
		hub.NoticePosted("Matematika", editor.Notice{Message: "Data berhasil di-submit dan disimpan!", ExpiresAt: expires})
	})
	assert.Equal(t, EventNotice, ev.Type)
	assert.Equal(t, "Data berhasil di-submit dan disimpan!", ev.Message)
	require.NotNil(t, ev.ExpiresAt)
	assert.True(t, expires.Equal(*ev.ExpiresAt))

	// a commit is the first thing the other subject sees
	other := await(t, info, func() { hub.RosterCommitted("Matematika") })
	assert.Equal(t, EventRosterCommitted, other.Type)
}

func TestHub_SessionEndedClosesConnections(t *testing.T) {
	hub := runHub(t)
	admin := dial(t, serve(t, hub, models.Identity{Role: models.RoleAdmin, Subject: "Matematika"}, "s1"))

	ev := await(t, admin, func() { hub.SessionEnded("") })
	assert.Equal(t, EventSessionEnded, ev.Type)
	requireClosed(t, admin)
}

func TestHub_SessionEndedKeepsLiveSession(t *testing.T) {
	hub := runHub(t)
	old := dial(t, serve(t, hub, models.Identity{Role: models.RoleAdmin, Subject: "Matematika"}, "s1"))
	live := dial(t, serve(t, hub, models.Identity{Role: models.RoleAdmin, Subject: "Matematika"}, "s2"))

	// make sure the live client is registered before ending the old session
	awaitType(t, live, EventRosterCommitted, func() { hub.RosterCommitted("Matematika") })

	awaitType(t, old, EventSessionEnded, func() { hub.SessionEnded("s2") })
	requireClosed(t, old)

	ev := awaitType(t, live, EventNotice, func() {
		hub.NoticePosted("Matematika", editor.Notice{Message: "Data berhasil di-submit dan disimpan!"})
	})
	assert.Equal(t, "Data berhasil di-submit dan disimpan!", ev.Message)
}

func TestHub_NilIsSafe(t *testing.T) {
	var hub *Hub
	assert.NotPanics(t, func() { hub.Broadcast(Event{Type: EventSessionEnded}) })
	assert.NotPanics(t, func() { hub.SessionEnded("") })
}
