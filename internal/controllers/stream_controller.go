package controllers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"car_tracker/internal/middleware"
	"car_tracker/internal/notify"
	"car_tracker/internal/store"
)

// upgrader configures the WebSocket connection.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // SPA dev servers connect from arbitrary origins
	},
}

// streamRequest is a client frame on the stream socket.
type streamRequest struct {
	Action string `json:"action"` // "subscribe" | "unsubscribe"
	Path   string `json:"path"`   // RecordPath, either accepted shape
}

// streamFrame is a server frame: a snapshot for a subscribed path, an error
// that killed a subscription, or a toast.
type streamFrame struct {
	Type    string         `json:"type"` // "snapshot" | "error" | "toast"
	Path    string         `json:"path,omitempty"`
	Records []store.Record `json:"records,omitempty"`
	Message string         `json:"message,omitempty"`
	Toast   interface{}    `json:"toast,omitempty"`
}

// HandleStream serves the live-subscription socket. The client subscribes to
// record paths and receives a fresh snapshot frame on every change; toast
// notifications for the user ride the same connection. Everything is torn
// down when the socket closes, so no callback outlives its consumer.
func HandleStream(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "please sign in"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("websocket upgrade failed")
		return
	}

	session := &streamSession{
		conn:   conn,
		userID: userID,
		send:   make(chan streamFrame, 32),
		subs:   make(map[string]func()),
	}
	defer session.teardown()

	go session.writeLoop()

	if toasts != nil {
		toastCh, cancelToasts := toasts.Watch(userID)
		session.cancelToasts = cancelToasts
		go func() {
			for t := range toastCh {
				session.enqueue(streamFrame{Type: "toast", Toast: t})
			}
		}()
	}

	session.readLoop()
}

// streamSession owns one socket: a writer goroutine serializes frames while
// subscription callbacks and the toast watcher feed the send channel.
type streamSession struct {
	conn   *websocket.Conn
	userID uint
	send   chan streamFrame

	mu           sync.Mutex
	closed       bool
	subs         map[string]func() // canonical path -> unsubscribe
	cancelToasts func()
}

func (s *streamSession) readLoop() {
	for {
		var req streamRequest
		if err := s.conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.WithError(err).WithField("user_id", s.userID).Info("stream client dropped")
			}
			return
		}

		switch req.Action {
		case "subscribe":
			s.subscribe(req.Path)
		case "unsubscribe":
			s.unsubscribe(req.Path)
		default:
			s.enqueue(streamFrame{Type: "error", Message: "unknown action " + req.Action})
		}
	}
}

func (s *streamSession) subscribe(raw string) {
	path, err := store.ParseRecordPath(raw)
	if err != nil {
		s.enqueue(streamFrame{Type: "error", Path: raw, Message: err.Error()})
		return
	}
	// Paths are namespaced by the token's user, never by what the client claims
	if path.UserID != s.userID {
		s.enqueue(streamFrame{Type: "error", Path: raw, Message: "path does not belong to this user"})
		return
	}
	key := path.String()

	// Re-subscribing to the same path tears the old subscription down first
	// so two callbacks never race on the same state.
	s.mu.Lock()
	old := s.subs[key]
	delete(s.subs, key)
	s.mu.Unlock()
	if old != nil {
		old()
	}

	unsubscribe, err := recordStore.Subscribe(path.UserID, path.CarID, path.Kind,
		func(records []store.Record) {
			s.enqueue(streamFrame{Type: "snapshot", Path: key, Records: records})
		},
		func(err error) {
			// Leave previously delivered data on the client; report once.
			s.enqueue(streamFrame{Type: "error", Path: key, Message: "subscription lost: " + err.Error()})
			if toasts != nil {
				toasts.Show(s.userID, "Live updates interrupted, showing last known data", notify.SeverityWarning)
			}
			s.mu.Lock()
			delete(s.subs, key)
			s.mu.Unlock()
		},
	)
	if err != nil {
		s.enqueue(streamFrame{Type: "error", Path: raw, Message: err.Error()})
		return
	}

	s.mu.Lock()
	s.subs[key] = unsubscribe
	s.mu.Unlock()
}

func (s *streamSession) unsubscribe(raw string) {
	path, err := store.ParseRecordPath(raw)
	if err != nil {
		s.enqueue(streamFrame{Type: "error", Path: raw, Message: err.Error()})
		return
	}
	key := path.String()

	s.mu.Lock()
	unsub, ok := s.subs[key]
	delete(s.subs, key)
	s.mu.Unlock()
	if ok {
		unsub()
	}
}

func (s *streamSession) enqueue(frame streamFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.send <- frame:
	default:
		logrus.WithField("user_id", s.userID).Warn("stream send buffer full, dropping frame")
	}
}

func (s *streamSession) writeLoop() {
	for frame := range s.send {
		if err := s.conn.WriteJSON(frame); err != nil {
			logrus.WithError(err).WithField("user_id", s.userID).Debug("stream write failed")
			return
		}
	}
}

func (s *streamSession) teardown() {
	s.mu.Lock()
	s.closed = true
	subs := s.subs
	s.subs = make(map[string]func())
	cancelToasts := s.cancelToasts
	s.cancelToasts = nil
	close(s.send)
	s.mu.Unlock()

	for _, unsub := range subs {
		unsub()
	}
	if cancelToasts != nil {
		cancelToasts()
	}
	s.conn.Close()
}
