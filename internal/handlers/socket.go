package handlers

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"
	"github.com/imaditya55/RoomMateMatcher/internal/services"
	apperrors "github.com/imaditya55/RoomMateMatcher/pkg/errors"
	"github.com/imaditya55/RoomMateMatcher/pkg/logger"
	"github.com/imaditya55/RoomMateMatcher/pkg/utils"
)

var SocketServer *socketio.Server

// Presence is the process-wide registry of live sessions. Empty at startup;
// everyone is offline until they reconnect after a restart.
var Presence = services.NewPresenceRegistry()

// sessionConn is the slice of socketio.Conn the gateway needs for delivery.
// Narrowed to an interface so tests can drive the gateway with fakes.
type sessionConn interface {
	ID() string
	Emit(event string, args ...interface{})
}

type liveSession struct {
	userID string
	conn   sessionConn
}

// Conn table: session handle -> live session. The presence registry answers
// "which handles does this user have"; this table turns a handle back into a
// connection for targeted pushes.
var (
	sessions   = make(map[string]liveSession)
	sessionsMu sync.RWMutex
)

// Typing throttle: track last typing emit per user to prevent spam
var (
	lastTypingEmit         = make(map[string]time.Time)
	lastTypingMu           sync.Mutex
	typingThrottleDuration = 3 * time.Second
)

func bindSession(userID string, conn sessionConn) (first bool) {
	sessionsMu.Lock()
	sessions[conn.ID()] = liveSession{userID: userID, conn: conn}
	sessionsMu.Unlock()
	return Presence.Register(userID, conn.ID())
}

func releaseSession(sessionID string) (userID string, last bool) {
	sessionsMu.Lock()
	s, ok := sessions[sessionID]
	if ok {
		delete(sessions, sessionID)
	}
	sessionsMu.Unlock()
	if !ok {
		return "", false
	}
	return s.userID, Presence.Unregister(s.userID, sessionID)
}

// emitToUser fans one event out to every live session of the target user.
// Delivery is fire-and-forget: offline users simply have no sessions.
func emitToUser(userID, event string, data interface{}) {
	for _, handle := range Presence.SessionsFor(userID) {
		sessionsMu.RLock()
		s, ok := sessions[handle]
		sessionsMu.RUnlock()
		if ok {
			s.conn.Emit(event, data)
		}
	}
}

// broadcastPresence tells every session of every other user that someone went
// online or offline.
func broadcastPresence(event, userID string) {
	sessionsMu.RLock()
	conns := make([]sessionConn, 0, len(sessions))
	for _, s := range sessions {
		if s.userID == userID {
			continue
		}
		conns = append(conns, s.conn)
	}
	sessionsMu.RUnlock()

	payload := map[string]interface{}{"userId": userID}
	for _, conn := range conns {
		conn.Emit(event, payload)
	}
}

// handleSendMessage authorizes, persists and fans out one message. The
// returned map is the socket ack payload: {"message": ...} on success,
// {"error": ...} otherwise. The message is appended before either the ack or
// any delivery, so a sender is never acked for an unpersisted message.
func handleSendMessage(senderID, senderSessionID, to, text string) map[string]interface{} {
	if to == "" {
		return map[string]interface{}{"error": "Recipient is required"}
	}

	connected, err := services.AreConnected(senderID, to)
	if err != nil {
		logger.Error().Err(err).Str("user_id", senderID).Msg("Connection check failed")
		return map[string]interface{}{"error": "Failed to send message"}
	}
	if !connected {
		return map[string]interface{}{"error": "You can only chat with accepted roommates"}
	}

	msg, err := services.AppendMessage(senderID, to, text)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			return map[string]interface{}{"error": appErr.Message}
		}
		logger.Error().Err(err).Str("user_id", senderID).Msg("Failed to persist message")
		return map[string]interface{}{"error": "Failed to send message"}
	}

	// Deliver to the recipient's sessions and to the sender's other
	// sessions (multi-device sync); the originating session gets the
	// message in the ack instead.
	emitToUser(to, "new_message", msg)
	for _, handle := range Presence.SessionsFor(senderID) {
		if handle == senderSessionID {
			continue
		}
		sessionsMu.RLock()
		s, ok := sessions[handle]
		sessionsMu.RUnlock()
		if ok {
			s.conn.Emit("new_message", msg)
		}
	}

	return map[string]interface{}{"message": msg}
}

// handleMarkRead flips the reader's unread messages from a sender and tells
// that sender's sessions their messages were read. Repeats are a no-op: no
// rows flipped, no notification.
func handleMarkRead(readerID, fromID string) {
	if fromID == "" {
		return
	}

	affected, err := services.MarkReadFrom(fromID, readerID)
	if err != nil {
		logger.Error().Err(err).Str("user_id", readerID).Msg("Failed to mark messages read")
		return
	}

	if affected > 0 {
		emitToUser(fromID, "messages_read", map[string]interface{}{"by": readerID})
	}
}

// handleTyping relays the ephemeral typing signal. Nothing is persisted and
// no connection check is made; a stray indicator to a non-roommate is an
// accepted trade-off for keeping this path cheap.
func handleTyping(senderID, to string, typing bool) {
	if to == "" {
		return
	}

	event := "user_stop_typing"
	if typing {
		event = "user_typing"

		lastTypingMu.Lock()
		last, seen := lastTypingEmit[senderID]
		if seen && time.Since(last) < typingThrottleDuration {
			lastTypingMu.Unlock()
			return
		}
		lastTypingEmit[senderID] = time.Now()
		lastTypingMu.Unlock()
	}

	emitToUser(to, event, map[string]interface{}{"userId": senderID})
}

func stringField(data map[string]interface{}, key string) string {
	v, _ := data[key].(string)
	return v
}

func InitSocketServer() *socketio.Server {
	server := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&websocket.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
			&polling.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
		},
	})

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")

		// Token travels as a query param: the browser websocket API can't
		// set an Authorization header on the handshake.
		u := s.URL()
		token := u.Query().Get("token")
		if token == "" {
			logger.Warn().Str("session_id", s.ID()).Msg("Socket connection rejected: no token provided")
			return fmt.Errorf("authentication required")
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			logger.Warn().Str("session_id", s.ID()).Msg("Socket connection rejected: invalid token")
			return fmt.Errorf("invalid token")
		}

		userID := claims.UserID
		s.SetContext(userID)

		first := bindSession(userID, s)
		logger.Info().Str("session_id", s.ID()).Str("user_id", userID).Bool("first_session", first).Msg("Socket authenticated")

		// Only the offline -> online edge is broadcast; a second tab is not
		// news to anyone.
		if first {
			broadcastPresence("user_online", userID)
		}

		// Give the fresh session the current online snapshot
		s.Emit("online_users", Presence.OnlineUsers())

		return nil
	})

	server.OnEvent("/", "send_message", func(s socketio.Conn, data map[string]interface{}) map[string]interface{} {
		senderID, _ := s.Context().(string)
		if senderID == "" {
			return map[string]interface{}{"error": "Not authenticated"}
		}
		return handleSendMessage(senderID, s.ID(), stringField(data, "to"), stringField(data, "text"))
	})

	server.OnEvent("/", "mark_read", func(s socketio.Conn, data map[string]interface{}) {
		readerID, _ := s.Context().(string)
		if readerID == "" {
			return
		}
		handleMarkRead(readerID, stringField(data, "from"))
	})

	server.OnEvent("/", "typing", func(s socketio.Conn, data map[string]interface{}) {
		senderID, _ := s.Context().(string)
		if senderID == "" {
			return
		}
		handleTyping(senderID, stringField(data, "to"), true)
	})

	server.OnEvent("/", "stop_typing", func(s socketio.Conn, data map[string]interface{}) {
		senderID, _ := s.Context().(string)
		if senderID == "" {
			return
		}
		handleTyping(senderID, stringField(data, "to"), false)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		userID, last := releaseSession(s.ID())
		if userID == "" {
			return
		}

		logger.Info().Str("session_id", s.ID()).Str("user_id", userID).Str("reason", reason).Msg("Socket disconnected")

		if last {
			broadcastPresence("user_offline", userID)
		}
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		logger.Error().Err(e).Msg("Socket error")
	})

	go server.Serve()
	SocketServer = server
	return server
}

// SocketHandler wraps the socket.io server for gin.
func SocketHandler(server *socketio.Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		server.ServeHTTP(c.Writer, c.Request)
	}
}
