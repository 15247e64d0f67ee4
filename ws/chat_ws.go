package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/insaroule/insaroule/pkg/logger"
	"github.com/insaroule/insaroule/pkg/resp"
	"github.com/insaroule/insaroule/services"
	"github.com/insaroule/insaroule/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ChatHub fans messages out to every connection subscribed to a join
// request's room. One hub serves all rooms; the Run loop serializes
// broadcasts, so delivery within a room follows persistence order.
type ChatHub struct {
	clients    map[string]map[*websocket.Conn]uint // joinRequestID -> conn -> userID
	broadcast  chan BroadcastMessage
	register   chan Subscription
	unregister chan Subscription
	mu         sync.Mutex
	service    *services.ChatService
}

// Subscription is one connection's membership in one room.
type Subscription struct {
	Conn          *websocket.Conn
	JoinRequestID string
	UserID        uint
}

// BroadcastMessage carries a persisted message to the fan-out loop. The dir
// tag is not here: every recipient derives its own.
type BroadcastMessage struct {
	JoinRequestID string
	Content       string
	Timestamp     time.Time
	SenderID      uint
}

// wireMessage is the shape both backfill and live messages use on the wire.
type wireMessage struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Dir       string `json:"dir"`
}

// Direction tags a message relative to the viewer: "out" for their own
// messages, "in" for everyone else's.
func Direction(senderID, viewerID uint) string {
	if senderID == viewerID {
		return "out"
	}
	return "in"
}

func NewChatHub(service *services.ChatService) *ChatHub {
	return &ChatHub{
		clients:    make(map[string]map[*websocket.Conn]uint),
		broadcast:  make(chan BroadcastMessage),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
		service:    service,
	}
}

// Run listens for register/unregister/broadcast until the process exits.
func (h *ChatHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.JoinRequestID] == nil {
				h.clients[sub.JoinRequestID] = make(map[*websocket.Conn]uint)
			}
			h.clients[sub.JoinRequestID][sub.Conn] = sub.UserID
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.JoinRequestID][sub.Conn]; ok {
				delete(h.clients[sub.JoinRequestID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn, viewerID := range h.clients[msg.JoinRequestID] {
				out := wireMessage{
					Message:   msg.Content,
					Timestamp: msg.Timestamp.Format(time.RFC3339),
					Dir:       Direction(msg.SenderID, viewerID),
				}
				if err := conn.WriteJSON(out); err != nil {
					logger.L().Warnw("ws write failed", "err", err)
					conn.Close()
					delete(h.clients[msg.JoinRequestID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket serves GET /ws/chat/:uuid.
func (h *ChatHub) HandleWebSocket(c *gin.Context) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		resp.NotFound(c, "join request not found")
		return
	}
	userID := utils.CurrentUserID(c)

	jr, err := h.service.GetJoinRequest(id)
	if err != nil {
		resp.NotFound(c, "join request not found")
		return
	}
	if !h.service.CanAccessRoom(userID, jr) {
		resp.Forbidden(c, "you are not a participant of this room")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L().Warnw("ws upgrade failed", "err", err)
		return
	}

	// Backfill before subscribing so the hub never writes to this
	// connection concurrently with the history replay.
	history, err := h.service.History(jr.UUID)
	if err != nil {
		logger.L().Errorw("history load failed", "joinRequest", jr.UUID, "err", err)
		conn.Close()
		return
	}
	for _, m := range history {
		out := wireMessage{
			Message:   m.Content,
			Timestamp: m.Timestamp.Format(time.RFC3339),
			Dir:       Direction(m.SenderID, userID),
		}
		if err := conn.WriteJSON(out); err != nil {
			conn.Close()
			return
		}
	}

	sub := Subscription{Conn: conn, JoinRequestID: jr.UUID.String(), UserID: userID}
	h.register <- sub

	go h.listenMessages(sub, jr.UUID)
}

// listenMessages reads incoming frames until the client goes away.
func (h *ChatHub) listenMessages(sub Subscription, joinRequestID uuid.UUID) {
	defer func() { h.unregister <- sub }()

	for {
		_, msgData, err := sub.Conn.ReadMessage()
		if err != nil {
			break
		}

		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(msgData, &payload); err != nil {
			logger.L().Warnw("invalid ws payload", "err", err)
			continue
		}
		if payload.Message == "" {
			continue
		}

		// persist first, then broadcast; the hub loop keeps room order
		msg, err := h.service.SendMessage(joinRequestID, sub.UserID, payload.Message)
		if err != nil {
			logger.L().Errorw("save message failed", "err", err)
			continue
		}

		h.broadcast <- BroadcastMessage{
			JoinRequestID: sub.JoinRequestID,
			Content:       msg.Content,
			Timestamp:     msg.Timestamp,
			SenderID:      msg.SenderID,
		}
	}
}
