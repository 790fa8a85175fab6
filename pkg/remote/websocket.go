package remote

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kataras/iris/v12"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4 * 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WSMessage is a control message sent by a websocket client.
type WSMessage struct {
	Action string `json:"action"` // "select" or "stop"
	Video  string `json:"video,omitempty"`
}

type statusStream struct {
	ws   *websocket.Conn
	mu   sync.Mutex
	done chan struct{}
}

func (st *statusStream) sendJSON(v any) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.ws.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return st.ws.WriteJSON(v)
}

// handleWebSocket pushes the status on every interval and reads control
// messages until the client goes away.
func (s *Server) handleWebSocket(ctx iris.Context) {
	ws, err := upgrader.Upgrade(ctx.ResponseWriter(), ctx.Request(), nil)
	if err != nil {
		log.Printf("Remote: websocket upgrade error: %v", err)
		return
	}
	defer ws.Close()

	stream := &statusStream{ws: ws, done: make(chan struct{})}
	go s.pushStatus(stream)
	defer close(stream.done)

	for {
		var msg WSMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Remote: websocket error: %v", err)
			}
			return
		}

		switch msg.Action {
		case "select":
			cmd, ok := s.selectCommand(msg.Video)
			if !ok {
				stream.sendJSON(map[string]any{"error": "unknown video: " + msg.Video})
				continue
			}
			s.enqueue(cmd)
		case "stop":
			s.enqueue(Command{Kind: CommandStop})
		default:
			stream.sendJSON(map[string]any{"error": "unknown action: " + msg.Action})
		}
	}
}

func (s *Server) pushStatus(stream *statusStream) {
	ticker := time.NewTicker(s.pushInterval)
	defer ticker.Stop()

	if err := stream.sendJSON(s.Status()); err != nil {
		return
	}
	for {
		select {
		case <-stream.done:
			return
		case <-ticker.C:
			if err := stream.sendJSON(s.Status()); err != nil {
				return
			}
		}
	}
}
