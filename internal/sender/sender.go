package sender

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Sender pushes fetch-progress messages to subscribed UI clients.
type Sender struct {
	clientConns    map[*websocket.Conn]bool
	clientConnsMux sync.Mutex
	upgrader       websocket.Upgrader
}

func New() *Sender {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return &Sender{
		clientConns: make(map[*websocket.Conn]bool),
		upgrader:    upgrader,
	}
}

func (s *Sender) HandleClientConn(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ERROR] websocket upgrade failed: %v", err)
		return
	}

	s.clientConnsMux.Lock()
	s.clientConns[conn] = true
	s.clientConnsMux.Unlock()

	log.Printf("[INFO] client connected: %s", conn.RemoteAddr())

	go func() {
		defer func() {
			s.clientConnsMux.Lock()
			delete(s.clientConns, conn)
			s.clientConnsMux.Unlock()
			conn.Close()
			log.Printf("[INFO] client disconnected: %s", conn.RemoteAddr())
		}()

		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("[ERROR] client read failed: %v", err)
				}
				return
			}
		}
	}()
}

// Broadcast sends v as JSON to every connected client; dead connections are
// dropped on write failure.
func (s *Sender) Broadcast(v interface{}) {
	byteMsg, err := json.Marshal(v)
	if err != nil {
		log.Printf("[ERROR] marshal broadcast message: %v", err)
		return
	}

	s.clientConnsMux.Lock()
	defer s.clientConnsMux.Unlock()

	for conn := range s.clientConns {
		if err := conn.WriteMessage(websocket.TextMessage, byteMsg); err != nil {
			log.Printf("[ERROR] write to client (%v): %v", conn.RemoteAddr(), err)
			conn.Close()
			delete(s.clientConns, conn)
		}
	}
}

// CloseAll drops every client connection, used on shutdown.
func (s *Sender) CloseAll() {
	s.clientConnsMux.Lock()
	defer s.clientConnsMux.Unlock()

	for conn := range s.clientConns {
		conn.Close()
		delete(s.clientConns, conn)
	}
}
