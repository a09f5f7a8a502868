package service

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tieubaoca/pdfrag-be/types"
)

// WebSocketService answers questions over a websocket connection so a
// front-end can keep one channel open across several questions on the
// same indexed document.
type WebSocketService struct {
	sessions *SessionService
	qa       *QAService
	upgrader websocket.Upgrader
}

func NewWebSocketService(sessions *SessionService, qa *QAService) *WebSocketService {
	return &WebSocketService{
		sessions: sessions,
		qa:       qa,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

func (s *WebSocketService) HandleAsk(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	// Set connection properties
	conn.SetReadLimit(512 * 1024) // 512KB max message size
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	for {
		messageType, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var req types.WebsocketRequest
		if err := json.Unmarshal(p, &req); err != nil {
			s.writeError(conn, messageType, "Error processing message")
			log.Println("Unmarshal error:", err)
			continue
		}
		payloadBytes, err := json.Marshal(req.Payload)
		if err != nil {
			s.writeError(conn, messageType, "Error processing message")
			log.Println("Marshal error:", err)
			continue
		}

		switch req.Type {
		case types.TypeWebsocketAsk:
			var payload types.WebSocketAskPayload
			if err := json.Unmarshal(payloadBytes, &payload); err != nil {
				log.Println("Unmarshal error:", err)
				s.writeError(conn, messageType, "Error processing message")
				continue
			}

			var answer string
			err := s.sessions.With(payload.SessionID, func(state *SessionState) error {
				var err error
				answer, err = s.qa.AnswerQuestion(ctx, state, payload.Question, payload.TopK, payload.Temperature)
				return err
			})
			if err != nil {
				log.Println("QA error:", err)
				s.writeError(conn, messageType, "Error answering question")
				continue
			}

			res := types.WebSocketResponse{
				Type:    types.TypeWebsocketAnswer,
				Payload: types.WebSocketAnswerResponse{Answer: answer},
			}
			if err := conn.WriteJSON(res); err != nil {
				log.Println("Write error:", err)
				continue
			}
		case types.TypeWebsocketPing:
			pongRes := types.WebSocketResponse{
				Type:    types.TypeWebsocketPong,
				Payload: nil,
			}
			if err := conn.WriteJSON(pongRes); err != nil {
				log.Println("Write error:", err)
			}
		default:
			log.Println("Invalid message type")
		}
	}
}

func (s *WebSocketService) writeError(conn *websocket.Conn, messageType int, message string) {
	res := types.WebSocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: types.WebSocketProcessingResponse{Message: message},
	}
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	conn.WriteMessage(messageType, data)
}

func (s *WebSocketService) Health() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}
