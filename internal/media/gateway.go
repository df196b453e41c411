package media

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/and-other-tales/reception/internal/models"
	"github.com/and-other-tales/reception/internal/utils"
)

// Gateway connects to the media gateway's agent endpoint over websocket.
// One websocket carries one room session; frames are JSON.
type Gateway struct {
	baseURL   string
	apiKey    string
	apiSecret string
	log       logrus.FieldLogger
}

func NewGateway(baseURL, apiKey, apiSecret string, log logrus.FieldLogger) *Gateway {
	return &Gateway{baseURL: baseURL, apiKey: apiKey, apiSecret: apiSecret, log: log}
}

type frame struct {
	Type string `json:"type"`

	// join / say
	Room         string `json:"room,omitempty"`
	Subscribe    string `json:"subscribe,omitempty"`
	Text         string `json:"text,omitempty"`
	AddToChatCtx bool   `json:"add_to_chat_ctx,omitempty"`

	// participant_joined / chat
	Identity string `json:"identity,omitempty"`
	From     string `json:"from,omitempty"`

	// user_turn / assistant_turn
	Parts []framePart `json:"parts,omitempty"`

	// job dispatch
	Metadata string `json:"metadata,omitempty"`
}

type framePart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (g *Gateway) Connect(ctx context.Context, roomName string) (Session, error) {
	const op = "media.Gateway.Connect"

	u, err := url.Parse(g.baseURL)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "bad gateway url", err)
	}
	u.Path = "/rooms/" + roomName

	hdr := http.Header{}
	hdr.Set("X-Api-Key", g.apiKey)
	hdr.Set("X-Api-Secret", g.apiSecret)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), hdr)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "gateway dial failed", err)
	}

	s := &gatewaySession{
		conn:         conn,
		log:          g.log.WithField("room", roomName),
		participants: make(chan Participant, 1),
		disconnected: make(chan struct{}),
	}

	if err := s.writeFrame(frame{Type: "join", Room: roomName, Subscribe: "audio_only"}); err != nil {
		_ = conn.Close()
		return nil, utils.E(utils.CodeUnavailable, op, "join failed", err)
	}

	go s.readLoop()
	return s, nil
}

type gatewaySession struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	log     logrus.FieldLogger

	participants chan Participant
	disconnected chan struct{}
	closeErr     error
	closeOnce    sync.Once

	hookMu      sync.Mutex
	onChat      func(ChatMessage)
	onUserTurn  func(TurnEvent)
	onAgentTurn func(TurnEvent)
}

func (s *gatewaySession) writeFrame(f frame) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return s.conn.WriteMessage(websocket.TextMessage, b)
}

func (s *gatewaySession) readLoop() {
	_ = s.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	s.conn.SetPongHandler(func(string) error {
		_ = s.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.finish(err)
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			s.log.WithError(err).Warn("bad gateway frame")
			continue
		}
		s.dispatch(f)
	}
}

func (s *gatewaySession) dispatch(f frame) {
	switch f.Type {
	case "participant_joined":
		select {
		case s.participants <- Participant{Identity: f.Identity}:
		default:
		}
	case "chat":
		if fn := s.chatHook(); fn != nil && f.Text != "" {
			fn(ChatMessage{From: f.From, Text: f.Text})
		}
	case "user_turn":
		if fn := s.userTurnHook(); fn != nil {
			fn(TurnEvent{Role: models.RoleUser, Parts: toParts(f.Parts)})
		}
	case "assistant_turn":
		if fn := s.agentTurnHook(); fn != nil {
			fn(TurnEvent{Role: models.RoleAssistant, Parts: toParts(f.Parts)})
		}
	case "room_closed":
		s.finish(nil)
	default:
		s.log.WithField("type", f.Type).Debug("unhandled gateway frame")
	}
}

func toParts(in []framePart) []models.ContentPart {
	out := make([]models.ContentPart, 0, len(in))
	for _, p := range in {
		out = append(out, models.ContentPart{Type: p.Type, Text: p.Text})
	}
	return out
}

func (s *gatewaySession) finish(err error) {
	s.closeOnce.Do(func() {
		s.closeErr = err
		close(s.disconnected)
	})
}

func (s *gatewaySession) WaitForParticipant(ctx context.Context) (Participant, error) {
	const op = "media.Session.WaitForParticipant"
	select {
	case p := <-s.participants:
		return p, nil
	case <-s.disconnected:
		return Participant{}, utils.E(utils.CodeUnavailable, op, "room closed before join", s.closeErr)
	case <-ctx.Done():
		return Participant{}, ctx.Err()
	}
}

func (s *gatewaySession) WaitForDisconnect(ctx context.Context) error {
	select {
	case <-s.disconnected:
		return s.closeErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *gatewaySession) Say(ctx context.Context, text string, addToHistory bool) error {
	const op = "media.Session.Say"
	if err := s.writeFrame(frame{Type: "say", Text: text, AddToChatCtx: addToHistory}); err != nil {
		return utils.E(utils.CodeUnavailable, op, "say failed", err)
	}
	return nil
}

func (s *gatewaySession) OnChatMessage(fn func(ChatMessage)) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.onChat = fn
}

func (s *gatewaySession) OnUserTurnCommitted(fn func(TurnEvent)) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.onUserTurn = fn
}

func (s *gatewaySession) OnAssistantTurnCommitted(fn func(TurnEvent)) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.onAgentTurn = fn
}

func (s *gatewaySession) chatHook() func(ChatMessage) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	return s.onChat
}

func (s *gatewaySession) userTurnHook() func(TurnEvent) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	return s.onUserTurn
}

func (s *gatewaySession) agentTurnHook() func(TurnEvent) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	return s.onAgentTurn
}

func (s *gatewaySession) Close() error {
	err := s.conn.Close()
	s.finish(nil)
	return err
}
