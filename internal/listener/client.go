package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pixil98/go-town/internal/auth"
	"github.com/pixil98/go-town/internal/messaging"
	"github.com/pixil98/go-town/internal/town"
)

const (
	// How long a client gets to send its join message.
	handshakeTimeout = 30 * time.Second

	// Outbound frames buffered per client before drops start.
	outboundBuffer = 256
)

// clientSession drives one websocket connection: handshake, event
// forwarding, and the read loop that routes movement, commands, and chat
// into the town.
type clientSession struct {
	conn    *websocket.Conn
	town    *town.Town
	gate    *auth.Gatekeeper
	sub     Subscriber
	emitter *messaging.Emitter

	actorID string
	out     chan []byte
}

func newClientSession(conn *websocket.Conn, t *town.Town, gate *auth.Gatekeeper, sub Subscriber, em *messaging.Emitter) *clientSession {
	return &clientSession{
		conn:    conn,
		town:    t,
		gate:    gate,
		sub:     sub,
		emitter: em,
		out:     make(chan []byte, outboundBuffer),
	}
}

func (s *clientSession) run(ctx context.Context) error {
	defer func() {
		if err := s.conn.Close(); err != nil {
			slog.Debug("closing connection", "error", err)
		}
	}()

	// Unblock the read loop when the listener shuts down.
	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-readCtx.Done()
		_ = s.conn.Close()
	}()

	actor, err := s.handshake()
	if err != nil {
		return fmt.Errorf("handshake: %w", err)
	}
	s.actorID = actor.ID()

	// Everything the client sees flows through the broker subjects.
	unsubs, err := s.subscribeAll()
	if err != nil {
		if removeErr := s.town.RemoveActor(s.actorID); removeErr != nil {
			slog.Warn("removing actor", "actor", s.actorID, "error", removeErr)
		}
		return fmt.Errorf("subscribing: %w", err)
	}

	writerDone := make(chan struct{})
	go s.writer(writerDone)

	s.emitter.Register(s.actorID)

	s.readLoop()

	// Disconnect: drop the roster entry and subscriptions before the town
	// broadcasts the departure, then remove the actor (which forces a
	// leave on any session it held).
	s.emitter.Unregister(s.actorID)
	for _, unsub := range unsubs {
		unsub()
	}
	if err := s.town.RemoveActor(s.actorID); err != nil {
		slog.Warn("removing actor", "actor", s.actorID, "error", err)
	}

	close(s.out)
	<-writerDone
	return nil
}

// handshake reads the initial join message, checks the town password, and
// admits the actor, replying with its credentials and a full state
// snapshot.
func (s *clientSession) handshake() (*town.Actor, error) {
	if err := s.conn.SetReadDeadline(time.Now().Add(handshakeTimeout)); err != nil {
		return nil, err
	}

	_, data, err := s.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	if err := s.conn.SetReadDeadline(time.Time{}); err != nil {
		return nil, err
	}

	var env clientEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		s.rejectNow(0, town.CodeInternal, "malformed join message")
		return nil, fmt.Errorf("decoding join: %w", err)
	}
	if env.Type != msgJoin {
		s.rejectNow(env.Seq, town.CodeUnrecognizedCommand, "first message must be a join")
		return nil, fmt.Errorf("first message %q, want %q", env.Type, msgJoin)
	}

	var join joinPayload
	if err := json.Unmarshal(env.Payload, &join); err != nil {
		s.rejectNow(env.Seq, town.CodeInternal, "malformed join payload")
		return nil, fmt.Errorf("decoding join payload: %w", err)
	}

	if err := s.gate.Admit(join.Password); err != nil {
		s.rejectNow(env.Seq, codeBadPassword, err.Error())
		return nil, err
	}

	actor, err := s.town.AddActor(join.UserName)
	if err != nil {
		s.rejectNow(env.Seq, town.ErrorCode(err), err.Error())
		return nil, err
	}

	actors, areas := s.town.Snapshot()
	s.writeNow(serverFrame{
		Type: frameWelcome,
		Seq:  env.Seq,
		Welcome: &welcomePayload{
			ActorID:      actor.ID(),
			SessionToken: actor.SessionToken(),
			Actors:       actors,
			Areas:        areas,
		},
	})

	return actor, nil
}

// subscribeAll wires the broker subjects this client should see: the
// town-wide broadcast, every area subject, and the client's own actor
// subject.
func (s *clientSession) subscribeAll() ([]func(), error) {
	subjects := []string{
		messaging.SubjectBroadcast,
		messaging.SubjectAreaPrefix + ">",
		messaging.SubjectActor(s.actorID),
	}

	var unsubs []func()
	for _, subject := range subjects {
		unsub, err := s.sub.Subscribe(subject, s.forwardEvent)
		if err != nil {
			for _, u := range unsubs {
				u()
			}
			return nil, fmt.Errorf("subscribing to %q: %w", subject, err)
		}
		unsubs = append(unsubs, unsub)
	}
	return unsubs, nil
}

// forwardEvent wraps a broker event in a frame and queues it for the
// writer. A client that cannot keep up loses frames; every event is a
// full replacement so the next one heals the gap.
func (s *clientSession) forwardEvent(data []byte) {
	frame, err := json.Marshal(serverFrame{Type: frameEvent, Event: data})
	if err != nil {
		slog.Warn("marshalling event frame", "error", err)
		return
	}
	select {
	case s.out <- frame:
	default:
		slog.Warn("dropping event for slow client", "actor", s.actorID)
	}
}

func (s *clientSession) readLoop() {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var env clientEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			s.reject(0, town.CodeInternal, "malformed message")
			continue
		}

		// Every post-join message must present the session credential.
		if err := s.town.VerifyToken(s.actorID, env.Token); err != nil {
			s.reject(env.Seq, town.ErrorCode(err), err.Error())
			continue
		}

		switch env.Type {
		case msgMove:
			s.handleMove(env)
		case msgCommand:
			s.handleCommand(env)
		case msgChat:
			s.handleChat(env)
		default:
			// Protocol error: reply to the offender, keep the connection.
			s.reject(env.Seq, town.CodeUnrecognizedCommand, fmt.Sprintf("unknown message type %q", env.Type))
		}
	}
}

func (s *clientSession) handleMove(env clientEnvelope) {
	var move movePayload
	if err := json.Unmarshal(env.Payload, &move); err != nil {
		s.reject(env.Seq, town.CodeInternal, "malformed move payload")
		return
	}
	if err := s.town.UpdateLocation(s.actorID, move.Location); err != nil {
		s.reject(env.Seq, town.ErrorCode(err), err.Error())
	}
}

func (s *clientSession) handleCommand(env clientEnvelope) {
	var payload commandPayload
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		s.reject(env.Seq, town.CodeInternal, "malformed command payload")
		return
	}

	cmd, err := parseCommand(payload.Command)
	if err != nil {
		s.reject(env.Seq, town.ErrorCode(err), err.Error())
		return
	}

	result, err := s.town.HandleAreaCommand(s.actorID, payload.AreaID, cmd)
	if err != nil {
		s.reject(env.Seq, town.ErrorCode(err), err.Error())
		return
	}

	s.enqueue(serverFrame{Type: frameResult, Seq: env.Seq, Result: result})
}

func (s *clientSession) handleChat(env clientEnvelope) {
	var chat chatPayload
	if err := json.Unmarshal(env.Payload, &chat); err != nil {
		s.reject(env.Seq, town.CodeInternal, "malformed chat payload")
		return
	}
	if err := s.town.Chat(s.actorID, chat.Body); err != nil {
		s.reject(env.Seq, town.ErrorCode(err), err.Error())
	}
}

// reject reports a failed request to this client only.
func (s *clientSession) reject(seq int64, code, message string) {
	s.enqueue(serverFrame{Type: frameError, Seq: seq, Code: code, Message: message})
}

// rejectNow is reject for the handshake phase, before the writer starts.
func (s *clientSession) rejectNow(seq int64, code, message string) {
	s.writeNow(serverFrame{Type: frameError, Seq: seq, Code: code, Message: message})
}

func (s *clientSession) enqueue(frame serverFrame) {
	data, err := json.Marshal(frame)
	if err != nil {
		slog.Warn("marshalling frame", "error", err)
		return
	}
	select {
	case s.out <- data:
	default:
		slog.Warn("dropping frame for slow client", "actor", s.actorID)
	}
}

// writeNow writes a frame synchronously, used only before the writer
// goroutine starts.
func (s *clientSession) writeNow(frame serverFrame) {
	data, err := json.Marshal(frame)
	if err != nil {
		slog.Warn("marshalling frame", "error", err)
		return
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Debug("writing frame", "error", err)
	}
}

// writer is the single goroutine allowed to write to the websocket after
// the handshake.
func (s *clientSession) writer(done chan<- struct{}) {
	defer close(done)
	for data := range s.out {
		if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			slog.Debug("writing to client", "actor", s.actorID, "error", err)
			return
		}
	}
}
