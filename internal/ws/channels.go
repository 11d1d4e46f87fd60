package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/notifier"
)

// channelSession serves the method and event channels for one connection.
// All of its methods run on the connection's read goroutine.
type channelSession struct {
	c        *client
	notifier *notifier.Notifier
	method   string
	events   string

	sub     *notifier.Subscription
	fwdDone chan struct{}
}

func (s *channelSession) handleFrame(data []byte) {
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.reply(WSMessage{
			Type:    MsgError,
			Payload: ErrorPayload{Code: CodeBadRequest, Message: fmt.Sprintf("malformed frame: %v", err)},
		})
		return
	}
	if msg.Type != MsgCall {
		s.reply(WSMessage{
			Type:    MsgError,
			ID:      msg.ID,
			Channel: msg.Channel,
			Payload: ErrorPayload{Code: CodeBadRequest, Message: fmt.Sprintf("unexpected message type %q", msg.Type)},
		})
		return
	}

	switch msg.Channel {
	case s.method:
		s.handleMethod(msg)
	case s.events:
		s.handleEvents(msg)
	default:
		s.notImplemented(msg)
	}
}

func (s *channelSession) handleMethod(msg WSMessage) {
	category, err := s.notifier.HandleMethod(msg.Method)
	if errors.Is(err, notifier.ErrNotImplemented) {
		s.notImplemented(msg)
		return
	}
	s.reply(WSMessage{Type: MsgResult, ID: msg.ID, Channel: msg.Channel, Payload: category})
}

func (s *channelSession) handleEvents(msg WSMessage) {
	switch msg.Method {
	case MethodListen:
		s.listen(msg)
	case MethodCancel:
		s.cancel()
		s.ack(msg)
	default:
		s.notImplemented(msg)
	}
}

func (s *channelSession) listen(msg WSMessage) {
	if s.sub != nil {
		if s.notifier.Active() == s.sub {
			s.ack(msg)
			return
		}
		// Cancelled from elsewhere, e.g. host shutdown.
		s.cancel()
	}

	sub, err := s.notifier.Listen(s.c.name)
	if err != nil {
		s.reply(WSMessage{
			Type:    MsgError,
			ID:      msg.ID,
			Channel: msg.Channel,
			Payload: ErrorPayload{Code: CodeAlreadyListening, Message: err.Error()},
		})
		return
	}

	// The ack is queued before the forwarder starts, so it precedes the
	// initial event on the wire.
	s.ack(msg)
	s.sub = sub
	s.fwdDone = make(chan struct{})
	go s.forward(sub, s.fwdDone)
}

// cancel releases this connection's subscription and waits for the event
// forwarder to exit.
func (s *channelSession) cancel() {
	if s.sub == nil {
		return
	}
	s.notifier.Cancel(s.sub)
	<-s.fwdDone
	s.sub = nil
	s.fwdDone = nil
}

func (s *channelSession) forward(sub *notifier.Subscription, done chan struct{}) {
	defer close(done)
	for category := range sub.Events() {
		s.c.enqueue(WSMessage{Type: MsgEvent, Channel: s.events, Payload: category})
	}
}

func (s *channelSession) ack(msg WSMessage) {
	s.reply(WSMessage{Type: MsgResult, ID: msg.ID, Channel: msg.Channel})
}

func (s *channelSession) notImplemented(msg WSMessage) {
	log.Printf("ws %s: not implemented: %s/%s", s.c.name, msg.Channel, msg.Method)
	s.reply(WSMessage{Type: MsgNotImplemented, ID: msg.ID, Channel: msg.Channel})
}

func (s *channelSession) reply(msg WSMessage) {
	s.c.enqueue(msg)
}
