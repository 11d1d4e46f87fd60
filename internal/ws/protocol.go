package ws

type MessageType string

const (
	MsgCall           MessageType = "call"
	MsgResult         MessageType = "result"
	MsgNotImplemented MessageType = "not_implemented"
	MsgError          MessageType = "error"
	MsgEvent          MessageType = "event"
)

// Methods accepted on the event channel.
const (
	MethodListen = "listen"
	MethodCancel = "cancel"
)

// Error codes carried in MsgError payloads.
const (
	CodeBadRequest       = "bad_request"
	CodeAlreadyListening = "already_listening"
)

// WSMessage is the single frame shape in both directions. Clients send
// MsgCall frames; the server answers with MsgResult, MsgNotImplemented or
// MsgError carrying the same ID, and pushes MsgEvent frames without one.
type WSMessage struct {
	Type    MessageType `json:"type"`
	ID      int64       `json:"id,omitempty"`
	Channel string      `json:"channel,omitempty"`
	Method  string      `json:"method,omitempty"`
	Payload interface{} `json:"payload"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
