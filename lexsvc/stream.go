package lexsvc

import (
	"encoding/binary"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rill-lang/rill/lexer"
	"github.com/rill-lang/rill/tools"
)

const (
	streamWriteWait = 10 * time.Second
	maxRequestSize  = 16 * 1024 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return isAllowedOrigin(r.Header.Get("Origin"))
	},
}

// TokenMessage is one token's worth of the L-code stream, rendered for a
// WebSocket client that can't decode the binary encoding itself.
type TokenMessage struct {
	Tag   string   `json:"tag"`
	Int   *int64   `json:"int,omitempty"`
	Float *float64 `json:"float,omitempty"`
}

// streamDoneMessage is sent once after the last TokenMessage, carrying the
// same arena statistics handleLex returns in one shot.
type streamDoneMessage struct {
	Done    bool          `json:"done"`
	Summary tools.Summary `json:"summary"`
}

// handleLexStream handles GET /lex/stream: the client sends a single text
// message containing the source to lex, and the server lexes it and
// writes back one TokenMessage per decoded token followed by a
// streamDoneMessage. A single request-response exchange per connection,
// rather than a broadcaster subscription, since a lex run has no ongoing
// session for multiple subscribers to share.
func (s *Server) handleLexStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("lexsvc: websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxRequestSize)
	_, message, err := conn.ReadMessage()
	if err != nil {
		return
	}

	out, err := lexer.LexWithOptions(&byteSliceSource{b: message}, s.opts)
	if err != nil {
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		_ = conn.WriteJSON(ErrorResponse{Error: "lex failed", Message: err.Error()})
		return
	}

	if err := streamTokens(conn, out); err != nil {
		log.Printf("lexsvc: stream write error: %v", err)
		return
	}
}

func streamTokens(conn *websocket.Conn, out *lexer.Output) error {
	i := 0
	for i < len(out.LCode) {
		tag := lexer.Tag(out.LCode[i])
		i++

		msg := TokenMessage{Tag: tools.TagName(tag)}
		if tools.HasPayload(tag) {
			raw := binary.LittleEndian.Uint64(out.LCode[i : i+8])
			i += 8
			if tag == lexer.TagFloat {
				f := math.Float64frombits(raw)
				msg.Float = &f
			} else {
				n := int64(raw)
				msg.Int = &n
			}
		}

		if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
			return err
		}
		if err := conn.WriteJSON(msg); err != nil {
			return err
		}
		if tag == lexer.TagEnd {
			break
		}
	}

	if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
		return err
	}
	return conn.WriteJSON(streamDoneMessage{Done: true, Summary: tools.Summarize(out)})
}
