package lexsvc

import (
	"io"
	"net/http"

	"github.com/rill-lang/rill/lexer"
	"github.com/rill-lang/rill/tools"
)

// byteSliceSource adapts an in-memory byte slice to lexer.Source.
type byteSliceSource struct {
	b   []byte
	pos int
}

func (s *byteSliceSource) ReadByte() (byte, bool) {
	if s.pos >= len(s.b) {
		return 0, false
	}
	c := s.b[s.pos]
	s.pos++
	return c, true
}

// handleLex handles POST /lex: the request body is lexed as source text
// and the response is a JSON tools.Summary on success, or an ErrorResponse
// describing the lexical error.
func (s *Server) handleLex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := lexer.LexWithOptions(&byteSliceSource{b: body}, s.opts)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, tools.Summarize(out))
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(http.MaxBytesReader(nil, r.Body, 16*1024*1024))
}
