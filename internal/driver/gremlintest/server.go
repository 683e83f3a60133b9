// Package gremlintest runs an in-process Gremlin Server stand-in for tests.
package gremlintest

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
)

// Reply is the status and payload returned for one script.
type Reply struct {
	Code       int
	Message    string
	Data       any
	Attributes map[string]any
	// Hold leaves the request unanswered.
	Hold bool
}

// Handler decides the reply for a submitted script.
type Handler func(script string) Reply

type Server struct {
	server *httptest.Server
	handle Handler

	mu      sync.Mutex
	scripts []string
}

type request struct {
	RequestID json.RawMessage `json:"requestId"`
	Op        string          `json:"op"`
	Args      map[string]any  `json:"args"`
}

func NewServer(t *testing.T, handle Handler) *Server {
	t.Helper()
	s := &Server{handle: handle}
	upgrader := websocket.Upgrader{}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			req, ok := parseRequest(data)
			if !ok || req.Op != "eval" {
				continue
			}
			script, _ := req.Args["gremlin"].(string)
			s.mu.Lock()
			s.scripts = append(s.scripts, script)
			s.mu.Unlock()

			reply := s.handle(script)
			if reply.Hold {
				continue
			}
			if err := write(conn, requestID(req.RequestID), reply); err != nil {
				return
			}
		}
	}))
	t.Cleanup(s.server.Close)
	return s
}

// Host and Port locate the listener.
func (s *Server) Host() string {
	host, _, _ := net.SplitHostPort(strings.TrimPrefix(s.server.URL, "http://"))
	return host
}

func (s *Server) Port() int {
	_, port, _ := net.SplitHostPort(strings.TrimPrefix(s.server.URL, "http://"))
	p, _ := strconv.Atoi(port)
	return p
}

// URL is the plain WebSocket address of the server.
func (s *Server) URL() string {
	return "ws://" + net.JoinHostPort(s.Host(), strconv.Itoa(s.Port())) + "/"
}

// Scripts returns the evaluated scripts in arrival order.
func (s *Server) Scripts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.scripts...)
}

// parseRequest accepts both mime-prefixed binary frames and bare JSON.
func parseRequest(data []byte) (request, bool) {
	var req request
	if len(data) == 0 {
		return req, false
	}
	body := data
	if data[0] != '{' {
		n := int(data[0])
		if len(data) < 1+n {
			return req, false
		}
		body = data[1+n:]
	}
	if err := json.Unmarshal(bytes.TrimSpace(body), &req); err != nil {
		return req, false
	}
	return req, true
}

func requestID(raw json.RawMessage) string {
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return id
	}
	var typed struct {
		Value string `json:"@value"`
	}
	_ = json.Unmarshal(raw, &typed)
	return typed.Value
}

func write(conn *websocket.Conn, id string, reply Reply) error {
	code := reply.Code
	if code == 0 {
		code = 200
	}
	attrs := reply.Attributes
	if attrs == nil {
		attrs = map[string]any{}
	}
	body, err := json.Marshal(map[string]any{
		"requestId": id,
		"status": map[string]any{
			"code":       code,
			"message":    reply.Message,
			"attributes": attrs,
		},
		"result": map[string]any{
			"data": reply.Data,
			"meta": map[string]any{},
		},
	})
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.BinaryMessage, body)
}
