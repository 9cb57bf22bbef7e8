package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/usagrada/satysfi-formatter/internal/formatter"
	"github.com/usagrada/satysfi-formatter/internal/lsp/log"
)

// Server is the SATySFi language server.
type Server struct {
	reader *bufio.Reader
	writer io.Writer
	mu     sync.Mutex // protects writer

	docs   *DocumentStore
	router *Router

	// base holds the layout settings used when the client does not
	// override them.
	base formatter.Config

	initialized bool
	shutdown    bool
	exited      bool
	rootURI     string
}

// NewServer creates a server that communicates over the given reader and
// writer and formats with base unless a request says otherwise.
func NewServer(reader io.Reader, writer io.Writer, base formatter.Config) *Server {
	s := &Server{
		reader: bufio.NewReader(reader),
		writer: writer,
		docs:   NewDocumentStore(),
		base:   base,
	}
	s.router = NewRouter(s)
	return s
}

// Run serves requests until the client sends exit, disconnects or ctx is
// cancelled. After shutdown every request but exit is rejected.
func (s *Server) Run(ctx context.Context) error {
	log.Server("LSP server starting")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg, err := s.readMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Server("Connection closed")
				return nil
			}
			return fmt.Errorf("reading message: %w", err)
		}

		response, err := s.handleMessage(msg)
		if err != nil {
			log.Server("Error handling message: %v", err)
			continue
		}

		if response != nil {
			if err := s.writeMessage(response); err != nil {
				return fmt.Errorf("writing response: %w", err)
			}
		}

		if s.exited {
			log.Server("Server exiting")
			return nil
		}
	}
}

// readMessage reads one Content-Length framed message.
func (s *Server) readMessage() ([]byte, error) {
	var contentLength int
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		if v, ok := strings.CutPrefix(line, "Content-Length:"); ok {
			contentLength, err = strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
		}
	}

	if contentLength == 0 {
		return nil, errors.New("missing Content-Length header")
	}

	content := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, content); err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	return content, nil
}

// writeMessage writes one Content-Length framed message.
func (s *Server) writeMessage(msg []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(msg))
	if _, err := io.WriteString(s.writer, header); err != nil {
		return err
	}
	_, err := s.writer.Write(msg)
	return err
}

// sendNotification sends a message that expects no response.
func (s *Server) sendNotification(method string, params any) error {
	data, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	})
	if err != nil {
		return err
	}
	return s.writeMessage(data)
}

// handleMessage processes one message and returns the encoded response,
// or nil for notifications.
func (s *Server) handleMessage(msg []byte) ([]byte, error) {
	var req Request
	if err := json.Unmarshal(msg, &req); err != nil {
		return s.errorResponse(nil, CodeParseError, "Parse error")
	}

	log.Server("Handling method: %s", req.Method)
	var result any
	var rpcErr *Error
	if s.shutdown && req.Method != "exit" {
		rpcErr = &Error{Code: CodeInvalidRequest, Message: "server is shut down"}
	} else {
		result, rpcErr = s.router.Route(req)
	}

	if req.ID == nil {
		return nil, nil
	}
	if rpcErr != nil {
		return s.errorResponse(req.ID, rpcErr.Code, rpcErr.Message)
	}
	return json.Marshal(Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	})
}

func (s *Server) errorResponse(id any, code int, message string) ([]byte, error) {
	return json.Marshal(Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}
