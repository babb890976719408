package ipc

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strings"
	"sync"
	"time"
)

const connTimeout = 2 * time.Second

// Handler runs a parsed command. It is called from the connection's
// goroutine, so GUI handlers must hop onto their main loop themselves.
type Handler func(cmd Command) error

type Server struct {
	socketPath string
	handler    Handler

	mu       sync.Mutex
	listener net.Listener
	running  bool
	wg       sync.WaitGroup
}

func NewServer(socketPath string, handler Handler) *Server {
	return &Server{
		socketPath: socketPath,
		handler:    handler,
	}
}

func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("IPC server already running")
	}

	// A stale socket from a crashed instance would make Listen fail.
	if _, err := os.Stat(s.socketPath); err == nil {
		os.Remove(s.socketPath)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create socket listener: %w", err)
	}

	s.listener = listener
	s.running = true
	log.Printf("[IPC] Listening on %s", s.socketPath)

	s.wg.Add(1)
	go s.acceptConnections(listener)
	return nil
}

func (s *Server) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Server) acceptConnections(listener net.Listener) {
	defer s.wg.Done()
	for {
		conn, err := listener.Accept()
		if err != nil {
			if s.isRunning() {
				log.Printf("[IPC] Error accepting connection: %v", err)
				continue
			}
			return
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(connTimeout)); err != nil {
		log.Printf("[IPC] Failed to set deadline: %v", err)
	}

	line, err := bufio.NewReader(io.LimitReader(conn, maxMessage)).ReadString('\n')
	if err != nil && err != io.EOF {
		log.Printf("[IPC] Error reading from connection: %v", err)
		return
	}

	message := strings.TrimSpace(line)
	log.Printf("[IPC] Received message: %s", message)

	cmd, err := Parse(message)
	if err == nil {
		err = s.handler(cmd)
	}
	if err != nil {
		log.Printf("[IPC] %v", err)
	}
	if _, werr := io.WriteString(conn, formatReply(err)); werr != nil {
		log.Printf("[IPC] Failed to reply: %v", werr)
	}
}

// Stop closes the listener, waits for in-flight connections and removes
// the socket file.
func (s *Server) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	listener := s.listener
	s.mu.Unlock()

	err := listener.Close()
	s.wg.Wait()

	if _, statErr := os.Stat(s.socketPath); statErr == nil {
		os.Remove(s.socketPath)
	}

	log.Println("[IPC] Server stopped")
	return err
}
