package server

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	anetserver "github.com/andrei-cloud/anet/server"
	"github.com/andrei-cloud/go_dukpt/internal/errorcodes"
	"github.com/andrei-cloud/go_dukpt/internal/hsm"
	"github.com/andrei-cloud/go_dukpt/internal/hsm/logic"
	"github.com/andrei-cloud/go_dukpt/internal/logging"
	"github.com/andrei-cloud/go_dukpt/internal/message"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// logAdapter implements anet.Logger using zerolog.
type logAdapter struct{}

// Server wraps the anet TCP server and the command logic.
type Server struct {
	address     string
	srv         *anetserver.Server
	hsmSvc      *hsm.HSM
	activeConns int32
}

func (l logAdapter) Print(v ...any) {
	log.Info().Msg(fmt.Sprint(v...))
}

func (l logAdapter) Printf(format string, v ...any) {
	log.Info().Msgf(format, v...)
}

func (l logAdapter) Infof(format string, v ...any) {
	log.Info().Msgf(format, v...)
}

func (l logAdapter) Warnf(format string, v ...any) {
	log.Warn().Msgf(format, v...)
}

func (l logAdapter) Errorf(format string, v ...any) {
	log.Error().Msgf(format, v...)
}

// NewServer configures the server and wires the command logic to h.
func NewServer(address string, h *hsm.HSM) (*Server, error) {
	if h == nil {
		return nil, errors.New("server setup failed: no key material")
	}

	cfg := &anetserver.ServerConfig{
		MaxConns:        100,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     0 * time.Second, // disable idle connection closure.
		ShutdownTimeout: 5 * time.Second,
		Logger:          logAdapter{},
	}

	s := &Server{
		address: address,
		hsmSvc:  h,
	}
	logic.SetBDKProvider(h)

	srv, err := anetserver.NewServer(address, anetserver.HandlerFunc(s.handle), cfg)
	if err != nil {
		return nil, fmt.Errorf("server setup failed: %w", err)
	}
	s.srv = srv

	return s, nil
}

// Start begins listening for connections.
func (s *Server) Start() error {
	kcv, err := s.hsmSvc.CheckValue()
	if err != nil {
		return fmt.Errorf("bdk check value: %w", err)
	}
	log.Info().
		Str("address", s.address).
		Str("bdk_kcv", string(kcv[:6])).
		Str("firmware", s.hsmSvc.FirmwareVersion).
		Msg("server started")

	return s.srv.Start()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	return s.srv.Stop()
}

// incrementCode returns the response code by incrementing the second character.
func incrementCode(cmd string) string {
	b := []byte(cmd)
	if len(b) < 2 {
		return cmd
	}
	if b[1] == 'Z' {
		b[1] = 'A'
	} else {
		b[1]++
	}

	return string(b)
}

// errorResponse constructs an error response carrying code.
func errorResponse(cmd string, code errorcodes.HSMError) []byte {
	return []byte(incrementCode(cmd) + code.CodeOnly())
}

// summarize describes a request without the ciphertext.
func summarize(cmd string, payload []byte) string {
	msg, err := message.Parse(cmd, payload)
	if err != nil {
		return fmt.Sprintf("payload_len=%d", len(payload))
	}

	return logging.FormatData([]byte(msg.Trace()))
}

func (s *Server) handle(conn *anetserver.ServerConn, data []byte) ([]byte, error) {
	client := conn.Conn.RemoteAddr().String()
	active := int(atomic.AddInt32(&s.activeConns, 1))
	defer atomic.AddInt32(&s.activeConns, -1)

	start := time.Now()
	requestID := uuid.New().String()

	if len(data) < 2 {
		log.Error().Str("request_id", requestID).Str("client_ip", client).Msg("malformed request")
		return nil, errors.New("malformed request")
	}

	cmd := string(data[:2])
	payload := data[2:]
	logging.LogRequest(requestID, client, cmd, logic.GetDescription(cmd), summarize(cmd, payload), active)

	// NC reports the firmware of this build, not the client's payload.
	if cmd == "NC" {
		payload = []byte(s.hsmSvc.FirmwareVersion)
	}

	resp, execErr := logic.ExecuteCommand(cmd, payload)
	code := errorcodes.Err00
	if execErr != nil {
		switch {
		case errors.Is(execErr, logic.ErrUnknownCommand):
			code = errorcodes.Err68
			log.Warn().
				Str("event", "unknown_command").
				Str("request_id", requestID).
				Str("client_ip", client).
				Str("command", cmd).
				Msg("Command not recognized, responding with error code")
		default:
			code = errorcodes.FromError(execErr)
			log.Error().
				Str("event", "command_error").
				Str("request_id", requestID).
				Str("client_ip", client).
				Str("command", cmd).
				Err(execErr).
				Msg("Command execution failed")
		}
		resp = errorResponse(cmd, code)
	}

	logging.LogResponse(
		requestID,
		client,
		cmd,
		incrementCode(cmd),
		code.CodeOnly(),
		time.Since(start),
		int(atomic.LoadInt32(&s.activeConns)),
	)

	return resp, nil
}
