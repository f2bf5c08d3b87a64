// Package logging configures the global zerolog logger and the structured
// events emitted by the decryption service.
package logging

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger initializes the zerolog logger with the specified debug mode and output format.
func InitLogger(debug, human bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	initWith(os.Stdout, level, human)
}

// Setup configures the logger from the config strings "debug|info|warn|error"
// and "human|json".
func Setup(level, format string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return fmt.Errorf("invalid log level %q", level)
	}

	var human bool
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "human", "console":
		human = true
	case "json":
	default:
		return fmt.Errorf("invalid log format %q", format)
	}

	initWith(os.Stderr, lvl, human)

	return nil
}

func initWith(out io.Writer, level zerolog.Level, human bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	base := zerolog.New(out).With().Timestamp().Logger()
	if human {
		log.Logger = base.Output(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339Nano,
		})
	} else {
		log.Logger = base
	}
	zerolog.SetGlobalLevel(level)
}

// FormatData returns data as text when every byte is printable, else as hex.
func FormatData(data []byte) string {
	for _, b := range data {
		if b < 32 || b > 126 {
			return hex.EncodeToString(data)
		}
	}

	return string(data)
}

// LogRequest logs a received command. The caller passes a redacted summary,
// never the raw payload.
func LogRequest(
	requestID string,
	clientIP string,
	command string,
	description string,
	summary string,
	activeConns int,
) {
	log.Info().
		Str("event", "request_received").
		Str("request_id", requestID).
		Str("client_ip", clientIP).
		Str("command", command).
		Str("description", description).
		Str("request", summary).
		Int("active_connections", activeConns).
		Msg("received command")
}

// LogResponse logs a sent response with its error code.
func LogResponse(
	requestID string,
	clientIP string,
	command string,
	responseCommand string,
	errorCode string,
	duration time.Duration,
	activeConns int,
) {
	log.Info().
		Str("event", "response_sent").
		Str("request_id", requestID).
		Str("client_ip", clientIP).
		Str("command", command).
		Str("response_command", responseCommand).
		Str("error_code", errorCode).
		Dur("duration", duration).
		Int("active_connections", activeConns).
		Msg("sent response")
}
