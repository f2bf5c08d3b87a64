// Package message splits service requests into named fields.
package message

import (
	"fmt"
	"strings"
)

// Message defines the interface for service messages.
type Message interface {
	Get(field string) []byte
	Set(field string, val []byte)
	CommandCode() string
	Trace() string
}

// BaseMessage implements Message and holds command fields in request order.
type BaseMessage struct {
	cmdCode     string
	description string
	order       []string
	sensitive   map[string]bool
	Fields      map[string][]byte
}

// NewBaseMessage creates a new BaseMessage with the given code and description.
func NewBaseMessage(cmdCode, description string) *BaseMessage {
	return &BaseMessage{
		cmdCode:     cmdCode,
		description: description,
		sensitive:   make(map[string]bool),
		Fields:      make(map[string][]byte),
	}
}

func (m *BaseMessage) Get(field string) []byte {
	return m.Fields[field]
}

func (m *BaseMessage) Set(field string, val []byte) {
	if _, ok := m.Fields[field]; !ok {
		m.order = append(m.order, field)
	}
	m.Fields[field] = val
}

// SetSensitive stores a field that Trace reports by length only.
func (m *BaseMessage) SetSensitive(field string, val []byte) {
	m.Set(field, val)
	m.sensitive[field] = true
}

func (m *BaseMessage) CommandCode() string {
	return m.cmdCode
}

// Trace renders the message on one line for logs.
func (m *BaseMessage) Trace() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s):", m.cmdCode, m.description)
	for _, k := range m.order {
		if m.sensitive[k] {
			fmt.Fprintf(&sb, " %s=<%d bytes>", k, len(m.Fields[k]))
			continue
		}
		fmt.Fprintf(&sb, " %s=%s", k, m.Fields[k])
	}

	return sb.String()
}
