package discord

import (
	"net/http"
	"time"

	"chat-realtime/pkg/log"
)

type Config struct {
	Timeout         time.Duration
	RetryCount      int
	RetryDelay      time.Duration
	DefaultUsername string
}

type discordImpl struct {
	l          log.Logger
	webhookURL string
	config     Config
	client     *http.Client
}

type MessageType string

const (
	MessageTypeInfo    MessageType = "info"
	MessageTypeSuccess MessageType = "success"
	MessageTypeWarning MessageType = "warning"
	MessageTypeError   MessageType = "error"
)

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type EmbedFooter struct {
	Text string `json:"text"`
}

type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

type WebhookPayload struct {
	Content  string  `json:"content,omitempty"`
	Username string  `json:"username,omitempty"`
	Embeds   []Embed `json:"embeds,omitempty"`
}

type MessageOptions struct {
	Type        MessageType
	Title       string
	Description string
	Fields      []EmbedField
	Footer      *EmbedFooter
	Timestamp   time.Time
}
