package discord

import "time"

const (
	webhookURLTemplate = "https://discord.com/api/webhooks/%s/%s"

	ColorInfo    = 3447003
	ColorSuccess = 3066993
	ColorWarning = 16776960
	ColorError   = 15158332

	MaxEmbedLength    = 6000
	MaxTitleLen       = 256
	MaxDescriptionLen = 4096
	MaxFieldValueLen  = 1024
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultRetryCount = 2
	DefaultRetryDelay = 500 * time.Millisecond
)

const (
	DefaultUsername = "Chat Realtime"
	UserAgent       = "chat-realtime/1.0"
	ReportBugTitle  = "Chat Realtime Error Report"
)
