package response

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"chat-realtime/pkg/discord"

	"github.com/gin-gonic/gin"
)

const reportTimeout = 30 * time.Second

func captureStackTrace() []string {
	var pcs [DefaultStackTraceDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pcs[:n])
	var stackTrace []string
	for {
		f, more := frames.Next()
		stackTrace = append(stackTrace, fmt.Sprintf("%s:%d %s", f.File, f.Line, f.Function))
		if !more {
			break
		}
	}
	return stackTrace
}

// sendDiscordMessageAsync reports in the background. The discord client logs its own failures.
func sendDiscordMessageAsync(d discord.IDiscord, message string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()
		for _, msg := range splitMessageForDiscord(message) {
			if err := d.ReportBug(ctx, msg); err != nil {
				return
			}
		}
	}()
}

// splitMessageForDiscord splits a message into chunks that fit Discord's message length limits.
func splitMessageForDiscord(message string) []string {
	var chunks []string
	var current string
	for _, line := range strings.Split(message, "\n") {
		line += "\n"
		if len(current)+len(line) > DiscordMaxMessageLen {
			if current != "" {
				chunks = append(chunks, strings.TrimSuffix(current, "\n"))
				current = ""
			}
			for len(line) > DiscordMaxMessageLen {
				chunks = append(chunks, line[:DiscordMaxMessageLen])
				line = line[DiscordMaxMessageLen:]
			}
		}
		current += line
	}
	if current != "" {
		chunks = append(chunks, strings.TrimSuffix(current, "\n"))
	}
	return chunks
}

// buildInternalServerErrorDataForReportBug builds a formatted error report for Discord.
// Header values are left out since requests carry the internal key.
func buildInternalServerErrorDataForReportBug(c *gin.Context, errString string, backtrace []string) string {
	var bodyBytes []byte
	if c.Request.Body != nil {
		bodyBytes, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	}

	var sb strings.Builder
	sb.WriteString("============ CHAT REALTIME SERVICE ERROR ============\n")
	sb.WriteString(fmt.Sprintf("Route   : %s\n", c.Request.URL.Path))
	sb.WriteString(fmt.Sprintf("Method  : %s\n", c.Request.Method))
	sb.WriteString("----------------------------------------------------\n")

	if params := c.Request.URL.Query(); len(params) > 0 {
		params.Del("token")
		sb.WriteString(fmt.Sprintf("Params  : %s\n", params.Encode()))
	}

	if len(bodyBytes) > 0 {
		sb.WriteString("Body    :\n")
		var prettyBody bytes.Buffer
		if err := json.Indent(&prettyBody, bodyBytes, "    ", "  "); err == nil {
			sb.WriteString(prettyBody.String() + "\n")
		} else {
			sb.WriteString("    " + string(bodyBytes) + "\n")
		}
		sb.WriteString("----------------------------------------------------\n")
	}

	sb.WriteString(fmt.Sprintf("Error   : %s\n", errString))

	if len(backtrace) > 0 {
		sb.WriteString("\nBacktrace:\n")
		for i, line := range backtrace {
			sb.WriteString(fmt.Sprintf("[%d]: %s\n", i, line))
		}
	}

	sb.WriteString("====================================================\n")
	return sb.String()
}
