package cable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Params are the stream parameters a subscription is created from.
type Params map[string]any

// Identifier returns the canonical identifier for params: compact JSON with
// keys sorted at every level and no HTML escaping. Structurally equal params
// always produce byte-identical identifiers, whatever order they were built in.
func Identifier(params Params) (string, error) {
	channel, ok := params["channel"].(string)
	if !ok || channel == "" {
		return "", ErrChannelRequired
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// map keys are emitted in sorted order by encoding/json
	if err := enc.Encode(map[string]any(params)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// ParseIdentifier decodes an identifier back into params. Numbers are kept as
// json.Number so ids survive without float rounding.
func ParseIdentifier(identifier string) (Params, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(identifier)))
	dec.UseNumber()

	var params Params
	if err := dec.Decode(&params); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if channel, ok := params["channel"].(string); !ok || channel == "" {
		return nil, ErrChannelRequired
	}
	return params, nil
}

// Channel returns the channel name of params.
func (p Params) Channel() string {
	channel, _ := p["channel"].(string)
	return channel
}

// Int64 returns the integer stored under key, accepting JSON numbers and
// numeric strings.
func (p Params) Int64(key string) (int64, bool) {
	switch v := p[key].(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// ConversationParams are the params of a conversation chat stream.
func ConversationParams(conversationID int64) Params {
	return Params{"channel": ChannelChat, "conversation_id": conversationID}
}

// UserParams are the params of the caller's personal stream.
func UserParams() Params {
	return Params{"channel": ChannelUser}
}
