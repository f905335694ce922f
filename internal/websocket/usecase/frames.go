package usecase

import (
	"encoding/json"
	"strconv"
	"time"

	"chat-realtime/pkg/cable"
)

const (
	disconnectServerRestart = "server_restart"
)

func encodeFrame(f cable.Frame) []byte {
	// Frame holds only strings and already-valid JSON.
	data, _ := json.Marshal(f)
	return data
}

func welcomeFrame() []byte {
	return encodeFrame(cable.Frame{Type: cable.TypeWelcome})
}

func pingFrame(now time.Time) []byte {
	return encodeFrame(cable.Frame{
		Type:    cable.TypePing,
		Message: json.RawMessage(strconv.FormatInt(now.Unix(), 10)),
	})
}

func confirmFrame(identifier string) []byte {
	return encodeFrame(cable.Frame{Type: cable.TypeConfirmSubscription, Identifier: identifier})
}

func rejectFrame(identifier string) []byte {
	return encodeFrame(cable.Frame{Type: cable.TypeRejectSubscription, Identifier: identifier})
}

func disconnectFrame(reason string) []byte {
	return encodeFrame(cable.Frame{Type: cable.TypeDisconnect, Reason: reason})
}
