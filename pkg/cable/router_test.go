package cable

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidURL(t *testing.T) {
	tests := []string{"", "http://localhost/cable", "ws://", "::not a url"}
	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			_, err := New(raw)
			assert.ErrorIs(t, err, ErrInvalidURL)
		})
	}
}

func TestRouter_StartsClosedAndDialsOnFirstSubscribe(t *testing.T) {
	f := newFakeCable(t)
	r := newRouter(t, f)

	assert.Equal(t, StateClosed, r.State())

	_, err := r.SubscribeToConversationChat(42, func(json.RawMessage) {})
	require.NoError(t, err)

	f.waitConnected()
	require.Eventually(t, func() bool { return r.State() == StateOpen }, waitTimeout, 10*time.Millisecond)

	rc := f.nextCommand()
	assert.Equal(t, CommandSubscribe, rc.cmd.Command)
	assert.Equal(t, `{"channel":"ChatChannel","conversation_id":42}`, rc.cmd.Identifier)
}

func TestRouter_SubscribeSendsOnlyOnFirstHandler(t *testing.T) {
	f := newFakeCable(t)
	r := newRouter(t, f)

	_, err := r.SubscribeToUserStream(func(json.RawMessage) {})
	require.NoError(t, err)
	f.waitConnected()
	f.nextCommand()
	require.Eventually(t, func() bool { return r.State() == StateOpen }, waitTimeout, 10*time.Millisecond)

	// same identifier built with different key order
	_, err = r.Subscribe(Params{"channel": ChannelUser}, func(json.RawMessage) {})
	require.NoError(t, err)
	_, err = r.SubscribeToUserStream(func(json.RawMessage) {})
	require.NoError(t, err)

	f.expectNoCommand(100 * time.Millisecond)
	assert.Equal(t, []string{`{"channel":"UserChannel"}`}, r.Identifiers())
}

func TestRouter_DeliversInRegistrationOrder(t *testing.T) {
	f := newFakeCable(t)
	r := newRouter(t, f)
	out := make(chan string, 10)

	_, err := r.SubscribeToConversationChat(7, recorder{"a", out}.handler())
	require.NoError(t, err)
	_, err = r.SubscribeToConversationChat(7, recorder{"b", out}.handler())
	require.NoError(t, err)

	idx := f.waitConnected()
	f.nextCommand()

	id := mustIdentifier(t, ConversationParams(7))
	f.push(idx, Frame{Identifier: id, Message: json.RawMessage(`{"type":"typing_indicator"}`)})

	expectDelivery(t, out, `a:{"type":"typing_indicator"}`)
	expectDelivery(t, out, `b:{"type":"typing_indicator"}`)
	expectNoDelivery(t, out, 50*time.Millisecond)
}

func TestRouter_IgnoresHousekeepingMalformedAndUnknownStreams(t *testing.T) {
	f := newFakeCable(t)
	r := newRouter(t, f)
	out := make(chan string, 10)

	_, err := r.SubscribeToConversationChat(1, recorder{"h", out}.handler())
	require.NoError(t, err)
	idx := f.waitConnected()
	f.nextCommand()

	id := mustIdentifier(t, ConversationParams(1))

	f.push(idx, Frame{Type: TypePing, Message: json.RawMessage(`1700000000`)})
	f.push(idx, Frame{Type: TypeConfirmSubscription, Identifier: id})
	f.pushRaw(idx, `{"identifier":`)
	f.pushRaw(idx, `not json at all`)
	f.pushRaw(idx, `{"identifier":42,"message":{}}`)
	f.push(idx, Frame{Identifier: id, Message: json.RawMessage(`null`)})
	f.push(idx, Frame{
		Identifier: mustIdentifier(t, ConversationParams(2)),
		Message:    json.RawMessage(`{"type":"message_created"}`),
	})

	expectNoDelivery(t, out, 100*time.Millisecond)
	assert.Equal(t, StateOpen, r.State())

	// the socket survives all of the above
	f.push(idx, Frame{Identifier: id, Message: json.RawMessage(`{"ok":true}`)})
	expectDelivery(t, out, `h:{"ok":true}`)
}

func TestRouter_UnsubscribeLastHandler(t *testing.T) {
	f := newFakeCable(t)
	r := newRouter(t, f)
	out := make(chan string, 10)

	first, err := r.SubscribeToConversationChat(3, recorder{"first", out}.handler())
	require.NoError(t, err)
	second, err := r.SubscribeToConversationChat(3, recorder{"second", out}.handler())
	require.NoError(t, err)

	idx := f.waitConnected()
	f.nextCommand()
	require.Eventually(t, func() bool { return r.State() == StateOpen }, waitTimeout, 10*time.Millisecond)

	first.Unsubscribe()
	f.expectNoCommand(50 * time.Millisecond)

	id := mustIdentifier(t, ConversationParams(3))
	f.push(idx, Frame{Identifier: id, Message: json.RawMessage(`1`)})
	expectDelivery(t, out, `second:1`)
	expectNoDelivery(t, out, 50*time.Millisecond)

	second.Unsubscribe()
	second.Unsubscribe()

	rc := f.nextCommand()
	assert.Equal(t, Command{Command: CommandUnsubscribe, Identifier: id}, rc.cmd)
	f.expectNoCommand(50 * time.Millisecond)

	f.push(idx, Frame{Identifier: id, Message: json.RawMessage(`2`)})
	expectNoDelivery(t, out, 100*time.Millisecond)
	assert.False(t, second.Active())
	assert.Empty(t, r.Identifiers())
}

func TestRouter_ResubscribesOncePerIdentifierAfterReconnect(t *testing.T) {
	f := newFakeCable(t)
	r := newRouter(t, f)

	noop := func(json.RawMessage) {}
	for _, sub := range []func() (*Subscription, error){
		func() (*Subscription, error) { return r.SubscribeToConversationChat(1, noop) },
		func() (*Subscription, error) { return r.SubscribeToConversationChat(1, noop) },
		func() (*Subscription, error) { return r.SubscribeToUserStream(noop) },
	} {
		_, err := sub()
		require.NoError(t, err)
	}

	f.waitConnected()
	first := f.commandsFor(2)
	assert.Len(t, first, 2)

	for round := 1; round <= 2; round++ {
		f.dropAll()
		idx := f.waitConnected()
		assert.Equal(t, round, idx)

		got := f.commandsFor(2)
		require.Len(t, got, 2)
		for id, cmds := range got {
			require.Len(t, cmds, 1, id)
			assert.Equal(t, CommandSubscribe, cmds[0].cmd.Command)
			assert.Equal(t, idx, cmds[0].conn)
		}
		f.expectNoCommand(100 * time.Millisecond)
	}
}

type stateLog struct {
	mu     sync.Mutex
	states []State
}

func (sl *stateLog) record(s State) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.states = append(sl.states, s)
}

func (sl *stateLog) snapshot() []State {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return append([]State(nil), sl.states...)
}

func TestRouter_UnsubscribeWhileDisconnectedIsNotResent(t *testing.T) {
	f := newFakeCable(t)
	sl := &stateLog{}
	r := newRouter(t, f, WithReconnectDelay(300*time.Millisecond), WithStateListener(sl.record))
	out := make(chan string, 10)

	chat, err := r.SubscribeToConversationChat(9, recorder{"chat", out}.handler())
	require.NoError(t, err)
	_, err = r.SubscribeToUserStream(recorder{"user", out}.handler())
	require.NoError(t, err)

	f.waitConnected()
	f.commandsFor(2)

	f.dropAll()
	require.Eventually(t, func() bool { return r.State() == StateClosed }, waitTimeout, 5*time.Millisecond)

	chat.Unsubscribe()

	idx := f.waitConnected()
	rc := f.nextCommand()
	assert.Equal(t, idx, rc.conn)
	assert.Equal(t, Command{Command: CommandSubscribe, Identifier: `{"channel":"UserChannel"}`}, rc.cmd)
	f.expectNoCommand(100 * time.Millisecond)

	require.Eventually(t, func() bool { return r.State() == StateOpen }, waitTimeout, 5*time.Millisecond)
	assert.Equal(t,
		[]State{StateConnecting, StateOpen, StateClosed, StateConnecting, StateOpen},
		sl.snapshot())

	// A frame the server still routes to the dropped identifier reaches nobody.
	f.push(idx, Frame{Identifier: mustIdentifier(t, ConversationParams(9)), Message: json.RawMessage(`{"type":"message_created"}`)})
	f.push(idx, Frame{Identifier: mustIdentifier(t, UserParams()), Message: json.RawMessage(`1`)})

	expectDelivery(t, out, `user:1`)
	expectNoDelivery(t, out, 100*time.Millisecond)
	assert.False(t, chat.Active())
}

func TestRouter_RetriesFailedDialOneAttemptAtATime(t *testing.T) {
	f := newFakeCable(t)
	target := f.url()
	f.srv.Close()

	sl := &stateLog{}
	r, err := New(target,
		WithReconnectDelay(20*time.Millisecond),
		WithHandshakeTimeout(200*time.Millisecond),
		WithStateListener(sl.record),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	_, err = r.SubscribeToUserStream(func(json.RawMessage) {})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(sl.snapshot()) >= 6 }, waitTimeout, 10*time.Millisecond)
	require.NoError(t, r.Close())

	states := sl.snapshot()
	for i, s := range states[:6] {
		if i%2 == 0 {
			assert.Equal(t, StateConnecting, s, "transition %d", i)
		} else {
			assert.Equal(t, StateClosed, s, "transition %d", i)
		}
	}
}

func TestRouter_Close(t *testing.T) {
	f := newFakeCable(t)
	r := newRouter(t, f)

	_, err := r.SubscribeToUserStream(func(json.RawMessage) {})
	require.NoError(t, err)
	f.waitConnected()
	f.nextCommand()

	require.NoError(t, r.Close())
	assert.Equal(t, StateClosed, r.State())
	require.NoError(t, r.Close())

	_, err = r.SubscribeToUserStream(func(json.RawMessage) {})
	assert.ErrorIs(t, err, ErrRouterClosed)

	select {
	case idx := <-f.connected:
		t.Fatalf("router reconnected after Close (connection %d)", idx)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestRouter_SubscribeValidation(t *testing.T) {
	f := newFakeCable(t)
	r := newRouter(t, f)

	_, err := r.Subscribe(Params{"conversation_id": 1}, func(json.RawMessage) {})
	assert.ErrorIs(t, err, ErrChannelRequired)

	_, err = r.SubscribeToUserStream(nil)
	assert.ErrorIs(t, err, ErrNilHandler)

	assert.Equal(t, StateClosed, r.State())
}

// A chat view subscribes to conversation 42, receives one message_created,
// unmounts, and receives nothing afterwards.
func TestRouter_ConversationScenario(t *testing.T) {
	f := newFakeCable(t)
	r := newRouter(t, f)

	events := make(chan Event, 10)
	sub, err := r.SubscribeToConversationChat(42, EventHandler(func(ev Event) { events <- ev }))
	require.NoError(t, err)

	idx := f.waitConnected()
	f.nextCommand()

	body := json.RawMessage(`{"type":"message_created","id":1,"conversation_id":42,"body":"hi","author_id":5,` +
		`"author_name":"Ana","author_avatar_url":null,"created_at":"2024-05-01T10:00:00Z","attachments":[],"reactions":{}}`)
	f.push(idx, Frame{Identifier: sub.Identifier(), Message: body})

	select {
	case ev := <-events:
		require.Equal(t, EventMessageCreated, ev.Type)
		require.NotNil(t, ev.MessageCreated)
		assert.Equal(t, "hi", ev.MessageCreated.Body)
		assert.Equal(t, int64(42), ev.MessageCreated.ConversationID)
	case <-time.After(waitTimeout):
		t.Fatal("handler was not invoked")
	}

	sub.Unsubscribe()
	rc := f.nextCommand()
	assert.Equal(t, CommandUnsubscribe, rc.cmd.Command)

	f.push(idx, Frame{Identifier: sub.Identifier(), Message: body})
	select {
	case ev := <-events:
		t.Fatalf("handler invoked after unsubscribe: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}
