package notify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/babyGialo/sigmabot/internal/journal"

	tele "gopkg.in/telebot.v4"
)

type fakeAPI struct {
	mu    sync.Mutex
	sends []sentMessage
	err   error
}

type sentMessage struct {
	to   tele.Recipient
	text string
}

func (f *fakeAPI) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	text, _ := what.(string)
	f.sends = append(f.sends, sentMessage{to: to, text: text})
	return &tele.Message{}, f.err
}

func (f *fakeAPI) last(t *testing.T) sentMessage {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sends) == 0 {
		t.Fatal("no message sent")
	}
	return f.sends[len(f.sends)-1]
}

func TestNewUserTargetsAdmin(t *testing.T) {
	api := &fakeAPI{}
	n := New(api, nil, 99)

	n.NewUser(context.Background(), 42, "alice", "Alice")

	msg := api.last(t)
	if got := msg.to.Recipient(); got != "99" {
		t.Errorf("recipient = %q, want 99", got)
	}
	for _, want := range []string{"New user", "`42`", "@alice", "Alice"} {
		if !strings.Contains(msg.text, want) {
			t.Errorf("message missing %q:\n%s", want, msg.text)
		}
	}
}

func TestNewUserWithoutUsername(t *testing.T) {
	api := &fakeAPI{}
	n := New(api, nil, 99)

	n.NewUser(context.Background(), 42, "", "")

	if msg := api.last(t); !strings.Contains(msg.text, "User ID: 42") {
		t.Errorf("fallback identity missing:\n%s", msg.text)
	}
}

func TestForwardTextIncludesBodyAndCount(t *testing.T) {
	api := &fakeAPI{}
	n := New(api, nil, 99)

	n.ForwardText(context.Background(), 42, "bob", "Bob", "where is my order?", 7)

	msg := api.last(t)
	for _, want := range []string{"where is my order?", "Total messages from user: 7", "@bob"} {
		if !strings.Contains(msg.text, want) {
			t.Errorf("message missing %q:\n%s", want, msg.text)
		}
	}
}

func TestForwardTextNeutralizesCodeFence(t *testing.T) {
	api := &fakeAPI{}
	n := New(api, nil, 99)

	n.ForwardText(context.Background(), 42, "", "", "before ``` after", 1)

	if msg := api.last(t); strings.Count(msg.text, "```") != 2 {
		t.Errorf("body broke the fenced block:\n%s", msg.text)
	}
}

func TestErrorSwallowsSendFailure(t *testing.T) {
	api := &fakeAPI{err: errors.New("telegram down")}
	n := New(api, nil, 99)

	// Must not panic or propagate.
	n.Error(context.Background(), "router", errors.New("boom"))

	if msg := api.last(t); !strings.Contains(msg.text, "boom") {
		t.Errorf("error text missing:\n%s", msg.text)
	}
}

func TestErrorIgnoresNil(t *testing.T) {
	api := &fakeAPI{}
	n := New(api, nil, 99)

	n.Error(context.Background(), "router", nil)

	if len(api.sends) != 0 {
		t.Fatalf("nil error produced %d sends", len(api.sends))
	}
}

func TestDigestRendersStats(t *testing.T) {
	api := &fakeAPI{}
	n := New(api, nil, 99)

	n.Digest(context.Background(), journal.Stats{Users: 3, Records: 12, ActiveToday: 2})

	msg := api.last(t)
	for _, want := range []string{"`3`", "`12`", "`2`"} {
		if !strings.Contains(msg.text, want) {
			t.Errorf("digest missing %q:\n%s", want, msg.text)
		}
	}
}
