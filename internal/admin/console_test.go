package admin

import (
	"strings"
	"testing"

	"github.com/babyGialo/sigmabot/core/telegram/state"
	"github.com/babyGialo/sigmabot/internal/journal"
	"github.com/babyGialo/sigmabot/internal/payment"

	tele "gopkg.in/telebot.v4"
)

const adminID int64 = 99

type fakeContext struct {
	tele.Context

	sender   *tele.User
	text     string
	callback *tele.Callback
	store    map[string]interface{}

	sent   []string
	edited []string
}

func newFakeContext(userID int64) *fakeContext {
	return &fakeContext{
		sender: &tele.User{ID: userID},
		store:  map[string]interface{}{},
	}
}

func (f *fakeContext) Sender() *tele.User        { return f.sender }
func (f *fakeContext) Chat() *tele.Chat          { return &tele.Chat{ID: f.sender.ID} }
func (f *fakeContext) Update() tele.Update       { return tele.Update{ID: 1} }
func (f *fakeContext) Callback() *tele.Callback  { return f.callback }
func (f *fakeContext) Text() string              { return f.text }
func (f *fakeContext) Respond(...*tele.CallbackResponse) error { return nil }

func (f *fakeContext) Get(key string) interface{} { return f.store[key] }
func (f *fakeContext) Set(key string, v interface{}) {
	f.store[key] = v
}

func (f *fakeContext) Send(what interface{}, _ ...interface{}) error {
	if text, ok := what.(string); ok {
		f.sent = append(f.sent, text)
	}
	return nil
}

func (f *fakeContext) EditOrSend(what interface{}, _ ...interface{}) error {
	if text, ok := what.(string); ok {
		f.edited = append(f.edited, text)
	}
	return nil
}

func (f *fakeContext) lastOutput(t *testing.T) string {
	t.Helper()
	if len(f.edited) > 0 {
		return f.edited[len(f.edited)-1]
	}
	if len(f.sent) > 0 {
		return f.sent[len(f.sent)-1]
	}
	t.Fatal("no output produced")
	return ""
}

func newConsole(t *testing.T) (*Console, *journal.Store, *payment.Store, state.Manager) {
	t.Helper()
	j := journal.NewStore()
	p, err := payment.NewStore(payment.Details{
		IBAN:        "DE89 3704 0044 0532 0130 00",
		AccountName: "Acme Retail GmbH",
		Contact:     "@acme_support",
	})
	if err != nil {
		t.Fatal(err)
	}
	st := state.NewMemoryManager()
	return NewConsole(adminID, j, p, st), j, p, st
}

func callbackContext(userID int64, key, payload string) *fakeContext {
	c := newFakeContext(userID)
	data := "\\f" + key
	if payload != "" {
		data += "|" + payload
	}
	c.callback = &tele.Callback{Unique: key, Data: data}
	return c
}

func TestNonAdminIsDeniedEverywhere(t *testing.T) {
	cs, j, p, _ := newConsole(t)
	before := p.Snapshot()
	j.Append(42, journal.Record{Kind: journal.KindStarted})

	handlers := map[string]func(tele.Context) error{
		"panel":         cs.Panel,
		"stats":         cs.Stats,
		"messages":      cs.Messages,
		"update":        cs.Update,
		"clear":         cs.Clear,
		"confirm_clear": cs.ConfirmClear,
		"handle_value":  cs.HandleValue,
	}

	for name, h := range handlers {
		c := callbackContext(42, "x", "")
		if err := h(c); err != nil {
			t.Fatalf("%s returned error: %v", name, err)
		}
		if got := c.lastOutput(t); got != deniedText {
			t.Errorf("%s output = %q, want denial", name, got)
		}
	}

	if p.Snapshot() != before {
		t.Error("payment details mutated by denied caller")
	}
	if j.Count(42) != 1 {
		t.Errorf("journal mutated by denied caller: count = %d", j.Count(42))
	}
}

func TestPanelShowsDetailsAndTotals(t *testing.T) {
	cs, j, _, _ := newConsole(t)
	j.Append(1, journal.Record{Kind: journal.KindStarted})
	j.Append(1, journal.Record{Kind: journal.KindText, Body: "hi"})

	c := callbackContext(adminID, KeyPanel, "")
	if err := cs.Panel(c); err != nil {
		t.Fatal(err)
	}

	out := c.lastOutput(t)
	for _, want := range []string{"ADMIN PANEL", "DE89 3704 0044 0532 0130 00", "Acme Retail GmbH"} {
		if !strings.Contains(out, want) {
			t.Errorf("panel missing %q:\n%s", want, out)
		}
	}
}

func TestStatsAndEmptyMessages(t *testing.T) {
	cs, _, _, _ := newConsole(t)

	c := callbackContext(adminID, KeyStats, "")
	if err := cs.Stats(c); err != nil {
		t.Fatal(err)
	}
	out := c.lastOutput(t)
	for _, want := range []string{"Total users: `0`", "Total records: `0`", "Active today: `0`"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats missing %q:\n%s", want, out)
		}
	}

	c = callbackContext(adminID, KeyMessages, "")
	if err := cs.Messages(c); err != nil {
		t.Fatal(err)
	}
	if out := c.lastOutput(t); !strings.Contains(out, "No messages") {
		t.Errorf("empty listing output = %q", out)
	}
}

func TestMessagesListsRecentRecords(t *testing.T) {
	cs, j, _, _ := newConsole(t)
	j.Append(42, journal.Record{Kind: journal.KindStarted})
	j.Append(42, journal.Record{Kind: journal.KindButton, Token: "visa"})
	j.Append(42, journal.Record{Kind: journal.KindText, Body: "is this still available?"})

	c := callbackContext(adminID, KeyMessages, "")
	if err := cs.Messages(c); err != nil {
		t.Fatal(err)
	}

	out := c.lastOutput(t)
	for _, want := range []string{"User 42", "Started bot", "Pressed: visa", "is this still available?"} {
		if !strings.Contains(out, want) {
			t.Errorf("listing missing %q:\n%s", want, out)
		}
	}
}

func TestClearRequiresConfirmation(t *testing.T) {
	cs, j, _, _ := newConsole(t)
	j.Append(1, journal.Record{Kind: journal.KindStarted})

	c := callbackContext(adminID, KeyClear, "")
	if err := cs.Clear(c); err != nil {
		t.Fatal(err)
	}
	if j.Count(1) != 1 {
		t.Fatal("clear prompt alone must not touch the journal")
	}
	if out := c.lastOutput(t); !strings.Contains(out, "DANGER ZONE") {
		t.Errorf("confirmation output = %q", out)
	}

	c = callbackContext(adminID, KeyConfirmClear, "")
	if err := cs.ConfirmClear(c); err != nil {
		t.Fatal(err)
	}
	if j.Count(1) != 0 {
		t.Fatal("confirm token did not clear the journal")
	}
}

func TestUpdateFlow(t *testing.T) {
	cs, _, p, st := newConsole(t)

	pick := callbackContext(adminID, KeyUpdateField, payment.FieldIBAN)
	if err := cs.UpdateField(pick); err != nil {
		t.Fatal(err)
	}
	if !st.InProgress(adminID) {
		t.Fatal("awaiting-value state not set")
	}

	value := newFakeContext(adminID)
	value.text = "FR76 3000 6000 0112 3456 7890 189"
	if err := cs.HandleValue(value); err != nil {
		t.Fatal(err)
	}
	if st.InProgress(adminID) {
		t.Fatal("state not cleared after value")
	}
	if got := p.Snapshot().IBAN; got != "FR76 3000 6000 0112 3456 7890 189" {
		t.Fatalf("IBAN = %q after update", got)
	}
}

func TestUpdateUnknownFieldRejected(t *testing.T) {
	cs, _, p, st := newConsole(t)
	before := p.Snapshot()

	pick := callbackContext(adminID, KeyUpdateField, "tax_id")
	if err := cs.UpdateField(pick); err != nil {
		t.Fatal(err)
	}
	if st.InProgress(adminID) {
		t.Fatal("state set for unknown field")
	}
	if out := pick.lastOutput(t); !strings.Contains(out, "Unknown field") {
		t.Errorf("output = %q", out)
	}
	if p.Snapshot() != before {
		t.Error("payment details mutated")
	}
}

func TestUpdateCancelClearsState(t *testing.T) {
	cs, _, _, st := newConsole(t)

	pick := callbackContext(adminID, KeyUpdateField, payment.FieldContact)
	if err := cs.UpdateField(pick); err != nil {
		t.Fatal(err)
	}

	cancel := callbackContext(adminID, KeyUpdateCancel, "")
	if err := cs.UpdateCancel(cancel); err != nil {
		t.Fatal(err)
	}
	if st.InProgress(adminID) {
		t.Fatal("state not cleared by cancel")
	}
	if out := cancel.lastOutput(t); !strings.Contains(out, "ADMIN PANEL") {
		t.Errorf("cancel should return to panel, got %q", out)
	}
}
