package bot

import (
	"strings"
	"sync"
	"testing"

	"github.com/babyGialo/sigmabot/core/bootstrap"
	coreconfig "github.com/babyGialo/sigmabot/core/config"
	"github.com/babyGialo/sigmabot/internal/admin"
	"github.com/babyGialo/sigmabot/internal/journal"
	"github.com/babyGialo/sigmabot/internal/notify"
	"github.com/babyGialo/sigmabot/internal/payment"

	tele "gopkg.in/telebot.v4"
)

const (
	testAdminID int64 = 99
	testIBAN          = "DE89 3704 0044 0532 0130 00"
	testAccount       = "Acme Retail GmbH"
)

type fakeContext struct {
	tele.Context

	sender   *tele.User
	text     string
	callback *tele.Callback
	store    map[string]interface{}

	mu      sync.Mutex
	outputs []string
}

func newFakeContext(userID int64) *fakeContext {
	return &fakeContext{
		sender: &tele.User{ID: userID},
		store:  map[string]interface{}{},
	}
}

func (f *fakeContext) Sender() *tele.User                      { return f.sender }
func (f *fakeContext) Chat() *tele.Chat                        { return &tele.Chat{ID: f.sender.ID} }
func (f *fakeContext) Update() tele.Update                     { return tele.Update{ID: 1} }
func (f *fakeContext) Callback() *tele.Callback                { return f.callback }
func (f *fakeContext) Text() string                            { return f.text }
func (f *fakeContext) Respond(...*tele.CallbackResponse) error { return nil }
func (f *fakeContext) Get(key string) interface{}              { return f.store[key] }
func (f *fakeContext) Set(key string, v interface{})           { f.store[key] = v }

func (f *fakeContext) record(what interface{}) {
	if text, ok := what.(string); ok {
		f.mu.Lock()
		f.outputs = append(f.outputs, text)
		f.mu.Unlock()
	}
}

func (f *fakeContext) Send(what interface{}, _ ...interface{}) error {
	f.record(what)
	return nil
}

func (f *fakeContext) EditOrSend(what interface{}, _ ...interface{}) error {
	f.record(what)
	return nil
}

func (f *fakeContext) lastOutput(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.outputs) == 0 {
		t.Fatal("no output produced")
	}
	return f.outputs[len(f.outputs)-1]
}

type fakeAPI struct {
	mu    sync.Mutex
	texts []string
}

func (f *fakeAPI) Send(_ tele.Recipient, what interface{}, _ ...interface{}) (*tele.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if text, ok := what.(string); ok {
		f.texts = append(f.texts, text)
	}
	return &tele.Message{}, nil
}

func (f *fakeAPI) countContaining(sub string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.texts {
		if strings.Contains(t, sub) {
			n++
		}
	}
	return n
}

func newApp(t *testing.T) (*App, *fakeAPI) {
	t.Helper()

	cfg := &coreconfig.Config{}
	cfg.Telegram.AdminID = testAdminID

	pay, err := payment.NewStore(payment.Details{
		IBAN:        testIBAN,
		AccountName: testAccount,
		Contact:     "@acme_support",
	})
	if err != nil {
		t.Fatal(err)
	}

	app, err := New(cfg, &bootstrap.Result{
		Journal: journal.NewStore(),
		Payment: pay,
	})
	if err != nil {
		t.Fatal(err)
	}

	api := &fakeAPI{}
	app.notifier = notify.New(api, nil, testAdminID)
	return app, api
}

func (a *App) pressButton(t *testing.T, userID int64, token string) *fakeContext {
	t.Helper()
	c := newFakeContext(userID)
	c.callback = &tele.Callback{Unique: token, Data: "\\f" + token}
	if err := a.observeCallback(c); err != nil {
		t.Fatal(err)
	}
	if err := a.menuHandler(token)(c); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestStartVisaAmountScenario(t *testing.T) {
	app, api := newApp(t)
	const userID int64 = 42

	start := newFakeContext(userID)
	start.text = "/start"
	if err := app.observeCommand(start); err != nil {
		t.Fatal(err)
	}
	if err := app.handleStart(start); err != nil {
		t.Fatal(err)
	}

	app.pressButton(t, userID, "visa")
	leaf := app.pressButton(t, userID, "500")

	out := leaf.lastOutput(t)
	if !strings.Contains(out, testIBAN) {
		t.Errorf("leaf output missing IBAN:\n%s", out)
	}
	if !strings.Contains(out, testAccount) {
		t.Errorf("leaf output missing account name:\n%s", out)
	}
	if !strings.Contains(out, "500 EUR") {
		t.Errorf("leaf output missing amount:\n%s", out)
	}

	if got := app.journal.Count(userID); got != 3 {
		t.Errorf("journal count = %d, want 3", got)
	}
	if got := api.countContaining("New user"); got != 1 {
		t.Errorf("new-user alerts = %d, want 1", got)
	}
}

func TestButtonPressIsIdempotent(t *testing.T) {
	app, _ := newApp(t)

	first := app.pressButton(t, 42, "500").lastOutput(t)
	second := app.pressButton(t, 42, "500").lastOutput(t)
	if first != second {
		t.Errorf("repeated press produced different output:\n%s\n---\n%s", first, second)
	}
}

func TestNonAdminPanelTokenDenied(t *testing.T) {
	app, _ := newApp(t)
	const userID int64 = 42

	c := newFakeContext(userID)
	c.callback = &tele.Callback{Unique: admin.KeyPanel, Data: "\\f" + admin.KeyPanel}
	if err := app.observeCallback(c); err != nil {
		t.Fatal(err)
	}
	if err := app.console.Panel(c); err != nil {
		t.Fatal(err)
	}

	if out := c.lastOutput(t); !strings.Contains(out, "Access denied") {
		t.Errorf("output = %q, want denial", out)
	}
	if got := app.journal.Count(userID); got != 1 {
		t.Errorf("denied attempt journaled %d records, want exactly 1", got)
	}
}

func TestUnknownTokenIsQuietlyIgnored(t *testing.T) {
	app, _ := newApp(t)

	c := newFakeContext(42)
	c.callback = &tele.Callback{Unique: "ghost", Data: "\\fghost"}
	if err := app.observeCallback(c); err != nil {
		t.Fatal(err)
	}
	if err := app.UnknownCallback()(c); err != nil {
		t.Fatalf("unknown callback must not fail: %v", err)
	}
	if got := app.journal.Count(42); got != 1 {
		t.Errorf("unknown press journaled %d records, want 1", got)
	}
}

func TestRootMenuShowsAdminShortcutOnlyToAdmin(t *testing.T) {
	app, _ := newApp(t)

	// The shortcut is attached via markup, so compare prompt delivery only
	// indirectly: handleStart must not fail for either identity.
	for _, userID := range []int64{42, testAdminID} {
		c := newFakeContext(userID)
		if err := app.handleStart(c); err != nil {
			t.Fatalf("handleStart(%d) failed: %v", userID, err)
		}
		if out := c.lastOutput(t); !strings.Contains(out, "Hello") {
			t.Errorf("root prompt missing greeting: %q", out)
		}
	}
}

func TestConcurrentTextsForwarded(t *testing.T) {
	app, api := newApp(t)

	var wg sync.WaitGroup
	for _, userID := range []int64{41, 42} {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			c := newFakeContext(id)
			c.text = "is this available?"
			if err := app.observeText(c); err != nil {
				t.Error(err)
				return
			}
			if err := app.forwardText(c); err != nil {
				t.Error(err)
			}
		}(userID)
	}
	wg.Wait()

	if got := app.journal.Count(41); got != 1 {
		t.Errorf("user 41 count = %d, want 1", got)
	}
	if got := app.journal.Count(42); got != 1 {
		t.Errorf("user 42 count = %d, want 1", got)
	}
	if got := api.countContaining("New message"); got != 2 {
		t.Errorf("forwarded messages = %d, want 2", got)
	}
	if got := api.countContaining("New user"); got != 2 {
		t.Errorf("new-user alerts = %d, want 2", got)
	}
}

func TestAdminTextsAreNotForwarded(t *testing.T) {
	app, api := newApp(t)

	c := newFakeContext(testAdminID)
	c.text = "note to self"
	if err := app.observeText(c); err != nil {
		t.Fatal(err)
	}
	if err := app.forwardText(c); err != nil {
		t.Fatal(err)
	}

	if got := api.countContaining("New message"); got != 0 {
		t.Errorf("admin text forwarded %d times, want 0", got)
	}
}
