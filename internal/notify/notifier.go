// Package notify delivers out-of-band alerts to the admin chat: new-user
// pings, forwarded customer texts, runtime errors, and the daily digest.
// Delivery is fire-and-forget; a failed send is logged and counted but
// never surfaces to the handler that triggered it.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/babyGialo/sigmabot/core/logger"
	"github.com/babyGialo/sigmabot/core/telegram/format"
	"github.com/babyGialo/sigmabot/core/telegram/sender"
	"github.com/babyGialo/sigmabot/internal/journal"

	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// API is the slice of the bot client the notifier needs.
type API interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Notifier sends Markdown alerts to the configured admin identity.
type Notifier struct {
	api     API
	disp    *sender.Dispatcher
	adminID int64
}

// New wires a notifier. A nil dispatcher makes sends synchronous,
// which tests rely on.
func New(api API, disp *sender.Dispatcher, adminID int64) *Notifier {
	return &Notifier{api: api, disp: disp, adminID: adminID}
}

// NewUser announces a first-ever interaction from a user.
func (n *Notifier) NewUser(ctx context.Context, userID int64, username, firstName string) {
	var b strings.Builder
	b.WriteString("🆕 *New user*\n")
	fmt.Fprintf(&b, "User ID: `%d`\n", userID)
	fmt.Fprintf(&b, "Username: %s\n", displayUsername(userID, username))
	if firstName != "" {
		fmt.Fprintf(&b, "Name: %s", format.EscapeMarkdown(firstName))
	}
	n.deliver(ctx, "notify.new_user", b.String())
}

// ForwardText relays a customer's free-text message together with that
// user's running message count.
func (n *Notifier) ForwardText(ctx context.Context, userID int64, username, firstName, body string, total int) {
	var b strings.Builder
	b.WriteString("📩 *New message*\n\n")
	fmt.Fprintf(&b, "From: %s\n", displayUsername(userID, username))
	if firstName != "" {
		fmt.Fprintf(&b, "Name: %s\n", format.EscapeMarkdown(firstName))
	}
	fmt.Fprintf(&b, "User ID: `%d`\n\n", userID)
	fmt.Fprintf(&b, "Message:\n```\n%s\n```\n\n", sanitizeCodeBlock(body))
	fmt.Fprintf(&b, "Total messages from user: %d", total)
	n.deliver(ctx, "notify.forward_text", b.String())
}

// Error reports a runtime failure to the admin chat.
func (n *Notifier) Error(ctx context.Context, where string, err error) {
	if err == nil {
		return
	}
	var b strings.Builder
	b.WriteString("⚠️ *Bot error*\n\n")
	if where != "" {
		fmt.Fprintf(&b, "Where: `%s`\n", where)
	}
	fmt.Fprintf(&b, "Error: `%s`", format.EscapeMarkdown(err.Error()))
	n.deliver(ctx, "notify.error", b.String())
}

// Digest sends the daily activity summary.
func (n *Notifier) Digest(ctx context.Context, st journal.Stats) {
	var b strings.Builder
	b.WriteString("🗞️ *Daily digest*\n\n")
	fmt.Fprintf(&b, "• Users: `%d`\n", st.Users)
	fmt.Fprintf(&b, "• Records: `%d`\n", st.Records)
	fmt.Fprintf(&b, "• Active today: `%d`", st.ActiveToday)
	n.deliver(ctx, "notify.digest", b.String())
}

func (n *Notifier) deliver(ctx context.Context, action, text string) {
	if n == nil || n.api == nil || n.adminID == 0 {
		return
	}

	run := func() error {
		_, err := n.api.Send(tele.ChatID(n.adminID), text, &tele.SendOptions{ParseMode: tele.ModeMarkdown})
		return err
	}

	if n.disp == nil {
		if err := run(); err != nil {
			logNotifyError(ctx, action, err)
		}
		return
	}

	if err := n.disp.Enqueue(ctx, action, "sendMessage", run); err != nil {
		if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
			logNotifyError(ctx, action, err)
			return
		}
		logNotifyError(ctx, action, err)
	}
}

func logNotifyError(ctx context.Context, action string, err error) {
	logger.Warn(ctx, "notify", "notify.dropped",
		slog.String("action", action),
		slog.String("err", err.Error()),
	)
}

func displayUsername(userID int64, username string) string {
	if username == "" {
		return fmt.Sprintf("User ID: %d", userID)
	}
	return "@" + format.EscapeMarkdown(username)
}

// sanitizeCodeBlock keeps a forwarded body from breaking out of the
// fenced block it is rendered in.
func sanitizeCodeBlock(body string) string {
	return strings.ReplaceAll(body, "```", "ʼʼʼ")
}
