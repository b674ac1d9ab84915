// Package admin implements the privileged operator console: statistics,
// recent-activity inspection, runtime payment-detail updates, and the
// confirmed clear-all action. Every handler re-verifies the caller
// against the configured admin identity; the console must never be
// reachable through a non-admin path, forged callback included.
package admin

import (
	"fmt"
	"strings"

	"github.com/babyGialo/sigmabot/core/logger"
	"github.com/babyGialo/sigmabot/core/telegram/callbacks"
	tghelpers "github.com/babyGialo/sigmabot/core/telegram/helpers"
	"github.com/babyGialo/sigmabot/core/telegram/keyboard"
	"github.com/babyGialo/sigmabot/core/telegram/state"
	"github.com/babyGialo/sigmabot/internal/journal"
	"github.com/babyGialo/sigmabot/internal/payment"

	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// Callback keys of the admin surface. Part of the callback protocol.
const (
	KeyPanel        = "admin_panel"
	KeyStats        = "admin_stats"
	KeyMessages     = "admin_messages"
	KeyUpdate       = "admin_update"
	KeyClear        = "admin_clear"
	KeyBack         = "admin_back"
	KeyConfirmClear = "confirm_clear"
	KeyUpdateField  = "update_field"
	KeyUpdateCancel = "update_cancel"
)

// StateAwaitingValue marks the admin dialog step waiting for a new
// payment-detail value.
const StateAwaitingValue state.State = "admin_awaiting_value"

const tempFieldKey = "payment_field"

const deniedText = "Access denied."

// Console wires the admin handlers over the journal and payment stores.
type Console struct {
	adminID int64
	journal *journal.Store
	payment *payment.Store
	states  state.Manager
}

// NewConsole constructs the console. The state manager carries the
// payment-update dialog between messages.
func NewConsole(adminID int64, j *journal.Store, p *payment.Store, st state.Manager) *Console {
	return &Console{
		adminID: adminID,
		journal: j,
		payment: p,
		states:  st,
	}
}

func (cs *Console) isAdmin(c tele.Context) bool {
	sender := c.Sender()
	return sender != nil && sender.ID == cs.adminID
}

func (cs *Console) deny(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	var userID int64
	if c.Sender() != nil {
		userID = c.Sender().ID
	}
	logger.Warn(ctx, "admin", "admin.denied",
		slog.String("status", "denied"),
		slog.Int64("user_id", userID),
	)
	if c.Callback() != nil {
		return c.EditOrSend(deniedText)
	}
	return tghelpers.SendText(c, deniedText)
}

// PanelCommand handles the /admin command.
func (cs *Console) PanelCommand(c tele.Context) error {
	if !cs.isAdmin(c) {
		return cs.deny(c)
	}
	text, markup := cs.panelView()
	return tghelpers.SendMD(c, text, markup)
}

// Panel handles the admin-panel callback, including the panel button
// shown to the admin on the root menu.
func (cs *Console) Panel(c tele.Context) error {
	if !cs.isAdmin(c) {
		return cs.deny(c)
	}
	text, markup := cs.panelView()
	return tghelpers.EditOrSendMD(c, text, markup)
}

func (cs *Console) panelView() (string, *tele.ReplyMarkup) {
	d := cs.payment.Snapshot()
	st := cs.journal.Stats()

	var b strings.Builder
	b.WriteString("🛡️ *ADMIN PANEL*\n\n")
	fmt.Fprintf(&b, "*Current IBAN:* `%s`\n", d.IBAN)
	fmt.Fprintf(&b, "*Account name:* `%s`\n", d.AccountName)
	fmt.Fprintf(&b, "*Contact:* %s\n\n", d.Contact)
	fmt.Fprintf(&b, "*Total users:* %d\n", st.Users)
	fmt.Fprintf(&b, "*Total records:* %d", st.Records)

	markup := keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "📊 Statistics", Unique: KeyStats},
		{Text: "📨 User messages", Unique: KeyMessages},
		{Text: "🔄 Update payment details", Unique: KeyUpdate},
		{Text: "🚫 Clear all data", Unique: KeyClear},
	})
	return b.String(), markup
}

// Stats handles the statistics callback.
func (cs *Console) Stats(c tele.Context) error {
	if !cs.isAdmin(c) {
		return cs.deny(c)
	}

	d := cs.payment.Snapshot()
	st := cs.journal.Stats()

	var b strings.Builder
	b.WriteString("📊 *STATISTICS*\n\n")
	fmt.Fprintf(&b, "• Total users: `%d`\n", st.Users)
	fmt.Fprintf(&b, "• Total records: `%d`\n", st.Records)
	fmt.Fprintf(&b, "• Active today: `%d`\n\n", st.ActiveToday)
	b.WriteString("*Payment details:*\n")
	fmt.Fprintf(&b, "IBAN: `%s`\n", d.IBAN)
	fmt.Fprintf(&b, "Name: `%s`", d.AccountName)

	return tghelpers.EditOrSendMD(c, b.String(), cs.backMarkup())
}

// Messages handles the recent-activity callback.
func (cs *Console) Messages(c tele.Context) error {
	if !cs.isAdmin(c) {
		return cs.deny(c)
	}

	rows := cs.journal.RecentUsers(10, 3)
	if len(rows) == 0 {
		return tghelpers.EditOrSendMD(c, "📭 No messages received yet.", cs.backMarkup())
	}

	var b strings.Builder
	b.WriteString("📨 *RECENT USER MESSAGES*\n\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "👤 *User %d* (records: %d)\n", row.UserID, row.Total)
		for _, rec := range row.Recent {
			fmt.Fprintf(&b, "   └ %s\n", renderRecord(rec))
		}
		b.WriteString("\n")
	}

	return tghelpers.EditOrSendMD(c, b.String(), cs.backMarkup())
}

func renderRecord(rec journal.Record) string {
	switch rec.Kind {
	case journal.KindStarted:
		return "Started bot"
	case journal.KindButton:
		return "Pressed: " + rec.Token
	case journal.KindText:
		return rec.Body
	default:
		return string(rec.Kind)
	}
}

// Update handles the field-picker callback of the payment update flow.
func (cs *Console) Update(c tele.Context) error {
	if !cs.isAdmin(c) {
		return cs.deny(c)
	}

	d := cs.payment.Snapshot()

	var b strings.Builder
	b.WriteString("⚙️ *UPDATE PAYMENT DETAILS*\n\n")
	b.WriteString("Current settings:\n")
	fmt.Fprintf(&b, "• IBAN: `%s`\n", d.IBAN)
	fmt.Fprintf(&b, "• Name: `%s`\n", d.AccountName)
	fmt.Fprintf(&b, "• Contact: %s\n\n", d.Contact)
	b.WriteString("Select what to update:")

	buttons := make([]keyboard.InlineBtn, 0, len(payment.Fields())+1)
	for _, f := range payment.Fields() {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   payment.FieldLabel(f),
			Unique: KeyUpdateField,
			Data:   f,
		})
	}
	buttons = append(buttons, keyboard.InlineBtn{Text: "🔙 Back", Unique: KeyBack})

	return tghelpers.EditOrSendMD(c, b.String(), keyboard.InlineButtonsNPerRow(buttons, 2))
}

// UpdateField starts the awaiting-value dialog for the chosen field.
func (cs *Console) UpdateField(c tele.Context) error {
	if !cs.isAdmin(c) {
		return cs.deny(c)
	}

	field := callbacks.CallbackPayload(c)
	if !isKnownField(field) {
		return tghelpers.EditOrSendMD(c, fmt.Sprintf("❌ Unknown field: `%s`", field), cs.backMarkup())
	}

	userID := c.Sender().ID
	cs.states.SetTemp(userID, tempFieldKey, field)
	cs.states.SetState(userID, StateAwaitingValue)

	prompt := fmt.Sprintf("✏️ Send the new value for *%s*:", payment.FieldLabel(field))
	return tghelpers.EditOrSendMD(c, prompt, keyboard.SingleCancelMarkup(KeyUpdateCancel))
}

// HandleValue consumes the next text message while the awaiting-value
// state is active. Registered as the FSM handler for StateAwaitingValue.
func (cs *Console) HandleValue(c tele.Context) error {
	if !cs.isAdmin(c) {
		return cs.deny(c)
	}

	userID := c.Sender().ID
	field, ok := cs.states.GetTempString(userID, tempFieldKey)
	cs.states.ClearTemp(userID, tempFieldKey)
	cs.states.ClearState(userID)
	if !ok {
		return tghelpers.SendText(c, "Nothing to update.")
	}

	value := strings.TrimSpace(c.Text())
	if err := cs.payment.UpdateField(field, value); err != nil {
		ctx := tghelpers.BuildContext(c)
		logger.Warn(ctx, "admin", "payment.update.rejected",
			slog.String("status", "fail"),
			slog.String("field", field),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendMD(c, fmt.Sprintf("❌ Update rejected: %s", err))
	}

	ctx := tghelpers.BuildContext(c)
	logger.Info(ctx, "admin", "payment.updated",
		slog.String("status", "ok"),
		slog.String("field", field),
	)
	return tghelpers.SendMD(c, fmt.Sprintf("✅ *%s* updated.", payment.FieldLabel(field)))
}

// UpdateCancel aborts the awaiting-value dialog and returns to the panel.
func (cs *Console) UpdateCancel(c tele.Context) error {
	if !cs.isAdmin(c) {
		return cs.deny(c)
	}

	cs.states.Clear(c.Sender().ID)
	return cs.Panel(c)
}

// Clear shows the two-phase confirmation. Only the confirm token clears.
func (cs *Console) Clear(c tele.Context) error {
	if !cs.isAdmin(c) {
		return cs.deny(c)
	}

	markup := keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "✅ Yes, clear all", Unique: KeyConfirmClear},
		{Text: "❌ No, cancel", Unique: KeyBack},
	})
	text := "⚠️ *DANGER ZONE*\n\n" +
		"This will clear ALL user records and statistics.\n" +
		"This action cannot be undone!\n\n" +
		"Are you sure you want to proceed?"
	return tghelpers.EditOrSendMD(c, text, markup)
}

// ConfirmClear empties the journal after explicit confirmation.
func (cs *Console) ConfirmClear(c tele.Context) error {
	if !cs.isAdmin(c) {
		return cs.deny(c)
	}

	cs.journal.ClearAll()

	ctx := tghelpers.BuildContext(c)
	logger.Info(ctx, "admin", "journal.cleared",
		slog.String("status", "ok"),
	)
	return tghelpers.EditOrSendMD(c, "🗑️ All user data cleared.", cs.backMarkup())
}

// Back returns to the panel view.
func (cs *Console) Back(c tele.Context) error {
	return cs.Panel(c)
}

func (cs *Console) backMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🔙 Back to panel", Unique: KeyBack},
	})
}

func isKnownField(field string) bool {
	for _, f := range payment.Fields() {
		if f == field {
			return true
		}
	}
	return false
}
