// Package bot assembles the storefront bot: menu navigation, the
// interaction journal, the admin console, and the admin notification
// side channel, wired onto the shared telegram runtime.
package bot

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/babyGialo/sigmabot/core/bootstrap"
	coreconfig "github.com/babyGialo/sigmabot/core/config"
	"github.com/babyGialo/sigmabot/core/logger"
	coretelegram "github.com/babyGialo/sigmabot/core/telegram"
	"github.com/babyGialo/sigmabot/core/telegram/callbacks"
	"github.com/babyGialo/sigmabot/core/telegram/commands"
	tghelpers "github.com/babyGialo/sigmabot/core/telegram/helpers"
	"github.com/babyGialo/sigmabot/core/telegram/keyboard"
	"github.com/babyGialo/sigmabot/core/telegram/router"
	"github.com/babyGialo/sigmabot/core/telegram/state"
	"github.com/babyGialo/sigmabot/internal/admin"
	"github.com/babyGialo/sigmabot/internal/digest"
	"github.com/babyGialo/sigmabot/internal/journal"
	"github.com/babyGialo/sigmabot/internal/menu"
	"github.com/babyGialo/sigmabot/internal/notify"
	"github.com/babyGialo/sigmabot/internal/payment"
	"github.com/babyGialo/sigmabot/internal/templates"

	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// App owns every domain component for one bot process.
type App struct {
	cfg     *coreconfig.Config
	graph   *menu.Graph
	journal *journal.Store
	payment *payment.Store
	states  state.Manager
	console *admin.Console

	// notifier is wired in OnStart, before polling begins.
	notifier *notify.Notifier
	digest   *digest.Scheduler

	// lastAlert holds the unix-nano timestamp of the last admin error
	// alert. Alerts within minAlertGap of it are logged but not sent,
	// so a failing send cannot feed itself.
	lastAlert atomic.Int64
}

const minAlertGap = 30 * time.Second

// New builds the application. The menu graph is validated here, so a
// broken navigation tree fails the process at startup instead of at the
// first button press.
func New(cfg *coreconfig.Config, res *bootstrap.Result) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bot: nil config")
	}
	if res == nil {
		return nil, fmt.Errorf("bot: nil bootstrap result")
	}

	graph, err := menu.Storefront()
	if err != nil {
		return nil, fmt.Errorf("bot: menu graph rejected: %w", err)
	}

	states := state.NewMemoryManager()
	console := admin.NewConsole(cfg.Telegram.AdminID, res.Journal, res.Payment, states)
	state.RegisterHandler(admin.StateAwaitingValue, console.HandleValue)

	return &App{
		cfg:     cfg,
		graph:   graph,
		journal: res.Journal,
		payment: res.Payment,
		states:  states,
		console: console,
	}, nil
}

// TelegramRunOptions wires the registry, routes, and lifecycle hooks.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Open the menu",
	})
	reg.RegisterCommand("/admin", commands.Command{
		Handler:     a.console.PanelCommand,
		Description: "Admin console",
		AdminOnly:   true,
		Hidden:      true,
	})

	for _, token := range a.graph.TransitionTokens() {
		if err := reg.RegisterCallback(token, a.menuHandler(token)); err != nil {
			return coretelegram.RunOptions{}, err
		}
	}

	adminCallbacks := map[string]tele.HandlerFunc{
		admin.KeyPanel:        a.console.Panel,
		admin.KeyStats:        a.console.Stats,
		admin.KeyMessages:     a.console.Messages,
		admin.KeyUpdate:       a.console.Update,
		admin.KeyUpdateField:  a.console.UpdateField,
		admin.KeyUpdateCancel: a.console.UpdateCancel,
		admin.KeyClear:        a.console.Clear,
		admin.KeyConfirmClear: a.console.ConfirmClear,
		admin.KeyBack:         a.console.Back,
	}
	for key, handler := range adminCallbacks {
		if err := reg.RegisterCallback(key, handler); err != nil {
			return coretelegram.RunOptions{}, err
		}
	}

	reg.SetCallbackNotFound(a.UnknownCallback())
	reg.SetTextFallback(a.forwardText)

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID:       a.cfg.Telegram.AdminID,
		OnAdminReject: a.denied,
		Observe:       a.observeCommand,
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{
		NotFound: a.UnknownCallback(),
		Observe:  a.observeCallback,
	}))
	routes = append(routes, router.TextRoutes(a.states, reg, router.TextOptions{
		UnknownText:     a.UnknownText(),
		UnknownDocument: a.UnknownDocument(),
		Observe:         a.observeText,
	})...)

	middlewares := append(coretelegram.DefaultMiddlewares(), coretelegram.Middleware{
		Name: "error_alert",
		Use:  a.errorAlertMiddleware,
	})

	return coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: middlewares,
		Routes:      routes,
		OnStart:     a.onStart,
		OnStop:      a.onStop,
	}, nil
}

func (a *App) onStart(ctx context.Context, rt coretelegram.Runtime) error {
	a.notifier = notify.New(rt.Bot, rt.Dispatcher, a.cfg.Telegram.AdminID)

	if a.cfg.Digest.Enabled {
		a.digest = digest.New(a.cfg.Digest.Schedule, a.journal, a.notifier)
		if err := a.digest.Start(); err != nil {
			return err
		}
	}

	details := a.payment.Snapshot()
	logger.Info(ctx, "app", "bot.ready",
		slog.String("status", "ok"),
		slog.Int64("user_id", a.cfg.Telegram.AdminID),
		slog.String("account", details.AccountName),
		slog.Int("kb", len(a.graph.TransitionTokens())),
	)
	return nil
}

func (a *App) onStop(ctx context.Context, _ coretelegram.Runtime) error {
	if a.digest != nil {
		a.digest.Stop()
	}
	logger.Info(ctx, "app", "bot.stopped", slog.String("status", "ok"))
	return nil
}

// errorAlertMiddleware forwards handler failures to the admin chat, at
// most once per minAlertGap. Delivery is asynchronous and best-effort;
// the original error is always returned unchanged.
func (a *App) errorAlertMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		err := next(c)
		if err != nil && a.notifier != nil && a.allowAlert(time.Now()) {
			ctx := tghelpers.BuildContext(c)
			a.notifier.Error(ctx, logger.HandlerFrom(ctx), err)
		}
		return err
	}
}

func (a *App) allowAlert(now time.Time) bool {
	last := a.lastAlert.Load()
	if now.UnixNano()-last < int64(minAlertGap) {
		return false
	}
	return a.lastAlert.CompareAndSwap(last, now.UnixNano())
}

// handleStart renders the root menu. The admin additionally sees the
// panel shortcut button.
func (a *App) handleStart(c tele.Context) error {
	root := a.graph.Root()

	buttons := make([]keyboard.InlineBtn, 0, len(root.Options)+1)
	for _, opt := range root.Options {
		buttons = append(buttons, keyboard.InlineBtn{Text: opt.Label, Unique: opt.Token})
	}
	if sender := c.Sender(); sender != nil && sender.ID == a.cfg.Telegram.AdminID {
		buttons = append(buttons, keyboard.InlineBtn{Text: "🛡️ Admin panel", Unique: admin.KeyPanel})
	}

	return tghelpers.SendText(c, root.Prompt, &tele.SendOptions{
		ReplyMarkup: keyboard.InlineButtons(buttons),
	})
}

// menuHandler returns the callback handler for one transition token.
// Navigation is a pure function of token and graph: the same press from
// the same message always renders the same node.
func (a *App) menuHandler(token string) tele.HandlerFunc {
	return func(c tele.Context) error {
		node, ok := a.graph.Resolve(token)
		if !ok {
			return a.UnknownCallback()(c)
		}
		return a.renderNode(c, node)
	}
}

func (a *App) renderNode(c tele.Context, node *menu.Node) error {
	if node.IsLeaf() {
		return tghelpers.EditOrSendMD(c, a.renderLeaf(node))
	}

	buttons := make([]keyboard.InlineBtn, 0, len(node.Options))
	for _, opt := range node.Options {
		buttons = append(buttons, keyboard.InlineBtn{Text: opt.Label, Unique: opt.Token})
	}
	return c.EditOrSend(node.Prompt, keyboard.InlineButtons(buttons))
}

func (a *App) renderLeaf(node *menu.Node) string {
	details := a.payment.Snapshot()
	switch node.Render.Template {
	case menu.TemplatePayment:
		return templates.Payment(details, node.Render.Amount)
	case menu.TemplateCrypto:
		return templates.Crypto(details)
	case menu.TemplateMethods:
		return templates.Methods(details)
	default:
		return templates.Payment(details, "")
	}
}

// denied answers a non-admin touching the admin surface. The attempt
// itself has already been journaled by the observe hook.
func (a *App) denied(c tele.Context) error {
	if c.Callback() != nil {
		return c.EditOrSend("Access denied.")
	}
	return tghelpers.SendText(c, "Access denied.")
}

// forwardText relays a customer's free-text message to the admin with
// the sender's running message count. Admin texts and command-like
// input are not forwarded.
func (a *App) forwardText(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	text := c.Text()
	if strings.HasPrefix(text, "/") {
		return tghelpers.SendText(c, "Unknown command. Send /start to open the menu.")
	}
	if sender.ID == a.cfg.Telegram.AdminID {
		return tghelpers.SendText(c, "Use /admin to open the console.")
	}

	if a.notifier != nil {
		ctx := tghelpers.BuildContext(c)
		a.notifier.ForwardText(ctx, sender.ID, sender.Username, sender.FirstName, text, a.journal.Count(sender.ID))
	}
	return tghelpers.SendText(c, "Thanks! We received your message and will get back to you.")
}

// observeCommand journals every inbound command, including ones the
// admin gate later rejects.
func (a *App) observeCommand(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	rec := journal.Record{Kind: journal.KindText, Body: c.Text()}
	if strings.HasPrefix(c.Text(), "/start") {
		rec = journal.Record{Kind: journal.KindStarted}
	}
	a.recordAndAnnounce(c, sender, rec)
	return nil
}

// observeCallback journals every button press, valid token or not.
func (a *App) observeCallback(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	a.recordAndAnnounce(c, sender, journal.Record{
		Kind:  journal.KindButton,
		Token: callbacks.CallbackKey(c),
	})
	return nil
}

// observeText journals every free-text message before routing.
func (a *App) observeText(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	a.recordAndAnnounce(c, sender, journal.Record{
		Kind: journal.KindText,
		Body: c.Text(),
	})
	return nil
}

// recordAndAnnounce appends to the journal and, outside the store's
// lock, fires the new-user alert on a first-ever record.
func (a *App) recordAndAnnounce(c tele.Context, sender *tele.User, rec journal.Record) {
	first, _ := a.journal.Append(sender.ID, rec)
	if first && a.notifier != nil {
		ctx := tghelpers.BuildContext(c)
		a.notifier.NewUser(ctx, sender.ID, sender.Username, sender.FirstName)
	}
}
