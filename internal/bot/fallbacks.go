package bot

import (
	"github.com/babyGialo/sigmabot/core/logger"
	"github.com/babyGialo/sigmabot/core/telegram/callbacks"
	tghelpers "github.com/babyGialo/sigmabot/core/telegram/helpers"
	"github.com/babyGialo/sigmabot/core/telegram/ui"

	"log/slog"

	tele "gopkg.in/telebot.v4"
)

var _ ui.FallbackProvider = (*App)(nil)

// UnknownText answers a message no route claimed.
func (a *App) UnknownText() tele.HandlerFunc {
	return func(c tele.Context) error {
		return tghelpers.SendText(c, "Send /start to open the menu.")
	}
}

// UnknownDocument answers uploads the bot has no use for.
func (a *App) UnknownDocument() tele.HandlerFunc {
	return func(c tele.Context) error {
		return tghelpers.SendText(c, "Please send text messages only.")
	}
}

// UnknownCallback answers a button press with a token outside the
// registered set. The press is journaled by the observe hook; the
// response is a quiet toast, never an error.
func (a *App) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := tghelpers.BuildContext(c)
		logger.Warn(ctx, "tg", "callback.unknown",
			slog.String("status", "skip"),
			slog.String("cb_key", callbacks.CallbackKey(c)),
		)
		return c.Respond(&tele.CallbackResponse{Text: "This action is no longer available."})
	}
}
