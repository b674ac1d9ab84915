package ui

import tele "gopkg.in/telebot.v4"

// FallbackProvider supplies the handlers invoked when an update does not
// match any registered command, callback key, or document route.
type FallbackProvider interface {
	UnknownText() tele.HandlerFunc
	UnknownDocument() tele.HandlerFunc
	UnknownCallback() tele.HandlerFunc
}
