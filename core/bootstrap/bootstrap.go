package bootstrap

import (
	"fmt"

	coreconfig "github.com/babyGialo/sigmabot/core/config"
	"github.com/babyGialo/sigmabot/core/logger"
	"github.com/babyGialo/sigmabot/internal/journal"
	"github.com/babyGialo/sigmabot/internal/payment"
)

// Options control the generic bootstrap pipeline.
type Options struct {
	Config *coreconfig.Config

	LoggerInit func(*coreconfig.Config) error
}

// Result exposes infrastructure initialized by the bootstrap pipeline:
// the interaction journal and the mutable payment-detail store, both
// seeded before the bot starts receiving updates.
type Result struct {
	Journal *journal.Store
	Payment *payment.Store
}

// Run initializes the logger and constructs the in-memory stores.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	pay, err := payment.NewStore(payment.Details{
		IBAN:           opts.Config.Payment.IBAN,
		AccountName:    opts.Config.Payment.AccountName,
		Contact:        opts.Config.Payment.Contact,
		CryptoContact:  opts.Config.Payment.CryptoContact,
		MethodsContact: opts.Config.Payment.MethodsContact,
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap: payment store init failed: %w", err)
	}

	return &Result{
		Journal: journal.NewStore(),
		Payment: pay,
	}, nil
}
