package mail

import (
	"context"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"pricecompare/config"
	domainerrors "pricecompare/internal/domain/errors"
	"pricecompare/internal/domain/lifecycle"
	"pricecompare/internal/domain/service"
)

const (
	ProviderLog = "log"
	ProviderSES = "ses"
)

// Params defines the required parameters
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// New selects the verification mailer configured under mail.provider.
func New(params Params) (service.VerificationMailer, error) {
	cfg := params.Config.Mail
	if cfg == nil {
		return nil, errors.Wrap(domainerrors.ErrConfiguration, "mail configuration is missing")
	}

	switch cfg.Provider {
	case ProviderLog, "":
		return NewLogMailer(params.Logger, cfg.VerificationBaseURL), nil
	case ProviderSES:
		ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()

		var opts []func(*awsconfig.LoadOptions) error
		if cfg.AWSRegion != "" {
			opts = append(opts, awsconfig.WithRegion(cfg.AWSRegion))
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, errors.Wrap(domainerrors.ErrConfiguration, "failed to load AWS configuration: "+err.Error())
		}

		return NewSESMailer(ses.NewFromConfig(awsCfg), cfg.FromAddress, cfg.VerificationBaseURL), nil
	default:
		return nil, errors.Wrapf(domainerrors.ErrConfiguration, "unknown mail provider %q", cfg.Provider)
	}
}
