//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"skillnaav/internal/config"
	"skillnaav/internal/email"
	"skillnaav/internal/httpapi"
	"skillnaav/internal/notif"
	"skillnaav/internal/offer"
	"skillnaav/internal/posting"
	"skillnaav/internal/ratelimit"
	"skillnaav/internal/rpc"
	"skillnaav/internal/savedjob"
)

var storeSet = wire.NewSet(
	ProvideStores,
	ProvideNotificationRepository,
	ProvideSavedJobRepository,
	ProvideOfferRepository,
	ProvidePostingReader,
	wire.Bind(new(savedjob.PostingReader), new(*posting.Reader)),
	wire.Bind(new(offer.PostingSource), new(*posting.Reader)),
)

var serviceSet = wire.NewSet(
	email.NewEmailService,
	ProvideSubject,
	notif.NewDispatcher,
	wire.Bind(new(offer.Notifier), new(*notif.Dispatcher)),
	notif.NewNotificationService,
	savedjob.NewRegistry,
	offer.NewManager,
)

var transportSet = wire.NewSet(
	ProvideTokenManager,
	wire.FieldsOf(new(*config.Config), "Redis"),
	ratelimit.New,
	notif.NewNotificationHandler,
	savedjob.NewHandler,
	offer.NewHandler,
	wire.Struct(new(httpapi.Handlers), "*"),
	httpapi.NewRouter,
	rpc.NewHandler,
	ProvideGRPCServer,
)

func InitializeApplication() (*Application, error) {
	wire.Build(
		ProvideConfig,
		storeSet,
		serviceSet,
		transportSet,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}
