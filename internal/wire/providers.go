package wire

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/mux"
	"google.golang.org/grpc"

	"skillnaav/internal/common"
	"skillnaav/internal/config"
	"skillnaav/internal/dbmongo"
	"skillnaav/internal/dbsql"
	"skillnaav/internal/memstore"
	"skillnaav/internal/notif"
	"skillnaav/internal/posting"
	"skillnaav/internal/rpc"
)

type Application struct {
	Config     *config.Config
	Stores     *common.Stores
	Router     *mux.Router
	GRPCServer *grpc.Server
}

func ProvideConfig() *config.Config {
	return config.LoadConfig()
}

// ProvideStores opens the backend named by STORE_DRIVER.
func ProvideStores(cfg *config.Config) (*common.Stores, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo, "":
		mc, err := dbmongo.NewMongoConnection(cfg)
		if err != nil {
			return nil, err
		}
		return mc.Stores(), nil
	case config.DriverMySQL, config.DriverPostgres:
		db, err := dbsql.NewSQL(cfg)
		if err != nil {
			return nil, err
		}
		return dbsql.Stores(db), nil
	case config.DriverMemory:
		log.Println("Using in-memory store, data is not persisted")
		return memstore.New().Stores(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func ProvideNotificationRepository(stores *common.Stores) common.NotificationRepository {
	return stores.Notifications
}

func ProvideSavedJobRepository(stores *common.Stores) common.SavedJobRepository {
	return stores.SavedJobs
}

func ProvideOfferRepository(stores *common.Stores) common.OfferRepository {
	return stores.Offers
}

func ProvidePostingReader(cfg *config.Config, stores *common.Stores) *posting.Reader {
	return posting.NewReader(stores.Postings, cfg.PostingCacheTTL(), cfg.PostingCacheCleanup())
}

// ProvideTokenManager refuses to start with AUTH_REQUIRED and no secret.
// Without a secret any presented token is rejected.
func ProvideTokenManager(cfg *config.Config) (*common.TokenManager, error) {
	if cfg.Auth.JWTSecret == "" {
		if cfg.Auth.Required {
			return nil, errors.New("JWT_SECRET is required when AUTH_REQUIRED is set")
		}
		log.Println("JWT_SECRET not set, bearer tokens will be rejected")
	}
	return common.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, time.Duration(cfg.Auth.TokenTTL)*time.Hour), nil
}

// ProvideSubject builds the observer fan-out that runs after a notification
// is stored.
func ProvideSubject(emailService common.EmailService) common.Subject {
	manager := notif.NewNotificationManager()
	manager.Subscribe(notif.NewEmailNotificationObserver(emailService))
	return manager
}

func ProvideGRPCServer(cfg *config.Config, tm *common.TokenManager, h *rpc.Handler) *grpc.Server {
	return rpc.NewServer(tm, cfg.Auth.Required, h)
}
