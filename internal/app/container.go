package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/dig"

	"parcelhub/internal/auth"
	"parcelhub/internal/config"
	stripegw "parcelhub/internal/gateway/payments"
	"parcelhub/internal/http/handlers"
	"parcelhub/internal/http/router"
	"parcelhub/internal/logx"
	"parcelhub/internal/metrics"
	"parcelhub/internal/repository"
	"parcelhub/internal/service/assignment"
	"parcelhub/internal/service/parcels"
	paymentsvc "parcelhub/internal/service/payments"
	"parcelhub/internal/service/riders"
	"parcelhub/internal/service/users"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*mongo.Client, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the store connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*mongo.Client, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerAuth(container); err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		func() *log.Logger { return log.Default() },
		NewLogger,
		config.Load,
		metrics.NewDomain,
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*mongo.Client, error),
) error {
	return provideAll(container,
		func(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
			return dbConnect(ctx, cfg.Mongo.URI, 10, time.Second)
		},
		func(client *mongo.Client, cfg *config.Config) *mongo.Database {
			return client.Database(cfg.Mongo.Database)
		},
		repository.NewParcelRepo,
		repository.NewRiderRepo,
		repository.NewUserRepo,
		repository.NewPaymentRepo,
		repository.NewTrackingRepo,
	)
}

func registerAuth(container *dig.Container) error {
	return provideAll(container,
		func(ctx context.Context, cfg *config.Config) (auth.TokenVerifier, error) {
			return auth.NewFirebaseVerifier(ctx, cfg.FirebaseCredFile)
		},
		func(v auth.TokenVerifier, usersRepo *repository.UserRepo) *auth.Gate {
			return auth.NewGate(v, usersRepo)
		},
	)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config) paymentGateway {
			if gw := stripegw.NewStripeGateway(cfg.StripeKey); gw != nil {
				return gw
			}
			return nil
		},
		func(
			repo *repository.ParcelRepo,
			tracking *repository.TrackingRepo,
			cfg *config.Config,
			logger logx.Logger,
		) *parcels.Service {
			return parcels.NewService(repo, tracking, cfg.OperationTimeout, logger)
		},
		func(
			repo *repository.RiderRepo,
			usersRepo *repository.UserRepo,
			m *metrics.Domain,
			cfg *config.Config,
			logger logx.Logger,
		) *riders.Service {
			return riders.NewService(repo, usersRepo, m.PartialFailuresTotal, cfg.OperationTimeout, logger)
		},
		func(
			parcelRepo *repository.ParcelRepo,
			riderRepo *repository.RiderRepo,
			m *metrics.Domain,
			cfg *config.Config,
			logger logx.Logger,
		) *assignment.Service {
			return assignment.NewService(
				parcelRepo, riderRepo,
				m.AssignmentsTotal, m.PartialFailuresTotal,
				cfg.OperationTimeout, logger,
			)
		},
		func(
			repo *repository.PaymentRepo,
			parcelRepo *repository.ParcelRepo,
			gw paymentGateway,
			m *metrics.Domain,
			cfg *config.Config,
			logger logx.Logger,
		) *paymentsvc.Service {
			var intents paymentsvc.IntentCreator
			if gw != nil {
				intents = gw
			}
			return paymentsvc.NewService(
				repo, parcelRepo, intents,
				m.PaymentsRecordedTotal, m.PartialFailuresTotal,
				cfg.OperationTimeout, logger,
			)
		},
		func(repo *repository.UserRepo, cfg *config.Config, logger logx.Logger) *users.Service {
			return users.NewService(repo, cfg.OperationTimeout, logger)
		},
	)
}

// paymentGateway keeps the nil check honest: a disabled gateway stays a
// nil interface instead of a typed nil pointer.
type paymentGateway interface {
	CreateIntent(ctx context.Context, amountInCents int64) (string, error)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewParcelUsecase,
		handlers.NewRiderUsecase,
		handlers.NewAssignmentUsecase,
		handlers.NewPaymentUsecase,
		handlers.NewUserUsecase,
		handlers.NewParcelHandler,
		handlers.NewRiderHandler,
		handlers.NewPaymentHandler,
		handlers.NewUserHandler,
		func(g *auth.Gate) router.AuthGate { return g },
		func(
			logger logx.Logger,
			base *handlers.Handlers,
			parcelH *handlers.ParcelHandler,
			riderH *handlers.RiderHandler,
			paymentH *handlers.PaymentHandler,
			userH *handlers.UserHandler,
			gate router.AuthGate,
		) http.Handler {
			return router.New(router.Deps{
				Logger:   logger,
				Base:     base,
				Parcels:  parcelH,
				Riders:   riderH,
				Payments: paymentH,
				Users:    userH,
				Gate:     gate,
			})
		},
		serverProvider,
	)
}
