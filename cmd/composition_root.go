package cmd

import (
	"log/slog"
	"time"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/in/ws"
	"dispatch/internal/adapters/out/auth"
	"dispatch/internal/adapters/out/locations"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/deliveryrepo"
	"dispatch/internal/adapters/out/postgres/userrepo"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// locationTTL bounds how long a stale position report stays readable.
const locationTTL = 10 * time.Minute

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	hub          *ws.Hub
	publisher    *ws.HubPublisher
	verifier     *auth.JWTVerifier
	locationSink ports.LocationSink
	users        ports.UserProvider
	deliveries   ports.DeliveryRepository

	logger *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, redisClient *redis.Client, logger *slog.Logger) CompositionRoot {
	hub := ws.NewHub(logger)

	return CompositionRoot{
		gormDB:       gormDB,
		uowFactory:   *postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:          hub,
		publisher:    ws.NewHubPublisher(hub),
		verifier:     auth.NewJWTVerifier([]byte(configs.JWTSecret)),
		locationSink: locations.NewRedisLocationSink(redisClient, locationTTL),
		users:        userrepo.NewGormUserRepository(gormDB),
		deliveries:   deliveryrepo.NewGormDeliveryRepository(gormDB, noopTracker{}),
		logger:       logger,
	}
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	return commands.NewCreateDeliveryCommandHandler(c.deliveryUoWFactory(), c.users, c.publisher)
}

func (c *CompositionRoot) CreateCreateDeliveriesCommandHandler() commands.CreateDeliveriesCommandHandler {
	return commands.NewCreateDeliveriesCommandHandler(c.CreateCreateDeliveryCommandHandler())
}

func (c *CompositionRoot) CreateEndDeliveryCommandHandler() commands.EndDeliveryCommandHandler {
	return commands.NewEndDeliveryCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateReorderDeliveriesCommandHandler() commands.ReorderDeliveriesCommandHandler {
	return commands.NewReorderDeliveriesCommandHandler(c.deliveryUoWFactory(), c.deliveries)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveriesByDateQueryHandler() queries.GetDeliveriesByDateQueryHandler {
	return queries.NewGetDeliveriesByDateQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOpenDeliveriesQueryHandler() queries.GetOpenDeliveriesQueryHandler {
	return queries.NewGetOpenDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOpenDeliveriesForDriverQueryHandler() queries.GetOpenDeliveriesForDriverQueryHandler {
	return queries.NewGetOpenDeliveriesForDriverQueryHandler(c.gormDB, c.users)
}

func (c *CompositionRoot) CreateGetTodayDeliveriesForDriverQueryHandler() queries.GetTodayDeliveriesForDriverQueryHandler {
	return queries.NewGetTodayDeliveriesForDriverQueryHandler(c.gormDB, c.users)
}

// CreateHTTPServer assembles the JSON API server over every use case handler.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateDeliveryCommandHandler(),
		c.CreateCreateDeliveriesCommandHandler(),
		c.CreateEndDeliveryCommandHandler(),
		c.CreateReorderDeliveriesCommandHandler(),
		c.CreateGetDeliveryQueryHandler(),
		c.CreateGetDeliveriesByDateQueryHandler(),
		c.CreateGetOpenDeliveriesQueryHandler(),
		c.CreateGetOpenDeliveriesForDriverQueryHandler(),
		c.CreateGetTodayDeliveriesForDriverQueryHandler(),
	)
}

// CreateWebSocketGateway assembles the realtime connection endpoint.
func (c *CompositionRoot) CreateWebSocketGateway() *ws.Gateway {
	return ws.NewGateway(c.hub, c.verifier, c.locationSink, c.logger)
}

// CreateJobManager assembles the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.deliveries, c.publisher, c.logger)
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

// noopTracker satisfies the repository's tracking dependency for repositories
// used outside a unit of work.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.ID, any) {}
