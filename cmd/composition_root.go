package cmd

import (
	"log/slog"
	"time"

	httpin "fulfillment/internal/adapters/in/http"
	kafkain "fulfillment/internal/adapters/in/kafka"
	kafkaout "fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters to use cases. Every dependency is
// constructed explicitly here; nothing else in the application creates
// adapters or handlers.
type CompositionRoot struct {
	config Config

	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	gateway       ports.MessageGateway
	statusMonitor *commands.StatusMonitor

	logger *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	gateway ports.MessageGateway,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:        config,
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		gateway:       gateway,
		statusMonitor: commands.NewStatusMonitor(),
		logger:        logger,
	}
}

// NewMessageGateway builds the kafka gateway with one writer per outbound
// topic. The caller owns the returned gateway and closes it on shutdown.
func NewMessageGateway(config Config, logger *slog.Logger) *kafkaout.Gateway {
	return kafkaout.NewGateway(
		kafkaout.NewWriter(config.KafkaHost, config.KafkaValidationRequestTopic),
		kafkaout.NewWriter(config.KafkaHost, config.KafkaAllocationRequestTopic),
		kafkaout.NewWriter(config.KafkaHost, config.KafkaDeallocationTopic),
		logger,
	)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) awaitTimeout() time.Duration {
	return c.config.StatusAwaitTimeout
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(), c.gateway, c.statusMonitor, c.awaitTimeout(), c.logger)
}

func (c *CompositionRoot) CreateProcessValidationResultCommandHandler() commands.ProcessValidationResultCommandHandler {
	return commands.NewProcessValidationResultCommandHandler(
		c.orderUoWFactory(), c.gateway, c.statusMonitor, c.awaitTimeout(), c.logger)
}

func (c *CompositionRoot) CreateProcessAllocationOutcomeCommandHandler() commands.ProcessAllocationOutcomeCommandHandler {
	return commands.NewProcessAllocationOutcomeCommandHandler(
		c.orderUoWFactory(), c.gateway, c.statusMonitor, c.awaitTimeout(), c.logger)
}

func (c *CompositionRoot) CreatePickUpOrderCommandHandler() commands.PickUpOrderCommandHandler {
	return commands.NewPickUpOrderCommandHandler(
		c.orderUoWFactory(), c.gateway, c.statusMonitor, c.awaitTimeout(), c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(
		c.orderUoWFactory(), c.gateway, c.statusMonitor, c.awaitTimeout(), c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStalledOrdersQueryHandler() queries.GetStalledOrdersQueryHandler {
	return queries.NewGetStalledOrdersQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the REST surface over the command and query
// handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreatePickUpOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
	)
}

// CreateValidationResponseConsumer builds the consumer that feeds validator
// verdicts into the lifecycle.
func (c *CompositionRoot) CreateValidationResponseConsumer() *kafkain.ValidationResponseConsumer {
	handler := c.CreateProcessValidationResultCommandHandler()
	reader := kafkain.NewReader(
		c.config.KafkaHost, c.config.KafkaConsumerGroup, c.config.KafkaValidationResponseTopic)
	return kafkain.NewValidationResponseConsumer(reader, handler, c.logger)
}

// CreateAllocationResponseConsumer builds the consumer that feeds allocator
// verdicts into the lifecycle.
func (c *CompositionRoot) CreateAllocationResponseConsumer() *kafkain.AllocationResponseConsumer {
	handler := c.CreateProcessAllocationOutcomeCommandHandler()
	reader := kafkain.NewReader(
		c.config.KafkaHost, c.config.KafkaConsumerGroup, c.config.KafkaAllocationResponseTopic)
	return kafkain.NewAllocationResponseConsumer(reader, handler, c.logger)
}

// CreateJobManager builds the background job scheduler.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetStalledOrdersQueryHandler(), c.config.StalledOrderThreshold, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
