package cmd

import (
	"context"
	"log/slog"

	"lastmile/internal/adapters/out/advisor"
	"lastmile/internal/adapters/out/notifier"
	"lastmile/internal/adapters/out/postgres"
	"lastmile/internal/adapters/out/proofstore"
	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	slotAdvisor   ports.SlotAdvisor
	codeGenerator services.CodeGenerator
	proofStore    ports.ProofStore
	smsClient     ports.SMSClient
	logger        *slog.Logger
}

// NewCompositionRoot builds the object graph from the given configuration.
// A missing slot model is not fatal: the advisor degrades to an always
// unavailable one and bookings proceed with the sender's chosen slot.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	var slotAdvisor ports.SlotAdvisor
	trained, err := advisor.LoadOrTrain(config.SlotModelPath, config.SlotDatasetPath)
	if err != nil {
		logger.WarnContext(context.Background(),
			"slot advisor unavailable, bookings proceed without recommendations", "error", err)
		slotAdvisor = advisor.Unavailable{}
	} else {
		slotAdvisor = trained
	}

	codeGenerator, err := services.NewCryptoCodeGenerator(config.CodeLength)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		slotAdvisor:   slotAdvisor,
		codeGenerator: codeGenerator,
		proofStore:    proofstore.NewFilesystemProofStore(config.ProofDir),
		smsClient:     notifier.NewLogSMSClient(logger),
		logger:        logger,
	}, nil
}

// SlotAdvisor exposes the advisor for the HTTP recommendation endpoint.
func (c *CompositionRoot) SlotAdvisor() ports.SlotAdvisor {
	return c.slotAdvisor
}

func (c *CompositionRoot) CreateBookDeliveryCommandHandler() commands.BookDeliveryCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewBookDeliveryCommandHandler(f, c.slotAdvisor, c.codeGenerator, c.logger)
}

func (c *CompositionRoot) CreateVerifyDeliveryCommandHandler() commands.VerifyDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewVerifyDeliveryCommandHandler(f, c.proofStore)
}

func (c *CompositionRoot) CreateOverrideDeliveryStatusCommandHandler() commands.OverrideDeliveryStatusCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewOverrideDeliveryStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateDispatchNotificationsCommandHandler() commands.DispatchNotificationsCommandHandler {
	var f commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchNotificationsCommandHandler(f, c.smsClient, c.logger)
}

func (c *CompositionRoot) CreateGetDailyDeliveriesQueryHandler() queries.GetDailyDeliveriesQueryHandler {
	return queries.NewGetDailyDeliveriesQueryHandler(c.gormDB)
}

type FuncBookingUoWFactory func() commands.BookingUoW

func (f FuncBookingUoWFactory) Create() commands.BookingUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
