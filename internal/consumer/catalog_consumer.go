package consumer

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/models"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/repository"
)

const (
	RoutingPackageUpserted = "package.upserted"
	RoutingPackageDeleted  = "package.deleted"
)

const storeTimeout = 10 * time.Second

// CatalogConsumer mirrors catalog changes into the local packages table.
type CatalogConsumer struct {
	repo repository.PackageRepository
	log  *zap.Logger
}

func NewCatalogConsumer(repo repository.PackageRepository, log *zap.Logger) *CatalogConsumer {
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogConsumer{repo: repo, log: log.Named("catalog-consumer")}
}

// Start handles deliveries until the channel closes.
func (cc *CatalogConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			cc.handleMessage(msg)
		}
		cc.log.Info("channel closed, stopping consumer")
	}()
}

func (cc *CatalogConsumer) handleMessage(msg amqp.Delivery) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	var pkg models.Package
	if err := json.Unmarshal(msg.Body, &pkg); err != nil {
		cc.log.Warn("dropping undecodable message", zap.String("routing_key", msg.RoutingKey), zap.Error(err))
		msg.Nack(false, false)
		return
	}

	if msg.RoutingKey == RoutingPackageDeleted {
		if pkg.ID == "" {
			cc.log.Warn("dropping delete without id")
			msg.Nack(false, false)
			return
		}
		if err := cc.repo.Delete(ctx, pkg.ID); err != nil {
			cc.log.Error("failed to delete package", zap.String("package_id", pkg.ID), zap.Error(err))
			msg.Nack(false, true)
			return
		}
		cc.log.Info("removed package", zap.String("package_id", pkg.ID))
		msg.Ack(false)
		return
	}

	if err := pkg.Validate(); err != nil {
		cc.log.Warn("dropping invalid package", zap.String("package_id", pkg.ID), zap.Error(err))
		msg.Nack(false, false)
		return
	}

	if err := cc.repo.Upsert(ctx, &pkg); err != nil {
		cc.log.Error("failed to upsert package", zap.String("package_id", pkg.ID), zap.Error(err))
		msg.Nack(false, true) // requeue
		return
	}

	cc.log.Info("synced package", zap.String("package_id", pkg.ID), zap.String("title", pkg.Title))
	msg.Ack(false)
}
