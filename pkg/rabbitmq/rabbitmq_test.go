package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"

	amqp "github.com/streadway/amqp"

	"storefront/internal/models"
)

func TestPublishProductEventWithoutChannel(t *testing.T) {
	c := &Client{}

	err := c.PublishProductEvent("product.created", &models.Product{ID: "p-1"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "channel is not available")
}

func TestConsumeCatalogEventsWithoutChannel(t *testing.T) {
	c := &Client{}

	err := c.ConsumeCatalogEvents(func(msg amqp.Delivery) error { return nil })
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "channel is not available")
}
