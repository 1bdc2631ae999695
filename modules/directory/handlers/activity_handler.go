package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/employee-directory/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/employee-directory/pkg/eventbus"
)

// ActivityHandler writes an audit line for every successful employee write.
type ActivityHandler struct {
	logger *logrus.Logger
}

func NewActivityHandler(logger *logrus.Logger) *ActivityHandler {
	return &ActivityHandler{logger: logger}
}

func RegisterActivityHandlers(bus eventbus.EventBus, logger *logrus.Logger) *ActivityHandler {
	h := NewActivityHandler(logger)
	bus.Subscribe(h.onCreated)
	bus.Subscribe(h.onUpdated)
	bus.Subscribe(h.onDeleted)
	return h
}

func (h *ActivityHandler) onCreated(event employee.CreatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"event":      "employee.created",
		"first_name": event.Data.FirstName,
		"last_name":  event.Data.LastName,
		"city":       event.Data.City,
	}).Info("employee created")
}

func (h *ActivityHandler) onUpdated(event employee.UpdatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"event":      "employee.updated",
		"id":         event.ID,
		"first_name": event.Data.FirstName,
		"last_name":  event.Data.LastName,
		"city":       event.Data.City,
	}).Info("employee updated")
}

func (h *ActivityHandler) onDeleted(event employee.DeletedEvent) {
	h.logger.WithFields(logrus.Fields{
		"event": "employee.deleted",
		"id":    event.ID,
	}).Info("employee deleted")
}
