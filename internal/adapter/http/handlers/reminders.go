package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/adapter/http/dto"
	"taskdeck/internal/core/ports"
)

type ReminderHandler struct {
	reminders ports.ReminderController
}

func NewReminderHandler(reminders ports.ReminderController) *ReminderHandler {
	return &ReminderHandler{reminders: reminders}
}

// GetState reports the currently due tasks so front ends can render the
// alert banner and drive the shared looping sound.
func (h *ReminderHandler) GetState(c *gin.Context) {
	active := h.reminders.Active()
	c.JSON(http.StatusOK, dto.ReminderStateItem{
		ActiveTaskIDs: active,
		AlertPlaying:  len(active) > 0,
	})
}

// StopAll silences every due reminder at once.
func (h *ReminderHandler) StopAll(c *gin.Context) {
	h.reminders.StopAll()
	c.Status(http.StatusNoContent)
}
