package handlers

import (
	"io"
	"strconv"
	"time"

	"github.com/AbdullahHad/WaadFinal/internal/constants"
	apierrors "github.com/AbdullahHad/WaadFinal/internal/errors"
	"github.com/AbdullahHad/WaadFinal/internal/middleware"
	"github.com/AbdullahHad/WaadFinal/internal/notify"
	"github.com/gin-gonic/gin"
)

// NotificationHandler streams live notifications to the browser as Server-Sent Events
type NotificationHandler struct {
	hub       *notify.Hub
	heartbeat time.Duration
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(hub *notify.Hub, heartbeat time.Duration) *NotificationHandler {
	if heartbeat <= 0 {
		heartbeat = constants.NotificationHeartbeat
	}
	return &NotificationHandler{
		hub:       hub,
		heartbeat: heartbeat,
	}
}

// Stream holds the connection open and forwards every event addressed to the caller
func (h *NotificationHandler) Stream(c *gin.Context) {
	employeeID, ok := middleware.GetEmployeeID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	userID := strconv.FormatUint(employeeID, 10)
	sub := h.hub.Subscribe(userID)
	defer sub.Close()

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("connected", gin.H{
		"subscription": sub.ID,
		"connections":  h.hub.Connected(userID),
	})
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev, open := <-sub.Events():
			if !open {
				return false
			}
			c.SSEvent(ev.Name, ev.Payload)
			return true
		case t := <-heartbeat.C:
			c.SSEvent("heartbeat", t.UTC().Format(time.RFC3339))
			return true
		}
	})
}
