package http

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
	"github.com/comitanigiacomo/kyool-companion/internal/core/events"
)

const (
	streamBuffer    = 32
	streamKeepAlive = 25 * time.Second
)

// EventsHandler streams bus events to UI shells over Server-Sent Events.
type EventsHandler struct {
	bus       *events.Bus
	keepAlive time.Duration
}

func NewEventsHandler(bus *events.Bus) *EventsHandler {
	return &EventsHandler{bus: bus, keepAlive: streamKeepAlive}
}

func (h *EventsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/events", h.Stream)
}

// Stream godoc
// @Summary  Server-Sent Events feed of bus events
// @Tags     events
// @Produce  text/event-stream
// @Param    topics query string false "comma separated topic filter"
// @Failure  400 {object} map[string]string
// @Router   /events [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	filter := make(map[string]bool)
	for _, t := range strings.Split(c.Query("topics"), ",") {
		if t = strings.TrimSpace(t); t == "" {
			continue
		}
		if !domain.ValidTopic(t) {
			handleError(c, fmt.Errorf("%w: %s", domain.ErrUnknownTopic, t))
			return
		}
		filter[t] = true
	}

	ch := make(chan events.Event, streamBuffer)
	sub := h.bus.Subscribe(events.Wildcard, func(evt events.Event) {
		if len(filter) > 0 && !filter[evt.Topic] {
			return
		}
		select {
		case ch <- evt:
		default:
			log.Warn().Str("topic", evt.Topic).Msg("event stream client too slow, dropping event")
		}
	})
	defer sub.Unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case evt := <-ch:
			c.SSEvent(evt.Topic, evt.Payload)
			return true
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			return true
		}
	})
}
