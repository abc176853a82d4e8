package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/rmahat/seatledger/realtime"
)

// RealtimeController attaches websocket clients to the broadcast hub.
type RealtimeController struct {
	Hub *realtime.Hub
}

// Serve handles GET /ws.
func (h *RealtimeController) Serve(ctx *gin.Context) {
	if err := realtime.ServeWS(h.Hub, ctx.Writer, ctx.Request); err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
	}
}

// HealthController reports process and store liveness.
type HealthController struct {
	Mongo *mongo.Client
}

// Health handles GET /health.
func (h *HealthController) Health(ctx *gin.Context) {
	if err := h.Mongo.Ping(ctx.Request.Context(), readpref.Primary()); err != nil {
		fail(ctx, 503, "store unreachable", err)
		return
	}
	ok(ctx, "ok", nil)
}
