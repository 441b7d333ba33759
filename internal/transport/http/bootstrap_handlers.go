package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomrelay/internal/proto"
)

// BootstrapHandlers hand a client the (userName, gameCode, master) triple it
// needs before opening /ws. They never touch the registry; an unknown game
// code is reported by the relay's join reply.
type BootstrapHandlers struct {
	log *zerolog.Logger
}

// NewBootstrapHandlers creates a new bootstrap handlers instance.
func NewBootstrapHandlers(logger *zerolog.Logger) *BootstrapHandlers {
	return &BootstrapHandlers{log: logger}
}

// New prepares a master session that will create a room.
// POST /api/new
func (h *BootstrapHandlers) New(c *gin.Context) {
	var req proto.BootstrapNewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid new request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "userName is required"})
		return
	}

	c.JSON(http.StatusOK, proto.Bootstrap{
		UserName: truncateUserName(req.UserName),
		GameCode: proto.NewGameCode,
		Master:   true,
	})
}

// Join prepares a participant session for an existing game code.
// POST /api/join
func (h *BootstrapHandlers) Join(c *gin.Context) {
	var req proto.BootstrapJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid join request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "userName and gameCode are required"})
		return
	}

	c.JSON(http.StatusOK, proto.Bootstrap{
		UserName: truncateUserName(req.UserName),
		GameCode: req.GameCode,
		Master:   false,
	})
}

func truncateUserName(name string) string {
	runes := []rune(name)
	if len(runes) <= proto.MaxUserNameLength {
		return name
	}
	return string(runes[:proto.MaxUserNameLength])
}
