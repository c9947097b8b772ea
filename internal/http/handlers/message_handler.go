// Message HTTP handlers.
//
// This file exposes the debug-only message listing:
//   - GET /api/messages  (10 most recent messages, bodies truncated)
//
// The route exists for local development; outside debug mode it answers
// 403 without touching storage.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cbouguerba/portfolio-backend/internal/domain"
	"github.com/cbouguerba/portfolio-backend/internal/repo"
)

const (
	// recentMessagesLimit caps the debug listing.
	recentMessagesLimit = 10
	// previewRunes caps the body fragment included per message.
	previewRunes = 100
)

// MessageResponse is the JSON shape of one message in the debug listing.
// The body is truncated; full content stays in the database.
type MessageResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	DateSent string `json:"date_sent"`
	IsRead   bool   `json:"is_read"`
}

// toMessageResponse maps a stored message to its debug-listing shape.
func toMessageResponse(m domain.Message) MessageResponse {
	return MessageResponse{
		ID:       m.ID,
		Name:     m.Name,
		Email:    m.Email,
		Subject:  m.Subject,
		Message:  m.Preview(previewRunes),
		DateSent: m.CreatedAt.UTC().Format(time.RFC3339),
		IsRead:   m.IsRead,
	}
}

// ListMessages godoc
// @ID          listMessages
// @Summary     List recent contact messages (debug only)
// @Description Returns the 10 most recent messages with truncated bodies. Available only when the server runs in debug mode.
// @Tags        Messages
// @Produce     json
//
// @Success     200  {array}   handlers.MessageResponse
// @Failure     403  {object}  handlers.ErrorResponse  "Not available in production"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api/messages [get]
func (h *Handlers) ListMessages(c *gin.Context) {
	if !h.opts.Debug {
		fail(c, http.StatusForbidden, "not available in production")
		return
	}

	msgs, err := repo.ListRecentMessages(c.Request.Context(), h.db, recentMessagesLimit)
	if err != nil {
		fail(c, http.StatusInternalServerError, "could not load messages")
		return
	}

	out := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	ok(c, http.StatusOK, out)
}
