// Contact HTTP handler.
//
// This file exposes the contact-form endpoint:
//   - POST /contact  (form-encoded fields: name, email, subject, message)
//
// The handler extracts the raw fields plus request metadata (client IP and
// User-Agent) and delegates the whole pipeline to ContactService. Spam
// classification is internal: neither the score nor the suppression
// decision is ever reflected in the response.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cbouguerba/portfolio-backend/internal/http/middleware"
	"github.com/cbouguerba/portfolio-backend/internal/services"
)

// confirmationMsg is returned verbatim to the submitting caller.
const confirmationMsg = "Your message has been sent successfully! I'll get back to you soon."

// ContactRequest is the form payload for a contact submission.
type ContactRequest struct {
	Name    string `form:"name"    example:"Ada Lovelace"`
	Email   string `form:"email"   example:"ada@example.com"`
	Subject string `form:"subject" example:"Collaboration inquiry"`
	Message string `form:"message" example:"I would love to discuss a project with you."`
}

// SubmitContact godoc
// @ID          submitContact
// @Summary     Submit the contact form
// @Description Validates and stores a contact message, then notifies the site operator.
// @Tags        Contact
// @Accept      x-www-form-urlencoded
// @Produce     json
//
// @Param       name     formData  string  true  "Sender name"
// @Param       email    formData  string  true  "Sender email"
// @Param       subject  formData  string  true  "Subject (5-200 chars)"
// @Param       message  formData  string  true  "Message body (10-2000 chars)"
//
// @Success     200  {object}  handlers.SuccessResponse  "Message accepted"
// @Failure     400  {object}  handlers.ErrorResponse    "Validation failure"
// @Failure     429  {object}  handlers.ErrorResponse    "Rate limited"
// @Failure     500  {object}  handlers.ErrorResponse    "Storage failure"
// @Router      /contact [post]
func (h *Handlers) SubmitContact(c *gin.Context) {
	ctx := c.Request.Context()

	var req ContactRequest
	// Binding errors surface as missing fields below; the service owns
	// the authoritative validation.
	_ = c.ShouldBind(&req)

	_, err := h.contactSvc.Submit(ctx, services.SubmitInput{
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Body:      req.Message,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		if services.IsValidation(err) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		// Storage failure: generic message, detail stays in the logs.
		lg := middleware.LoggerFrom(c)
		lg.Error().Err(err).Msg("contact submission failed")
		fail(c, http.StatusInternalServerError, "sorry, there was an error sending your message, please try again")
		return
	}

	confirm(c, confirmationMsg)
}
