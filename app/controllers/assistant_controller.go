package controllers

import (
	"encoding/json"
	"net/http"

	"synchrony/app/services"
)

// AssistantController handles the chat assistant endpoints.
type AssistantController struct {
	Assistant *services.AssistantService
}

// NewAssistantController creates a new AssistantController.
func NewAssistantController(assistant *services.AssistantService) *AssistantController {
	return &AssistantController{Assistant: assistant}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatReply struct {
	Reply string `json:"reply"`
}

// Chat handles POST /assistant/chat. The assistant always produces a
// reply; external API failures fall back to local responses.
func (c *AssistantController) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, chatReply{Reply: c.Assistant.Respond(r.Context(), req.Message)})
}

// Summary handles GET /assistant/summary.
func (c *AssistantController) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := c.Assistant.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
