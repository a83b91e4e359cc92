package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindjournal/mindjournal-backend/internal/app/service"
	apperrors "github.com/mindjournal/mindjournal-backend/internal/errors"
)

type ChatController struct {
	chatService service.ChatService
}

func NewChatController(chatService service.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

type ChatRequest struct {
	Message string `json:"message"`
}

// MindBot forwards a message to the assistant
// POST /api/mindbot
func (ctrl *ChatController) MindBot(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.InvalidBody(c, "")
		return
	}

	reply, err := ctrl.chatService.Reply(c.Request.Context(), req.Message)
	if err != nil {
		apperrors.ParseAndRespond(c, err, "mindbot")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
