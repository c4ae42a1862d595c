package api

import (
	"errors"
	"net/http"

	reqdto "lendit/internal/handler/dto/request"
	resdto "lendit/internal/handler/dto/response"
	"lendit/internal/handler/middleware"
	"lendit/internal/usecase/commands"
	"lendit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ItemHandler struct {
	cmds commands.ItemCommands
	q    queries.ItemQueries
}

func NewItemHandler(cmds commands.ItemCommands, q queries.ItemQueries) *ItemHandler {
	return &ItemHandler{cmds: cmds, q: q}
}

func (h *ItemHandler) Create(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req reqdto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.cmds.Create(c.Request.Context(), ownerID, req.ToCommand())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid item data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id, ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusCreated, resdto.FromItemView(view))
}

func (h *ItemHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item ID format",
		})
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req reqdto.UpdateItemRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.cmds.Update(c.Request.Context(), id, actorID, req.ToCommand()); err != nil {
		switch {
		case errors.Is(err, commands.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item not found",
			})
		case errors.Is(err, commands.ErrNotItemOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only the owner can modify the item",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid item data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id, actorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemView(view))
}

func (h *ItemHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item ID format",
		})
		return
	}
	viewerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id, viewerID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemView(view))
}

// ListOwn returns the authenticated user's items with booking projections.
func (h *ItemHandler) ListOwn(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}
	from, size, err := pageParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid pagination parameters",
		})
		return
	}

	views, err := h.q.ListByOwner(c.Request.Context(), ownerID, from, size)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidPage):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid pagination parameters",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemList(views))
}

func (h *ItemHandler) Search(c *gin.Context) {
	from, size, err := pageParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid pagination parameters",
		})
		return
	}

	views, err := h.q.Search(c.Request.Context(), c.Query("text"), from, size)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidPage):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid pagination parameters",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemList(views))
}

func (h *ItemHandler) AddComment(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item ID format",
		})
		return
	}
	authorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req reqdto.CreateCommentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.cmds.AddComment(c.Request.Context(), itemID, authorID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		case errors.Is(err, commands.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item not found",
			})
		case errors.Is(err, commands.ErrCommentNotAllowed):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Commenting requires a finished approved booking",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid comment data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCommentView(view))
}
