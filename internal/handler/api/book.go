package api

import (
	"net/http"
	"strconv"

	reqdto "bookswap/internal/handler/dto/request"
	resdto "bookswap/internal/handler/dto/response"
	"bookswap/internal/handler/middleware"
	"bookswap/internal/usecase/commands"
	"bookswap/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookHandler struct {
	commands commands.BookCommands
	queries  queries.BookQueries
}

func NewBookHandler(cmds commands.BookCommands, qs queries.BookQueries) *BookHandler {
	return &BookHandler{
		commands: cmds,
		queries:  qs,
	}
}

// @Summary List a book
// @Description Put a book up for exchange
// @Tags books
// @Accept json
// @Produce json
// @Param request body reqdto.ListBookRequest true "Book details"
// @Success 201 {object} resdto.BookResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /books [post]
func (h *BookHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.ListBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	b, err := h.commands.ListBook(c.Request.Context(), userID, commands.ListBookParams{
		Title:      req.Title,
		Author:     req.Author,
		Condition:  req.Condition,
		Categories: req.Categories,
		PriceCents: req.PriceCents,
	})
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookEntity(b))
}

// @Summary Get book
// @Description Get a book by ID
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} resdto.BookResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID format"})
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), bookID)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookView(view))
}

// @Summary List available books
// @Description List books open for exchange requests
// @Tags books
// @Produce json
// @Param limit query int false "Maximum results" default(50)
// @Success 200 {array} resdto.BookResponse
// @Router /books [get]
func (h *BookHandler) ListAvailable(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	views, err := h.queries.ListAvailable(c.Request.Context(), limit)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	resp := make([]*resdto.BookResponse, len(views))
	for i, view := range views {
		resp[i] = resdto.FromBookView(view)
	}
	c.JSON(http.StatusOK, resp)
}
