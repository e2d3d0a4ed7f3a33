package api

import (
	"net/http"

	reqdto "bookswap/internal/handler/dto/request"
	resdto "bookswap/internal/handler/dto/response"
	"bookswap/internal/handler/middleware"
	"bookswap/internal/usecase/commands"
	"bookswap/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ExchangeHandler struct {
	commands commands.ExchangeCommands
	queries  queries.ExchangeQueries
}

func NewExchangeHandler(cmds commands.ExchangeCommands, qs queries.ExchangeQueries) *ExchangeHandler {
	return &ExchangeHandler{
		commands: cmds,
		queries:  qs,
	}
}

// @Summary Request exchange
// @Description Open an exchange transaction for an available book
// @Tags exchanges
// @Accept json
// @Produce json
// @Param request body reqdto.RequestExchangeRequest true "Exchange request"
// @Success 201 {object} resdto.ExchangeResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /exchanges [post]
func (h *ExchangeHandler) Request(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.RequestExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	e, err := h.commands.RequestExchange(c.Request.Context(), req.BookID, userID)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromExchangeEntity(e))
}

// @Summary Accept exchange request
// @Description Accept a pending request as the book's counterparty
// @Tags exchanges
// @Produce json
// @Param id path string true "Exchange ID"
// @Success 200 {object} resdto.ExchangeResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /exchanges/{id}/accept [post]
func (h *ExchangeHandler) Accept(c *gin.Context) {
	userID, exchangeID, ok := h.identify(c)
	if !ok {
		return
	}

	e, err := h.commands.AcceptRequest(c.Request.Context(), exchangeID, userID)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromExchangeEntity(e))
}

// @Summary Schedule meetup
// @Description Record the meetup location and time window
// @Tags exchanges
// @Accept json
// @Produce json
// @Param id path string true "Exchange ID"
// @Param request body reqdto.ScheduleMeetupRequest true "Meetup details"
// @Success 200 {object} resdto.ExchangeResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /exchanges/{id}/meetup [post]
func (h *ExchangeHandler) ScheduleMeetup(c *gin.Context) {
	userID, exchangeID, ok := h.identify(c)
	if !ok {
		return
	}

	var req reqdto.ScheduleMeetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	e, err := h.commands.ScheduleMeetup(c.Request.Context(), exchangeID, userID, req.Location, req.Start, req.End)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromExchangeEntity(e))
}

// @Summary Submit payment
// @Description Pay the book price plus service fee for an exchange
// @Tags exchanges
// @Accept json
// @Produce json
// @Param id path string true "Exchange ID"
// @Param request body reqdto.SubmitPaymentRequest true "Payment details"
// @Success 201 {object} resdto.PaymentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /exchanges/{id}/payments [post]
func (h *ExchangeHandler) SubmitPayment(c *gin.Context) {
	_, exchangeID, ok := h.identify(c)
	if !ok {
		return
	}

	var req reqdto.SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	record, err := h.commands.SubmitPayment(c.Request.Context(), exchangeID, req.Method, req.AmountCents)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromPaymentRecord(record))
}

// @Summary Get confirmation token
// @Description Issue the QR confirmation token for the calling party
// @Tags exchanges
// @Produce json
// @Param id path string true "Exchange ID"
// @Success 200 {object} resdto.ConfirmationTokenResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /exchanges/{id}/confirmation-token [get]
func (h *ExchangeHandler) ConfirmationToken(c *gin.Context) {
	userID, exchangeID, ok := h.identify(c)
	if !ok {
		return
	}

	token, err := h.queries.ConfirmationToken(c.Request.Context(), exchangeID, userID)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.ConfirmationTokenResponse{Token: token})
}

// @Summary Present confirmation
// @Description Present a party's QR confirmation token at the meetup
// @Tags exchanges
// @Accept json
// @Produce json
// @Param id path string true "Exchange ID"
// @Param request body reqdto.PresentConfirmationRequest true "Confirmation token"
// @Success 200 {object} resdto.ExchangeResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /exchanges/{id}/confirm [post]
func (h *ExchangeHandler) Confirm(c *gin.Context) {
	userID, exchangeID, ok := h.identify(c)
	if !ok {
		return
	}

	var req reqdto.PresentConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	e, err := h.commands.PresentConfirmation(c.Request.Context(), exchangeID, userID, req.Token)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromExchangeEntity(e))
}

// @Summary Cancel exchange
// @Description Cancel an exchange from any non-terminal state
// @Tags exchanges
// @Accept json
// @Produce json
// @Param id path string true "Exchange ID"
// @Param request body reqdto.CancelExchangeRequest false "Cancellation reason"
// @Success 200 {object} resdto.ExchangeResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /exchanges/{id}/cancel [post]
func (h *ExchangeHandler) Cancel(c *gin.Context) {
	userID, exchangeID, ok := h.identify(c)
	if !ok {
		return
	}

	var req reqdto.CancelExchangeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	e, err := h.commands.Cancel(c.Request.Context(), exchangeID, userID, req.Reason)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromExchangeEntity(e))
}

// @Summary Get exchange
// @Description Get an exchange with its history and payment attempts
// @Tags exchanges
// @Produce json
// @Param id path string true "Exchange ID"
// @Success 200 {object} resdto.ExchangeResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /exchanges/{id} [get]
func (h *ExchangeHandler) Get(c *gin.Context) {
	exchangeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exchange ID format"})
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), exchangeID)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromExchangeView(view))
}

// @Summary List my exchanges
// @Description List exchanges the calling user participates in
// @Tags exchanges
// @Produce json
// @Success 200 {array} resdto.ExchangeListResponse
// @Router /exchanges [get]
func (h *ExchangeHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	items, err := h.queries.ListByParticipant(c.Request.Context(), userID)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	resp := make([]*resdto.ExchangeListResponse, len(items))
	for i, item := range items {
		resp[i] = resdto.FromExchangeListItem(item)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ExchangeHandler) identify(c *gin.Context) (userID, exchangeID uuid.UUID, ok bool) {
	userID, found := middleware.GetUserID(c)
	if !found {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return uuid.Nil, uuid.Nil, false
	}

	exchangeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exchange ID format"})
		return uuid.Nil, uuid.Nil, false
	}
	return userID, exchangeID, true
}
