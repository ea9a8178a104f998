package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rongwang/txvault/internal/models"
	"github.com/rongwang/txvault/internal/service"
	"github.com/rongwang/txvault/internal/utils"
)

// Handler exposes the service over HTTP
type Handler struct {
	svc service.Service
	log *utils.Logger
}

// NewHandler creates a new Handler
func NewHandler(svc service.Service, logger *utils.Logger) *Handler {
	return &Handler{
		svc: svc,
		log: logger,
	}
}

// SetupRoutes registers middleware and all routes on router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(RequestID(), RequestLogger(h.log))

	router.GET("/", h.Root)

	v1 := router.Group("/api/v1")

	users := v1.Group("/user")
	users.POST("", h.CreateUser)
	users.GET("/:id", h.GetUser)
	users.PUT("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)

	accounts := v1.Group("/account")
	accounts.POST("", h.CreateAccount)
	accounts.GET("/:id", h.GetAccount)
	accounts.PUT("/:id", h.UpdateAccount)
	accounts.DELETE("/:id", h.DeleteAccount)

	transactions := v1.Group("/transaction")
	transactions.POST("", h.CreateTransaction)
	transactions.GET("/:id", h.GetTransaction)
}

// Root is the liveness probe
func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Hello, World!")
}

// User handlers
func (h *Handler) CreateUser(c *gin.Context) {
	var req models.CreateUser
	if !h.bind(c, &req) {
		return
	}
	h.log.Info("Adding user %+v", req)

	user, err := h.svc.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	user, err := h.svc.GetUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req models.CreateUser
	if !h.bind(c, &req) {
		return
	}
	h.log.Info("Updating user %d to %+v", id, req)

	user, err := h.svc.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	h.log.Info("Deleting user %d", id)

	user, err := h.svc.DeleteUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Account handlers
func (h *Handler) CreateAccount(c *gin.Context) {
	var req models.CreateAccount
	if !h.bind(c, &req) {
		return
	}
	h.log.Info("Adding account %+v", req)

	account, err := h.svc.CreateAccount(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *Handler) GetAccount(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	account, err := h.svc.GetAccount(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *Handler) UpdateAccount(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req models.CreateAccount
	if !h.bind(c, &req) {
		return
	}
	h.log.Info("Updating account %d to %+v", id, req)

	account, err := h.svc.UpdateAccount(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	h.log.Info("Deleting account %d", id)

	account, err := h.svc.DeleteAccount(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// Transaction handlers
func (h *Handler) CreateTransaction(c *gin.Context) {
	var req models.CreateTransaction
	if !h.bind(c, &req) {
		return
	}
	h.log.Info("Adding transaction %s -> %s", req.SrcUsername, req.DstUsername)

	tx, err := h.svc.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, tx)
}

func (h *Handler) GetTransaction(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	tx, err := h.svc.GetTransaction(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, tx)
}

// Helper methods
func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.String(http.StatusBadRequest, "invalid request body: %s", err.Error())
		return false
	}
	return true
}

func (h *Handler) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid id %q", c.Param("id"))
		return 0, false
	}
	return id, true
}

// fail renders err as plain text with the mapped status
func (h *Handler) fail(c *gin.Context, err error) {
	status := statusForError(err)
	h.log.Warn("[%s] %s %s: %v", c.GetString("requestId"), c.Request.Method, c.Request.URL.Path, err)
	c.String(status, "%s", err.Error())
}
