package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/spending-nav/internal/clients/kafka"
	"max.ks1230/spending-nav/internal/logger"
	"max.ks1230/spending-nav/internal/model/customerr"
	"max.ks1230/spending-nav/internal/model/period"
)

const (
	registeredMessage    = "Registered successfully"
	budgetUpdatedMessage = "Budget updated"

	invalidBodyMessage       = "Invalid request body"
	missingFieldsMessage     = "Email and password are required"
	userExistsMessage        = "User exists"
	invalidCredsMessage      = "Invalid credentials"
	userNotFoundMessage      = "User not found"
	unsupportedPeriodMessage = "Unsupported period"
)

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": invalidBodyMessage})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": missingFieldsMessage})
		return
	}

	err := s.accounts.Register(c.Request.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": registeredMessage})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": invalidBodyMessage})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": missingFieldsMessage})
		return
	}

	token, profile, err := s.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": profile})
}

type budgetRequest struct {
	Budget float64 `json:"budget"`
}

func (s *Server) handleSetBudget(c *gin.Context) {
	var req budgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": invalidBodyMessage})
		return
	}

	userID := s.userID(c)
	budget, err := s.accounts.SetBudget(c.Request.Context(), userID, req.Budget)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.afterWrite(userID, "budget updated")
	c.JSON(http.StatusOK, gin.H{"msg": budgetUpdatedMessage, "budget": budget})
}

type expenseRequest struct {
	Category string    `json:"category"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
	Note     string    `json:"note"`
}

func (s *Server) handleAddExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": invalidBodyMessage})
		return
	}

	userID := s.userID(c)
	rec, err := s.ledger.AddExpense(c.Request.Context(), userID, req.Category, req.Amount, req.Date, req.Note)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.afterWrite(userID, "expense added")
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleListExpenses(c *gin.Context) {
	list, err := s.ledger.ListExpenses(c.Request.Context(), s.userID(c), c.Query("period"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleAnalytics(c *gin.Context) {
	userID := s.userID(c)
	periodName := c.Query("period")

	if s.cache != nil {
		if summary, err := s.cache.GetSummary(userID, periodName); err == nil {
			c.JSON(http.StatusOK, summary)
			return
		}
	}

	summary, err := s.generator.Generate(c.Request.Context(), userID, periodName)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if s.cache != nil {
		if err := s.cache.CacheSummary(userID, periodName, summary); err != nil {
			logger.Error("failed to cache summary", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, summary)
}

// afterWrite drops the user's cached summaries and emits a refresh event.
// Both are best-effort: a dead cache or broker never fails the request.
func (s *Server) afterWrite(userID, reason string) {
	if s.cache != nil {
		if err := s.cache.InvalidateSummaries(userID, period.Names()); err != nil {
			logger.Error("failed to invalidate summaries", zap.Error(err))
		}
	}
	if s.producer != nil {
		if err := s.producer.ProduceRefresh(kafka.RefreshEvent{UserID: userID, Reason: reason}); err != nil {
			logger.Error("failed to produce refresh event", zap.Error(err))
		}
	}
}

func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, customerr.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"msg": userExistsMessage})
	case errors.Is(err, customerr.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"msg": invalidCredsMessage})
	case errors.Is(err, customerr.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": userNotFoundMessage})
	case errors.Is(err, customerr.ErrUnknownPeriod):
		c.JSON(http.StatusBadRequest, gin.H{"msg": unsupportedPeriodMessage})
	default:
		logger.Error("internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
	}
}
