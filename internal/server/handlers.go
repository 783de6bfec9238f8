package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mindarch/mindarch/internal/ai"
	"github.com/mindarch/mindarch/internal/plan"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func (s *Server) handleSignUp(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	token, err := s.auth.SignUp(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			respondError(c, http.StatusConflict, "username_taken", err)
			return
		}
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	c.JSON(http.StatusCreated, sessionResponse{Token: token, Username: req.Username})
}

func (s *Server) handleLogIn(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	token, err := s.auth.LogIn(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "unauthorized", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	respondOK(c, sessionResponse{Token: token, Username: req.Username})
}

// Tokens are stateless, so logout just acknowledges; the client discards
// its cached session.
func (s *Server) handleLogOut(c *gin.Context) {
	respondOK(c, gin.H{"status": "ok"})
}

func (s *Server) handleSession(c *gin.Context) {
	username := c.GetString(ctxUsername)
	respondOK(c, gin.H{"username": username})
}

func (s *Server) handleGetPlan(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	var record PlanRecord
	err = s.db.WithContext(c.Request.Context()).Where("user_id = ?", userID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "not_found", errors.New("no saved plan"))
			return
		}
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	c.Data(http.StatusOK, "application/json", record.PlanData)
}

func (s *Server) handlePutPlan(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	var p plan.StudyPlan
	if err := c.ShouldBindJSON(&p); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_plan", err)
		return
	}
	data, err := json.Marshal(&p)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}

	// Update-or-insert: one plan per user.
	record := PlanRecord{UserID: userID, PlanData: data}
	err = s.db.WithContext(c.Request.Context()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"plan_data", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	respondOK(c, gin.H{"status": "ok"})
}

func (s *Server) handleDeletePlan(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	// Idempotent: deleting an absent plan is fine.
	err = s.db.WithContext(c.Request.Context()).Where("user_id = ?", userID).Delete(&PlanRecord{}).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleGenerate(c *gin.Context) {
	var params plan.GenerationParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := params.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_params", err)
		return
	}

	schedule, err := s.generator.Generate(c.Request.Context(), params)
	if err != nil {
		var httpErr *ai.HTTPError
		switch {
		case errors.As(err, &httpErr),
			errors.Is(err, ai.ErrEmptyResponse),
			errors.Is(err, ai.ErrMalformedResponse):
			respondError(c, http.StatusBadGateway, "generation_failed", err)
		default:
			respondError(c, http.StatusInternalServerError, "internal", err)
		}
		return
	}
	respondOK(c, schedule)
}

func (s *Server) handleHealthz(c *gin.Context) {
	respondOK(c, gin.H{"status": "ok"})
}
