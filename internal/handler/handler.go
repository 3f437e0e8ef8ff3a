package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Dan9191/commission-tracker/internal/middleware"
	"github.com/Dan9191/commission-tracker/internal/models"
	"github.com/Dan9191/commission-tracker/internal/repository"
	"github.com/Dan9191/commission-tracker/internal/service"
	"github.com/sirupsen/logrus"
)

// TargetsService is the business logic the handlers call
type TargetsService interface {
	GetAverages(ctx context.Context, userID string) (*models.HistoricalAverages, error)
	RefreshAverages(ctx context.Context, userID string) error
	Calculate(ctx context.Context, userID string, req service.CalculateRequest) (*models.CalculationResult, error)
	Projections(baseAnnualPolicies int, avgPolicyPremium float64, rates []float64) ([]models.PersistencyScenario, error)
	SaveTargets(ctx context.Context, userID string, req service.CalculateRequest) (*models.UserTargets, error)
	GetTargets(ctx context.Context, userID string) (*models.UserTargets, error)
	Progress(ctx context.Context, userID string) (*models.AllTargetsProgress, error)
	CheckMilestones(ctx context.Context, userID string) (*models.MilestoneCheck, error)
}

type Handler struct {
	svc TargetsService
	log *logrus.Logger
}

func NewHandler(svc TargetsService, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// ScenariosRequest is the body of a persistency projection request
type ScenariosRequest struct {
	BaseAnnualPolicies int       `json:"base_annual_policies"`
	AvgPolicyPremium   float64   `json:"avg_policy_premium"`
	Rates              []float64 `json:"rates"`
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetAverages returns the caller's historical averages; ?refresh=true bypasses the cache
func (h *Handler) GetAverages(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	if refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh")); refresh {
		if err := h.svc.RefreshAverages(r.Context(), userID); err != nil {
			h.log.Warnf("Failed to refresh averages for user %s: %v", userID, err)
		}
	}
	avg, err := h.svc.GetAverages(r.Context(), userID)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, avg)
}

// Calculate handles target calculation for an income goal
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req service.CalculateRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.svc.Calculate(r.Context(), userID, req)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Scenarios handles persistency projections for an explicit policy base
func (h *Handler) Scenarios(w http.ResponseWriter, r *http.Request) {
	var req ScenariosRequest
	if !decode(w, r, &req) {
		return
	}
	scenarios, err := h.svc.Projections(req.BaseAnnualPolicies, req.AvgPolicyPremium, req.Rates)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scenarios)
}

// GetTargets returns the caller's stored targets
func (h *Handler) GetTargets(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	t, err := h.svc.GetTargets(r.Context(), userID)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// SaveTargets calculates and stores targets for the caller
func (h *Handler) SaveTargets(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req service.CalculateRequest
	if !decode(w, r, &req) {
		return
	}
	t, err := h.svc.SaveTargets(r.Context(), userID, req)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// Progress returns the caller's progress against stored targets
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	p, err := h.svc.Progress(r.Context(), userID)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CheckMilestones evaluates and stores newly earned achievements
func (h *Handler) CheckMilestones(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	check, err := h.svc.CheckMilestones(r.Context(), userID)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, check)
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return "", false
	}
	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.log.Errorf("Request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"status": "error", "message": msg})
}
