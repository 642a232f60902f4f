package handlers

import (
	"net/http"

	"github.com/someswar123624/job-portal-backend/internal/http/metrics"
	"github.com/someswar123624/job-portal-backend/internal/http/response"
)

type MetricsHandler struct {
	collector *metrics.Collector
}

func NewMetricsHandler(collector *metrics.Collector) *MetricsHandler {
	return &MetricsHandler{collector: collector}
}

func (h *MetricsHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.collector.Snapshot())
}
