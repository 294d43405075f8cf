package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"linkdrop-bot/internal/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LinksUploaded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "linkdrop_links_uploaded_total",
		Help: "Links added or re-uploaded by admins",
	})
	LinksGranted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "linkdrop_links_granted_total",
		Help: "Links issued to claimants",
	})
	ClaimsEmpty = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "linkdrop_claims_empty_total",
		Help: "Claim requests where nothing was claimable",
	})
	ClaimsMalformed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "linkdrop_claims_malformed_total",
		Help: "Claim inputs that failed to parse",
	})
	DeliveriesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "linkdrop_deliveries_sent_total",
		Help: "Photos delivered to claimants by code",
	})
	DeliveriesNotFound = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "linkdrop_deliveries_not_found_total",
		Help: "Delivery codes that matched nothing",
	})
)

// MustRegister registers all counters
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		LinksUploaded,
		LinksGranted,
		ClaimsEmpty,
		ClaimsMalformed,
		DeliveriesSent,
		DeliveriesNotFound,
	)
}

// StartServer runs an HTTP server with the /metrics endpoint until ctx ends
func StartServer(ctx context.Context, log *logger.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ErrorErr(err, "Metrics server shutdown failed")
		}
	}()

	go func() {
		log.Infof("Metrics server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ErrorErr(err, "Metrics server stopped")
		}
	}()
}
