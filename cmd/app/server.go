package main

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// startAdminServer serves the observation endpoints. The admin surface is
// supplementary; its failure must not take the coordinator down.
func startAdminServer(host, port string, logger *zap.Logger) {
	addr := fmt.Sprintf("%s:%s", host, port)
	logger.Info("admin_listening", zap.String("addr", addr))
	handler := withCORS(http.DefaultServeMux)
	if err := http.ListenAndServe(addr, handler); err != nil && err != http.ErrServerClosed {
		logger.Error("admin_server_down", zap.Error(err))
	}
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		h.ServeHTTP(w, r)
	})
}
