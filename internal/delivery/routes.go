package delivery

import (
	"net/http"

	"github.com/Vovarama1992/reels-analyzer/internal/ports"
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(
	r chi.Router,
	auth ports.AuthService,
	hAuth *AuthHandler,
	hReel *ReelHandler,
	hHistory *HistoryHandler,
	metrics http.Handler,
) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	// login
	if auth.Enabled() {
		r.Post("/api/login", hAuth.Login)
	}

	// reels
	r.Post("/analyze", hReel.Analyze)
	r.Post("/save", hReel.Save)
	r.Post("/analyzeSave", hReel.AnalyzeSave)

	// journal
	r.Get("/api/history/{user}", hHistory.GetHistory)
}
