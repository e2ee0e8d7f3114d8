package http

import (
	"net/http"
	"time"

	httpmw "github.com/moidabeast/chattr/internal/transport/http/middleware"
	"github.com/moidabeast/chattr/internal/transport/ws"
	"github.com/moidabeast/chattr/pkg/httputil"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(h *Handler, wsServer *ws.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(httputil.MiddlewareRequestID)
	r.Use(httputil.MiddlewareLogging)
	r.Use(middlewareChi.RealIP)
	r.Use(middlewareChi.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-User-ID", httputil.HeaderRequestID},
	}))

	// WS endpoint
	r.Get("/ws/rooms/{id}", wsServer.HandleWS)

	// Все маршруты требуют access_token и user_id
	r.Group(func(pr chi.Router) {
		pr.Use(httpmw.AuthMiddleware)
		pr.Use(middlewareChi.Timeout(30 * time.Second))

		pr.Route("/rooms", func(rm chi.Router) {
			rm.Post("/", h.CreateRoom)
			rm.Get("/", h.ListRooms)

			rm.Route("/{id}", func(rr chi.Router) {
				rr.Get("/", h.GetRoom)
				rr.Post("/view", h.RecordView)
				rr.Get("/feed", h.GetFeed)

				rr.Route("/pin", func(rp chi.Router) {
					rp.Post("/", h.PinMessage)
					rp.Delete("/", h.UnpinMessage)
					rp.Get("/", h.GetPinnedMessage)
				})

				rr.Route("/messages", func(rms chi.Router) {
					rms.Post("/", h.SendMessage)
					rms.Get("/", h.GetMessages)

					rms.Route("/{messageID}", func(rmsg chi.Router) {
						rmsg.Get("/replies", h.GetReplies)
						rmsg.Get("/preview", h.GetReplyPreview)
						rmsg.Post("/reactions", h.AddReaction)
						rmsg.Get("/reactions", h.GetReactions)
						rmsg.Delete("/reactions/{emoji}", h.RemoveReaction)
					})
				})
			})
		})

		pr.Route("/identity", func(ri chi.Router) {
			ri.Post("/username", h.UpdateUsername)
			ri.Post("/avatar", h.UpdateAvatar)
		})

		pr.Post("/admin/presence/cleanup", h.CleanupPresence)
	})

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
