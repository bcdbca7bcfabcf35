package httptransport

import (
	"expvar"
	"fmt"
	"net/http"
	"sort"
	"strings"

	appowner "hero-staking/internal/app/owner"
	apppublic "hero-staking/internal/app/public"
	"hero-staking/internal/config"
	"hero-staking/internal/staking"
	"hero-staking/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Services is everything the router dispatches to.
type Services struct {
	Store   store.Store
	Public  *apppublic.Service
	Owner   *appowner.Service
	Staking *staking.Service
}

func NewRouter(svc Services, cfg config.ServerConfig) *chi.Mux {
	publicHandlers := NewPublicHandlers(svc.Public)
	ownerHandlers := NewOwnerHandlers(svc.Owner)
	adminHandlers := NewAdminHandlers(svc.Store, svc.Staking)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", adminHandlers.Health())

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())
		r.Get("/public/model", publicHandlers.Model())
		r.Get("/public/rarities", publicHandlers.Rarities())
		r.Get("/public/factions", publicHandlers.Factions())
		r.Get("/public/quote", publicHandlers.Quote())

		r.Route("/owners/{owner}", func(r chi.Router) {
			r.Post("/mint", ownerHandlers.Mint())
			r.Get("/heroes", ownerHandlers.Heroes())
			r.Get("/heroes/available", ownerHandlers.Available())
			r.Get("/staking", ownerHandlers.Staking())
			r.Get("/staking/stats", ownerHandlers.Stats())
			r.Post("/staking/stake", ownerHandlers.Stake())
			r.Post("/staking/claim", ownerHandlers.Claim())
			r.Post("/staking/{hero_id}/unstake", ownerHandlers.Unstake())
			r.Get("/tx", ownerHandlers.Transactions())
		})

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminAPIKey))
			r.Route("/admin", func(r chi.Router) {
				r.Use(BodyCaptureMiddleware(4096))
				r.MethodFunc(http.MethodGet, "/model", adminHandlers.Model())
				r.MethodFunc(http.MethodPut, "/model", adminHandlers.Model())
			})
			r.Get("/debug/vars", expvar.Handler().ServeHTTP)
		})
	})
	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 64)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
