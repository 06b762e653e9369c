package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// BiorhythmRoutes is the set of handlers the router wires up.
type BiorhythmRoutes interface {
	Ping(w http.ResponseWriter, r *http.Request)
	GetAbout(w http.ResponseWriter, r *http.Request)
	GetBirthDate(w http.ResponseWriter, r *http.Request)
	PutBirthDate(w http.ResponseWriter, r *http.Request)
	DeleteBirthDate(w http.ResponseWriter, r *http.Request)
	GetReadout(w http.ResponseWriter, r *http.Request)
	GetSeries(w http.ResponseWriter, r *http.Request)
	GetChartImage(w http.ResponseWriter, r *http.Request)
	GetChartOps(w http.ResponseWriter, r *http.Request)
	GetChartHTML(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	handler BiorhythmRoutes
	metrics *Metrics
	router  *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	handler BiorhythmRoutes,
	metrics *Metrics,
	router *mux.Router) *Router {
	return &Router{
		handler: handler,
		metrics: metrics,
		router:  router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(r.metrics.Middleware)

	r.router.HandleFunc("/ping", r.handler.Ping).Methods("GET")
	r.router.Handle("/metrics", r.metrics.Handler()).Methods("GET")

	r.router.HandleFunc("/v1/about", r.handler.GetAbout).Methods("GET")

	// body: {"birth_date":"YYYY-MM-DD"}
	r.router.HandleFunc("/v1/birthdate", r.handler.GetBirthDate).Methods("GET")
	r.router.HandleFunc("/v1/birthdate", r.handler.PutBirthDate).Methods("PUT")
	r.router.HandleFunc("/v1/birthdate", r.handler.DeleteBirthDate).Methods("DELETE")

	// expects ?birth={YYYY-MM-DD}&center={YYYY-MM-DD}&span={days}, all optional
	r.router.HandleFunc("/v1/readout", r.handler.GetReadout).Methods("GET")
	r.router.HandleFunc("/v1/series", r.handler.GetSeries).Methods("GET")

	// chart endpoints also take &width={px}&height={px}
	r.router.HandleFunc("/v1/chart/ops", r.handler.GetChartOps).Methods("GET")
	r.router.HandleFunc("/v1/chart.html", r.handler.GetChartHTML).Methods("GET")
	r.router.HandleFunc("/v1/chart.{format:png|svg}", r.handler.GetChartImage).Methods("GET")
}
