package fixture

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/gorilla/mux"
)

// StatusInfo is the payload of the admin status resource. Session drivers poll
// it to detect that the fixture server is ready before issuing requests.
type StatusInfo struct {
	Description string   `json:"description"`
	FixtureURL  string   `json:"fixtureUrl"`
	Scenarios   []string `json:"scenarios"`
}

// AdminServer exposes the control surface of a fixture server process:
// readiness/status, the scenario listing, and remote shutdown. It runs on a
// separate listener from the fixture itself so the raw byte-level responder
// stays free of ordinary HTTP handling.
type AdminServer struct {
	server   *http.Server
	listener net.Listener
}

// StartAdmin binds the admin listener. The onShutdown callback is invoked
// (once, from a request goroutine) when a shutdown is requested remotely.
func StartAdmin(addr string, fixture *Server, onShutdown func(), logger *slog.Logger) (*AdminServer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("admin listen on %s: %w", addr, err)
	}

	router := mux.NewRouter()
	router.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, StatusInfo{
			Description: "cabot HTTP fixture server",
			FixtureURL:  fixture.BaseURL(),
			Scenarios:   fixture.catalog.Names(),
		})
	}).Methods("GET", "HEAD")
	router.HandleFunc("/scenarios", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, describeScenarios(fixture.catalog))
	}).Methods("GET")
	router.HandleFunc("/shutdown", func(w http.ResponseWriter, r *http.Request) {
		logger.Info("shutdown requested")
		w.WriteHeader(http.StatusNoContent)
		go onShutdown()
	}).Methods("POST")

	a := &AdminServer{
		server:   &http.Server{Handler: router},
		listener: listener,
	}
	go func() {
		_ = a.server.Serve(listener)
	}()
	return a, nil
}

func (a *AdminServer) Addr() string {
	return a.listener.Addr().String()
}

func (a *AdminServer) Close() error {
	return a.server.Close()
}

type scenarioDescription struct {
	Name       string `json:"name"`
	StatusLine string `json:"statusLine"`
	Framing    string `json:"framing"`
	BodyBytes  int    `json:"bodyBytes"`
	Parametric bool   `json:"parametric"`
}

func describeScenarios(c *Catalog) []scenarioDescription {
	var out []scenarioDescription
	for _, name := range c.Names() {
		r := c.routes[name]
		if r.parametric != nil {
			out = append(out, scenarioDescription{Name: name, Parametric: true})
			continue
		}
		s := r.scenario
		out = append(out, scenarioDescription{
			Name:       s.Name,
			StatusLine: s.StatusLine,
			Framing:    s.Framing.String(),
			BodyBytes:  len(s.Body),
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
