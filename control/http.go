package control

import (
	"encoding/json"
	"net/http"

	"github.com/golang/glog"
)

type request struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// Handler serves the API: GET /api/v1/graphql?query=... and POST /api/v2/graphql with a
// JSON {query, variables} body.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/graphql", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		glog.V(2).Info("control: ", query)
		s.respond(w, query, nil)
	})
	mux.HandleFunc("/api/v2/graphql", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		glog.V(2).Info("control: ", req.Query)
		s.respond(w, req.Query, req.Variables)
	})
	return mux
}

func (s *Server) respond(w http.ResponseWriter, query string, vars map[string]interface{}) {
	res := s.Query(query, vars)
	for _, err := range res.Errors {
		glog.Warningf("control: %v", err)
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		glog.Errorf("control: writing response: %v", err)
	}
}
