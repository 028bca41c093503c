package server

import (
	"net/http"
	"strings"

	"github.com/livrolivre/go-library-server/export"
)

// ExportUsersCSVHandler streams the selected user records as a CSV download.
// User IDs come from a comma-separated "ids" query parameter.
func (s *Server) ExportUsersCSVHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ids []string
		if raw := r.URL.Query().Get("ids"); raw != "" {
			for _, id := range strings.Split(raw, ",") {
				if id = strings.TrimSpace(id); id != "" {
					ids = append(ids, id)
				}
			}
		}

		data, err := s.services.Export.GenerateUsersCSV(r.Context(), export.Options{UserIDs: ids})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="users.csv"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
