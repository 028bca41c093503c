package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/livrolivre/go-library-server/auth"
	"github.com/livrolivre/go-library-server/books"
	"github.com/livrolivre/go-library-server/export"
	"github.com/livrolivre/go-library-server/internal/config"
	"github.com/livrolivre/go-library-server/loans"
	"github.com/livrolivre/go-library-server/users"
)

// Services are the domain services the HTTP layer dispatches to.
type Services struct {
	Auth   *auth.Service
	Users  *users.Service
	Books  *books.Service
	Loans  *loans.Service
	Export *export.Service
	Tokens auth.TokenIssuer
}

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	services Services
}

func New(config config.Config, services Services) (*Server, error) {
	if services.Auth == nil || services.Users == nil || services.Books == nil ||
		services.Loans == nil || services.Export == nil {
		return nil, fmt.Errorf("[Server New] all services are required")
	}
	if services.Tokens == nil {
		return nil, fmt.Errorf("[Server New] token issuer is required")
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   config,
		services: services,
	}
	s.env = config.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
