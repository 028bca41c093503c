package server

import (
	"net/http"

	"github.com/livrolivre/go-library-server/users"
)

func (s *Server) initRoutes() {
	// CORS preflight for every route; the CORS middleware answers requests
	// that carry an Origin header before this handler runs.
	s.RegisterRouteHandler("OPTIONS /", ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, s.APIMiddleware()...))

	// AUTH
	s.RegisterRouteHandler("POST "+RouteAuthSignup, ChainMiddleware(s.SignUpHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthSignin, ChainMiddleware(s.SignInHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthProfile, ChainMiddleware(s.ProfileHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("POST "+RouteAuthRecoverPassword, ChainMiddleware(s.RecoverPasswordHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthChangePassword, ChainMiddleware(s.ChangePasswordHandler(), s.APIMiddleware(s.RequireAuth())...))

	// USERS
	s.RegisterRouteHandler("GET "+RouteUsers, ChainMiddleware(s.ListUsersHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireRole(users.RoleAdmin))...))
	s.RegisterRouteHandler("GET "+RouteUserByID, ChainMiddleware(s.GetUserHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdminOrSelf())...))
	s.RegisterRouteHandler("PATCH "+RouteUserByID, ChainMiddleware(s.UpdateUserHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdminOrSelf())...))
	s.RegisterRouteHandler("DELETE "+RouteUserByID, ChainMiddleware(s.DeleteUserHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdminOrSelf())...))
	s.RegisterRouteHandler("GET "+RouteUserLoans, ChainMiddleware(s.UserLoansHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdminOrSelf())...))

	// BOOKS
	s.RegisterRouteHandler("GET "+RouteBooksSearch, ChainMiddleware(s.SearchBooksHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+RouteBookByID, ChainMiddleware(s.GetBookHandler(), s.APIMiddleware(s.RequireAuth())...))

	// LOANS
	s.RegisterRouteHandler("POST "+RouteLoans, ChainMiddleware(s.CreateLoanHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("POST "+RouteLoanReturn, ChainMiddleware(s.ReturnLoanHandler(), s.APIMiddleware(s.RequireAuth())...))

	// EXPORT
	s.RegisterRouteHandler("GET "+RouteExportUsersCSV, ChainMiddleware(s.ExportUsersCSVHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireRole(users.RoleAdmin))...))
}
