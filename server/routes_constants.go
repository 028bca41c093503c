package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteAuthSignup          = "/auth/signup"
	RouteAuthSignin          = "/auth/signin"
	RouteAuthProfile         = "/auth/profile"
	RouteAuthRecoverPassword = "/auth/recover-password"
	RouteAuthChangePassword  = "/auth/change-password"

	// User Routes
	RouteUsers     = "/users"
	RouteUserByID  = "/users/{id}"
	RouteUserLoans = "/users/{id}/loans"

	// Book Routes
	RouteBooksSearch = "/books/search"
	RouteBookByID    = "/books/{id}"

	// Loan Routes
	RouteLoans      = "/loans"
	RouteLoanReturn = "/loans/{id}/return"

	// Export Routes
	RouteExportUsersCSV = "/export/users.csv"
)
