package handler

import (
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(
	app *fiber.App,
	authHandler *AuthHandler,
	signupHandler *SignupHandler,
	companyHandler *CompanyHandler,
	profileHandler *ProfileHandler,
	joinRequestHandler *JoinRequestHandler,
	healthHandler *HealthHandler,
	authMiddleware fiber.Handler,
	optionalAuth fiber.Handler,
	requireManager fiber.Handler,
	requireSuperAdmin fiber.Handler,
) {
	// Health checks (public)
	app.Get("/health", healthHandler.Health)
	app.Get("/ready", healthHandler.Ready)

	// API v1
	api := app.Group("/api/v1")

	// Auth routes (public)
	auth := api.Group("/auth")
	auth.Post("/signup", signupHandler.Signup)
	auth.Post("/login", authHandler.Login)
	auth.Post("/verify-code", signupHandler.VerifyCode)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/logout", authMiddleware, authHandler.Logout)
	auth.Post("/link", authMiddleware, signupHandler.Link)

	// Profile routes (protected)
	users := api.Group("/users", authMiddleware)
	users.Get("/me", profileHandler.GetMe)

	// Company-scoped routes (protected)
	companies := api.Group("/companies/:companySlug", authMiddleware)
	companies.Get("/me", profileHandler.GetMyProfileIn)
	companies.Get("/members", requireManager, companyHandler.ListMembers)

	// Join requests: submission is public (requesters may not have a
	// credential yet) but picks up the credential when one is presented.
	// Approve and reject additionally check, in the service, that the
	// caller is the approver the request names.
	joinRequests := api.Group("/join-requests")
	joinRequests.Post("/", optionalAuth, joinRequestHandler.Submit)
	joinRequests.Get("/pending", authMiddleware, joinRequestHandler.ListPending)
	joinRequests.Post("/:id/approve", authMiddleware, joinRequestHandler.Approve)
	joinRequests.Post("/:id/reject", authMiddleware, joinRequestHandler.Reject)

	// Super-admin routes
	superadmin := api.Group("/superadmin", authMiddleware, requireSuperAdmin)
	superadmin.Post("/companies", companyHandler.CreateCompany)
	superadmin.Get("/companies", companyHandler.ListCompanies)
	superadmin.Delete("/companies/:slug", companyHandler.DeleteCompany)
}
