package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskpay/taskpay_backend/handlers"
	"github.com/taskpay/taskpay_backend/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/dashboard-analytics", handlers.GetDashboardAnalytics)

	admin.Get("/plan-purchases/pending", handlers.ListPendingPlanPurchases)
	admin.Post("/plan-purchases/:paymentId/process", handlers.ProcessPlanPurchase)

	admin.Get("/submissions/pending", handlers.ListPendingSubmissions)
	admin.Post("/submissions/:submissionId/review", handlers.ReviewSubmission)

	admin.Get("/withdrawals/pending", handlers.ListPendingWithdrawals)
	admin.Post("/withdrawals/:requestId/process", handlers.ProcessWithdrawal)

	admin.Get("/kyc/pending", handlers.ListPendingKYC)
	admin.Post("/kyc/:recordId/review", handlers.ReviewKYC)

	users := admin.Group("/users")
	users.Get("", handlers.GetAllUsers)
	users.Put("/:userId/status", handlers.ToggleUserStatus)

	plans := admin.Group("/plans")
	plans.Post("", handlers.CreatePlan)
	plans.Put("/:planId", handlers.UpdatePlan)
	plans.Delete("/:planId", handlers.DeactivatePlan)

	tasks := admin.Group("/tasks")
	tasks.Post("", handlers.CreateDailyTask)
	tasks.Get("", handlers.ListDailyTasks)

	settings := admin.Group("/settings")
	settings.Get("", handlers.GetSiteSettings)
	settings.Put("", handlers.UpdateSiteSettings)

	reports := admin.Group("/reports")
	reports.Get("/transactions", handlers.GenerateTransactionReport)
}
