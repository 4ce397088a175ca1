package router

import (
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mealtracker/meal-tracker/calendar"
	"github.com/mealtracker/meal-tracker/config"
	"github.com/mealtracker/meal-tracker/controllers"
	"github.com/mealtracker/meal-tracker/middlewares"
	"github.com/mealtracker/meal-tracker/services"
	"github.com/mealtracker/meal-tracker/utils"
	"github.com/mealtracker/meal-tracker/web"
	"github.com/shopspring/decimal"
)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": func(d decimal.Decimal) string { return utils.FormatCurrency(d) },
		"iso":   func(t time.Time) string { return calendar.Key(t) },
	}
}

func SetupRouter(svc *services.Services, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.SameOrigin())
	r.Use(middlewares.OptionalAuth())

	tmpl := template.Must(template.New("").Funcs(templateFuncs()).ParseFS(web.TemplatesFS, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic(err)
	}
	r.StaticFS("/static", http.FS(static))

	userCtrl := controllers.NewUserController(svc)
	adminCtrl := controllers.NewAdminController(svc)
	mealCtrl := controllers.NewMealController(svc)
	priceCtrl := controllers.NewPriceController(svc)
	paymentCtrl := controllers.NewPaymentController(svc)
	memberCtrl := controllers.NewMemberController(svc)
	reportCtrl := controllers.NewReportController(svc)
	apiCtrl := controllers.NewAPIController(svc)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/healthz", func(c *gin.Context) {
		if _, err := svc.Users.AdminExists(c.Request.Context()); err != nil {
			utils.ErrorLogger.WithError(err).Error("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	loginLimiter := middlewares.NewLoginLimiter(cfg.LoginRatePerMinute)
	public := r.Group("/")
	public.Use(loginLimiter.Limit())
	{
		public.GET("/login", userCtrl.LoginPage)
		public.POST("/login", userCtrl.Login)
		public.GET("/admin-signup", userCtrl.AdminSignupPage)
		public.POST("/admin-signup", userCtrl.AdminSignup)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/logout", userCtrl.Logout)
		auth.GET("/my-meals", mealCtrl.MyMeals)
		auth.POST("/my-meals", mealCtrl.DecideMeal)
	}

	admin := auth.Group("/")
	admin.Use(middlewares.RequireAdmin())
	{
		admin.GET("/", adminCtrl.Dashboard)

		admin.GET("/daily-meals", mealCtrl.DailyMeals)
		admin.POST("/daily-meals", mealCtrl.ToggleMeal)

		admin.GET("/manage-price", priceCtrl.ManagePrice)
		admin.POST("/manage-price", priceCtrl.SetPrice)

		admin.GET("/manage-payments", paymentCtrl.ManagePayments)
		admin.POST("/manage-payments", paymentCtrl.RecordPayment)

		admin.GET("/manage-members", memberCtrl.ManageMembers)
		admin.POST("/manage-members", memberCtrl.MemberAction)

		admin.GET("/reports/weekly.csv", reportCtrl.WeeklyCSV)
		admin.GET("/reports/weekly.pdf", reportCtrl.WeeklyPDF)
		admin.GET("/reports/weekly-chart.png", reportCtrl.WeeklyChart)
	}

	api := r.Group("/api")
	if cfg.APIRatePerMinute > 0 {
		api.Use(middlewares.NewRateLimiter(cfg.APIRatePerMinute, time.Minute).RateLimit())
	}
	api.Use(middlewares.AuthMiddleware(), middlewares.RequireAdmin())
	{
		api.GET("/members/:id/summary", apiCtrl.MemberSummary)
		api.POST("/attendance/decision", apiCtrl.SetDecision)
	}

	return r
}
