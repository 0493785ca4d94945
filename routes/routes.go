package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"labrise-backend/config"
	"labrise-backend/controllers"
	"labrise-backend/services"
	"labrise-backend/store"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Store     store.Store
	Queue     *services.QueueService
	History   *services.HistoryService
	Analytics *services.AnalyticsService
	Sync      *services.CustomerSyncService
	Log       zerolog.Logger
	CORS      []string
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORS,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger(deps.Log))

	businessController := &controllers.BusinessController{Store: deps.Store}
	carController := &controllers.CarController{Store: deps.Store}
	serviceController := &controllers.ServiceController{Store: deps.Store}
	staffController := &controllers.StaffController{Store: deps.Store}
	customerController := &controllers.CustomerController{Store: deps.Store, Sync: deps.Sync}
	queueController := &controllers.QueueController{Queue: deps.Queue}
	analyticsController := &controllers.AnalyticsController{Analytics: deps.Analytics, History: deps.History}

	api := r.Group("/api")
	{
		// Tenant directory
		api.POST("/businesses", businessController.CreateBusiness)
		api.GET("/businesses", businessController.GetBusinesses)

		business := api.Group("/businesses/:businessId")
		business.Use(businessController.RequireBusiness())
		{
			business.GET("", businessController.GetBusiness)
			business.PUT("", businessController.UpdateBusiness)
			business.DELETE("", businessController.DeleteBusiness)

			// Car routes
			cars := business.Group("/cars")
			{
				cars.POST("", carController.CreateCar)
				cars.GET("", carController.GetCars)
				cars.GET("/:id", carController.GetCar)
				cars.PUT("/:id", carController.UpdateCar)
				cars.DELETE("/:id", carController.DeleteCar)
			}

			// Service catalog routes
			catalog := business.Group("/services")
			{
				catalog.POST("", serviceController.CreateService)
				catalog.GET("", serviceController.GetServices)
				catalog.GET("/:id", serviceController.GetService)
				catalog.PUT("/:id", serviceController.UpdateService)
				catalog.DELETE("/:id", serviceController.DeleteService)
			}

			// Staff routes
			staff := business.Group("/staff")
			{
				staff.POST("", staffController.CreateStaff)
				staff.GET("", staffController.GetStaff)
				staff.GET("/:id", staffController.GetStaffMember)
				staff.PUT("/:id", staffController.UpdateStaff)
				staff.DELETE("/:id", staffController.DeleteStaff)
			}

			// Customer routes (synthesized, not user-created)
			customers := business.Group("/customers")
			{
				customers.GET("", customerController.GetCustomers)
				customers.POST("/sync", customerController.SyncCustomers)
				customers.GET("/:id", customerController.GetCustomer)
				customers.POST("/:id/cars/:carId", customerController.LinkCar)
				customers.DELETE("/:id", customerController.DeleteCustomer)
			}

			// Queue routes
			queue := business.Group("/queue")
			{
				queue.POST("", queueController.Enqueue)
				queue.GET("", queueController.GetQueue)
				queue.GET("/:id", queueController.GetQueueItem)
				queue.POST("/:id/start", queueController.StartService)
				queue.POST("/:id/complete", queueController.CompleteService)
				queue.PUT("/:id/assign", queueController.AssignStaff)
				queue.DELETE("/:id", queueController.RemoveFromQueue)
			}

			// History routes
			history := business.Group("/history")
			{
				history.GET("", analyticsController.GetHistory)
				history.GET("/car/:carId", analyticsController.GetCarHistory)
				history.PUT("/:id", analyticsController.AnnotateHistory)
			}

			// Analytics routes
			business.GET("/analytics", analyticsController.GetDashboard)
			business.GET("/analytics/revenue", analyticsController.GetRevenue)
		}
	}

	return r
}
