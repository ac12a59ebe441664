package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davicafu/teamhub/pkg/envelope"
)

const WelcomeMessage = "Bem vindo ao Team Hub!"

func RegisterEmployeeRoutes(r gin.IRouter, handler *EmployeeHandler) {
	employees := r.Group("/employees")
	{
		employees.GET("", handler.GetEmployees)
		employees.POST("", handler.AddEmployee)
		employees.DELETE("/:id", handler.DeleteEmployee)
		employees.PUT("/:id", handler.UpdateEmployee)
	}
}

// NewRouter monta el engine con los middlewares, la bienvenida, el health check y las rutas de employees.
func NewRouter(log *zap.Logger, handler *EmployeeHandler) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(log), Recovery(log), CORS())

	r.GET("/", func(c *gin.Context) {
		envelope.Send(c, envelope.OK(WelcomeMessage))
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	RegisterEmployeeRoutes(r, handler)
	return r
}
