package routes

import (
	"robolibrary/controllers"
	"robolibrary/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterAssetRoutes(rg *gin.RouterGroup, container *ServiceContainer) {
	assetController := controllers.NewAssetController(container.AssetService, container.MaxFileSize)

	assets := rg.Group("/assets")
	assets.Use(middleware.AuthMiddleware(container.JWTSecret))

	assets.GET("/url/*name", assetController.GetAssetURL) // GET /assets/url/<object name>

	uploaders := assets.Group("")
	uploaders.Use(middleware.RequireRole(middleware.RoleSuperadmin, middleware.RoleSchool, middleware.RoleTeacher))
	{
		uploaders.POST("", assetController.UploadAsset) // POST /assets
	}
}
