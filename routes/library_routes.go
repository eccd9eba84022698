package routes

import (
	"robolibrary/controllers"
	"robolibrary/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterLibraryRoutes(rg *gin.RouterGroup, container *ServiceContainer) {
	libraryController := controllers.NewLibraryController(container.LibraryService)

	library := rg.Group("/library")
	library.Use(middleware.AuthMiddleware(container.JWTSecret))

	// Reads are open to every authenticated dashboard role.
	library.GET("", libraryController.GetContents)             // GET /library (root view)
	library.GET("/folders/:id", libraryController.GetContents) // GET /library/folders/:id
	library.GET("/contents/:id", libraryController.GetContent) // GET /library/contents/:id

	// Mutations are gated to the roles that manage course material.
	editors := library.Group("")
	editors.Use(middleware.RequireRole(middleware.RoleSuperadmin, middleware.RoleSchool, middleware.RoleTeacher))
	{
		editors.POST("/folders", libraryController.CreateFolder)                          // POST /library/folders
		editors.PATCH("/folders/:id/rename", libraryController.RenameFolder)              // PATCH /library/folders/:id/rename
		editors.PATCH("/folders/:id/move", libraryController.MoveFolder)                  // PATCH /library/folders/:id/move
		editors.DELETE("/folders/:id", libraryController.DeleteFolder)                    // DELETE /library/folders/:id (cascades)

		editors.POST("/contents", libraryController.UploadContent)                        // POST /library/contents
		editors.PATCH("/contents/:id/rename", libraryController.RenameContent)            // PATCH /library/contents/:id/rename
		editors.DELETE("/contents/:id", libraryController.DeleteContent)                  // DELETE /library/contents/:id
		editors.POST("/contents/:id/courses", libraryController.AttachCourse)             // POST /library/contents/:id/courses
		editors.DELETE("/contents/:id/courses/:courseId", libraryController.DetachCourse) // DELETE /library/contents/:id/courses/:courseId
	}
}
