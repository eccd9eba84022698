package controllers

import (
	"robolibrary/models"
	"robolibrary/services"
	"robolibrary/utils"

	"github.com/gin-gonic/gin"
)

type LibraryController struct {
	libraryService *services.LibraryService
}

func NewLibraryController(libraryService *services.LibraryService) *LibraryController {
	return &LibraryController{libraryService: libraryService}
}

// GetContents returns one folder's children and breadcrumb trail. With no id
// the virtual root is served.
func (lc *LibraryController) GetContents(c *gin.Context) {
	folderID := c.Param("id")
	if folderID == "" {
		folderID = models.RootFolderID
	}

	contents, err := lc.libraryService.GetContents(c.Request.Context(), folderID)
	if err != nil {
		utils.DomainErrorResponse(c, err, "Failed to retrieve folder contents")
		return
	}

	utils.SuccessResponse(c, "Folder contents retrieved successfully", contents)
}

// CreateFolder
func (lc *LibraryController) CreateFolder(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required,min=1,max=255"`
		ParentID string `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data", err.Error())
		return
	}

	folder, err := lc.libraryService.CreateFolder(c.Request.Context(), req.Name, req.ParentID)
	if err != nil {
		utils.DomainErrorResponse(c, err, "Failed to create folder")
		return
	}

	utils.CreatedResponse(c, "Folder created successfully", folder)
}

// UploadContent records a content item. The file itself (if any) is uploaded
// through the assets endpoint first; this call persists the metadata.
func (lc *LibraryController) UploadContent(c *gin.Context) {
	var req services.ContentFields
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data", err.Error())
		return
	}

	content, err := lc.libraryService.UploadContent(c.Request.Context(), req)
	if err != nil {
		utils.DomainErrorResponse(c, err, "Failed to upload content")
		return
	}

	utils.CreatedResponse(c, "Content uploaded successfully", content)
}

// GetContent
func (lc *LibraryController) GetContent(c *gin.Context) {
	content, err := lc.libraryService.GetContent(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.DomainErrorResponse(c, err, "Failed to retrieve content")
		return
	}

	utils.SuccessResponse(c, "Content retrieved successfully", content)
}

// RenameFolder
func (lc *LibraryController) RenameFolder(c *gin.Context) {
	lc.renameItem(c, services.KindFolder)
}

// RenameContent retitles a content item.
func (lc *LibraryController) RenameContent(c *gin.Context) {
	lc.renameItem(c, services.KindFile)
}

func (lc *LibraryController) renameItem(c *gin.Context, kind services.ItemKind) {
	var req struct {
		Name string `json:"name" binding:"required,min=1,max=255"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data", err.Error())
		return
	}

	if err := lc.libraryService.RenameItem(c.Request.Context(), c.Param("id"), kind, req.Name); err != nil {
		utils.DomainErrorResponse(c, err, "Failed to rename item")
		return
	}

	utils.SuccessResponse(c, "Item renamed successfully", nil)
}

// DeleteFolder removes a folder together with its whole subtree.
func (lc *LibraryController) DeleteFolder(c *gin.Context) {
	lc.deleteItem(c, services.KindFolder)
}

// DeleteContent removes a single content item.
func (lc *LibraryController) DeleteContent(c *gin.Context) {
	lc.deleteItem(c, services.KindFile)
}

func (lc *LibraryController) deleteItem(c *gin.Context, kind services.ItemKind) {
	if err := lc.libraryService.DeleteItem(c.Request.Context(), c.Param("id"), kind); err != nil {
		utils.DomainErrorResponse(c, err, "Failed to delete item")
		return
	}

	utils.SuccessResponse(c, "Item deleted successfully", nil)
}

// MoveFolder re-parents a folder.
func (lc *LibraryController) MoveFolder(c *gin.Context) {
	var req struct {
		ParentID string `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data", err.Error())
		return
	}

	if err := lc.libraryService.MoveFolder(c.Request.Context(), c.Param("id"), req.ParentID); err != nil {
		utils.DomainErrorResponse(c, err, "Failed to move folder")
		return
	}

	utils.SuccessResponse(c, "Folder moved successfully", nil)
}

// AttachCourse associates a content item with a course.
func (lc *LibraryController) AttachCourse(c *gin.Context) {
	var req struct {
		CourseID string `json:"course_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data", err.Error())
		return
	}

	if err := lc.libraryService.AttachCourse(c.Request.Context(), c.Param("id"), req.CourseID); err != nil {
		utils.DomainErrorResponse(c, err, "Failed to attach course")
		return
	}

	utils.SuccessResponse(c, "Course attached successfully", nil)
}

// DetachCourse removes a course association.
func (lc *LibraryController) DetachCourse(c *gin.Context) {
	if err := lc.libraryService.DetachCourse(c.Request.Context(), c.Param("id"), c.Param("courseId")); err != nil {
		utils.DomainErrorResponse(c, err, "Failed to detach course")
		return
	}

	utils.SuccessResponse(c, "Course detached successfully", nil)
}
