package routes

import (
	"robolibrary/services"
	"robolibrary/stores"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// B2Config holds the asset bucket credentials.
type B2Config struct {
	KeyID          string
	ApplicationKey string
	BucketName     string
}

// ServiceContainer holds all services and their store dependencies.
type ServiceContainer struct {
	FolderStore    stores.FolderStore
	ContentStore   stores.ContentStore
	LibraryService *services.LibraryService
	SearchService  *services.SearchService
	AssetService   *services.AssetService
	JWTSecret      string
	MaxFileSize    int64
}

// NewServiceContainer wires the Mongo-backed stores and every service on top
// of them.
func NewServiceContainer(db *mongo.Database, jwtSecret string, maxFileSize int64, b2Config B2Config) (*ServiceContainer, error) {
	assetService, err := services.NewAssetService(b2Config.KeyID, b2Config.ApplicationKey, b2Config.BucketName)
	if err != nil {
		return nil, err
	}

	folderStore := stores.NewMongoFolderStore(db)
	contentStore := stores.NewMongoContentStore(db)

	return &ServiceContainer{
		FolderStore:    folderStore,
		ContentStore:   contentStore,
		LibraryService: services.NewLibraryService(folderStore, contentStore),
		SearchService:  services.NewSearchService(folderStore, contentStore),
		AssetService:   assetService,
		JWTSecret:      jwtSecret,
		MaxFileSize:    maxFileSize,
	}, nil
}

// SetupRoutes registers every route group on the /api group.
func SetupRoutes(api *gin.RouterGroup, container *ServiceContainer) {
	RegisterLibraryRoutes(api, container)
	RegisterSearchRoutes(api, container)
	RegisterAssetRoutes(api, container)
}
