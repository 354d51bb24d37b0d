package cmd

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wiwski/euphrosyne-tools-api/pkg/config"
	"github.com/wiwski/euphrosyne-tools-api/pkg/euapid/webapi"
	"github.com/wiwski/euphrosyne-tools-api/pkg/euapid/webapi/apimiddleware"
	"github.com/wiwski/euphrosyne-tools-api/pkg/projdata"
	"github.com/wiwski/euphrosyne-tools-api/pkg/projpath"
)

type RouteOpts struct {
	store     projdata.Store
	validator *projpath.Validator
	settings  *config.Settings
}

func setupRoutes(e *echo.Echo, opts RouteOpts) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	userAuth := apimiddleware.JWTAuth(apimiddleware.JWTAuthConfig{Secret: opts.settings.JWTSecretKey})
	membership := apimiddleware.ProjectMembershipAuth()
	backendAuth := apimiddleware.BackendServiceAuth(opts.settings.BackendAPIKey)

	dataController := webapi.NewDataController(opts.store, opts.validator)

	g := e.Group("/data")

	g.GET("/:project_name/documents", dataController.ListProjectDocuments, userAuth, membership)
	g.GET("/:project_name/runs/:run_name/:data_type", dataController.ListRunData, userAuth, membership)

	g.GET("/runs/shared_access_signature", dataController.GenerateRunDataSAS, userAuth)
	g.GET("/documents/shared_access_signature/", dataController.GenerateProjectDocumentsSAS, userAuth)
	g.GET("/:project_name/documents/upload/shared_access_signature", dataController.GenerateProjectDocumentsUploadSAS, userAuth, membership)

	g.POST("/:project_name/init", dataController.InitProjectData, backendAuth)
	g.POST("/:project_name/runs/:run_name/init", dataController.InitRunData, backendAuth)
	g.POST("/:project_name/runs/:run_name/rename/:new_run_name", dataController.RenameRunFolder, backendAuth)
}
