package webapi

import (
	"errors"
	"net/http"
	"path"

	"github.com/labstack/echo/v4"
	"github.com/wiwski/euphrosyne-tools-api/pkg/euapid/webapi/apimiddleware"
	"github.com/wiwski/euphrosyne-tools-api/pkg/projdata"
	"github.com/wiwski/euphrosyne-tools-api/pkg/projpath"
)

// DataController serves the /data routes: project document and run data
// listings, shared access signature URLs and the directory lifecycle calls
// made by the euphrosyne backend.
type DataController struct {
	store     projdata.Store
	validator *projpath.Validator
}

func NewDataController(store projdata.Store, validator *projpath.Validator) *DataController {
	return &DataController{store: store, validator: validator}
}

type detailResponse struct {
	Detail string `json:"detail"`
}

type fieldError struct {
	Loc []string `json:"loc"`
	Msg string   `json:"msg"`
}

type validationErrorResponse struct {
	Detail []fieldError `json:"detail"`
}

func validationError(loc []string, msg string) validationErrorResponse {
	return validationErrorResponse{Detail: []fieldError{{Loc: loc, Msg: msg}}}
}

func (c *DataController) ListProjectDocuments(ctx echo.Context) error {
	files, err := c.store.GetProjectDocuments(ctx.Param("project_name"))
	if err != nil {
		if errors.Is(err, projdata.ErrProjectDocumentsNotFound) {
			return ctx.JSON(http.StatusNotFound, detailResponse{Detail: "Folder for the project documents not found"})
		}
		return err
	}

	return ctx.JSON(http.StatusOK, files)
}

func (c *DataController) ListRunData(ctx echo.Context) error {
	dataType := projdata.RunDataType(ctx.Param("data_type"))
	if !dataType.Valid() {
		return ctx.JSON(http.StatusUnprocessableEntity,
			validationError([]string{"path", "data_type"}, "data_type must be one of raw_data, processed_data, HDF5"))
	}

	files, err := c.store.GetRunFiles(ctx.Param("project_name"), ctx.Param("run_name"), dataType)
	if err != nil {
		if errors.Is(err, projdata.ErrRunDataNotFound) {
			return ctx.JSON(http.StatusNotFound, detailResponse{Detail: "Run data not found"})
		}
		return err
	}

	return ctx.JSON(http.StatusOK, files)
}

type sasURLResponse struct {
	URL string `json:"url"`
}

// GenerateRunDataSAS returns a signed URL used to directly download run data
// from the share. Admins additionally get write, create and delete.
func (c *DataController) GenerateRunDataSAS(ctx echo.Context) error {
	filePath := ctx.QueryParam("path")
	user := apimiddleware.UserFromContext(ctx)

	if err := c.validator.ValidateRunDataPath(filePath, user); err != nil {
		var pathErr *projpath.InvalidPathError
		if errors.As(err, &pathErr) {
			return ctx.JSON(http.StatusUnprocessableEntity, validationError([]string{"query", "path"}, pathErr.Message))
		}
		return err
	}

	url := c.store.GenerateRunDataSASURL(path.Dir(filePath), path.Base(filePath), user.IsAdmin)
	return ctx.JSON(http.StatusOK, sasURLResponse{URL: url})
}

// GenerateProjectDocumentsSAS returns a signed URL used to directly download
// or delete a project document.
func (c *DataController) GenerateProjectDocumentsSAS(ctx echo.Context) error {
	filePath := ctx.QueryParam("path")
	user := apimiddleware.UserFromContext(ctx)

	if err := c.validator.ValidateDocumentPath(filePath, user); err != nil {
		var pathErr *projpath.InvalidPathError
		if errors.As(err, &pathErr) {
			return ctx.JSON(http.StatusUnprocessableEntity, validationError([]string{"query", "path"}, pathErr.Message))
		}
		return err
	}

	url := c.store.GenerateProjectDocumentsSASURL(path.Dir(filePath), path.Base(filePath))
	return ctx.JSON(http.StatusOK, sasURLResponse{URL: url})
}

// GenerateProjectDocumentsUploadSAS returns a signed URL used to upload a
// document into the project's documents directory. No path validation is
// needed: the directory is derived from the project path parameter, which the
// membership middleware already checked.
func (c *DataController) GenerateProjectDocumentsUploadSAS(ctx echo.Context) error {
	fileName := ctx.QueryParam("file_name")
	if fileName == "" {
		return ctx.JSON(http.StatusUnprocessableEntity,
			validationError([]string{"query", "file_name"}, "field required"))
	}

	url := c.store.GenerateProjectDocumentsUploadSASURL(ctx.Param("project_name"), fileName)
	return ctx.JSON(http.StatusOK, sasURLResponse{URL: url})
}

func (c *DataController) InitProjectData(ctx echo.Context) error {
	if err := c.store.InitProjectDirectory(ctx.Param("project_name")); err != nil {
		return folderCreationResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *DataController) InitRunData(ctx echo.Context) error {
	if err := c.store.InitRunDirectory(ctx.Param("project_name"), ctx.Param("run_name")); err != nil {
		return folderCreationResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *DataController) RenameRunFolder(ctx echo.Context) error {
	err := c.store.RenameRunDirectory(ctx.Param("project_name"), ctx.Param("run_name"), ctx.Param("new_run_name"))
	if err != nil {
		return folderCreationResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func folderCreationResponse(ctx echo.Context, err error) error {
	var folderErr *projdata.FolderCreationError
	if errors.As(err, &folderErr) {
		return ctx.JSON(http.StatusBadRequest, detailResponse{Detail: folderErr.Message})
	}

	return err
}
