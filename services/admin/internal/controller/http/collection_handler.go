package http

import (
	"errors"
	"net/http"
	"strconv"

	"asme-site/pkg/listing"
	"asme-site/pkg/logger"
	"asme-site/services/admin/internal/usecase"

	"github.com/gin-gonic/gin"
)

var errInvalidBody = errors.New("cuerpo de la solicitud inválido")

// CreateDecoder reads a new record from the request. It returns the URLs of
// any objects it uploaded so they can be discarded if the record is rejected.
type CreateDecoder[E usecase.Entity] func(c *gin.Context) (E, []string, error)

type CollectionHandler[E usecase.Entity, P usecase.Patch] struct {
	useCase usecase.CollectionUseCase[E, P]
	decode  CreateDecoder[E]
	logger  *logger.Logger
}

func NewCollectionHandler[E usecase.Entity, P usecase.Patch](useCase usecase.CollectionUseCase[E, P], decode CreateDecoder[E], logger *logger.Logger) *CollectionHandler[E, P] {
	return &CollectionHandler[E, P]{
		useCase: useCase,
		decode:  decode,
		logger:  logger,
	}
}

// Register mounts the collection routes on group, which is expected to be the
// collection's own prefix (e.g. /api/v1/admin/posts).
func (h *CollectionHandler[E, P]) Register(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/selection", h.Selection)
	group.POST("/selection/toggle", h.Toggle)
	group.POST("/selection/page", h.SelectPage)
	group.DELETE("/selection", h.ClearSelection)
	group.POST("/bulk", h.Bulk)
	group.GET("/:id", h.Get)
	group.PATCH("/:id", h.Update)
	group.POST("/:id/archive", h.Archive)
	group.POST("/:id/unarchive", h.Unarchive)
	group.DELETE("/:id", h.Delete)
}

type ListResponse[E usecase.Entity] struct {
	Items      []E  `json:"items"`
	Page       int  `json:"page"`
	TotalPages int  `json:"totalPages"`
	Total      int  `json:"total"`
	PageSize   int  `json:"pageSize"`
	Empty      bool `json:"empty"`
}

func newListResponse[E usecase.Entity](page listing.Page[E]) ListResponse[E] {
	items := page.Items
	if items == nil {
		items = []E{}
	}
	return ListResponse[E]{
		Items:      items,
		Page:       page.Page,
		TotalPages: page.TotalPages,
		Total:      page.Total,
		PageSize:   page.PageSize,
		Empty:      page.Empty(),
	}
}

// parseQuery reads view, q, kind, sort, page and pageSize. Malformed numbers
// fall back to the first page and the collection's page size.
func parseQuery(c *gin.Context) listing.Query {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 0
	}
	pageSize, err := strconv.Atoi(c.Query("pageSize"))
	if err != nil || pageSize > 100 {
		pageSize = 0
	}

	return listing.Query{
		View:     listing.ParseView(c.Query("view")),
		Search:   c.Query("q"),
		Kind:     c.Query("kind"),
		Sort:     listing.ParseSort(c.Query("sort")),
		Page:     page,
		PageSize: pageSize,
	}
}

// List godoc
// @Summary      List records
// @Description  Filters, sorts and paginates a collection. kind=all disables the kind filter.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        collection path string true "posts, legal-posts, clients, casos or appointments"
// @Param        view query string false "active or archived" Enums(active, archived)
// @Param        q query string false "Case-insensitive search"
// @Param        kind query string false "Type, category or status; all for no filter"
// @Param        sort query string false "Sort key" Enums(date_desc, date_asc, kind_asc, kind_desc)
// @Param        page query int false "Zero-based page"
// @Param        pageSize query int false "Page size"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /admin/{collection} [get]
func (h *CollectionHandler[E, P]) List(c *gin.Context) {
	page, err := h.useCase.List(c.Request.Context(), parseQuery(c))
	if err != nil {
		h.respondError(c, err, "No se pudo cargar la lista")
		return
	}
	c.JSON(http.StatusOK, newListResponse(page))
}

// Get godoc
// @Summary      Get record
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        collection path string true "Collection"
// @Param        id path string true "Record ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /admin/{collection}/{id} [get]
func (h *CollectionHandler[E, P]) Get(c *gin.Context) {
	record, err := h.useCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "No se pudo cargar el registro")
		return
	}
	c.JSON(http.StatusOK, record)
}

// Create godoc
// @Summary      Create record
// @Description  JSON body in camelCase. Posts also accept multipart/form-data with featuredImage and media files.
// @Tags         admin
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        collection path string true "Collection"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /admin/{collection} [post]
func (h *CollectionHandler[E, P]) Create(c *gin.Context) {
	record, uploaded, err := h.decode(c)
	if err != nil {
		h.respondError(c, err, "No se pudo procesar el archivo")
		return
	}

	created, err := h.useCase.Create(c.Request.Context(), c.GetString("user_id"), record, uploaded...)
	if err != nil {
		h.respondError(c, err, "No se pudo guardar el registro")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update godoc
// @Summary      Update record
// @Description  Partial update; only fields present in the body change.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        collection path string true "Collection"
// @Param        id path string true "Record ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/{collection}/{id} [patch]
func (h *CollectionHandler[E, P]) Update(c *gin.Context) {
	var patch P
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody.Error()})
		return
	}

	updated, err := h.useCase.Update(c.Request.Context(), c.GetString("user_id"), c.Param("id"), patch)
	if err != nil {
		h.respondError(c, err, "No se pudo actualizar el registro")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Archive godoc
// @Summary      Archive record
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        collection path string true "Collection"
// @Param        id path string true "Record ID"
// @Success      200  {object}  listing.BulkResult
// @Failure      404  {object}  map[string]string
// @Router       /admin/{collection}/{id}/archive [post]
func (h *CollectionHandler[E, P]) Archive(c *gin.Context) {
	result, err := h.useCase.Archive(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	h.respondResult(c, result, err, "No se pudo archivar el registro")
}

// Unarchive godoc
// @Summary      Restore archived record
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        collection path string true "Collection"
// @Param        id path string true "Record ID"
// @Success      200  {object}  listing.BulkResult
// @Failure      404  {object}  map[string]string
// @Router       /admin/{collection}/{id}/unarchive [post]
func (h *CollectionHandler[E, P]) Unarchive(c *gin.Context) {
	result, err := h.useCase.Unarchive(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	h.respondResult(c, result, err, "No se pudo restaurar el registro")
}

// Delete godoc
// @Summary      Delete record
// @Description  Deletes the row and its media. Storage failures are listed in mediaFailures; the row is removed anyway.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        collection path string true "Collection"
// @Param        id path string true "Record ID"
// @Success      200  {object}  listing.BulkResult
// @Failure      404  {object}  map[string]string
// @Router       /admin/{collection}/{id} [delete]
func (h *CollectionHandler[E, P]) Delete(c *gin.Context) {
	result, err := h.useCase.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	h.respondResult(c, result, err, "No se pudo eliminar el registro")
}

// Selection godoc
// @Summary      Current selection
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        collection path string true "Collection"
// @Success      200  {object}  usecase.SelectionState
// @Router       /admin/{collection}/selection [get]
func (h *CollectionHandler[E, P]) Selection(c *gin.Context) {
	state, err := h.useCase.Selection(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.respondError(c, err, "No se pudo cargar la selección")
		return
	}
	c.JSON(http.StatusOK, state)
}

type ToggleRequest struct {
	ID string `json:"id" binding:"required"`
}

// Toggle godoc
// @Summary      Toggle one record in the selection
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        collection path string true "Collection"
// @Param        request body ToggleRequest true "Record to toggle"
// @Success      200  {object}  usecase.SelectionState
// @Failure      404  {object}  map[string]string
// @Router       /admin/{collection}/selection/toggle [post]
func (h *CollectionHandler[E, P]) Toggle(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody.Error()})
		return
	}

	state, err := h.useCase.Toggle(c.Request.Context(), c.GetString("user_id"), req.ID)
	if err != nil {
		h.respondError(c, err, "No se pudo actualizar la selección")
		return
	}
	c.JSON(http.StatusOK, state)
}

// SelectPage godoc
// @Summary      Toggle "select all" on the current page
// @Description  Takes the same query parameters as the list. Selects every record on the page unless all are already selected, in which case they are deselected.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        collection path string true "Collection"
// @Success      200  {object}  usecase.SelectionState
// @Router       /admin/{collection}/selection/page [post]
func (h *CollectionHandler[E, P]) SelectPage(c *gin.Context) {
	state, err := h.useCase.SelectPage(c.Request.Context(), c.GetString("user_id"), parseQuery(c))
	if err != nil {
		h.respondError(c, err, "No se pudo actualizar la selección")
		return
	}
	c.JSON(http.StatusOK, state)
}

// ClearSelection godoc
// @Summary      Clear the selection
// @Tags         admin
// @Security     BearerAuth
// @Param        collection path string true "Collection"
// @Success      204
// @Router       /admin/{collection}/selection [delete]
func (h *CollectionHandler[E, P]) ClearSelection(c *gin.Context) {
	if err := h.useCase.ClearSelection(c.Request.Context(), c.GetString("user_id")); err != nil {
		h.respondError(c, err, "No se pudo limpiar la selección")
		return
	}
	c.Status(http.StatusNoContent)
}

type BulkRequest struct {
	Action string   `json:"action" binding:"required"`
	IDs    []string `json:"ids"`
}

// Bulk godoc
// @Summary      Bulk action
// @Description  Applies archive, unarchive or delete to ids, or to the current selection when ids is empty. The selection is cleared afterwards.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        collection path string true "Collection"
// @Param        request body BulkRequest true "Action and optional ids"
// @Success      200  {object}  listing.BulkResult
// @Failure      400  {object}  map[string]string
// @Router       /admin/{collection}/bulk [post]
func (h *CollectionHandler[E, P]) Bulk(c *gin.Context) {
	var req BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody.Error()})
		return
	}

	result, err := h.useCase.Bulk(c.Request.Context(), c.GetString("user_id"), req.Action, req.IDs)
	if err != nil {
		h.respondError(c, err, "No se pudo completar la acción masiva")
		return
	}

	status := http.StatusOK
	if len(result.Failed) > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, result)
}

func (h *CollectionHandler[E, P]) respondResult(c *gin.Context, result listing.BulkResult, err error, message string) {
	if err == nil {
		c.JSON(http.StatusOK, result)
		return
	}
	if errors.Is(err, usecase.ErrNotFound) {
		h.respondError(c, err, message)
		return
	}

	h.logger.Error("[%s] %s: %v", h.useCase.Name(), message, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message, "result": result})
}

// respondError maps use case errors to status codes. Unexpected errors are
// logged and answered with message.
func (h *CollectionHandler[E, P]) respondError(c *gin.Context, err error, message string) {
	writeError(c, h.logger, h.useCase.Name(), err, message)
}

func writeError(c *gin.Context, log *logger.Logger, tag string, err error, message string) {
	switch {
	case errors.Is(err, usecase.ErrValidation), errors.Is(err, usecase.ErrInvalidAction), errors.Is(err, errInvalidBody):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": usecase.ErrNotFound.Error()})
	default:
		log.Error("[%s] %s: %v", tag, message, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}
