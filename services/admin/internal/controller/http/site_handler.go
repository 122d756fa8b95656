package http

import (
	"net/http"

	"asme-site/pkg/listing"
	"asme-site/pkg/logger"
	"asme-site/services/admin/internal/entity"
	"asme-site/services/admin/internal/usecase"

	"github.com/gin-gonic/gin"
)

// SiteHandler serves the public pages. Archived records are never visible
// here.
type SiteHandler struct {
	posts        usecase.CollectionUseCase[*entity.BlogPost, entity.BlogPostPatch]
	legalPosts   usecase.CollectionUseCase[*entity.LegalBlogPost, entity.LegalBlogPostPatch]
	appointments usecase.CollectionUseCase[*entity.Appointment, entity.AppointmentPatch]
	logger       *logger.Logger
}

func NewSiteHandler(
	posts usecase.CollectionUseCase[*entity.BlogPost, entity.BlogPostPatch],
	legalPosts usecase.CollectionUseCase[*entity.LegalBlogPost, entity.LegalBlogPostPatch],
	appointments usecase.CollectionUseCase[*entity.Appointment, entity.AppointmentPatch],
	logger *logger.Logger,
) *SiteHandler {
	return &SiteHandler{
		posts:        posts,
		legalPosts:   legalPosts,
		appointments: appointments,
		logger:       logger,
	}
}

func (h *SiteHandler) Register(group *gin.RouterGroup) {
	group.GET("/posts", h.ListPosts)
	group.GET("/posts/:id", h.GetPost)
	group.GET("/legal-posts", h.ListLegalPosts)
	group.GET("/legal-posts/:id", h.GetLegalPost)
	group.POST("/appointments", h.RequestAppointment)
}

func publicQuery(c *gin.Context) listing.Query {
	q := parseQuery(c)
	q.View = listing.ViewActive
	return q
}

// ListPosts godoc
// @Summary      Public blog
// @Tags         site
// @Produce      json
// @Param        q query string false "Search"
// @Param        kind query string false "articulo, video, audio or all"
// @Param        page query int false "Zero-based page"
// @Success      200  {object}  map[string]interface{}
// @Router       /site/posts [get]
func (h *SiteHandler) ListPosts(c *gin.Context) {
	page, err := h.posts.List(c.Request.Context(), publicQuery(c))
	if err != nil {
		writeError(c, h.logger, "SITE", err, "No se pudieron cargar las publicaciones")
		return
	}
	c.JSON(http.StatusOK, newListResponse(page))
}

// GetPost godoc
// @Summary      Public blog post
// @Tags         site
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.BlogPost
// @Failure      404  {object}  map[string]string
// @Router       /site/posts/{id} [get]
func (h *SiteHandler) GetPost(c *gin.Context) {
	post, err := h.posts.Get(c.Request.Context(), c.Param("id"))
	if err == nil && post.Archived {
		err = usecase.ErrNotFound
	}
	if err != nil {
		writeError(c, h.logger, "SITE", err, "No se pudo cargar la publicación")
		return
	}
	c.JSON(http.StatusOK, post)
}

// ListLegalPosts godoc
// @Summary      Public legal blog
// @Tags         site
// @Produce      json
// @Param        q query string false "Search"
// @Param        kind query string false "Legal category or all"
// @Param        page query int false "Zero-based page"
// @Success      200  {object}  map[string]interface{}
// @Router       /site/legal-posts [get]
func (h *SiteHandler) ListLegalPosts(c *gin.Context) {
	page, err := h.legalPosts.List(c.Request.Context(), publicQuery(c))
	if err != nil {
		writeError(c, h.logger, "SITE", err, "No se pudieron cargar las publicaciones")
		return
	}
	c.JSON(http.StatusOK, newListResponse(page))
}

// GetLegalPost godoc
// @Summary      Public legal blog post
// @Tags         site
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.LegalBlogPost
// @Failure      404  {object}  map[string]string
// @Router       /site/legal-posts/{id} [get]
func (h *SiteHandler) GetLegalPost(c *gin.Context) {
	post, err := h.legalPosts.Get(c.Request.Context(), c.Param("id"))
	if err == nil && post.Archived {
		err = usecase.ErrNotFound
	}
	if err != nil {
		writeError(c, h.logger, "SITE", err, "No se pudo cargar la publicación")
		return
	}
	c.JSON(http.StatusOK, post)
}

type AppointmentRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone"`
	Service       string `json:"service" binding:"required"`
	PreferredDate string `json:"preferredDate"`
	Message       string `json:"message"`
}

// RequestAppointment godoc
// @Summary      Request an appointment
// @Description  Public contact form; the request lands in the appointments list as pendiente.
// @Tags         site
// @Accept       json
// @Produce      json
// @Param        request body AppointmentRequest true "Appointment request"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /site/appointments [post]
func (h *SiteHandler) RequestAppointment(c *gin.Context) {
	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nombre, correo y servicio son obligatorios"})
		return
	}

	appointment := &entity.Appointment{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Service: req.Service,
		Message: req.Message,
		Status:  entity.AppointmentPendiente,
	}
	if req.PreferredDate != "" {
		date, err := parseDate(req.PreferredDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha preferida inválida"})
			return
		}
		appointment.PreferredDate = &date
	}

	created, err := h.appointments.Create(c.Request.Context(), "", appointment)
	if err != nil {
		writeError(c, h.logger, "SITE", err, "No se pudo registrar la cita")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": created.ID, "status": created.Status})
}
