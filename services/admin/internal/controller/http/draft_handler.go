package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"asme-site/pkg/drafts"
	"asme-site/pkg/logger"

	"github.com/gin-gonic/gin"
)

const maxDraftBytes = 1 << 20

type DraftHandler struct {
	store    drafts.Store
	interval time.Duration
	ttl      time.Duration
	logger   *logger.Logger
}

func NewDraftHandler(store drafts.Store, interval, ttl time.Duration, logger *logger.Logger) *DraftHandler {
	return &DraftHandler{
		store:    store,
		interval: interval,
		ttl:      ttl,
		logger:   logger,
	}
}

func (h *DraftHandler) Register(group *gin.RouterGroup) {
	group.GET("", h.Settings)
	group.GET("/:key", h.Load)
	group.PUT("/:key", h.Save)
	group.DELETE("/:key", h.Clear)
}

// ownerKey scopes a draft to the signed-in staff user.
func ownerKey(c *gin.Context) (string, error) {
	key := c.Param("key")
	if err := drafts.ValidateKey(key); err != nil {
		return "", err
	}
	return c.GetString("user_id") + "." + key, nil
}

// Settings godoc
// @Summary      Draft autosave settings
// @Tags         drafts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/drafts [get]
func (h *DraftHandler) Settings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"autosaveIntervalSeconds": int(h.interval.Seconds()),
		"ttlSeconds":              int(h.ttl.Seconds()),
	})
}

// Load godoc
// @Summary      Load a draft
// @Tags         drafts
// @Produce      json
// @Security     BearerAuth
// @Param        key path string true "Draft key"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /admin/drafts/{key} [get]
func (h *DraftHandler) Load(c *gin.Context) {
	key, err := ownerKey(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Clave de borrador inválida"})
		return
	}

	value, found, err := h.store.Load(c.Request.Context(), key)
	if err != nil {
		h.logger.Error("[DRAFTS] load failed key=%s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo cargar el borrador"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Borrador no encontrado"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", value)
}

// Save godoc
// @Summary      Save a draft
// @Description  Stores any JSON document under key. Called by the editor every autosave interval.
// @Tags         drafts
// @Accept       json
// @Security     BearerAuth
// @Param        key path string true "Draft key"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Router       /admin/drafts/{key} [put]
func (h *DraftHandler) Save(c *gin.Context) {
	key, err := ownerKey(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Clave de borrador inválida"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxDraftBytes+1))
	if err != nil || len(body) > maxDraftBytes || !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El borrador debe ser un documento JSON de hasta 1 MB"})
		return
	}

	if err := h.store.Save(c.Request.Context(), key, body); err != nil {
		if errors.Is(err, drafts.ErrInvalidKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Clave de borrador inválida"})
			return
		}
		h.logger.Error("[DRAFTS] save failed key=%s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo guardar el borrador"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear godoc
// @Summary      Discard a draft
// @Tags         drafts
// @Security     BearerAuth
// @Param        key path string true "Draft key"
// @Success      204
// @Router       /admin/drafts/{key} [delete]
func (h *DraftHandler) Clear(c *gin.Context) {
	key, err := ownerKey(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Clave de borrador inválida"})
		return
	}

	if err := h.store.Clear(c.Request.Context(), key); err != nil {
		h.logger.Error("[DRAFTS] clear failed key=%s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo descartar el borrador"})
		return
	}
	c.Status(http.StatusNoContent)
}
