package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"asme-site/services/admin/internal/entity"
	"asme-site/services/admin/internal/usecase"

	"github.com/gin-gonic/gin"
)

// BindJSON decodes a camelCase JSON record. Server-owned fields are reset.
func BindJSON[T any, E interface {
	*T
	usecase.Entity
}](reset func(E)) CreateDecoder[E] {
	return func(c *gin.Context) (E, []string, error) {
		record := E(new(T))
		if err := c.ShouldBindJSON(record); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", errInvalidBody, err)
		}
		if reset != nil {
			reset(record)
		}
		record.ClearTimestamps()
		return record, nil, nil
	}
}

func NewBlogPostDecoder(uc usecase.CollectionUseCase[*entity.BlogPost, entity.BlogPostPatch]) CreateDecoder[*entity.BlogPost] {
	bindJSON := BindJSON[entity.BlogPost](resetBlogPost)

	return func(c *gin.Context) (*entity.BlogPost, []string, error) {
		if !isMultipart(c) {
			return bindJSON(c)
		}

		post := &entity.BlogPost{
			Title:   c.PostForm("title"),
			Content: c.PostForm("content"),
			Excerpt: c.PostForm("excerpt"),
			Type:    entity.PostType(c.PostForm("type")),
			Author:  c.PostForm("author"),
		}

		uploaded, err := uploadFormFiles(c, uc, "featuredImage", "media")
		if err != nil {
			return nil, nil, err
		}
		post.FeaturedImageURL = uploaded["featuredImage"]
		post.MediaURL = uploaded["media"]
		return post, values(uploaded), nil
	}
}

func NewLegalBlogPostDecoder(uc usecase.CollectionUseCase[*entity.LegalBlogPost, entity.LegalBlogPostPatch]) CreateDecoder[*entity.LegalBlogPost] {
	bindJSON := BindJSON[entity.LegalBlogPost](resetLegalBlogPost)

	return func(c *gin.Context) (*entity.LegalBlogPost, []string, error) {
		if !isMultipart(c) {
			return bindJSON(c)
		}

		post := &entity.LegalBlogPost{
			Title:    c.PostForm("title"),
			Content:  c.PostForm("content"),
			Excerpt:  c.PostForm("excerpt"),
			Category: entity.LegalCategory(c.PostForm("category")),
			Author:   c.PostForm("author"),
		}

		uploaded, err := uploadFormFiles(c, uc, "featuredImage")
		if err != nil {
			return nil, nil, err
		}
		post.FeaturedImageURL = uploaded["featuredImage"]
		return post, values(uploaded), nil
	}
}

func NewClientDecoder() CreateDecoder[*entity.Client] {
	return BindJSON[entity.Client](func(cl *entity.Client) {
		cl.ID = ""
		cl.Archived = false
	})
}

func NewCasoDecoder() CreateDecoder[*entity.Caso] {
	return BindJSON[entity.Caso](func(cs *entity.Caso) {
		cs.ID = ""
		cs.Archived = false
		if cs.Status == "" {
			cs.Status = entity.CaseAbierto
		}
	})
}

func NewAppointmentDecoder() CreateDecoder[*entity.Appointment] {
	return BindJSON[entity.Appointment](resetAppointment)
}

func resetBlogPost(p *entity.BlogPost) {
	p.ID = ""
	p.Archived = false
}

func resetLegalBlogPost(p *entity.LegalBlogPost) {
	p.ID = ""
	p.Archived = false
}

func resetAppointment(a *entity.Appointment) {
	a.ID = ""
	a.Archived = false
	if a.Status == "" {
		a.Status = entity.AppointmentPendiente
	}
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// uploadFormFiles uploads each present file field. If one upload fails the
// ones already stored are discarded.
func uploadFormFiles[E usecase.Entity, P usecase.Patch](c *gin.Context, uc usecase.CollectionUseCase[E, P], fields ...string) (map[string]string, error) {
	uploaded := make(map[string]string, len(fields))
	for _, field := range fields {
		fileHeader, err := c.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			uc.DiscardMedia(c.Request.Context(), values(uploaded)...)
			return nil, fmt.Errorf("%w: %v", errInvalidBody, err)
		}

		src, err := fileHeader.Open()
		if err != nil {
			uc.DiscardMedia(c.Request.Context(), values(uploaded)...)
			return nil, fmt.Errorf("failed to open file: %w", err)
		}

		url, err := uc.UploadMedia(c.Request.Context(), src, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
		src.Close()
		if err != nil {
			uc.DiscardMedia(c.Request.Context(), values(uploaded)...)
			return nil, err
		}
		uploaded[field] = url
	}
	return uploaded, nil
}

func values(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

// parseDate accepts RFC 3339 timestamps and plain dates from date inputs.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
