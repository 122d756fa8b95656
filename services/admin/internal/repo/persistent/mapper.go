package persistent

import (
	"asme-site/services/admin/internal/entity"
	"asme-site/services/admin/internal/model"
)

func ToBlogPostEntity(m *model.BlogPostModel) *entity.BlogPost {
	if m == nil {
		return nil
	}

	return &entity.BlogPost{
		ID:               m.ID,
		Title:            m.Title,
		Content:          m.Content,
		Excerpt:          m.Excerpt,
		Type:             entity.PostType(m.Type),
		Author:           m.Author,
		FeaturedImageURL: m.FeaturedImageURL,
		MediaURL:         m.MediaURL,
		Archived:         m.Archived,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func ToBlogPostModel(e *entity.BlogPost) *model.BlogPostModel {
	if e == nil {
		return nil
	}

	return &model.BlogPostModel{
		ID:               e.ID,
		Title:            e.Title,
		Content:          e.Content,
		Excerpt:          e.Excerpt,
		Type:             string(e.Type),
		Author:           e.Author,
		FeaturedImageURL: e.FeaturedImageURL,
		MediaURL:         e.MediaURL,
		Archived:         e.Archived,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func BlogPostColumns(p entity.BlogPostPatch) map[string]interface{} {
	cols := make(map[string]interface{})
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Content != nil {
		cols["content"] = *p.Content
	}
	if p.Excerpt != nil {
		cols["excerpt"] = *p.Excerpt
	}
	if p.Type != nil {
		cols["type"] = string(*p.Type)
	}
	if p.Author != nil {
		cols["author"] = *p.Author
	}
	if p.FeaturedImageURL != nil {
		cols["featured_image_url"] = *p.FeaturedImageURL
	}
	if p.MediaURL != nil {
		cols["media_url"] = *p.MediaURL
	}
	if p.Archived != nil {
		cols["archived"] = *p.Archived
	}
	return cols
}

func ToLegalBlogPostEntity(m *model.LegalBlogPostModel) *entity.LegalBlogPost {
	if m == nil {
		return nil
	}

	return &entity.LegalBlogPost{
		ID:               m.ID,
		Title:            m.Title,
		Content:          m.Content,
		Excerpt:          m.Excerpt,
		Category:         entity.LegalCategory(m.Category),
		Author:           m.Author,
		FeaturedImageURL: m.FeaturedImageURL,
		Archived:         m.Archived,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func ToLegalBlogPostModel(e *entity.LegalBlogPost) *model.LegalBlogPostModel {
	if e == nil {
		return nil
	}

	return &model.LegalBlogPostModel{
		ID:               e.ID,
		Title:            e.Title,
		Content:          e.Content,
		Excerpt:          e.Excerpt,
		Category:         string(e.Category),
		Author:           e.Author,
		FeaturedImageURL: e.FeaturedImageURL,
		Archived:         e.Archived,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func LegalBlogPostColumns(p entity.LegalBlogPostPatch) map[string]interface{} {
	cols := make(map[string]interface{})
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Content != nil {
		cols["content"] = *p.Content
	}
	if p.Excerpt != nil {
		cols["excerpt"] = *p.Excerpt
	}
	if p.Category != nil {
		cols["category"] = string(*p.Category)
	}
	if p.Author != nil {
		cols["author"] = *p.Author
	}
	if p.FeaturedImageURL != nil {
		cols["featured_image_url"] = *p.FeaturedImageURL
	}
	if p.Archived != nil {
		cols["archived"] = *p.Archived
	}
	return cols
}

func ToClientEntity(m *model.ClientModel) *entity.Client {
	if m == nil {
		return nil
	}

	return &entity.Client{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Company:   m.Company,
		Service:   entity.ClientService(m.Service),
		Notes:     m.Notes,
		Archived:  m.Archived,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToClientModel(e *entity.Client) *model.ClientModel {
	if e == nil {
		return nil
	}

	return &model.ClientModel{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Phone:     e.Phone,
		Company:   e.Company,
		Service:   string(e.Service),
		Notes:     e.Notes,
		Archived:  e.Archived,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ClientColumns(p entity.ClientPatch) map[string]interface{} {
	cols := make(map[string]interface{})
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.Phone != nil {
		cols["phone"] = *p.Phone
	}
	if p.Company != nil {
		cols["company"] = *p.Company
	}
	if p.Service != nil {
		cols["service"] = string(*p.Service)
	}
	if p.Notes != nil {
		cols["notes"] = *p.Notes
	}
	if p.Archived != nil {
		cols["archived"] = *p.Archived
	}
	return cols
}

func ToCasoEntity(m *model.CasoModel) *entity.Caso {
	if m == nil {
		return nil
	}

	caso := &entity.Caso{
		ID:          m.ID,
		CaseNumber:  m.CaseNumber,
		Title:       m.Title,
		ClientName:  m.ClientName,
		AssignedTo:  m.AssignedTo,
		Description: m.Description,
		Status:      entity.CaseStatus(m.Status),
		Archived:    m.Archived,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.ClientID != nil {
		caso.ClientID = *m.ClientID
	}
	return caso
}

func ToCasoModel(e *entity.Caso) *model.CasoModel {
	if e == nil {
		return nil
	}

	return &model.CasoModel{
		ID:          e.ID,
		CaseNumber:  e.CaseNumber,
		Title:       e.Title,
		ClientName:  e.ClientName,
		ClientID:    optionalString(e.ClientID),
		AssignedTo:  e.AssignedTo,
		Description: e.Description,
		Status:      string(e.Status),
		Archived:    e.Archived,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func CasoColumns(p entity.CasoPatch) map[string]interface{} {
	cols := make(map[string]interface{})
	if p.CaseNumber != nil {
		cols["case_number"] = *p.CaseNumber
	}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.ClientName != nil {
		cols["client_name"] = *p.ClientName
	}
	if p.ClientID != nil {
		cols["client_id"] = optionalString(*p.ClientID)
	}
	if p.AssignedTo != nil {
		cols["assigned_to"] = *p.AssignedTo
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}
	if p.Archived != nil {
		cols["archived"] = *p.Archived
	}
	return cols
}

func ToAppointmentEntity(m *model.AppointmentModel) *entity.Appointment {
	if m == nil {
		return nil
	}

	return &entity.Appointment{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		Phone:         m.Phone,
		Service:       m.Service,
		PreferredDate: m.PreferredDate,
		Message:       m.Message,
		Status:        entity.AppointmentStatus(m.Status),
		Archived:      m.Archived,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToAppointmentModel(e *entity.Appointment) *model.AppointmentModel {
	if e == nil {
		return nil
	}

	return &model.AppointmentModel{
		ID:            e.ID,
		Name:          e.Name,
		Email:         e.Email,
		Phone:         e.Phone,
		Service:       e.Service,
		PreferredDate: e.PreferredDate,
		Message:       e.Message,
		Status:        string(e.Status),
		Archived:      e.Archived,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func AppointmentColumns(p entity.AppointmentPatch) map[string]interface{} {
	cols := make(map[string]interface{})
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}
	if p.PreferredDate != nil {
		cols["preferred_date"] = *p.PreferredDate
	}
	if p.Phone != nil {
		cols["phone"] = *p.Phone
	}
	if p.Message != nil {
		cols["message"] = *p.Message
	}
	if p.Archived != nil {
		cols["archived"] = *p.Archived
	}
	return cols
}

func ToStaffUserEntity(m *model.StaffUserModel) *entity.StaffUser {
	if m == nil {
		return nil
	}

	return &entity.StaffUser{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		Password:  m.Password,
		Role:      entity.StaffRole(m.Role),
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToStaffUserModel(e *entity.StaffUser) *model.StaffUserModel {
	if e == nil {
		return nil
	}

	return &model.StaffUserModel{
		ID:        e.ID,
		Email:     e.Email,
		Name:      e.Name,
		Password:  e.Password,
		Role:      string(e.Role),
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
