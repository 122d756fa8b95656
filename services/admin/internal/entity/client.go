package entity

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

type ClientService string

const (
	ServiceCapacitacion ClientService = "capacitacion"
	ServiceConsultoria  ClientService = "consultoria"
	ServiceLegal        ClientService = "legal"
	ServicePIPC         ClientService = "pipc"
)

func (s ClientService) Valid() bool {
	switch s {
	case ServiceCapacitacion, ServiceConsultoria, ServiceLegal, ServicePIPC:
		return true
	}
	return false
}

type Client struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Company   string        `json:"company"`
	Service   ClientService `json:"service"`
	Notes     string        `json:"notes"`
	Archived  bool          `json:"archived"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (c *Client) RecordID() string       { return c.ID }
func (c *Client) IsArchived() bool       { return c.Archived }
func (c *Client) Created() time.Time     { return c.CreatedAt }
func (c *Client) Kind() string           { return string(c.Service) }
func (c *Client) SearchFields() []string { return []string{c.Name, c.Email, c.Company} }

// ClearTimestamps zeroes the server-owned timestamps so the store assigns them.
func (c *Client) ClearTimestamps() {
	c.CreatedAt = time.Time{}
	c.UpdatedAt = time.Time{}
}

func (c *Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("el nombre del cliente es obligatorio")
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return errors.New("correo electrónico inválido")
		}
	}
	if !c.Service.Valid() {
		return errors.New("servicio inválido")
	}
	return nil
}

type ClientPatch struct {
	Name     *string        `json:"name"`
	Email    *string        `json:"email"`
	Phone    *string        `json:"phone"`
	Company  *string        `json:"company"`
	Service  *ClientService `json:"service"`
	Notes    *string        `json:"notes"`
	Archived *bool          `json:"archived"`
}

func (p ClientPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return errors.New("el nombre del cliente no puede quedar vacío")
	}
	if p.Email != nil && *p.Email != "" {
		if _, err := mail.ParseAddress(*p.Email); err != nil {
			return errors.New("correo electrónico inválido")
		}
	}
	if p.Service != nil && !p.Service.Valid() {
		return errors.New("servicio inválido")
	}
	return nil
}
