package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"asme-site/pkg/config"
	"asme-site/pkg/listing"
	"asme-site/pkg/logger"
	app "asme-site/services/admin/internal/app"
	"asme-site/services/admin/internal/entity"
	"asme-site/services/admin/internal/usecase"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

type fixtures struct {
	Staff []struct {
		Email    string `yaml:"email"`
		Name     string `yaml:"name"`
		Password string `yaml:"password"`
		Role     string `yaml:"role"`
	} `yaml:"staff"`
	Posts []struct {
		Title   string `yaml:"title"`
		Content string `yaml:"content"`
		Excerpt string `yaml:"excerpt"`
		Type    string `yaml:"type"`
		Author  string `yaml:"author"`
	} `yaml:"posts"`
	LegalPosts []struct {
		Title    string `yaml:"title"`
		Content  string `yaml:"content"`
		Excerpt  string `yaml:"excerpt"`
		Category string `yaml:"category"`
		Author   string `yaml:"author"`
	} `yaml:"legal_posts"`
	Clients []struct {
		Name    string `yaml:"name"`
		Email   string `yaml:"email"`
		Phone   string `yaml:"phone"`
		Company string `yaml:"company"`
		Service string `yaml:"service"`
		Notes   string `yaml:"notes"`
	} `yaml:"clients"`
	Casos []struct {
		CaseNumber  string `yaml:"caseNumber"`
		Title       string `yaml:"title"`
		ClientName  string `yaml:"clientName"`
		ClientEmail string `yaml:"clientEmail"`
		AssignedTo  string `yaml:"assignedTo"`
		Description string `yaml:"description"`
		Status      string `yaml:"status"`
	} `yaml:"casos"`
	Appointments []struct {
		Name          string `yaml:"name"`
		Email         string `yaml:"email"`
		Phone         string `yaml:"phone"`
		Service       string `yaml:"service"`
		PreferredDate string `yaml:"preferredDate"`
		Message       string `yaml:"message"`
		Status        string `yaml:"status"`
	} `yaml:"appointments"`
}

func main() {
	file := flag.String("file", "", "YAML fixtures file (defaults to the embedded set)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	data := defaultFixtures
	if *file != "" {
		data, err = os.ReadFile(*file)
		if err != nil {
			panic(fmt.Sprintf("Failed to read fixtures: %v", err))
		}
	}

	var fx fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		panic(fmt.Sprintf("Failed to parse fixtures: %v", err))
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize app: %v", err))
	}
	defer application.Shutdown()

	log := application.Logger()
	log.Info("Starting seed...")

	if err := seed(context.Background(), application.Services(), fx, log); err != nil {
		log.Error("Seed failed: %v", err)
		os.Exit(1)
	}

	log.Info("Seed completed successfully")
}

func seed(ctx context.Context, svc app.Services, fx fixtures, log *logger.Logger) error {
	for _, s := range fx.Staff {
		_, err := svc.Auth.CreateStaff(ctx, s.Email, s.Name, s.Password, entity.StaffRole(s.Role))
		if errors.Is(err, usecase.ErrStaffExists) {
			log.Info("Staff user %s already exists, skipping", s.Email)
			continue
		}
		if err != nil {
			return fmt.Errorf("staff %s: %w", s.Email, err)
		}
		log.Info("Created staff user: %s (%s)", s.Email, s.Role)
	}

	if ok, err := isEmpty[*entity.BlogPost](ctx, svc.Posts); err != nil {
		return err
	} else if ok {
		for _, p := range fx.Posts {
			post := &entity.BlogPost{Title: p.Title, Content: p.Content, Excerpt: p.Excerpt, Type: entity.PostType(p.Type), Author: p.Author}
			if _, err := svc.Posts.Create(ctx, "", post); err != nil {
				return fmt.Errorf("post %q: %w", p.Title, err)
			}
		}
		log.Info("Created %d posts", len(fx.Posts))
	}

	if ok, err := isEmpty[*entity.LegalBlogPost](ctx, svc.LegalPosts); err != nil {
		return err
	} else if ok {
		for _, p := range fx.LegalPosts {
			post := &entity.LegalBlogPost{Title: p.Title, Content: p.Content, Excerpt: p.Excerpt, Category: entity.LegalCategory(p.Category), Author: p.Author}
			if _, err := svc.LegalPosts.Create(ctx, "", post); err != nil {
				return fmt.Errorf("legal post %q: %w", p.Title, err)
			}
		}
		log.Info("Created %d legal posts", len(fx.LegalPosts))
	}

	clientIDs := make(map[string]string)
	if ok, err := isEmpty[*entity.Client](ctx, svc.Clients); err != nil {
		return err
	} else if ok {
		for _, c := range fx.Clients {
			client := &entity.Client{Name: c.Name, Email: c.Email, Phone: c.Phone, Company: c.Company, Service: entity.ClientService(c.Service), Notes: c.Notes}
			created, err := svc.Clients.Create(ctx, "", client)
			if err != nil {
				return fmt.Errorf("client %q: %w", c.Name, err)
			}
			if c.Email != "" {
				clientIDs[c.Email] = created.ID
			}
		}
		log.Info("Created %d clients", len(fx.Clients))
	}

	if ok, err := isEmpty[*entity.Caso](ctx, svc.Casos); err != nil {
		return err
	} else if ok {
		for _, c := range fx.Casos {
			caso := &entity.Caso{
				CaseNumber:  c.CaseNumber,
				Title:       c.Title,
				ClientName:  c.ClientName,
				ClientID:    clientIDs[c.ClientEmail],
				AssignedTo:  c.AssignedTo,
				Description: c.Description,
				Status:      entity.CaseStatus(c.Status),
			}
			if caso.Status == "" {
				caso.Status = entity.CaseAbierto
			}
			if _, err := svc.Casos.Create(ctx, "", caso); err != nil {
				return fmt.Errorf("caso %q: %w", c.Title, err)
			}
		}
		log.Info("Created %d casos", len(fx.Casos))
	}

	if ok, err := isEmpty[*entity.Appointment](ctx, svc.Appointments); err != nil {
		return err
	} else if ok {
		for _, a := range fx.Appointments {
			appointment := &entity.Appointment{
				Name:    a.Name,
				Email:   a.Email,
				Phone:   a.Phone,
				Service: a.Service,
				Message: a.Message,
				Status:  entity.AppointmentStatus(a.Status),
			}
			if appointment.Status == "" {
				appointment.Status = entity.AppointmentPendiente
			}
			if a.PreferredDate != "" {
				date, err := time.Parse("2006-01-02", a.PreferredDate)
				if err != nil {
					return fmt.Errorf("appointment %q: %w", a.Name, err)
				}
				appointment.PreferredDate = &date
			}
			if _, err := svc.Appointments.Create(ctx, "", appointment); err != nil {
				return fmt.Errorf("appointment %q: %w", a.Name, err)
			}
		}
		log.Info("Created %d appointments", len(fx.Appointments))
	}

	return nil
}

type lister[E listing.Record] interface {
	Name() string
	List(ctx context.Context, q listing.Query) (listing.Page[E], error)
}

// isEmpty reports whether a collection has no records in either view, so
// re-running the seed does not duplicate rows.
func isEmpty[E listing.Record](ctx context.Context, c lister[E]) (bool, error) {
	for _, view := range []listing.View{listing.ViewActive, listing.ViewArchived} {
		page, err := c.List(ctx, listing.Query{View: view})
		if err != nil {
			return false, fmt.Errorf("list %s: %w", c.Name(), err)
		}
		if !page.Empty() {
			return false, nil
		}
	}
	return true, nil
}
