package main

import (
	"context"
	"testing"

	"asme-site/pkg/drafts"
	"asme-site/pkg/jwt"
	"asme-site/pkg/listing"
	"asme-site/pkg/logger"
	app "asme-site/services/admin/internal/app"
	"asme-site/services/admin/internal/entity"
	"asme-site/services/admin/internal/model"
	"asme-site/services/admin/internal/repo/persistent"
	"asme-site/services/admin/internal/usecase"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupServices(t *testing.T) app.Services {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.New().String()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(model.AllModels()...))

	log := logger.Nop()
	selections := listing.NewMemorySelectionStore()
	collection := func(name string) usecase.CollectionConfig {
		return usecase.CollectionConfig{Name: name, PageSize: 50}
	}

	return app.Services{
		Posts: usecase.NewCollectionUseCase[*entity.BlogPost, entity.BlogPostPatch](
			collection("posts"), persistent.NewBlogPostRepository(db), selections, nil, nil, log),
		LegalPosts: usecase.NewCollectionUseCase[*entity.LegalBlogPost, entity.LegalBlogPostPatch](
			collection("legal_posts"), persistent.NewLegalBlogPostRepository(db), selections, nil, nil, log),
		Clients: usecase.NewCollectionUseCase[*entity.Client, entity.ClientPatch](
			collection("clients"), persistent.NewClientRepository(db), selections, nil, nil, log),
		Casos: usecase.NewCollectionUseCase[*entity.Caso, entity.CasoPatch](
			collection("casos"), persistent.NewCasoRepository(db), selections, nil, nil, log),
		Appointments: usecase.NewCollectionUseCase[*entity.Appointment, entity.AppointmentPatch](
			collection("appointments"), persistent.NewAppointmentRepository(db), selections, nil, nil, log),
		Auth:   usecase.NewAuthUseCase(persistent.NewStaffUserRepository(db), jwt.NewService("test-secret"), log),
		Drafts: drafts.NewMemoryStore(),
	}
}

func loadFixtures(t *testing.T) fixtures {
	t.Helper()
	var fx fixtures
	require.NoError(t, yaml.Unmarshal(defaultFixtures, &fx))
	return fx
}

func TestSeed_EmbeddedFixtures(t *testing.T) {
	ctx := context.Background()
	svc := setupServices(t)
	fx := loadFixtures(t)

	require.NoError(t, seed(ctx, svc, fx, logger.Nop()))

	posts, err := svc.Posts.List(ctx, listing.Query{})
	require.NoError(t, err)
	assert.Equal(t, len(fx.Posts), posts.Total)

	casos, err := svc.Casos.List(ctx, listing.Query{Search: "arrendamiento"})
	require.NoError(t, err)
	require.Equal(t, 1, casos.Total)
	assert.NotEmpty(t, casos.Items[0].ClientID)

	appointments, err := svc.Appointments.List(ctx, listing.Query{Kind: string(entity.AppointmentConfirmada)})
	require.NoError(t, err)
	assert.Equal(t, 1, appointments.Total)

	_, _, err = svc.Auth.Login(ctx, "admin@asme.mx", "cambiar-esta-clave")
	assert.NoError(t, err)
}

func TestSeed_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := setupServices(t)
	fx := loadFixtures(t)

	require.NoError(t, seed(ctx, svc, fx, logger.Nop()))
	require.NoError(t, seed(ctx, svc, fx, logger.Nop()))

	clients, err := svc.Clients.List(ctx, listing.Query{})
	require.NoError(t, err)
	assert.Equal(t, len(fx.Clients), clients.Total)
}

func TestSeed_InvalidFixture(t *testing.T) {
	svc := setupServices(t)
	var fx fixtures
	require.NoError(t, yaml.Unmarshal([]byte("posts:\n  - title: \"\"\n    type: articulo\n"), &fx))

	err := seed(context.Background(), svc, fx, logger.Nop())
	assert.ErrorIs(t, err, usecase.ErrValidation)
}
