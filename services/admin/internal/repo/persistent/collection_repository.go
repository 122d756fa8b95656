package persistent

import (
	"context"

	"asme-site/pkg/listing"
	"asme-site/services/admin/internal/entity"
	"asme-site/services/admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CollectionRepository is the record store behind one dashboard collection.
// Missing rows are reported as gorm.ErrRecordNotFound.
type CollectionRepository[E listing.Record, P any] interface {
	List(ctx context.Context) ([]E, error)
	GetByID(ctx context.Context, id string) (E, error)
	Create(ctx context.Context, record E) (E, error)
	Update(ctx context.Context, id string, patch P) (E, error)
	SetArchived(ctx context.Context, ids []string, archived bool) error
	Delete(ctx context.Context, ids []string) error
}

type collectionRepository[E listing.Record, M any, P any] struct {
	db       *gorm.DB
	toEntity func(*M) E
	toModel  func(E) *M
	columns  func(P) map[string]interface{}
}

func newCollectionRepository[E listing.Record, M any, P any](
	db *gorm.DB,
	toEntity func(*M) E,
	toModel func(E) *M,
	columns func(P) map[string]interface{},
) CollectionRepository[E, P] {
	return &collectionRepository[E, M, P]{db: db, toEntity: toEntity, toModel: toModel, columns: columns}
}

func NewBlogPostRepository(db *gorm.DB) CollectionRepository[*entity.BlogPost, entity.BlogPostPatch] {
	return newCollectionRepository(db, ToBlogPostEntity, ToBlogPostModel, BlogPostColumns)
}

func NewLegalBlogPostRepository(db *gorm.DB) CollectionRepository[*entity.LegalBlogPost, entity.LegalBlogPostPatch] {
	return newCollectionRepository(db, ToLegalBlogPostEntity, ToLegalBlogPostModel, LegalBlogPostColumns)
}

func NewClientRepository(db *gorm.DB) CollectionRepository[*entity.Client, entity.ClientPatch] {
	return newCollectionRepository(db, ToClientEntity, ToClientModel, ClientColumns)
}

func NewCasoRepository(db *gorm.DB) CollectionRepository[*entity.Caso, entity.CasoPatch] {
	return newCollectionRepository(db, ToCasoEntity, ToCasoModel, CasoColumns)
}

func NewAppointmentRepository(db *gorm.DB) CollectionRepository[*entity.Appointment, entity.AppointmentPatch] {
	return newCollectionRepository(db, ToAppointmentEntity, ToAppointmentModel, AppointmentColumns)
}

// List returns every row, newest first.
func (r *collectionRepository[E, M, P]) List(ctx context.Context) ([]E, error) {
	var rows []M
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]E, len(rows))
	for i := range rows {
		records[i] = r.toEntity(&rows[i])
	}
	return records, nil
}

func (r *collectionRepository[E, M, P]) GetByID(ctx context.Context, id string) (E, error) {
	var zero E
	if !validID(id) {
		return zero, gorm.ErrRecordNotFound
	}

	var row M
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return zero, err
	}
	return r.toEntity(&row), nil
}

func (r *collectionRepository[E, M, P]) Create(ctx context.Context, record E) (E, error) {
	row := r.toModel(record)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		var zero E
		return zero, err
	}
	return r.toEntity(row), nil
}

// Update writes only the fields present in patch and returns the stored row.
func (r *collectionRepository[E, M, P]) Update(ctx context.Context, id string, patch P) (E, error) {
	var zero E
	if !validID(id) {
		return zero, gorm.ErrRecordNotFound
	}

	cols := r.columns(patch)
	if len(cols) == 0 {
		return r.GetByID(ctx, id)
	}

	res := r.db.WithContext(ctx).Model(new(M)).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return zero, res.Error
	}
	if res.RowsAffected == 0 {
		return zero, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *collectionRepository[E, M, P]) SetArchived(ctx context.Context, ids []string, archived bool) error {
	ids = filterIDs(ids)
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(new(M)).Where("id IN ?", ids).Update("archived", archived).Error
}

func (r *collectionRepository[E, M, P]) Delete(ctx context.Context, ids []string) error {
	ids = filterIDs(ids)
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(new(M)).Error
}

// validID guards uuid columns; postgres rejects malformed input instead of
// matching nothing.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func filterIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			out = append(out, id)
		}
	}
	return out
}

type StaffUserRepository interface {
	Create(ctx context.Context, user *entity.StaffUser) error
	GetByEmail(ctx context.Context, email string) (*entity.StaffUser, error)
	GetByID(ctx context.Context, id string) (*entity.StaffUser, error)
}

type staffUserRepository struct {
	db *gorm.DB
}

func NewStaffUserRepository(db *gorm.DB) StaffUserRepository {
	return &staffUserRepository{db: db}
}

func (r *staffUserRepository) Create(ctx context.Context, user *entity.StaffUser) error {
	userModel := ToStaffUserModel(user)
	if userModel.ID == "" {
		userModel.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(userModel).Error; err != nil {
		return err
	}
	*user = *ToStaffUserEntity(userModel)
	return nil
}

func (r *staffUserRepository) GetByEmail(ctx context.Context, email string) (*entity.StaffUser, error) {
	var userModel model.StaffUserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToStaffUserEntity(&userModel), nil
}

func (r *staffUserRepository) GetByID(ctx context.Context, id string) (*entity.StaffUser, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var userModel model.StaffUserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToStaffUserEntity(&userModel), nil
}
