package implementation

import (
	"context"
	"errors"

	"github.com/Prajankrish/Lex-AI/internal/entity"
	"github.com/Prajankrish/Lex-AI/internal/mapper"
	"github.com/Prajankrish/Lex-AI/internal/model"
	"github.com/Prajankrish/Lex-AI/internal/repository/contract"
	"github.com/Prajankrish/Lex-AI/internal/repository/specification"

	"gorm.io/gorm"
)

type CorpusSnapshotRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CorpusMapper
}

func NewCorpusSnapshotRepository(db *gorm.DB) contract.CorpusSnapshotRepository {
	return &CorpusSnapshotRepositoryImpl{
		db:     db,
		mapper: mapper.NewCorpusMapper(),
	}
}

func (r *CorpusSnapshotRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CorpusSnapshotRepositoryImpl) Create(ctx context.Context, snapshot *entity.CorpusSnapshot) error {
	m := r.mapper.SnapshotToModel(snapshot)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*snapshot = *r.mapper.SnapshotToEntity(m)
	return nil
}

func (r *CorpusSnapshotRepositoryImpl) Update(ctx context.Context, snapshot *entity.CorpusSnapshot) error {
	m := r.mapper.SnapshotToModel(snapshot)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*snapshot = *r.mapper.SnapshotToEntity(m)
	return nil
}

func (r *CorpusSnapshotRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CorpusSnapshot, error) {
	var m model.CorpusSnapshot
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SnapshotToEntity(&m), nil
}

func (r *CorpusSnapshotRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CorpusSnapshot, error) {
	var models []*model.CorpusSnapshot
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.CorpusSnapshot, len(models))
	for i, m := range models {
		entities[i] = r.mapper.SnapshotToEntity(m)
	}
	return entities, nil
}

func (r *CorpusSnapshotRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.CorpusSnapshot{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *CorpusSnapshotRepositoryImpl) FindLatestPublished(ctx context.Context) (*entity.CorpusSnapshot, error) {
	var m model.CorpusSnapshot
	err := r.db.WithContext(ctx).
		Where("status = ?", entity.CorpusSnapshotStatusPublished).
		Order("published_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SnapshotToEntity(&m), nil
}
