package mapper

import (
	"github.com/Prajankrish/Lex-AI/internal/entity"
	"github.com/Prajankrish/Lex-AI/internal/model"

	"github.com/pgvector/pgvector-go"
)

type CorpusMapper struct{}

func NewCorpusMapper() *CorpusMapper {
	return &CorpusMapper{}
}

func (m *CorpusMapper) PassageToEntity(p *model.Passage) *entity.Passage {
	if p == nil {
		return nil
	}

	return &entity.Passage{
		Id:           p.Id,
		SnapshotId:   p.SnapshotId,
		Seq:          p.Seq,
		SourceTitle:  p.SourceTitle,
		SectionLabel: p.SectionLabel,
		Text:         p.Text,
		Embedding:    p.Embedding.Slice(),
		CreatedAt:    p.CreatedAt,
	}
}

func (m *CorpusMapper) PassageToModel(p *entity.Passage) *model.Passage {
	if p == nil {
		return nil
	}

	return &model.Passage{
		Id:           p.Id,
		SnapshotId:   p.SnapshotId,
		Seq:          p.Seq,
		SourceTitle:  p.SourceTitle,
		SectionLabel: p.SectionLabel,
		Text:         p.Text,
		Embedding:    pgvector.NewVector(p.Embedding),
		CreatedAt:    p.CreatedAt,
	}
}

func (m *CorpusMapper) PassagesToEntities(passages []*model.Passage) []*entity.Passage {
	entities := make([]*entity.Passage, len(passages))
	for i, p := range passages {
		entities[i] = m.PassageToEntity(p)
	}
	return entities
}

func (m *CorpusMapper) PassagesToModels(passages []*entity.Passage) []*model.Passage {
	models := make([]*model.Passage, len(passages))
	for i, p := range passages {
		models[i] = m.PassageToModel(p)
	}
	return models
}

func (m *CorpusMapper) SnapshotToEntity(s *model.CorpusSnapshot) *entity.CorpusSnapshot {
	if s == nil {
		return nil
	}

	return &entity.CorpusSnapshot{
		Id:           s.Id,
		Label:        s.Label,
		Status:       s.Status,
		PassageCount: s.PassageCount,
		CreatedAt:    s.CreatedAt,
		PublishedAt:  s.PublishedAt,
	}
}

func (m *CorpusMapper) SnapshotToModel(s *entity.CorpusSnapshot) *model.CorpusSnapshot {
	if s == nil {
		return nil
	}

	return &model.CorpusSnapshot{
		Id:           s.Id,
		Label:        s.Label,
		Status:       s.Status,
		PassageCount: s.PassageCount,
		CreatedAt:    s.CreatedAt,
		PublishedAt:  s.PublishedAt,
	}
}
