package skill

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
	"github.com/hrm/backend/internal/domain/skill"
)

type memoryCategoryRepo struct {
	categories map[uuid.UUID]*skill.SkillCategory
	skills     *memorySkillRepo
}

func newMemoryCategoryRepo(skills *memorySkillRepo) *memoryCategoryRepo {
	return &memoryCategoryRepo{
		categories: make(map[uuid.UUID]*skill.SkillCategory),
		skills:     skills,
	}
}

func (r *memoryCategoryRepo) Create(_ context.Context, category *skill.SkillCategory) error {
	r.categories[category.ID] = category
	return nil
}

func (r *memoryCategoryRepo) Update(_ context.Context, category *skill.SkillCategory) error {
	if _, ok := r.categories[category.ID]; !ok {
		return shared.ErrNotFound
	}
	r.categories[category.ID] = category
	return nil
}

func (r *memoryCategoryRepo) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.categories[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.categories, id)
	for skillID, entry := range r.skills.skills {
		if entry.CategoryID == id {
			_ = r.skills.DeleteCascade(ctx, skillID)
		}
	}
	return nil
}

func (r *memoryCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*skill.SkillCategory, error) {
	if c, ok := r.categories[id]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memoryCategoryRepo) FindAll(_ context.Context) ([]*skill.SkillCategory, error) {
	out := make([]*skill.SkillCategory, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *memoryCategoryRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, c := range r.categories {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

type memorySkillRepo struct {
	skills  map[uuid.UUID]*skill.Skill
	history *memoryMemberSkillRepo
}

func newMemorySkillRepo(history *memoryMemberSkillRepo) *memorySkillRepo {
	return &memorySkillRepo{
		skills:  make(map[uuid.UUID]*skill.Skill),
		history: history,
	}
}

func (r *memorySkillRepo) Create(_ context.Context, entry *skill.Skill) error {
	r.skills[entry.ID] = entry
	return nil
}

func (r *memorySkillRepo) DeleteCascade(_ context.Context, id uuid.UUID) error {
	if _, ok := r.skills[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.skills, id)
	kept := r.history.entries[:0]
	for _, e := range r.history.entries {
		if e.SkillID != id {
			kept = append(kept, e)
		}
	}
	r.history.entries = kept
	return nil
}

func (r *memorySkillRepo) FindByID(_ context.Context, id uuid.UUID) (*skill.Skill, error) {
	if s, ok := r.skills[id]; ok {
		return s, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memorySkillRepo) FindByCategoryID(_ context.Context, categoryID uuid.UUID) ([]*skill.Skill, error) {
	out := make([]*skill.Skill, 0)
	for _, s := range r.skills {
		if s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memorySkillRepo) FindAll(_ context.Context) ([]*skill.Skill, error) {
	out := make([]*skill.Skill, 0, len(r.skills))
	for _, s := range r.skills {
		out = append(out, s)
	}
	return out, nil
}

func (r *memorySkillRepo) ExistsByNameInCategory(_ context.Context, categoryID uuid.UUID, name string) (bool, error) {
	for _, s := range r.skills {
		if s.CategoryID == categoryID && s.Name == name {
			return true, nil
		}
	}
	return false, nil
}

type memoryMemberSkillRepo struct {
	entries []*skill.MemberSkill
}

func (r *memoryMemberSkillRepo) Append(_ context.Context, entry *skill.MemberSkill) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memoryMemberSkillRepo) FindByMemberID(_ context.Context, memberID uuid.UUID) ([]*skill.MemberSkill, error) {
	out := make([]*skill.MemberSkill, 0)
	for _, e := range r.entries {
		if e.MemberID == memberID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EvaluatedAt.After(out[j].EvaluatedAt) })
	return out, nil
}

func (r *memoryMemberSkillRepo) FindByMemberAndSkill(_ context.Context, memberID, skillID uuid.UUID) ([]*skill.MemberSkill, error) {
	out := make([]*skill.MemberSkill, 0)
	for _, e := range r.entries {
		if e.MemberID == memberID && e.SkillID == skillID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EvaluatedAt.After(out[j].EvaluatedAt) })
	return out, nil
}

type memoryEvaluationRepo struct {
	evaluations map[uuid.UUID]*skill.PersonnelEvaluation
}

func newMemoryEvaluationRepo() *memoryEvaluationRepo {
	return &memoryEvaluationRepo{evaluations: make(map[uuid.UUID]*skill.PersonnelEvaluation)}
}

func (r *memoryEvaluationRepo) Upsert(_ context.Context, evaluation *skill.PersonnelEvaluation) error {
	for id, e := range r.evaluations {
		if e.MemberID == evaluation.MemberID && e.Month == evaluation.Month && id != evaluation.ID {
			delete(r.evaluations, id)
		}
	}
	r.evaluations[evaluation.ID] = evaluation
	return nil
}

func (r *memoryEvaluationRepo) FindByMemberAndMonth(_ context.Context, memberID uuid.UUID, month valueobject.Month) (*skill.PersonnelEvaluation, error) {
	for _, e := range r.evaluations {
		if e.MemberID == memberID && e.Month == month {
			return e, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryEvaluationRepo) FindByMemberID(_ context.Context, memberID uuid.UUID) ([]*skill.PersonnelEvaluation, error) {
	out := make([]*skill.PersonnelEvaluation, 0)
	for _, e := range r.evaluations {
		if e.MemberID == memberID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memoryEvaluationRepo) FindByMonth(_ context.Context, month valueobject.Month) ([]*skill.PersonnelEvaluation, error) {
	out := make([]*skill.PersonnelEvaluation, 0)
	for _, e := range r.evaluations {
		if e.Month == month {
			out = append(out, e)
		}
	}
	return out, nil
}
