package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/hrm/backend/internal/domain/audit"
	"github.com/hrm/backend/internal/domain/project"
	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

type memoryProjectRepo struct {
	projects map[uuid.UUID]*project.Project
}

func newMemoryProjectRepo() *memoryProjectRepo {
	return &memoryProjectRepo{projects: make(map[uuid.UUID]*project.Project)}
}

func (r *memoryProjectRepo) Create(_ context.Context, p *project.Project) error {
	r.projects[p.ID] = p
	return nil
}

func (r *memoryProjectRepo) Update(_ context.Context, p *project.Project) error {
	if _, ok := r.projects[p.ID]; !ok {
		return shared.ErrNotFound
	}
	r.projects[p.ID] = p
	return nil
}

func (r *memoryProjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.projects[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *memoryProjectRepo) FindByID(_ context.Context, id uuid.UUID) (*project.Project, error) {
	if p, ok := r.projects[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memoryProjectRepo) FindAll(_ context.Context, activeOnly bool) ([]*project.Project, error) {
	out := make([]*project.Project, 0, len(r.projects))
	for _, p := range r.projects {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *memoryProjectRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*project.Project, error) {
	out := make([]*project.Project, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.projects[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type memoryPositionRepo struct {
	positions map[uuid.UUID]*project.Position
}

func newMemoryPositionRepo() *memoryPositionRepo {
	return &memoryPositionRepo{positions: make(map[uuid.UUID]*project.Position)}
}

func (r *memoryPositionRepo) Create(_ context.Context, position *project.Position) error {
	r.positions[position.ID] = position
	return nil
}

func (r *memoryPositionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.positions[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.positions, id)
	return nil
}

func (r *memoryPositionRepo) FindByID(_ context.Context, id uuid.UUID) (*project.Position, error) {
	if p, ok := r.positions[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memoryPositionRepo) FindAll(_ context.Context) ([]*project.Position, error) {
	out := make([]*project.Position, 0, len(r.positions))
	for _, p := range r.positions {
		out = append(out, p)
	}
	return out, nil
}

type memoryAssignmentRepo struct {
	assignments map[uuid.UUID]*project.ProjectAssignment
}

func newMemoryAssignmentRepo() *memoryAssignmentRepo {
	return &memoryAssignmentRepo{assignments: make(map[uuid.UUID]*project.ProjectAssignment)}
}

func (r *memoryAssignmentRepo) Create(_ context.Context, assignment *project.ProjectAssignment) error {
	r.assignments[assignment.ID] = assignment
	return nil
}

func (r *memoryAssignmentRepo) Update(_ context.Context, assignment *project.ProjectAssignment) error {
	if _, ok := r.assignments[assignment.ID]; !ok {
		return shared.ErrNotFound
	}
	r.assignments[assignment.ID] = assignment
	return nil
}

func (r *memoryAssignmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.assignments[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.assignments, id)
	return nil
}

func (r *memoryAssignmentRepo) FindByID(_ context.Context, id uuid.UUID) (*project.ProjectAssignment, error) {
	if a, ok := r.assignments[id]; ok {
		return a, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memoryAssignmentRepo) FindByMemberID(_ context.Context, memberID uuid.UUID) ([]*project.ProjectAssignment, error) {
	out := make([]*project.ProjectAssignment, 0)
	for _, a := range r.assignments {
		if a.MemberID == memberID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memoryAssignmentRepo) FindByProjectID(_ context.Context, projectID uuid.UUID) ([]*project.ProjectAssignment, error) {
	out := make([]*project.ProjectAssignment, 0)
	for _, a := range r.assignments {
		if a.ProjectID == projectID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memoryAssignmentRepo) FindAll(_ context.Context) ([]*project.ProjectAssignment, error) {
	out := make([]*project.ProjectAssignment, 0, len(r.assignments))
	for _, a := range r.assignments {
		out = append(out, a)
	}
	return out, nil
}

type memoryPLRepo struct {
	records map[uuid.UUID]*project.PLRecord
}

func newMemoryPLRepo() *memoryPLRepo {
	return &memoryPLRepo{records: make(map[uuid.UUID]*project.PLRecord)}
}

func (r *memoryPLRepo) Upsert(_ context.Context, record *project.PLRecord) error {
	for id, existing := range r.records {
		if existing.ProjectID == record.ProjectID && existing.Month == record.Month && id != record.ID {
			delete(r.records, id)
		}
	}
	r.records[record.ID] = record
	return nil
}

func (r *memoryPLRepo) FindByProjectAndMonth(_ context.Context, projectID uuid.UUID, month valueobject.Month) (*project.PLRecord, error) {
	for _, record := range r.records {
		if record.ProjectID == projectID && record.Month == month {
			return record, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryPLRepo) FindByMonth(_ context.Context, month valueobject.Month) ([]*project.PLRecord, error) {
	out := make([]*project.PLRecord, 0)
	for _, record := range r.records {
		if record.Month == month {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *memoryPLRepo) FindByProject(_ context.Context, projectID uuid.UUID) ([]*project.PLRecord, error) {
	out := make([]*project.PLRecord, 0)
	for _, record := range r.records {
		if record.ProjectID == projectID {
			out = append(out, record)
		}
	}
	return out, nil
}

type memorySelfReportRepo struct {
	reports map[uuid.UUID]*project.SelfReport
}

func newMemorySelfReportRepo() *memorySelfReportRepo {
	return &memorySelfReportRepo{reports: make(map[uuid.UUID]*project.SelfReport)}
}

func (r *memorySelfReportRepo) UpsertAll(_ context.Context, reports []*project.SelfReport) error {
	for _, report := range reports {
		for id, existing := range r.reports {
			if existing.MemberID == report.MemberID &&
				existing.ProjectID == report.ProjectID &&
				existing.Month == report.Month && id != report.ID {
				delete(r.reports, id)
			}
		}
		r.reports[report.ID] = report
	}
	return nil
}

func (r *memorySelfReportRepo) FindByMemberAndMonth(_ context.Context, memberID uuid.UUID, month valueobject.Month) ([]*project.SelfReport, error) {
	out := make([]*project.SelfReport, 0)
	for _, report := range r.reports {
		if report.MemberID == memberID && report.Month == month {
			out = append(out, report)
		}
	}
	return out, nil
}

func (r *memorySelfReportRepo) FindByMonth(_ context.Context, month valueobject.Month) ([]*project.SelfReport, error) {
	out := make([]*project.SelfReport, 0)
	for _, report := range r.reports {
		if report.Month == month {
			out = append(out, report)
		}
	}
	return out, nil
}

type memoryAuditRepo struct {
	entries []*audit.AuditLog
}

func (r *memoryAuditRepo) Append(_ context.Context, entry *audit.AuditLog) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memoryAuditRepo) FindAll(_ context.Context, _ audit.Filter) ([]*audit.AuditLog, int64, error) {
	return append([]*audit.AuditLog(nil), r.entries...), int64(len(r.entries)), nil
}
