package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"shiftHire/domain"
)

type mockApplicationRepo struct {
	applications map[string]domain.Application
	statusCalls  int
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{applications: map[string]domain.Application{}}
}

func (m *mockApplicationRepo) Create(ctx context.Context, a *domain.Application) error {
	a.ID = a.JobID + "/" + a.WorkerID
	m.applications[a.ID] = *a
	return nil
}

func (m *mockApplicationRepo) FindByID(ctx context.Context, id string) (domain.Application, error) {
	a, ok := m.applications[id]
	if !ok {
		return domain.Application{}, domain.ErrNotFound
	}
	return a, nil
}

func (m *mockApplicationRepo) Exists(ctx context.Context, jobID, workerID string) (bool, error) {
	_, ok := m.applications[jobID+"/"+workerID]
	return ok, nil
}

func (m *mockApplicationRepo) ListByWorker(ctx context.Context, workerID string) ([]domain.Application, error) {
	var out []domain.Application
	for _, a := range m.applications {
		if a.WorkerID == workerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) ListByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	var out []domain.Application
	for _, a := range m.applications {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	m.statusCalls++
	a := m.applications[id]
	a.Status = status
	a.UpdatedAt = at
	m.applications[id] = a
	return nil
}

type mockJobRepo map[string]domain.Job

func (m mockJobRepo) FindByID(ctx context.Context, id string) (domain.Job, error) {
	j, ok := m[id]
	if !ok {
		return domain.Job{}, domain.ErrNotFound
	}
	return j, nil
}

func (m mockJobRepo) FindByIDs(ctx context.Context, ids []string) (map[string]domain.Job, error) {
	out := map[string]domain.Job{}
	for _, id := range ids {
		if j, ok := m[id]; ok {
			out[id] = j
		}
	}
	return out, nil
}

type mockUserRepo map[string]domain.User

func (m mockUserRepo) FindByID(ctx context.Context, id string) (domain.User, error) {
	u, ok := m[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

type mockProfileRepo map[string]domain.WorkerProfile

func (m mockProfileRepo) FindByUserIDs(ctx context.Context, ids []string) (map[string]domain.WorkerProfile, error) {
	out := map[string]domain.WorkerProfile{}
	for _, id := range ids {
		if p, ok := m[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func newService(repo *mockApplicationRepo) *applicationService {
	jobs := mockJobRepo{
		"j1": {ID: "j1", RestaurantID: "r1", Title: "Barista", IsActive: true},
		"j2": {ID: "j2", RestaurantID: "r1", Title: "Closed", IsActive: false},
	}
	users := mockUserRepo{"w1": {ID: "w1", Name: "Asha", Role: domain.RoleWorker}}
	profiles := mockProfileRepo{"w1": {UserID: "w1", LocationCity: "Mumbai"}}

	svc := NewApplicationService(repo, jobs, users, profiles)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestApplicationService_Apply(t *testing.T) {
	repo := newMockApplicationRepo()
	svc := newService(repo)
	ctx := context.Background()

	a, err := svc.Apply(ctx, "j1", "w1")
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if a.Status != domain.ApplicationApplied || a.WorkerName != "Asha" {
		t.Errorf("application = %+v", a)
	}
	if !a.AppliedAt.Equal(a.UpdatedAt) {
		t.Errorf("applied_at %v != updated_at %v", a.AppliedAt, a.UpdatedAt)
	}

	if _, err := svc.Apply(ctx, "j1", "w1"); !errors.Is(err, domain.ErrDuplicateResource) {
		t.Errorf("second apply err = %v, want ErrDuplicateResource", err)
	}
	if len(repo.applications) != 1 {
		t.Errorf("stored %d applications, want 1", len(repo.applications))
	}
}

func TestApplicationService_ApplyRejectsMissingOrInactiveJob(t *testing.T) {
	svc := newService(newMockApplicationRepo())

	if _, err := svc.Apply(context.Background(), "nope", "w1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Apply(context.Background(), "j2", "w1"); !errors.Is(err, domain.ErrPreconditionFailed) {
		t.Errorf("err = %v, want ErrPreconditionFailed", err)
	}
}

func TestApplicationService_ListsAreEnriched(t *testing.T) {
	repo := newMockApplicationRepo()
	svc := newService(repo)
	ctx := context.Background()
	_, _ = svc.Apply(ctx, "j1", "w1")

	mine, err := svc.ListWorkerApplications(ctx, "w1")
	if err != nil {
		t.Fatalf("ListWorkerApplications returned error: %v", err)
	}
	if len(mine) != 1 || mine[0].JobDetails == nil || mine[0].JobDetails.Title != "Barista" {
		t.Errorf("worker applications = %+v", mine)
	}

	theirs, err := svc.ListJobApplications(ctx, "j1", "r1")
	if err != nil {
		t.Fatalf("ListJobApplications returned error: %v", err)
	}
	if len(theirs) != 1 || theirs[0].WorkerProfile == nil || theirs[0].WorkerProfile.LocationCity != "Mumbai" {
		t.Errorf("job applications = %+v", theirs)
	}

	if _, err := svc.ListJobApplications(ctx, "j1", "r2"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("foreign job err = %v, want ErrNotFound", err)
	}
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	repo := newMockApplicationRepo()
	svc := newService(repo)
	ctx := context.Background()
	a, _ := svc.Apply(ctx, "j1", "w1")

	tests := []struct {
		name       string
		id         string
		restaurant string
		status     string
		wantErr    error
	}{
		{"unknown status", a.ID, "r1", "hired", domain.ErrInvalidInput},
		{"missing application", "nope", "r1", domain.ApplicationShortlisted, domain.ErrNotFound},
		{"foreign restaurant", a.ID, "r2", domain.ApplicationShortlisted, domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.UpdateStatus(ctx, tt.id, tt.restaurant, tt.status); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if repo.statusCalls != 0 {
		t.Fatalf("status written %d times by rejected requests", repo.statusCalls)
	}

	if err := svc.UpdateStatus(ctx, a.ID, "r1", domain.ApplicationInterview); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if got := repo.applications[a.ID].Status; got != domain.ApplicationInterview {
		t.Errorf("status = %q, want interview", got)
	}
}
