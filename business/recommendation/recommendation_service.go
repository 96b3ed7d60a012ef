package recommendation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shiftHire/domain"
	"shiftHire/pkg/logger"
	"shiftHire/pkg/metrics"
)

const (
	promptJobs = 10
	maxResults = 10
)

const systemPrompt = "You are a job matching AI. Analyze the worker profile and rank jobs by match quality."

// LLMClient contract interface
type LLMClient interface {
	Enabled() bool
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type WorkerProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (domain.WorkerProfile, error)
}

type JobRepository interface {
	ListActive(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error)
}

type Recorder interface {
	RecordRecommendation(source string)
}

type recommendationService struct {
	profileRepo WorkerProfileRepository
	jobRepo     JobRepository
	llm         LLMClient
	recorder    Recorder
}

func NewRecommendationService(profileRepo WorkerProfileRepository, jobRepo JobRepository, llm LLMClient, recorder Recorder) *recommendationService {
	return &recommendationService{
		profileRepo: profileRepo,
		jobRepo:     jobRepo,
		llm:         llm,
		recorder:    recorder,
	}
}

// Recommend ranks active jobs for the worker. Once the profile is found it
// never fails; any LLM problem degrades to the role and city filter.
func (s *recommendationService) Recommend(ctx context.Context, workerID string) (domain.JobRecommendations, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, workerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.JobRecommendations{}, fmt.Errorf("%w: create profile first", domain.ErrPreconditionFailed)
		}
		logger.Error("Failed to load worker profile", "error", err)
		return domain.JobRecommendations{}, err
	}

	jobs, err := s.jobRepo.ListActive(ctx, domain.JobFilter{})
	if err != nil {
		logger.Error("Failed to list active jobs for recommendation", "error", err)
		jobs = nil
	}

	candidates := jobs
	if len(candidates) > promptJobs {
		candidates = candidates[:promptJobs]
	}

	switch {
	case len(candidates) == 0:
		logger.Debug("No active jobs to rank, using fallback", "worker_id", workerID)
	case !s.llm.Enabled():
		logger.Debug("LLM ranking disabled, using fallback", "worker_id", workerID)
	default:
		reply, err := s.llm.CompleteWithSystem(ctx, systemPrompt, buildPrompt(profile, candidates))
		if err != nil {
			logger.Warn("LLM ranking failed, using fallback", "error", err, "worker_id", workerID)
			break
		}
		if ranked := rankByReply(reply, candidates); len(ranked) > 0 {
			s.record(metrics.SourceAI)
			return domain.JobRecommendations{
				Jobs:             ranked,
				Source:           metrics.SourceAI,
				AIRecommendation: reply,
			}, nil
		}
		logger.Warn("LLM reply named no known jobs, using fallback", "worker_id", workerID)
	}

	s.record(metrics.SourceFallback)
	return domain.JobRecommendations{
		Jobs:   fallback(profile, jobs),
		Source: metrics.SourceFallback,
	}, nil
}

func (s *recommendationService) record(source string) {
	if s.recorder != nil {
		s.recorder.RecordRecommendation(source)
	}
}

func buildPrompt(p domain.WorkerProfile, jobs []domain.Job) string {
	var b strings.Builder
	b.WriteString("Worker Profile:\n")
	fmt.Fprintf(&b, "- Location: %s\n", p.LocationCity)
	fmt.Fprintf(&b, "- Experience: %d years\n", p.ExperienceYears)
	fmt.Fprintf(&b, "- Preferred Roles: %s\n", strings.Join(p.PreferredRoles, ", "))
	fmt.Fprintf(&b, "- Preferred Shifts: %s\n", strings.Join(p.PreferredShifts, ", "))
	fmt.Fprintf(&b, "- Skills: %s\n\n", strings.Join(p.Skills, ", "))

	b.WriteString("Available Jobs:\n")
	for _, j := range jobs {
		fmt.Fprintf(&b, "- id=%s title=%q role=%s city=%s shift=%s experience=%s wage=%.0f-%.0f\n",
			j.ID, j.Title, j.Role, j.LocationCity, j.ShiftTiming, j.ExperienceRequired, j.WageMin, j.WageMax)
	}

	b.WriteString("\nReturn only the job IDs in order of best match to worst, comma-separated.")
	return b.String()
}

// rankByReply keeps the reply's order and drops ids that were not offered.
func rankByReply(reply string, jobs []domain.Job) []domain.Job {
	byID := make(map[string]domain.Job, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = j
	}

	fields := strings.FieldsFunc(reply, func(r rune) bool {
		return r == ',' || r == '\n' || r == ' ' || r == '\t'
	})

	ranked := make([]domain.Job, 0, len(jobs))
	seen := make(map[string]bool, len(jobs))
	for _, f := range fields {
		id := strings.Trim(f, "\"'`[]().-*")
		job, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ranked = append(ranked, job)
	}

	return ranked
}

func fallback(p domain.WorkerProfile, jobs []domain.Job) []domain.Job {
	roles := make(map[string]bool, len(p.PreferredRoles))
	for _, r := range p.PreferredRoles {
		roles[r] = true
	}

	out := make([]domain.Job, 0, maxResults)
	for _, j := range jobs {
		if roles[j.Role] && j.LocationCity == p.LocationCity {
			out = append(out, j)
			if len(out) == maxResults {
				break
			}
		}
	}

	return out
}
