package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/forgehq/hackforge/models"
	"github.com/forgehq/hackforge/notify"
	"github.com/forgehq/hackforge/repositories"
	"github.com/forgehq/hackforge/store"
)

// In-memory repository fakes. Each fake holds rows in a map and lets a
// test inject per-method failures through fail* fields.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (b *fakeBroadcaster) Publish(room, eventType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, eventType)
}

func (b *fakeBroadcaster) published() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.events...)
}

type fakeNotifier struct {
	warns []string
}

func (n *fakeNotifier) Warn(_ context.Context, message string)  { n.warns = append(n.warns, message) }
func (n *fakeNotifier) Error(_ context.Context, message string) {}

var _ notify.Notifier = (*fakeNotifier)(nil)

type fakeHackathonRepo struct {
	hackathons map[string]*models.Hackathon
	nextID     int
	failCreate error
	failUpdate error
}

func newFakeHackathonRepo() *fakeHackathonRepo {
	return &fakeHackathonRepo{hackathons: map[string]*models.Hackathon{}}
}

func (r *fakeHackathonRepo) Create(_ context.Context, h *models.Hackathon) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.nextID++
	h.ID = fmt.Sprintf("hackathon-%d", r.nextID)
	copied := *h
	r.hackathons[h.ID] = &copied
	return nil
}

func (r *fakeHackathonRepo) FindByID(_ context.Context, id string) (*models.Hackathon, error) {
	h, ok := r.hackathons[id]
	if !ok {
		return nil, repositories.ErrHackathonNotFound
	}
	copied := *h
	return &copied, nil
}

func (r *fakeHackathonRepo) List(_ context.Context, filter repositories.ListHackathonsFilter) ([]models.Hackathon, error) {
	var out []models.Hackathon
	for _, h := range r.hackathons {
		if filter.Status != nil && h.Status != *filter.Status {
			continue
		}
		out = append(out, *h)
	}
	return out, nil
}

func (r *fakeHackathonRepo) UpdateStatus(_ context.Context, id string, status models.HackathonStatus) error {
	if r.failUpdate != nil {
		return r.failUpdate
	}
	h, ok := r.hackathons[id]
	if !ok {
		return repositories.ErrHackathonNotFound
	}
	h.Status = status
	return nil
}

func (r *fakeHackathonRepo) UpdateLogoKey(_ context.Context, id, logoKey string) error {
	h, ok := r.hackathons[id]
	if !ok {
		return repositories.ErrHackathonNotFound
	}
	h.LogoKey = &logoKey
	return nil
}

type fakeTrackRepo struct {
	tracks     map[string]*models.Track
	nextID     int
	failAfterN int // fail the (N+1)th create when > -1
	failErr    error
}

func newFakeTrackRepo() *fakeTrackRepo {
	return &fakeTrackRepo{tracks: map[string]*models.Track{}, failAfterN: -1}
}

func (r *fakeTrackRepo) Create(_ context.Context, t *models.Track) error {
	if r.failAfterN >= 0 && r.nextID >= r.failAfterN {
		return r.failErr
	}
	r.nextID++
	t.ID = fmt.Sprintf("track-%d", r.nextID)
	copied := *t
	r.tracks[t.ID] = &copied
	return nil
}

func (r *fakeTrackRepo) FindByID(_ context.Context, id string) (*models.Track, error) {
	t, ok := r.tracks[id]
	if !ok {
		return nil, repositories.ErrTrackNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTrackRepo) ListByHackathon(_ context.Context, hackathonID string) ([]models.Track, error) {
	var out []models.Track
	for _, t := range r.tracks {
		if t.HackathonID == hackathonID {
			out = append(out, *t)
		}
	}
	return out, nil
}

type fakeRubricRepo struct {
	rubrics    map[string]*models.Rubric // keyed by hackathon id
	failCreate error
	failFind   error
}

func newFakeRubricRepo() *fakeRubricRepo {
	return &fakeRubricRepo{rubrics: map[string]*models.Rubric{}}
}

func (r *fakeRubricRepo) Create(_ context.Context, rub *models.Rubric) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	rub.ID = "rubric-" + rub.HackathonID
	copied := *rub
	r.rubrics[rub.HackathonID] = &copied
	return nil
}

func (r *fakeRubricRepo) FindByHackathon(_ context.Context, hackathonID string) (*models.Rubric, error) {
	if r.failFind != nil {
		return nil, r.failFind
	}
	rub, ok := r.rubrics[hackathonID]
	if !ok {
		return nil, repositories.ErrRubricNotFound
	}
	copied := *rub
	return &copied, nil
}

type fakeRoleRepo struct {
	assignments []models.HackathonParticipant
	nextID      int
	failAssign  error
}

func (r *fakeRoleRepo) Assign(_ context.Context, hp *models.HackathonParticipant) error {
	if r.failAssign != nil {
		return r.failAssign
	}
	r.nextID++
	hp.ID = fmt.Sprintf("assignment-%d", r.nextID)
	r.assignments = append(r.assignments, *hp)
	return nil
}

func (r *fakeRoleRepo) FindByHackathonAndParticipant(_ context.Context, hackathonID, participantID string) (*models.HackathonParticipant, error) {
	for i := range r.assignments {
		a := r.assignments[i]
		if a.HackathonID == hackathonID && a.ParticipantID == participantID {
			return &a, nil
		}
	}
	return nil, repositories.ErrRoleAssignmentNotFound
}

func (r *fakeRoleRepo) ListByHackathon(_ context.Context, hackathonID string) ([]models.HackathonParticipant, error) {
	var out []models.HackathonParticipant
	for _, a := range r.assignments {
		if a.HackathonID == hackathonID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeParticipantRepo struct {
	participants map[string]*models.Participant
	nextID       int
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{participants: map[string]*models.Participant{}}
}

func (r *fakeParticipantRepo) Create(_ context.Context, p *models.Participant) error {
	r.nextID++
	p.ID = fmt.Sprintf("participant-%d", r.nextID)
	copied := *p
	r.participants[p.ID] = &copied
	return nil
}

func (r *fakeParticipantRepo) FindByID(_ context.Context, id string) (*models.Participant, error) {
	p, ok := r.participants[id]
	if !ok {
		return nil, repositories.ErrParticipantNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeParticipantRepo) FindByEmail(_ context.Context, email string) (*models.Participant, error) {
	for _, p := range r.participants {
		if p.Email == email {
			copied := *p
			return &copied, nil
		}
	}
	return nil, repositories.ErrParticipantNotFound
}

type fakeSubmissionRepo struct {
	submissions map[string]*models.Submission
	nextID      int
	failCreate  error
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{submissions: map[string]*models.Submission{}}
}

func (r *fakeSubmissionRepo) Create(_ context.Context, s *models.Submission) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.nextID++
	s.ID = fmt.Sprintf("submission-%d", r.nextID)
	copied := *s
	r.submissions[s.ID] = &copied
	return nil
}

func (r *fakeSubmissionRepo) FindByID(_ context.Context, id string) (*models.Submission, error) {
	s, ok := r.submissions[id]
	if !ok {
		return nil, repositories.ErrSubmissionNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSubmissionRepo) ListByHackathon(_ context.Context, hackathonID string) ([]models.Submission, error) {
	var out []models.Submission
	for _, s := range r.submissions {
		if s.HackathonID == hackathonID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) ListByProject(_ context.Context, projectID string) ([]models.Submission, error) {
	var out []models.Submission
	for _, s := range r.submissions {
		if s.ProjectID == projectID {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakeScoreRepo struct {
	scores     []models.Score
	nextID     int
	failCreate error
	failFind   error
}

func (r *fakeScoreRepo) Create(_ context.Context, s *models.Score) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.nextID++
	s.ID = fmt.Sprintf("score-%d", r.nextID)
	r.scores = append(r.scores, *s)
	return nil
}

func (r *fakeScoreRepo) FindBySubmissionAndJudge(_ context.Context, submissionID, judgeID string) (*models.Score, error) {
	if r.failFind != nil {
		return nil, r.failFind
	}
	for i := range r.scores {
		s := r.scores[i]
		if s.SubmissionID == submissionID && s.JudgeID == judgeID {
			return &s, nil
		}
	}
	return nil, repositories.ErrScoreNotFound
}

func (r *fakeScoreRepo) ListBySubmission(_ context.Context, submissionID string) ([]models.Score, error) {
	var out []models.Score
	for _, s := range r.scores {
		if s.SubmissionID == submissionID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeTeamRepo struct {
	teams   map[string]*models.Team
	members []models.TeamMember
	nextID  int
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: map[string]*models.Team{}}
}

func (r *fakeTeamRepo) Create(_ context.Context, t *models.Team) error {
	r.nextID++
	t.ID = fmt.Sprintf("team-%d", r.nextID)
	copied := *t
	r.teams[t.ID] = &copied
	return nil
}

func (r *fakeTeamRepo) FindByID(_ context.Context, id string) (*models.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTeamRepo) ListByHackathon(_ context.Context, hackathonID string) ([]models.Team, error) {
	var out []models.Team
	for _, t := range r.teams {
		if t.HackathonID == hackathonID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) AddMember(_ context.Context, m *models.TeamMember) error {
	r.nextID++
	m.ID = fmt.Sprintf("member-%d", r.nextID)
	r.members = append(r.members, *m)
	return nil
}

func (r *fakeTeamRepo) RemoveMember(_ context.Context, teamID, participantID string) error {
	for i, m := range r.members {
		if m.TeamID == teamID && m.ParticipantID == participantID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return nil
		}
	}
	return repositories.ErrTeamMemberNotFound
}

func (r *fakeTeamRepo) FindMember(_ context.Context, teamID, participantID string) (*models.TeamMember, error) {
	for i := range r.members {
		m := r.members[i]
		if m.TeamID == teamID && m.ParticipantID == participantID {
			return &m, nil
		}
	}
	return nil, repositories.ErrTeamMemberNotFound
}

func (r *fakeTeamRepo) FindMembership(_ context.Context, hackathonID, participantID string) (*models.TeamMember, error) {
	for i := range r.members {
		m := r.members[i]
		team, ok := r.teams[m.TeamID]
		if ok && team.HackathonID == hackathonID && m.ParticipantID == participantID {
			return &m, nil
		}
	}
	return nil, repositories.ErrTeamMemberNotFound
}

func (r *fakeTeamRepo) ListMembers(_ context.Context, teamID string) ([]models.TeamMember, error) {
	var out []models.TeamMember
	for _, m := range r.members {
		if m.TeamID == teamID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeProjectRepo struct {
	projects map[string]*models.Project
	nextID   int
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[string]*models.Project{}}
}

func (r *fakeProjectRepo) Create(_ context.Context, p *models.Project) error {
	r.nextID++
	p.ID = fmt.Sprintf("project-%d", r.nextID)
	copied := *p
	r.projects[p.ID] = &copied
	return nil
}

func (r *fakeProjectRepo) FindByID(_ context.Context, id string) (*models.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, repositories.ErrProjectNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProjectRepo) ListByHackathon(_ context.Context, hackathonID string) ([]models.Project, error) {
	var out []models.Project
	for _, p := range r.projects {
		if p.HackathonID == hackathonID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) ListByTeam(_ context.Context, teamID string) ([]models.Project, error) {
	var out []models.Project
	for _, p := range r.projects {
		if p.TeamID == teamID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, id string, patch store.Row) error {
	p, ok := r.projects[id]
	if !ok {
		return repositories.ErrProjectNotFound
	}
	if v, ok := patch["status"]; ok {
		p.Status = models.ProjectStatus(fmt.Sprint(v))
	}
	if v, ok := patch["name"]; ok {
		p.Name = fmt.Sprint(v)
	}
	if v, ok := patch["description"]; ok {
		p.Description = fmt.Sprint(v)
	}
	return nil
}
