package app

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/job"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/notification"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/report"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/task"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/user"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/workspace"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fakeTx struct{}

func (fakeTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type emitted struct {
	recipient common.UUID
	actor     *common.UUID
	verb      string
	subject   notification.Ref
}

type fakeEmitter struct {
	mu     sync.Mutex
	events []emitted
}

func (e *fakeEmitter) Emit(ctx context.Context, recipient common.UUID, actor *common.UUID, verb, message string, subject notification.Ref, target *notification.Ref) {
	if actor != nil && *actor == recipient {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, emitted{recipient: recipient, actor: actor, verb: verb, subject: subject})
}

func (e *fakeEmitter) count(verb string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, ev := range e.events {
		if ev.verb == verb {
			n++
		}
	}
	return n
}

type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[common.UUID]*user.User)}
}

func (r *fakeUserRepo) add(userType user.Type) common.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := common.NewUUID()
	r.byID[id] = &user.User{ID: id, Email: string(id) + "@example.com", FirstName: "Test", LastName: "User", Type: userType, IsActive: true}
	return id
}

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = common.NewUUID()
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, common.NewError(common.CodeConflict, "email already registered", nil)
		}
	}
	stored := u
	r.byID[u.ID] = &stored
	return &stored, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "user not found", nil)
}

type fakeStudentRepo struct {
	mu       sync.Mutex
	byUserID map[common.UUID]*user.Student
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{byUserID: make(map[common.UUID]*user.Student)}
}

func (r *fakeStudentRepo) Upsert(ctx context.Context, s user.Student) (*user.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := s
	r.byUserID[s.UserID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeStudentRepo) GetByUserID(ctx context.Context, userID common.UUID) (*user.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byUserID[userID]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "student profile not found", nil)
	}
	copied := *s
	return &copied, nil
}

func (r *fakeStudentRepo) UpdateLevelStatus(ctx context.Context, userID common.UUID, level user.LevelStatus) (*user.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byUserID[userID]
	if !ok {
		stored := user.Student{UserID: userID, LevelStatus: level}
		r.byUserID[userID] = &stored
		copied := stored
		return &copied, nil
	}
	s.LevelStatus = level
	copied := *s
	return &copied, nil
}

type fakeWorkspaceRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*workspace.Workspace
}

func newFakeWorkspaceRepo() *fakeWorkspaceRepo {
	return &fakeWorkspaceRepo{byID: make(map[common.UUID]*workspace.Workspace)}
}

func (r *fakeWorkspaceRepo) add(maxMembers int) common.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := common.NewUUID()
	r.byID[id] = &workspace.Workspace{ID: id, Name: "ws", IsActive: true, MaxMembers: maxMembers, Type: workspace.TypeJobProject}
	return id
}

func (r *fakeWorkspaceRepo) Create(ctx context.Context, ws workspace.Workspace) (*workspace.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws.ID = common.NewUUID()
	if ws.MaxMembers == 0 {
		ws.MaxMembers = 50
	}
	if ws.Type == "" {
		ws.Type = workspace.TypeGeneral
	}
	stored := ws
	r.byID[ws.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeWorkspaceRepo) GetByID(ctx context.Context, id common.UUID) (*workspace.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "workspace not found", nil)
	}
	copied := *ws
	return &copied, nil
}

func (r *fakeWorkspaceRepo) ListByUser(ctx context.Context, userID common.UUID) ([]workspace.Workspace, error) {
	return nil, nil
}

type fakeMemberRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*workspace.Member
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{byID: make(map[common.UUID]*workspace.Member)}
}

func (r *fakeMemberRepo) add(workspaceID, userID common.UUID, role workspace.Role) common.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := common.NewUUID()
	r.byID[id] = &workspace.Member{ID: id, WorkspaceID: workspaceID, UserID: userID, Role: role, IsActive: true}
	return id
}

func (r *fakeMemberRepo) setRate(memberID common.UUID, rate decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[memberID].HourlyRateOverride = &rate
}

func (r *fakeMemberRepo) GetOrCreate(ctx context.Context, m workspace.Member) (*workspace.Member, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.WorkspaceID == m.WorkspaceID && existing.UserID == m.UserID {
			copied := *existing
			return &copied, false, nil
		}
	}
	m.ID = common.NewUUID()
	m.JoinedAt = time.Now()
	stored := m
	r.byID[m.ID] = &stored
	copied := stored
	return &copied, true, nil
}

func (r *fakeMemberRepo) GetByID(ctx context.Context, id common.UUID) (*workspace.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "member not found", nil)
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMemberRepo) Find(ctx context.Context, workspaceID, userID common.UUID) (*workspace.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.byID {
		if m.WorkspaceID == workspaceID && m.UserID == userID {
			copied := *m
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "member not found", nil)
}

func (r *fakeMemberRepo) ListByWorkspace(ctx context.Context, workspaceID common.UUID) ([]workspace.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []workspace.Member
	for _, m := range r.byID {
		if m.WorkspaceID == workspaceID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) ListActiveByUser(ctx context.Context, userID common.UUID) ([]workspace.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []workspace.Member
	for _, m := range r.byID {
		if m.UserID == userID && m.IsActive {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) CountActive(ctx context.Context, workspaceID common.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.byID {
		if m.WorkspaceID == workspaceID && m.IsActive {
			n++
		}
	}
	return n, nil
}

func (r *fakeMemberRepo) CountActiveByRole(ctx context.Context, workspaceID common.UUID, role workspace.Role) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.byID {
		if m.WorkspaceID == workspaceID && m.IsActive && m.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *fakeMemberRepo) UpdateRoleForUser(ctx context.Context, userID common.UUID, role workspace.Role) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	changed := 0
	for _, m := range r.byID {
		if m.UserID == userID && m.IsActive && m.Role != role {
			m.Role = role
			changed++
		}
	}
	return changed, nil
}

func (r *fakeMemberRepo) UpdateRateOverride(ctx context.Context, memberID common.UUID, rate *decimal.Decimal) (*workspace.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[memberID]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "member not found", nil)
	}
	m.HourlyRateOverride = rate
	copied := *m
	return &copied, nil
}

func (r *fakeMemberRepo) Delete(ctx context.Context, memberID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[memberID]
	if !ok {
		return common.NewError(common.CodeNotFound, "member not found", nil)
	}
	m.IsActive = false
	return nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*job.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{byID: make(map[common.UUID]*job.Job)}
}

func (r *fakeJobRepo) add(workspaceID common.UUID, rate decimal.Decimal) common.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := common.NewUUID()
	r.byID[id] = &job.Job{ID: id, WorkspaceID: workspaceID, Title: "job", BaseHourlyRate: rate, Status: job.StatusActive}
	return id
}

func (r *fakeJobRepo) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j.ID = common.NewUUID()
	stored := j
	r.byID[j.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	copied := *j
	return &copied, nil
}

func (r *fakeJobRepo) GetByWorkspace(ctx context.Context, workspaceID common.UUID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.byID {
		if j.WorkspaceID == workspaceID {
			copied := *j
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "job not found", nil)
}

func (r *fakeJobRepo) List(ctx context.Context, activeOnly bool) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []job.Job
	for _, j := range r.byID {
		if activeOnly && j.Status != job.StatusActive {
			continue
		}
		out = append(out, *j)
	}
	return out, nil
}

type fakeVacancyRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*job.Vacancy
}

func newFakeVacancyRepo() *fakeVacancyRepo {
	return &fakeVacancyRepo{byID: make(map[common.UUID]*job.Vacancy)}
}

func (r *fakeVacancyRepo) add(jobID common.UUID, slots int, deadline time.Time) common.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := common.NewUUID()
	r.byID[id] = &job.Vacancy{ID: id, JobID: jobID, Title: "vacancy", SlotsAvailable: slots, Deadline: deadline, Status: job.VacancyOpen}
	return id
}

func (r *fakeVacancyRepo) Create(ctx context.Context, v job.Vacancy) (*job.Vacancy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v.ID = common.NewUUID()
	stored := v
	r.byID[v.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeVacancyRepo) GetByID(ctx context.Context, id common.UUID) (*job.Vacancy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "vacancy not found", nil)
	}
	copied := *v
	return &copied, nil
}

func (r *fakeVacancyRepo) List(ctx context.Context, openOnly bool) ([]job.Vacancy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []job.Vacancy
	for _, v := range r.byID {
		if openOnly && v.Status != job.VacancyOpen {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

func (r *fakeVacancyRepo) DecrementSlot(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.byID[id]
	if !ok {
		return common.NewError(common.CodeNotFound, "vacancy not found", nil)
	}
	if v.SlotsAvailable > 0 {
		v.SlotsAvailable--
	}
	if v.SlotsAvailable == 0 {
		v.Status = job.VacancyClosed
	}
	return nil
}

func (r *fakeVacancyRepo) setDeadline(id common.UUID, deadline time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[id].Deadline = deadline
}

type fakeApplicationRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*job.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{byID: make(map[common.UUID]*job.Application)}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, a job.Application) (*job.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.VacancyID == a.VacancyID && existing.ApplicantID == a.ApplicantID {
			return nil, common.NewError(common.CodeConflict, "duplicate application", nil)
		}
	}
	a.ID = common.NewUUID()
	a.AppliedAt = time.Now()
	stored := a
	r.byID[a.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*job.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	copied := *a
	return &copied, nil
}

func (r *fakeApplicationRepo) ListByVacancy(ctx context.Context, vacancyID common.UUID) ([]job.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []job.Application
	for _, a := range r.byID {
		if a.VacancyID == vacancyID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByApplicant(ctx context.Context, applicantID common.UUID) ([]job.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []job.Application
	for _, a := range r.byID {
		if a.ApplicantID == applicantID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id common.UUID, status job.ApplicationStatus, notes string) (*job.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	a.Status = status
	if notes != "" {
		a.Notes = notes
	}
	copied := *a
	return &copied, nil
}

func (r *fakeApplicationRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

type fakeTaskRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*task.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{byID: make(map[common.UUID]*task.Task)}
}

func (r *fakeTaskRepo) Create(ctx context.Context, t task.Task) (*task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = common.NewUUID()
	stored := t
	r.byID[t.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id common.UUID) (*task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "task not found", nil)
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, t task.Task) (*task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[t.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "task not found", nil)
	}
	stored := t
	r.byID[t.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeTaskRepo) ListByWorkspace(ctx context.Context, workspaceID common.UUID) ([]task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []task.Task
	for _, t := range r.byID {
		if t.WorkspaceID == workspaceID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) ListByAssignee(ctx context.Context, userID common.UUID) ([]task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []task.Task
	for _, t := range r.byID {
		if t.AssignedTo == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) ListOverdue(ctx context.Context, before time.Time) ([]task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []task.Task
	for _, t := range r.byID {
		if t.DueDate.Before(before) && !t.Status.Terminal() {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

type fakeDailyRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*report.DailyReport
}

func newFakeDailyRepo() *fakeDailyRepo {
	return &fakeDailyRepo{byID: make(map[common.UUID]*report.DailyReport)}
}

func (r *fakeDailyRepo) add(studentID, workspaceID common.UUID, date time.Time, hours decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := common.NewUUID()
	r.byID[id] = &report.DailyReport{ID: id, StudentID: studentID, WorkspaceID: workspaceID, ReportDate: date, HoursWorked: hours}
}

func (r *fakeDailyRepo) Create(ctx context.Context, d report.DailyReport) (*report.DailyReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.StudentID == d.StudentID && existing.WorkspaceID == d.WorkspaceID && existing.ReportDate.Equal(d.ReportDate) {
			return nil, common.NewError(common.CodeConflict, "duplicate daily report", nil)
		}
	}
	d.ID = common.NewUUID()
	stored := d
	r.byID[d.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeDailyRepo) GetByID(ctx context.Context, id common.UUID) (*report.DailyReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "daily report not found", nil)
	}
	copied := *d
	return &copied, nil
}

func (r *fakeDailyRepo) Update(ctx context.Context, d report.DailyReport) (*report.DailyReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[d.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "daily report not found", nil)
	}
	stored := d
	r.byID[d.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeDailyRepo) ListByStudent(ctx context.Context, studentID common.UUID) ([]report.DailyReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []report.DailyReport
	for _, d := range r.byID {
		if d.StudentID == studentID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDailyRepo) ListByPair(ctx context.Context, key report.PairKey, from, to time.Time) ([]report.DailyReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []report.DailyReport
	for _, d := range r.byID {
		if d.StudentID == key.StudentID && d.WorkspaceID == key.WorkspaceID && !d.ReportDate.Before(from) && d.ReportDate.Before(to) {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDailyRepo) PairsWithReports(ctx context.Context, from, to time.Time) ([]report.PairKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[report.PairKey]bool)
	var out []report.PairKey
	for _, d := range r.byID {
		if d.ReportDate.Before(from) || !d.ReportDate.Before(to) {
			continue
		}
		key := report.PairKey{StudentID: d.StudentID, WorkspaceID: d.WorkspaceID}
		if !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}
	return out, nil
}

func (r *fakeDailyRepo) SumHours(ctx context.Context, key report.PairKey, from, to time.Time) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, d := range r.byID {
		if d.StudentID == key.StudentID && d.WorkspaceID == key.WorkspaceID && !d.ReportDate.Before(from) && d.ReportDate.Before(to) {
			total = total.Add(d.HoursWorked)
		}
	}
	return total, nil
}

type fakeSalaryRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*report.SalaryRecord
}

func newFakeSalaryRepo() *fakeSalaryRepo {
	return &fakeSalaryRepo{byID: make(map[common.UUID]*report.SalaryRecord)}
}

func (r *fakeSalaryRepo) Create(ctx context.Context, s report.SalaryRecord) (*report.SalaryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.StudentID == s.StudentID && existing.WorkspaceID == s.WorkspaceID && existing.Year == s.Year && existing.Month == s.Month {
			return nil, common.NewError(common.CodeConflict, "salary record already exists", nil)
		}
	}
	s.ID = common.NewUUID()
	s.Recalculate()
	stored := s
	r.byID[s.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeSalaryRepo) GetByID(ctx context.Context, id common.UUID) (*report.SalaryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "salary record not found", nil)
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSalaryRepo) FindByPeriod(ctx context.Context, key report.PairKey, p report.Period) (*report.SalaryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.byID {
		if s.StudentID == key.StudentID && s.WorkspaceID == key.WorkspaceID && s.Year == p.Year && s.Month == p.Month {
			copied := *s
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "salary record not found", nil)
}

func (r *fakeSalaryRepo) Update(ctx context.Context, s report.SalaryRecord) (*report.SalaryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[s.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "salary record not found", nil)
	}
	s.Recalculate()
	stored := s
	r.byID[s.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeSalaryRepo) ListByStudent(ctx context.Context, studentID common.UUID) ([]report.SalaryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []report.SalaryRecord
	for _, s := range r.byID {
		if s.StudentID == studentID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSalaryRepo) List(ctx context.Context) ([]report.SalaryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []report.SalaryRecord
	for _, s := range r.byID {
		out = append(out, *s)
	}
	return out, nil
}

type fakeMonthlyRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*report.MonthlyReport
}

func newFakeMonthlyRepo() *fakeMonthlyRepo {
	return &fakeMonthlyRepo{byID: make(map[common.UUID]*report.MonthlyReport)}
}

func (r *fakeMonthlyRepo) Create(ctx context.Context, m report.MonthlyReport) (*report.MonthlyReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = common.NewUUID()
	stored := m
	r.byID[m.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeMonthlyRepo) GetByID(ctx context.Context, id common.UUID) (*report.MonthlyReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "monthly report not found", nil)
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMonthlyRepo) GetBySalary(ctx context.Context, salaryID common.UUID) (*report.MonthlyReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.byID {
		if m.SalaryID == salaryID {
			copied := *m
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "monthly report not found", nil)
}

func (r *fakeMonthlyRepo) Update(ctx context.Context, m report.MonthlyReport) (*report.MonthlyReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[m.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "monthly report not found", nil)
	}
	stored := m
	r.byID[m.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeMonthlyRepo) ListByStudent(ctx context.Context, studentID common.UUID) ([]report.MonthlyReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []report.MonthlyReport
	for _, m := range r.byID {
		if m.StudentID == studentID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMonthlyRepo) List(ctx context.Context) ([]report.MonthlyReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []report.MonthlyReport
	for _, m := range r.byID {
		out = append(out, *m)
	}
	return out, nil
}

type fakeArtifacts struct {
	fail bool
}

func (g *fakeArtifacts) Generate(ctx context.Context, key report.PairKey, p report.Period, rows []report.ArtifactRow) (string, error) {
	if g.fail {
		return "", common.NewError(common.CodeInternal, "artifact generation failed", nil)
	}
	return "artifacts/test.csv", nil
}
