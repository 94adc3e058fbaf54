package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/user"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/http/handlers"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/http/metrics"
	httpmw "github.com/Tillayevxusniddin/JDUCoworking/internal/http/middleware"
)

type RouterDependencies struct {
	AuthHandler         *handlers.AuthHandler
	UserHandler         *handlers.UserHandler
	WorkspaceHandler    *handlers.WorkspaceHandler
	JobHandler          *handlers.JobHandler
	ApplicationHandler  *handlers.ApplicationHandler
	TaskHandler         *handlers.TaskHandler
	ReportHandler       *handlers.ReportHandler
	NotificationHandler *handlers.NotificationHandler
	MetricsHandler      *handlers.MetricsHandler
	AuthMiddleware      *httpmw.AuthMiddleware
	Metrics             *metrics.Collector
	Logger              *logrus.Logger
	RequestTimeout      time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging(r.deps.Logger), httpmw.BodyLimit(maxBodyBytes), httpmw.Recover(r.deps.Logger), httpmw.Metrics(r.deps.Metrics), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Get(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/register":
			r.deps.AuthHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/token":
			r.deps.AuthHandler.Token(w, req)
			return
		case req.Method == http.MethodGet && path == "/jobs":
			r.deps.JobHandler.List(w, req)
			return
		case req.Method == http.MethodGet && path == "/vacancies":
			r.deps.JobHandler.ListVacancies(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/"):
			r.deps.JobHandler.Get(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/vacancies/") && !strings.HasSuffix(path, "/applications"):
			r.deps.JobHandler.GetVacancy(w, req)
			return
		}

		if isProtectedPath(path) {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func isProtectedPath(path string) bool {
	for _, prefix := range []string{"/users", "/students", "/workspaces", "/members", "/jobs", "/vacancies", "/applications", "/tasks", "/reports", "/payroll", "/salaries", "/monthly-reports", "/notifications"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path
	staffOnly := httpmw.RequireType(user.TypeStaff, user.TypeAdmin)
	reviewers := httpmw.RequireType(user.TypeStaff, user.TypeAdmin, user.TypeRecruiter)
	studentsOnly := httpmw.RequireType(user.TypeStudent)

	switch {
	case req.Method == http.MethodGet && path == "/users/me":
		r.deps.UserHandler.Me(w, req)
		return
	case req.Method == http.MethodGet && path == "/students/profile":
		r.deps.UserHandler.GetStudentProfile(w, req)
		return
	case req.Method == http.MethodPost && path == "/students/profile":
		r.deps.UserHandler.UpsertStudentProfile(w, req)
		return
	case req.Method == http.MethodPut && path == "/students/profile":
		r.deps.UserHandler.UpsertStudentProfile(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/students/") && strings.HasSuffix(path, "/level"):
		staffOnly(http.HandlerFunc(r.deps.UserHandler.SetLevel)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/workspaces":
		staffOnly(http.HandlerFunc(r.deps.WorkspaceHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/workspaces":
		r.deps.WorkspaceHandler.ListMine(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/workspaces/") && strings.HasSuffix(path, "/members"):
		r.deps.WorkspaceHandler.ListMembers(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/workspaces/") && strings.HasSuffix(path, "/members"):
		r.deps.WorkspaceHandler.AddMember(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/workspaces/") && strings.HasSuffix(path, "/tasks"):
		r.deps.TaskHandler.ListByWorkspace(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/workspaces/"):
		r.deps.WorkspaceHandler.Get(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/members/"):
		r.deps.WorkspaceHandler.RemoveMember(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/members/") && strings.HasSuffix(path, "/rate"):
		staffOnly(http.HandlerFunc(r.deps.WorkspaceHandler.SetRateOverride)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/jobs":
		reviewers(http.HandlerFunc(r.deps.JobHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/vacancies":
		reviewers(http.HandlerFunc(r.deps.JobHandler.CreateVacancy)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/vacancies/") && strings.HasSuffix(path, "/applications"):
		reviewers(http.HandlerFunc(r.deps.ApplicationHandler.ListByVacancy)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/applications":
		studentsOnly(http.HandlerFunc(r.deps.ApplicationHandler.Apply)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications":
		r.deps.ApplicationHandler.ListMine(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/applications/"):
		studentsOnly(http.HandlerFunc(r.deps.ApplicationHandler.Withdraw)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/status"):
		reviewers(http.HandlerFunc(r.deps.ApplicationHandler.Decide)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/tasks":
		r.deps.TaskHandler.Create(w, req)
		return
	case req.Method == http.MethodGet && path == "/tasks":
		r.deps.TaskHandler.ListMine(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/tasks/") && strings.HasSuffix(path, "/status"):
		r.deps.TaskHandler.UpdateStatus(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/tasks/"):
		r.deps.TaskHandler.Update(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/tasks/"):
		r.deps.TaskHandler.Delete(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/tasks/"):
		r.deps.TaskHandler.Get(w, req)
		return
	case req.Method == http.MethodPost && path == "/reports/daily":
		studentsOnly(http.HandlerFunc(r.deps.ReportHandler.RecordDaily)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/reports/daily":
		r.deps.ReportHandler.ListMyDaily(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/reports/daily/"):
		studentsOnly(http.HandlerFunc(r.deps.ReportHandler.UpdateDaily)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/payroll/run":
		staffOnly(http.HandlerFunc(r.deps.ReportHandler.RunAggregation)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/salaries":
		staffOnly(http.HandlerFunc(r.deps.ReportHandler.ListSalaries)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/salaries/me":
		r.deps.ReportHandler.ListMySalaries(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/salaries/") && strings.HasSuffix(path, "/pay"):
		staffOnly(http.HandlerFunc(r.deps.ReportHandler.MarkPaid)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/salaries/"):
		r.deps.ReportHandler.GetSalary(w, req)
		return
	case req.Method == http.MethodGet && path == "/monthly-reports":
		staffOnly(http.HandlerFunc(r.deps.ReportHandler.ListMonthly)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/monthly-reports/me":
		r.deps.ReportHandler.ListMyMonthly(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/monthly-reports/") && strings.HasSuffix(path, "/decision"):
		staffOnly(http.HandlerFunc(r.deps.ReportHandler.Manage)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/monthly-reports/"):
		r.deps.ReportHandler.GetMonthly(w, req)
		return
	case req.Method == http.MethodGet && path == "/notifications":
		r.deps.NotificationHandler.List(w, req)
		return
	case req.Method == http.MethodPost && path == "/notifications/read-all":
		r.deps.NotificationHandler.MarkAllRead(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/notifications/") && strings.HasSuffix(path, "/read"):
		r.deps.NotificationHandler.MarkRead(w, req)
		return
	}

	http.NotFound(w, req)
}
