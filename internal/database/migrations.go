package database

import (
	"database/sql"
	"fmt"
)

// Migrate applies the schema. Statements are idempotent so the server can
// run them on every boot; uniqueness rules live here, not in application
// checks, to close check-then-insert races.
func Migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		user_type TEXT NOT NULL DEFAULT 'STUDENT',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS students (
		user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		student_number TEXT UNIQUE,
		it_skills TEXT[] NOT NULL DEFAULT '{}',
		level_status TEXT NOT NULL DEFAULT 'SIMPLE',
		hire_date DATE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS workspaces (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_by UUID NOT NULL REFERENCES users(id),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		max_members INTEGER NOT NULL DEFAULT 50,
		workspace_type TEXT NOT NULL DEFAULT 'GENERAL',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS workspace_members (
		id UUID PRIMARY KEY,
		workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		hourly_rate_override NUMERIC(10,2),
		joined_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT unique_workspace_membership UNIQUE (workspace_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id UUID PRIMARY KEY,
		workspace_id UUID UNIQUE REFERENCES workspaces(id) ON DELETE SET NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		base_hourly_rate NUMERIC(10,2) NOT NULL,
		created_by UUID NOT NULL REFERENCES users(id),
		status TEXT NOT NULL DEFAULT 'ACTIVE',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS job_vacancies (
		id UUID PRIMARY KEY,
		job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		requirements TEXT NOT NULL DEFAULT '',
		slots_available INTEGER NOT NULL DEFAULT 1 CHECK (slots_available >= 0),
		application_deadline DATE NOT NULL,
		created_by UUID NOT NULL REFERENCES users(id),
		status TEXT NOT NULL DEFAULT 'OPEN',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS vacancy_applications (
		id UUID PRIMARY KEY,
		vacancy_id UUID NOT NULL REFERENCES job_vacancies(id) ON DELETE CASCADE,
		applicant_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		cover_letter TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'PENDING',
		applied_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT unique_vacancy_application UNIQUE (vacancy_id, applicant_id)
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id UUID PRIMARY KEY,
		workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		assigned_to UUID NOT NULL REFERENCES users(id),
		created_by UUID NOT NULL REFERENCES users(id),
		status TEXT NOT NULL DEFAULT 'STARTED',
		priority TEXT NOT NULL DEFAULT 'LOW',
		due_date DATE NOT NULL,
		completed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS daily_reports (
		id UUID PRIMARY KEY,
		student_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		report_date DATE NOT NULL,
		hours_worked NUMERIC(4,2) NOT NULL CHECK (hours_worked >= 0),
		work_description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT unique_daily_report UNIQUE (student_id, workspace_id, report_date)
	)`,
	`CREATE TABLE IF NOT EXISTS salary_records (
		id UUID PRIMARY KEY,
		student_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		total_hours NUMERIC(6,2) NOT NULL,
		hourly_rate NUMERIC(10,2) NOT NULL,
		gross_amount NUMERIC(10,2) NOT NULL,
		deduction_percentage NUMERIC(5,2) NOT NULL DEFAULT 20.00,
		deduction_amount NUMERIC(10,2) NOT NULL,
		net_amount NUMERIC(10,2) NOT NULL,
		status TEXT NOT NULL DEFAULT 'PENDING',
		approved_by UUID REFERENCES users(id),
		approved_at TIMESTAMPTZ,
		paid_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT unique_salary_period UNIQUE (student_id, workspace_id, year, month)
	)`,
	`CREATE TABLE IF NOT EXISTS monthly_reports (
		id UUID PRIMARY KEY,
		student_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		salary_id UUID NOT NULL UNIQUE REFERENCES salary_records(id) ON DELETE CASCADE,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		file_path TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'GENERATED',
		managed_by UUID REFERENCES users(id),
		rejection_reason TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT unique_monthly_report_period UNIQUE (student_id, workspace_id, year, month)
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY,
		recipient_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		actor_id UUID REFERENCES users(id) ON DELETE SET NULL,
		verb TEXT NOT NULL,
		message TEXT NOT NULL,
		subject_kind TEXT NOT NULL DEFAULT '',
		subject_id UUID,
		target_kind TEXT NOT NULL DEFAULT '',
		target_id UUID,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_due_status ON tasks (due_date, status)`,
	`CREATE INDEX IF NOT EXISTS idx_daily_reports_period ON daily_reports (report_date, student_id, workspace_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications (recipient_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_members_user ON workspace_members (user_id) WHERE is_active`,
}
