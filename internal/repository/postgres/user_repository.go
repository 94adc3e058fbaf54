package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/user"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (*user.User, error) {
	u.ID = common.NewUUID()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err := querier(ctx, r.db).ExecContext(ctx, `INSERT INTO users (id, email, first_name, last_name, user_type, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Email, u.FirstName, u.LastName, u.Type, u.IsActive, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "email already registered", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create user", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	return r.scanOne(querier(ctx, r.db).QueryRowContext(ctx, `SELECT id, email, first_name, last_name, user_type, is_active, created_at, updated_at
		FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.scanOne(querier(ctx, r.db).QueryRowContext(ctx, `SELECT id, email, first_name, last_name, user_type, is_active, created_at, updated_at
		FROM users WHERE email = $1`, email))
}

func (r *UserRepository) scanOne(row *sql.Row) (*user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Type, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "user not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load user", err)
	}
	return &u, nil
}

type StudentRepository struct {
	db *sql.DB
}

func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) Upsert(ctx context.Context, s user.Student) (*user.Student, error) {
	now := time.Now().UTC()
	s.UpdatedAt = now
	if s.LevelStatus == "" {
		s.LevelStatus = user.LevelSimple
	}
	_, err := querier(ctx, r.db).ExecContext(ctx, `INSERT INTO students (user_id, student_number, it_skills, level_status, hire_date, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			student_number = EXCLUDED.student_number,
			it_skills = EXCLUDED.it_skills,
			level_status = EXCLUDED.level_status,
			hire_date = EXCLUDED.hire_date,
			updated_at = EXCLUDED.updated_at`,
		s.UserID, s.StudentNumber, pq.Array(s.ITSkills), s.LevelStatus, s.HireDate, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "student number already taken", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to save student profile", err)
	}
	return r.GetByUserID(ctx, s.UserID)
}

func (r *StudentRepository) GetByUserID(ctx context.Context, userID common.UUID) (*user.Student, error) {
	row := querier(ctx, r.db).QueryRowContext(ctx, `SELECT user_id, COALESCE(student_number, ''), it_skills, level_status, hire_date, created_at, updated_at
		FROM students WHERE user_id = $1`, userID)
	var s user.Student
	if err := row.Scan(&s.UserID, &s.StudentNumber, pq.Array(&s.ITSkills), &s.LevelStatus, &s.HireDate, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "student profile not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load student profile", err)
	}
	return &s, nil
}

func (r *StudentRepository) UpdateLevelStatus(ctx context.Context, userID common.UUID, level user.LevelStatus) (*user.Student, error) {
	result, err := querier(ctx, r.db).ExecContext(ctx, `UPDATE students SET level_status = $1, updated_at = $2 WHERE user_id = $3`,
		level, time.Now().UTC(), userID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update level status", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, common.NewError(common.CodeNotFound, "student profile not found", nil)
	}
	return r.GetByUserID(ctx, userID)
}
