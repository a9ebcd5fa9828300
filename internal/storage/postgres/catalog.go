package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/foryourmind/server/internal/common"
	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage/rowcodec"
)

const therapistColumns = `id, name, specialization, license_number, profile_url, rating, availability`

func scanTherapist(row rowScanner) (*models.Therapist, error) {
	var t models.Therapist
	var availability string
	if err := row.Scan(&t.ID, &t.Name, &t.Specialization, &t.LicenseNumber,
		&t.ProfileURL, &t.Rating, &availability); err != nil {
		return nil, err
	}
	t.Availability = rowcodec.DecodeMap(availability)
	return &t, nil
}

func (s *Store) insertTherapist(ctx context.Context, t *models.Therapist) error {
	availability, err := rowcodec.EncodeJSON(t.Availability, "{}")
	if err != nil {
		return fmt.Errorf("encode availability: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO therapists (`+therapistColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.Name, t.Specialization, t.LicenseNumber, t.ProfileURL, t.Rating, availability)
	return err
}

func (s *Store) ListTherapists(ctx context.Context) ([]*models.Therapist, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+therapistColumns+` FROM therapists ORDER BY name`)
	if err != nil {
		s.log.Error(ctx, "list therapists failed", "error", err)
		return nil, fmt.Errorf("list therapists: %w", err)
	}
	defer rows.Close()

	var out []*models.Therapist
	for rows.Next() {
		t, err := scanTherapist(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) GetTherapist(ctx context.Context, id string) (*models.Therapist, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+therapistColumns+` FROM therapists WHERE id = $1`, id)
	t, err := scanTherapist(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		s.log.Error(ctx, "get therapist failed", "error", err)
		return nil, fmt.Errorf("get therapist: %w", err)
	}
	return t, nil
}

const appointmentColumns = `id, therapist_id, user_id, starts_at, ends_at, status, notes`

func scanAppointment(row rowScanner) (*models.Appointment, error) {
	var a models.Appointment
	if err := row.Scan(&a.ID, &a.TherapistID, &a.UserID, &a.StartsAt, &a.EndsAt, &a.Status, &a.Notes); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) CreateAppointment(ctx context.Context, appt *models.Appointment) (*models.Appointment, error) {
	if _, err := s.GetTherapist(ctx, appt.TherapistID); err != nil {
		return nil, err
	}

	a := *appt
	a.ID = newID()
	if a.Status == "" {
		a.Status = models.AppointmentPending
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO appointments (`+appointmentColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.TherapistID, a.UserID, a.StartsAt, a.EndsAt, a.Status, a.Notes)
	if err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}
	return s.GetAppointment(ctx, a.ID)
}

func (s *Store) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	a, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		s.log.Error(ctx, "get appointment failed", "error", err)
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

// GetUserAppointments is ordered earliest-first, unlike the other lists.
func (s *Store) GetUserAppointments(ctx context.Context, userID string) ([]*models.Appointment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE user_id = $1 ORDER BY starts_at ASC`, userID)
	if err != nil {
		s.log.Error(ctx, "list appointments failed", "error", err)
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var out []*models.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) UpdateAppointment(ctx context.Context, id string, upd models.AppointmentUpdate) (*models.Appointment, error) {
	var sets []string
	var args []any
	next := func() int { return len(args) + 1 }

	if upd.StartsAt != nil {
		sets = append(sets, fmt.Sprintf("starts_at = $%d", next()))
		args = append(args, *upd.StartsAt)
	}
	if upd.EndsAt != nil {
		sets = append(sets, fmt.Sprintf("ends_at = $%d", next()))
		args = append(args, *upd.EndsAt)
	}
	if upd.Status != nil {
		sets = append(sets, fmt.Sprintf("status = $%d", next()))
		args = append(args, *upd.Status)
	}
	if upd.Notes != nil {
		sets = append(sets, fmt.Sprintf("notes = $%d", next()))
		args = append(args, *upd.Notes)
	}
	if len(sets) > 0 {
		args = append(args, id)
		res, err := s.db.ExecContext(ctx,
			fmt.Sprintf(`UPDATE appointments SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args)),
			args...)
		if err != nil {
			return nil, fmt.Errorf("update appointment: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, common.ErrNotFound
		}
	}
	return s.GetAppointment(ctx, id)
}

const courseColumns = `id, title, description, duration, difficulty, thumbnail, modules`

func scanCourse(row rowScanner) (*models.Course, error) {
	var c models.Course
	var modules string
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Duration,
		&c.Difficulty, &c.Thumbnail, &modules); err != nil {
		return nil, err
	}
	c.Modules = rowcodec.DecodeAnySlice(modules)
	return &c, nil
}

func (s *Store) insertCourse(ctx context.Context, c *models.Course) error {
	modules, err := rowcodec.EncodeJSON(c.Modules, "[]")
	if err != nil {
		return fmt.Errorf("encode modules: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO courses (`+courseColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Title, c.Description, c.Duration, c.Difficulty, c.Thumbnail, modules)
	return err
}

func (s *Store) ListCourses(ctx context.Context) ([]*models.Course, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+courseColumns+` FROM courses ORDER BY title`)
	if err != nil {
		s.log.Error(ctx, "list courses failed", "error", err)
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var out []*models.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1`, id)
	c, err := scanCourse(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		s.log.Error(ctx, "get course failed", "error", err)
		return nil, fmt.Errorf("get course: %w", err)
	}
	return c, nil
}

// SaveCourseProgress relies on the (user_id, course_id) unique index to
// replace any previous row.
func (s *Store) SaveCourseProgress(ctx context.Context, progress *models.CourseProgress) (*models.CourseProgress, error) {
	if _, err := s.GetCourse(ctx, progress.CourseID); err != nil {
		return nil, err
	}

	p := *progress
	p.ID = newID()
	p.UpdatedAt = time.Now().UTC()
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO course_progress (id, user_id, course_id, percent, modules_done, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id, course_id) DO UPDATE SET
		   percent = excluded.percent,
		   modules_done = excluded.modules_done,
		   updated_at = excluded.updated_at
		 RETURNING id, user_id, course_id, percent, modules_done, updated_at`,
		p.ID, p.UserID, p.CourseID, p.Percent, p.ModulesDone, p.UpdatedAt)
	return scanCourseProgress(row)
}

func scanCourseProgress(row rowScanner) (*models.CourseProgress, error) {
	var p models.CourseProgress
	if err := row.Scan(&p.ID, &p.UserID, &p.CourseID, &p.Percent, &p.ModulesDone, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) GetUserCourseProgress(ctx context.Context, userID string) ([]*models.CourseProgress, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, course_id, percent, modules_done, updated_at
		 FROM course_progress WHERE user_id = $1 ORDER BY updated_at DESC`, userID)
	if err != nil {
		s.log.Error(ctx, "list course progress failed", "error", err)
		return nil, fmt.Errorf("list course progress: %w", err)
	}
	defer rows.Close()

	var out []*models.CourseProgress
	for rows.Next() {
		p, err := scanCourseProgress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
