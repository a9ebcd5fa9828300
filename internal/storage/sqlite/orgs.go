package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/foryourmind/server/internal/common"
	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage/rowcodec"
)

const orgColumns = `id, name, admin_id, settings, wellness_score, created_at`

func scanOrganization(row rowScanner) (*models.Organization, error) {
	var o models.Organization
	var settings string
	var createdAt int64
	if err := row.Scan(&o.ID, &o.Name, &o.AdminID, &settings, &o.WellnessScore, &createdAt); err != nil {
		return nil, err
	}
	o.Settings = rowcodec.DecodeMap(settings)
	o.CreatedAt = rowcodec.FromMillis(createdAt)
	return &o, nil
}

func (s *Store) insertOrganization(ctx context.Context, o *models.Organization) error {
	settings, err := rowcodec.EncodeJSON(o.Settings, "{}")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO organizations (`+orgColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		o.ID, o.Name, o.AdminID, settings, o.WellnessScore, rowcodec.Millis(o.CreatedAt))
	return err
}

func (s *Store) CreateOrganization(ctx context.Context, org *models.Organization) (*models.Organization, error) {
	o := *org
	o.ID = newID()
	o.CreatedAt = time.Now().UTC()
	if err := s.insertOrganization(ctx, &o); err != nil {
		return nil, fmt.Errorf("insert organization: %w", err)
	}
	return s.GetOrganization(ctx, o.ID)
}

func (s *Store) GetOrganization(ctx context.Context, id string) (*models.Organization, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+orgColumns+` FROM organizations WHERE id = ?`, id)
	o, err := scanOrganization(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		s.log.Error(ctx, "get organization failed", "error", err)
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return o, nil
}

func (s *Store) UpdateOrganization(ctx context.Context, id string, upd models.OrganizationUpdate) (*models.Organization, error) {
	var sets []string
	var args []any

	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Settings != nil {
		settings, err := rowcodec.EncodeJSON(upd.Settings, "{}")
		if err != nil {
			return nil, fmt.Errorf("encode settings: %w", err)
		}
		sets = append(sets, "settings = ?")
		args = append(args, settings)
	}
	if upd.WellnessScore != nil {
		sets = append(sets, "wellness_score = ?")
		args = append(args, *upd.WellnessScore)
	}
	if len(sets) > 0 {
		args = append(args, id)
		res, err := s.db.ExecContext(ctx,
			`UPDATE organizations SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
		if err != nil {
			return nil, fmt.Errorf("update organization: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, common.ErrNotFound
		}
	}
	return s.GetOrganization(ctx, id)
}

const employeeColumns = `id, user_id, organization_id, job_title, department, anonymous_id, wellness_streak`

func scanEmployee(row rowScanner) (*models.Employee, error) {
	var e models.Employee
	if err := row.Scan(&e.ID, &e.UserID, &e.OrganizationID, &e.JobTitle,
		&e.Department, &e.AnonymousID, &e.WellnessStreak); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) insertEmployee(ctx context.Context, e *models.Employee) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO employees (`+employeeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.OrganizationID, e.JobTitle, e.Department, e.AnonymousID, e.WellnessStreak)
	return err
}

func (s *Store) AddEmployee(ctx context.Context, emp *models.Employee) (*models.Employee, error) {
	if _, err := s.GetOrganization(ctx, emp.OrganizationID); err != nil {
		return nil, err
	}
	if _, err := s.GetUser(ctx, emp.UserID); err != nil {
		return nil, err
	}

	e := *emp
	e.ID = newID()
	if e.AnonymousID == "" {
		anon, err := common.MakeRandHexString(8)
		if err != nil {
			return nil, err
		}
		e.AnonymousID = "anon-" + anon
	}
	if err := s.insertEmployee(ctx, &e); err != nil {
		return nil, fmt.Errorf("insert employee: %w", err)
	}
	return &e, nil
}

func (s *Store) ListEmployeesByOrganization(ctx context.Context, orgID string) ([]*models.Employee, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE organization_id = ? ORDER BY anonymous_id`, orgID)
	if err != nil {
		s.log.Error(ctx, "list employees failed", "error", err)
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var out []*models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetWellnessMetrics aggregates the last 30 days of employee mood data,
// grouped by department. The result carries anonymized identifiers only.
func (s *Store) GetWellnessMetrics(ctx context.Context, orgID string) (*models.WellnessMetrics, error) {
	if _, err := s.GetOrganization(ctx, orgID); err != nil {
		return nil, err
	}

	employees, err := s.ListEmployeesByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	cutoff := nowMillis() - 30*24*time.Hour.Milliseconds()
	metrics := &models.WellnessMetrics{OrganizationID: orgID, EmployeeCount: len(employees)}

	type bucket struct {
		headcount    int
		participants int
		moodSum      float64
		moodCount    int
	}
	departments := map[string]*bucket{}
	var order []string

	var streakSum, moodSum float64
	var moodCount, participants int

	for _, e := range employees {
		streakSum += float64(e.WellnessStreak)
		b := departments[e.Department]
		if b == nil {
			b = &bucket{}
			departments[e.Department] = b
			order = append(order, e.Department)
		}
		b.headcount++

		var empCount int
		var empSum sql.NullFloat64
		err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*), SUM(mood) FROM mood_entries WHERE user_id = ? AND created_at >= ?`,
			e.UserID, cutoff).Scan(&empCount, &empSum)
		if err != nil {
			return nil, fmt.Errorf("aggregate moods: %w", err)
		}
		if empCount > 0 {
			participants++
			b.participants++
			moodCount += empCount
			moodSum += empSum.Float64
			b.moodCount += empCount
			b.moodSum += empSum.Float64
		}
	}

	if moodCount > 0 {
		metrics.AverageMood = round1(moodSum / float64(moodCount))
	}
	if len(employees) > 0 {
		metrics.Participation = round1(float64(participants) / float64(len(employees)) * 100)
		metrics.AverageStreak = round1(streakSum / float64(len(employees)))
	}
	for _, name := range order {
		b := departments[name]
		dm := models.DepartmentMetrics{
			Department:   name,
			Headcount:    b.headcount,
			Participants: b.participants,
		}
		if b.moodCount > 0 {
			dm.AverageMood = round1(b.moodSum / float64(b.moodCount))
		}
		metrics.Departments = append(metrics.Departments, dm)
	}
	return metrics, nil
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
