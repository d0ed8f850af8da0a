package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/yigit/edutech/internal/app/models"
	"github.com/yigit/edutech/internal/db"
	"github.com/yigit/edutech/internal/pkg/apperrors"
	"github.com/yigit/edutech/internal/pkg/dberrors"
	"github.com/yigit/edutech/internal/pkg/logger"
)

// ICourseRepository defines the catalog storage operations
type ICourseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) (int64, error)
	Upsert(ctx context.Context, course *models.Course) (int64, error)
}

// courseColumns is the projection every course query scans with scanCourse.
// Numeric columns are read as text so decimals keep their exact value.
var courseColumns = []string{
	"id", "title", "description", "long_description", "category",
	"teacher_name", "teacher_university", "teacher_department", "teacher_bio",
	"price::text", "original_price::text", "rating", "students", "duration",
	"last_updated", "level", "chapters", "created_at",
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(q db.Querier) *CourseRepository {
	return &CourseRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// List returns the whole catalog in id order. Filtering happens in memory.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := make([]models.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning course row")
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, *course)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating course rows")
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by ID SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}

	return course, nil
}

// Create inserts a new course and returns its id
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (int64, error) {
	sql, args, err := r.insertCourse(course).Suffix("RETURNING id").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return 0, fmt.Errorf("failed to build create course query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrCourseAlreadyExists
		}
		logger.Error().Err(err).Str("title", course.Title).Msg("Error executing create course query")
		return 0, fmt.Errorf("error creating course: %w", err)
	}

	return id, nil
}

// Upsert inserts a course or refreshes the one with the same title
func (r *CourseRepository) Upsert(ctx context.Context, course *models.Course) (int64, error) {
	sql, args, err := r.insertCourse(course).
		Suffix(`ON CONFLICT (title) DO UPDATE SET
			description = EXCLUDED.description,
			long_description = EXCLUDED.long_description,
			category = EXCLUDED.category,
			teacher_name = EXCLUDED.teacher_name,
			teacher_university = EXCLUDED.teacher_university,
			teacher_department = EXCLUDED.teacher_department,
			teacher_bio = EXCLUDED.teacher_bio,
			price = EXCLUDED.price,
			original_price = EXCLUDED.original_price,
			rating = EXCLUDED.rating,
			students = EXCLUDED.students,
			duration = EXCLUDED.duration,
			last_updated = EXCLUDED.last_updated,
			level = EXCLUDED.level,
			chapters = EXCLUDED.chapters
		RETURNING id`).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building upsert course SQL")
		return 0, fmt.Errorf("failed to build upsert course query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("title", course.Title).Msg("Error executing upsert course query")
		return 0, fmt.Errorf("error upserting course: %w", err)
	}

	return id, nil
}

func (r *CourseRepository) insertCourse(course *models.Course) squirrel.InsertBuilder {
	var originalPrice *string
	if course.OriginalPrice != nil {
		s := course.OriginalPrice.String()
		originalPrice = &s
	}

	var level *string
	if course.Level != "" {
		l := string(course.Level)
		level = &l
	}

	chapters := course.Chapters
	if chapters == nil {
		chapters = []models.Chapter{}
	}

	return r.sb.Insert("courses").
		Columns(
			"title", "description", "long_description", "category",
			"teacher_name", "teacher_university", "teacher_department", "teacher_bio",
			"price", "original_price", "rating", "students", "duration",
			"last_updated", "level", "chapters",
		).
		Values(
			course.Title, course.Description, course.LongDescription, course.Category,
			course.Teacher.Name, course.Teacher.University, course.Teacher.Department, course.Teacher.Bio,
			course.Price.String(), originalPrice, course.Rating, course.Students, course.Duration,
			course.LastUpdated, level, chapters,
		)
}

// scanCourse reads one row projected with courseColumns
func scanCourse(row pgx.Row) (*models.Course, error) {
	var (
		c             models.Course
		price         string
		originalPrice *string
		lastUpdated   *time.Time
		level         *string
	)

	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.LongDescription, &c.Category,
		&c.Teacher.Name, &c.Teacher.University, &c.Teacher.Department, &c.Teacher.Bio,
		&price, &originalPrice, &c.Rating, &c.Students, &c.Duration,
		&lastUpdated, &level, &c.Chapters, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if c.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", price, err)
	}
	if originalPrice != nil {
		op, err := decimal.NewFromString(*originalPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid original price %q: %w", *originalPrice, err)
		}
		c.OriginalPrice = &op
	}
	if lastUpdated != nil {
		t := lastUpdated.UTC()
		c.LastUpdated = &t
	}
	if level != nil {
		c.Level = models.Level(*level)
	}

	return &c, nil
}
