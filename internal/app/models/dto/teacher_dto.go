package dto

import (
	"github.com/yigit/edutech/internal/domain/catalog"
	"github.com/yigit/edutech/internal/pkg/currency"
)

// TeacherResponse is one entry of the teacher directory
type TeacherResponse struct {
	Slug         string   `json:"slug" example:"alex-johnson"`
	Name         string   `json:"name" example:"Alex Johnson"`
	University   string   `json:"university" example:"Stanford University"`
	Department   string   `json:"department,omitempty"`
	Bio          string   `json:"bio,omitempty"`
	Universities []string `json:"universities"`
	Categories   []string `json:"categories"`
	CourseCount  int      `json:"courseCount"`
	Students     int64    `json:"students"`
	Rating       float64  `json:"rating" example:"4.8"`
}

// TeacherProfileResponse is a teacher with their courses
type TeacherProfileResponse struct {
	TeacherResponse
	Courses []CourseResponse `json:"courses"`
}

// CourseStatsResponse is one dashboard row
type CourseStatsResponse struct {
	Course  CourseResponse `json:"course"`
	Revenue Money          `json:"revenue"`
}

// TeachingStatsResponse is the teacher dashboard
type TeachingStatsResponse struct {
	PublishedCourses int                   `json:"publishedCourses"`
	TotalStudents    int64                 `json:"totalStudents"`
	TotalRevenue     Money                 `json:"totalRevenue"`
	Courses          []CourseStatsResponse `json:"courses"`
}

// FromTeacher converts a directory entry
func FromTeacher(t catalog.TeacherSummary) TeacherResponse {
	return TeacherResponse{
		Slug:         t.Slug,
		Name:         t.Teacher.Name,
		University:   t.Teacher.University,
		Department:   t.Teacher.Department,
		Bio:          t.Teacher.Bio,
		Universities: t.Universities,
		Categories:   t.Categories,
		CourseCount:  t.CourseCount,
		Students:     t.Students,
		Rating:       t.Rating,
	}
}

// FromTeachers converts the teacher directory
func FromTeachers(teachers []catalog.TeacherSummary) []TeacherResponse {
	out := make([]TeacherResponse, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, FromTeacher(t))
	}
	return out
}

// FromTeachingStats converts a teacher dashboard for display
func FromTeachingStats(cur *currency.Currency, s *catalog.TeachingStats) TeachingStatsResponse {
	rows := make([]CourseStatsResponse, 0, len(s.Courses))
	for _, c := range s.Courses {
		rows = append(rows, CourseStatsResponse{Course: FromCourse(cur, c.Course), Revenue: NewMoney(cur, c.Revenue)})
	}
	return TeachingStatsResponse{
		PublishedCourses: s.PublishedCourses,
		TotalStudents:    s.TotalStudents,
		TotalRevenue:     NewMoney(cur, s.TotalRevenue),
		Courses:          rows,
	}
}
