package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"edu-backoffice/internal/model"
	"edu-backoffice/pkg/apierror"
)

type LeadSource interface {
	List(ctx context.Context, kind model.LeadKind) ([]model.Lead, error)
	Count(ctx context.Context, kind model.LeadKind) (int64, error)
}

type MemberSource interface {
	ListByRole(ctx context.Context, role model.Role) ([]model.Member, error)
	CountByRole(ctx context.Context, role model.Role) (int64, error)
}

type CourseSource interface {
	List(ctx context.Context) ([]model.Course, error)
	Count(ctx context.Context) (int64, error)
}

type PostCatalog interface {
	List(ctx context.Context) ([]model.BlogPost, error)
	Count(ctx context.Context) (int64, error)
}

type viewDefinition struct {
	title   string
	columns []string
}

var leadColumns = []string{"Name", "Contact", "Type", "Experience", "Date", "Actions"}

var viewDefinitions = map[model.ViewName]viewDefinition{
	model.ViewLeads:         {title: "Leads", columns: leadColumns},
	model.ViewScheduleCalls: {title: "Schedule Calls", columns: leadColumns},
	model.ViewJoinProjects:  {title: "Join Projects", columns: leadColumns},
	model.ViewStudents:      {title: "Students", columns: []string{"Name", "Contact", "Course", "Progress", "Status", "Joined", "Actions"}},
	model.ViewCourses:       {title: "Courses", columns: []string{"Title", "Instructor", "Students", "Status", "Created", "Actions"}},
	model.ViewInstructors:   {title: "Instructors", columns: []string{"Name", "Contact", "Courses", "Rating", "Status", "Actions"}},
	model.ViewBlogs:         {title: "Blogs", columns: []string{"Title", "Author", "Category", "Views", "Status", "Published", "Actions"}},
}

// DashboardService projects the platform's leads, accounts, courses and posts
// into the tables and stat cards of the super-admin dashboard.
type DashboardService struct {
	leads   LeadSource
	members MemberSource
	courses CourseSource
	posts   PostCatalog
	printer *message.Printer
}

func NewDashboardService(leads LeadSource, members MemberSource, courses CourseSource, posts PostCatalog) *DashboardService {
	return &DashboardService{
		leads:   leads,
		members: members,
		courses: courses,
		posts:   posts,
		printer: message.NewPrinter(language.English),
	}
}

// View returns the rows of a single dashboard table.
func (s *DashboardService) View(ctx context.Context, raw string) (any, error) {
	if raw == "" {
		return nil, apierror.New("INVALID_VIEW", "View parameter is required", "", http.StatusBadRequest)
	}

	view, ok := model.ParseView(raw)
	if !ok {
		return nil, apierror.New("INVALID_VIEW", "Invalid view type", raw, http.StatusBadRequest)
	}

	return s.rows(ctx, view)
}

// Overview loads every view concurrently. A failing view carries its own
// error and an empty table; the others are unaffected.
func (s *DashboardService) Overview(ctx context.Context) []model.ViewProjection {
	projections := make([]model.ViewProjection, len(model.DashboardViews))

	var g errgroup.Group
	for i, view := range model.DashboardViews {
		i, view := i, view
		g.Go(func() error {
			def := viewDefinitions[view]
			projection := model.ViewProjection{ID: view, Title: def.title, Columns: def.columns}

			rows, err := s.rows(ctx, view)
			if err != nil {
				slog.Error("dashboard view failed", "view", view, "error", err)
				projection.Data = []any{}
				projection.Error = fmt.Sprintf("Failed to load %s", def.title)
			} else {
				projection.Data = rows
			}

			projections[i] = projection
			return nil
		})
	}
	_ = g.Wait()

	return projections
}

// Stats counts every source concurrently. Any failed count fails the whole
// request.
func (s *DashboardService) Stats(ctx context.Context) ([]model.StatCard, error) {
	var totalLeads, scheduleCalls, joinProjects, students, instructors, courses, blogs int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { totalLeads, err = s.leads.Count(gctx, model.LeadsAll); return })
	g.Go(func() (err error) { scheduleCalls, err = s.leads.Count(gctx, model.LeadsScheduleCall); return })
	g.Go(func() (err error) { joinProjects, err = s.leads.Count(gctx, model.LeadsJoinProject); return })
	g.Go(func() (err error) { students, err = s.members.CountByRole(gctx, model.RoleStudent); return })
	g.Go(func() (err error) { instructors, err = s.members.CountByRole(gctx, model.RoleAdmin); return })
	g.Go(func() (err error) { courses, err = s.courses.Count(gctx); return })
	g.Go(func() (err error) { blogs, err = s.posts.Count(gctx); return })

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	return []model.StatCard{
		{ID: "leads", Title: "Total Leads", Value: s.format(totalLeads), Icon: "Users", Color: "cyan"},
		{ID: "scheduleCalls", Title: "Schedule Calls", Value: s.format(scheduleCalls), Icon: "Calendar", Color: "emerald"},
		{ID: "joinProjects", Title: "Join Projects", Value: s.format(joinProjects), Icon: "Play", Color: "purple"},
		{ID: "analytics", Title: "This Month's Stats", Value: "+12%", Icon: "TrendingUp", Color: "orange", Href: "/analytics"},
		{ID: "students", Title: "Total Students", Value: s.format(students), Icon: "Users", Color: "teal"},
		{ID: "instructors", Title: "Total Instructors", Value: s.format(instructors), Icon: "Briefcase", Color: "violet"},
		{ID: "courses", Title: "Active Courses", Value: s.format(courses), Icon: "BookOpen", Color: "blue"},
		{ID: "blogs", Title: "Published Blogs", Value: s.format(blogs), Icon: "FileText", Color: "pink"},
	}, nil
}

func (s *DashboardService) format(n int64) string {
	return s.printer.Sprintf("%d", n)
}

func (s *DashboardService) rows(ctx context.Context, view model.ViewName) (any, error) {
	switch view {
	case model.ViewLeads:
		return s.leadRows(ctx, model.LeadsGeneral)
	case model.ViewScheduleCalls:
		return s.leadRows(ctx, model.LeadsScheduleCall)
	case model.ViewJoinProjects:
		return s.leadRows(ctx, model.LeadsJoinProject)
	case model.ViewStudents:
		return s.studentRows(ctx)
	case model.ViewInstructors:
		return s.instructorRows(ctx)
	case model.ViewCourses:
		return s.courseRows(ctx)
	case model.ViewBlogs:
		return s.posts.List(ctx)
	default:
		return nil, apierror.New("INVALID_VIEW", "Invalid view type", string(view), http.StatusBadRequest)
	}
}

func (s *DashboardService) leadRows(ctx context.Context, kind model.LeadKind) ([]model.LeadRow, error) {
	leads, err := s.leads.List(ctx, kind)
	if err != nil {
		return nil, err
	}

	rows := make([]model.LeadRow, 0, len(leads))
	for _, lead := range leads {
		rows = append(rows, model.LeadRow{
			ID:            lead.ID,
			Name:          lead.Name,
			Email:         lead.Email,
			Phone:         lead.Phone,
			Experience:    lead.ExperienceLevel,
			Type:          lead.FormType,
			PreferredTime: lead.PreferredTime,
			Goal:          lead.Goal,
			Notes:         lead.Notes,
			Status:        lead.Status,
			Date:          lead.CreatedAt,
		})
	}
	return rows, nil
}

func (s *DashboardService) studentRows(ctx context.Context) ([]model.StudentRow, error) {
	members, err := s.members.ListByRole(ctx, model.RoleStudent)
	if err != nil {
		return nil, err
	}

	rows := make([]model.StudentRow, 0, len(members))
	for _, member := range members {
		rows = append(rows, model.StudentRow{
			ID:       member.ID,
			Name:     member.Username,
			Email:    member.Email,
			Status:   memberStatus(member),
			Course:   "Not Enrolled",
			Progress: "0%",
			Joined:   member.CreatedAt,
		})
	}
	return rows, nil
}

func (s *DashboardService) instructorRows(ctx context.Context) ([]model.InstructorRow, error) {
	members, err := s.members.ListByRole(ctx, model.RoleAdmin)
	if err != nil {
		return nil, err
	}

	rows := make([]model.InstructorRow, 0, len(members))
	for _, member := range members {
		rows = append(rows, model.InstructorRow{
			ID:      member.ID,
			Name:    member.Username,
			Email:   member.Email,
			Status:  memberStatus(member),
			Courses: "0",
			Rating:  "N/A",
		})
	}
	return rows, nil
}

func (s *DashboardService) courseRows(ctx context.Context) ([]model.CourseRow, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]model.CourseRow, 0, len(courses))
	for _, course := range courses {
		rows = append(rows, model.CourseRow{
			ID:         course.ID,
			Title:      course.Title,
			Instructor: course.Instructor,
			Students:   course.Students,
			Status:     "Published",
			CreatedAt:  course.CreatedAt,
		})
	}
	return rows, nil
}

func memberStatus(member model.Member) string {
	if member.Status == "" {
		return "Active"
	}
	return member.Status
}
