package model

import "time"

type ViewName string

const (
	ViewLeads         ViewName = "leads"
	ViewScheduleCalls ViewName = "scheduleCalls"
	ViewJoinProjects  ViewName = "joinProjects"
	ViewStudents      ViewName = "students"
	ViewInstructors   ViewName = "instructors"
	ViewCourses       ViewName = "courses"
	ViewBlogs         ViewName = "blogs"
)

// DashboardViews lists the views in the order the dashboard renders them.
var DashboardViews = []ViewName{
	ViewLeads,
	ViewScheduleCalls,
	ViewJoinProjects,
	ViewStudents,
	ViewCourses,
	ViewInstructors,
	ViewBlogs,
}

func ParseView(raw string) (ViewName, bool) {
	for _, view := range DashboardViews {
		if string(view) == raw {
			return view, true
		}
	}
	return "", false
}

type LeadKind int

const (
	LeadsGeneral LeadKind = iota
	LeadsScheduleCall
	LeadsJoinProject
	LeadsAll
)

// Lead is a contact form submission as stored in the leads collection.
type Lead struct {
	ID              string
	Name            string
	Email           string
	Phone           string
	ExperienceLevel string
	FormType        string
	PreferredTime   string
	Goal            string
	Notes           string
	Status          string
	CreatedAt       time.Time
}

// Member is a platform account from the users collection.
type Member struct {
	ID        string
	Username  string
	Email     string
	Role      Role
	Status    string
	CreatedAt time.Time
}

type Course struct {
	ID         string
	Title      string
	Instructor string
	Students   int
	CreatedAt  time.Time
}

type LeadRow struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Experience    string    `json:"experience"`
	Type          string    `json:"type"`
	PreferredTime string    `json:"preferredTime,omitempty"`
	Goal          string    `json:"goal,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status,omitempty"`
	Date          time.Time `json:"date"`
}

type StudentRow struct {
	ID       string    `json:"_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Status   string    `json:"status"`
	Course   string    `json:"course"`
	Progress string    `json:"progress"`
	Joined   time.Time `json:"joined"`
}

type InstructorRow struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Status  string `json:"status"`
	Courses string `json:"courses"`
	Rating  string `json:"rating"`
}

type CourseRow struct {
	ID         string    `json:"_id"`
	Title      string    `json:"title"`
	Instructor string    `json:"instructor"`
	Students   int       `json:"students"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ViewProjection is one table of the dashboard overview. Error is set instead
// of Data when that view's query failed.
type ViewProjection struct {
	ID      ViewName `json:"id"`
	Title   string   `json:"title"`
	Data    any      `json:"data"`
	Columns []string `json:"columns"`
	Error   string   `json:"error,omitempty"`
}

type OverviewResponse struct {
	Success bool             `json:"success"`
	Views   []ViewProjection `json:"views"`
}

type StatCard struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Value string `json:"value"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Href  string `json:"href,omitempty"`
}
