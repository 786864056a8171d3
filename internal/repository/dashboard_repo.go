package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"edu-backoffice/internal/model"
)

var (
	scheduleCallPattern = primitive.Regex{Pattern: `^Schedule\s?Call$`, Options: "i"}
	joinProjectsPattern = primitive.Regex{Pattern: `^Join\s?Projects$`, Options: "i"}
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

type leadDocument struct {
	ID              primitive.ObjectID `bson:"_id"`
	Name            string             `bson:"name"`
	Email           string             `bson:"email"`
	Phone           string             `bson:"phone"`
	ExperienceLevel string             `bson:"experienceLevel"`
	FormType        string             `bson:"formType"`
	PreferredTime   string             `bson:"preferredTime"`
	Goal            string             `bson:"goal"`
	Notes           string             `bson:"notes"`
	Status          string             `bson:"status"`
	CreatedAt       time.Time          `bson:"createdAt"`
}

type courseDocument struct {
	ID         primitive.ObjectID `bson:"_id"`
	Title      string             `bson:"title"`
	Instructor string             `bson:"instructor"`
	Students   int                `bson:"students"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

// LeadFilter selects the leads of one kind. General leads are every form
// submission that is neither a schedule-call nor a join-projects request.
func LeadFilter(kind model.LeadKind) bson.M {
	switch kind {
	case model.LeadsScheduleCall:
		return bson.M{"formType": scheduleCallPattern}
	case model.LeadsJoinProject:
		return bson.M{"formType": joinProjectsPattern}
	case model.LeadsGeneral:
		return bson.M{"formType": bson.M{"$nin": bson.A{scheduleCallPattern, joinProjectsPattern}}}
	default:
		return bson.M{}
	}
}

type LeadRepository struct {
	leads *mongo.Collection
}

func NewLeadRepository(leads *mongo.Collection) *LeadRepository {
	return &LeadRepository{leads: leads}
}

func (r *LeadRepository) List(ctx context.Context, kind model.LeadKind) ([]model.Lead, error) {
	cursor, err := r.leads.Find(ctx, LeadFilter(kind), options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("find leads: %w", err)
	}

	var docs []leadDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}

	leads := make([]model.Lead, 0, len(docs))
	for _, doc := range docs {
		leads = append(leads, model.Lead{
			ID:              doc.ID.Hex(),
			Name:            doc.Name,
			Email:           doc.Email,
			Phone:           doc.Phone,
			ExperienceLevel: doc.ExperienceLevel,
			FormType:        doc.FormType,
			PreferredTime:   doc.PreferredTime,
			Goal:            doc.Goal,
			Notes:           doc.Notes,
			Status:          doc.Status,
			CreatedAt:       doc.CreatedAt,
		})
	}
	return leads, nil
}

func (r *LeadRepository) Count(ctx context.Context, kind model.LeadKind) (int64, error) {
	n, err := r.leads.CountDocuments(ctx, LeadFilter(kind))
	if err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return n, nil
}

// MemberRepository reads platform accounts for the students and instructors views.
type MemberRepository struct {
	users *mongo.Collection
}

func NewMemberRepository(users *mongo.Collection) *MemberRepository {
	return &MemberRepository{users: users}
}

func (r *MemberRepository) ListByRole(ctx context.Context, role model.Role) ([]model.Member, error) {
	opts := options.Find().
		SetSort(newestFirst).
		SetProjection(bson.M{"password": 0})

	cursor, err := r.users.Find(ctx, bson.M{"role": string(role)}, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s members: %w", role, err)
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s members: %w", role, err)
	}

	members := make([]model.Member, 0, len(docs))
	for _, doc := range docs {
		members = append(members, model.Member{
			ID:        doc.ID.Hex(),
			Username:  doc.Username,
			Email:     doc.Email,
			Role:      role,
			Status:    doc.Status,
			CreatedAt: doc.CreatedAt,
		})
	}
	return members, nil
}

func (r *MemberRepository) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	n, err := r.users.CountDocuments(ctx, bson.M{"role": string(role)})
	if err != nil {
		return 0, fmt.Errorf("count %s members: %w", role, err)
	}
	return n, nil
}

type CourseRepository struct {
	courses *mongo.Collection
}

func NewCourseRepository(courses *mongo.Collection) *CourseRepository {
	return &CourseRepository{courses: courses}
}

func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	cursor, err := r.courses.Find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("find courses: %w", err)
	}

	var docs []courseDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode courses: %w", err)
	}

	courses := make([]model.Course, 0, len(docs))
	for _, doc := range docs {
		courses = append(courses, model.Course{
			ID:         doc.ID.Hex(),
			Title:      doc.Title,
			Instructor: doc.Instructor,
			Students:   doc.Students,
			CreatedAt:  doc.CreatedAt,
		})
	}
	return courses, nil
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.courses.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return n, nil
}
