package filters

import (
	"strings"

	"github.com/edugroup/site-api/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Achievers

type Achiever struct {
	Category      *model.AchieverCategory `validate:"omitempty,oneof=board_10 board_12 iit_jee neet sainik_school olympiad other"`
	Year          *int                    `validate:"omitempty,gte=1950,lte=2100"`
	InstitutionID *uuid.UUID
	Featured      *bool
	Status        *model.Status `validate:"omitempty,oneof=active inactive"`
	Search        string        `validate:"max=200"`
}

func AchieverFromQuery(get Getter) (Achiever, error) {
	var f Achiever
	var err error
	f.Category = stringParam[model.AchieverCategory](get, "category")
	f.Status = stringParam[model.Status](get, "status")
	f.Search = get("search")
	if f.Year, err = intParam(get, "year"); err != nil {
		return f, err
	}
	if f.InstitutionID, err = uuidParam(get, "institution_id"); err != nil {
		return f, err
	}
	if f.Featured, err = boolParam(get, "featured"); err != nil {
		return f, err
	}
	return f, f.Validate()
}

func (f Achiever) Validate() error { return check(f) }

func (f Achiever) Apply(db *gorm.DB) *gorm.DB {
	db = eq(db, "category", f.Category)
	db = eq(db, "year", f.Year)
	db = eq(db, "institution_id", f.InstitutionID)
	db = eq(db, "featured", f.Featured)
	return eq(db, "status", f.Status)
}

func (f Achiever) Match(a model.Achiever) bool {
	return same(f.Category, a.Category) &&
		same(f.Year, a.Year) &&
		sameOptional(f.InstitutionID, a.InstitutionID) &&
		same(f.Featured, a.Featured) &&
		same(f.Status, a.Status) &&
		containsFold(f.Search, a.Name, a.Achievement, a.ExamCleared, a.Class)
}

// Papers

type Paper struct {
	Subject    *string
	Class      *string
	Year       *int             `validate:"omitempty,gte=1950,lte=2100"`
	Type       *model.PaperType `validate:"omitempty,oneof=mock past"`
	Board      *string
	Difficulty *model.Difficulty `validate:"omitempty,oneof=easy medium hard"`
	Status     *model.Status     `validate:"omitempty,oneof=active inactive"`
	Search     string            `validate:"max=200"`
}

func PaperFromQuery(get Getter) (Paper, error) {
	var f Paper
	var err error
	f.Subject = stringParam[string](get, "subject")
	f.Class = stringParam[string](get, "class")
	f.Type = stringParam[model.PaperType](get, "type")
	f.Board = stringParam[string](get, "board")
	f.Difficulty = stringParam[model.Difficulty](get, "difficulty")
	f.Status = stringParam[model.Status](get, "status")
	f.Search = get("search")
	if f.Year, err = intParam(get, "year"); err != nil {
		return f, err
	}
	return f, f.Validate()
}

func (f Paper) Validate() error { return check(f) }

func (f Paper) Apply(db *gorm.DB) *gorm.DB {
	db = eq(db, "subject", f.Subject)
	db = eq(db, "class", f.Class)
	db = eq(db, "year", f.Year)
	db = eq(db, "type", f.Type)
	db = eq(db, "board", f.Board)
	db = eq(db, "difficulty", f.Difficulty)
	return eq(db, "status", f.Status)
}

func (f Paper) Match(p model.Paper) bool {
	return same(f.Subject, p.Subject) &&
		same(f.Class, p.Class) &&
		same(f.Year, p.Year) &&
		same(f.Type, p.Type) &&
		same(f.Board, p.Board) &&
		same(f.Difficulty, p.Difficulty) &&
		same(f.Status, p.Status) &&
		containsFold(f.Search, p.Subject, p.Board, p.Class)
}

// Career resources

type Resource struct {
	Category   *string
	Type       *model.ResourceType  `validate:"omitempty,oneof=article video guide tool webinar"`
	Difficulty *model.ResourceLevel `validate:"omitempty,oneof=beginner intermediate advanced"`
	Status     *model.Status        `validate:"omitempty,oneof=active inactive deleted"`
	Tag        string               `validate:"max=50"`
	Search     string               `validate:"max=200"`
}

func ResourceFromQuery(get Getter) (Resource, error) {
	f := Resource{
		Category:   stringParam[string](get, "category"),
		Type:       stringParam[model.ResourceType](get, "type"),
		Difficulty: stringParam[model.ResourceLevel](get, "difficulty"),
		Status:     stringParam[model.Status](get, "status"),
		Tag:        strings.TrimSpace(get("tag")),
		Search:     get("search"),
	}
	return f, f.Validate()
}

func (f Resource) Validate() error { return check(f) }

// Apply leaves Tag out: tags live in a JSON column, so tag matching is done
// in memory with Match.
func (f Resource) Apply(db *gorm.DB) *gorm.DB {
	db = eq(db, "category", f.Category)
	db = eq(db, "type", f.Type)
	db = eq(db, "difficulty", f.Difficulty)
	return eq(db, "status", f.Status)
}

func (f Resource) Match(r model.CareerResource) bool {
	return same(f.Category, r.Category) &&
		same(f.Type, r.Type) &&
		same(f.Difficulty, r.Difficulty) &&
		same(f.Status, r.Status) &&
		hasTag(f.Tag, r.Tags) &&
		containsFold(f.Search, append([]string{r.Title, r.Description, r.Author}, r.Tags...)...)
}

func hasTag(tag string, tags []string) bool {
	if tag == "" {
		return true
	}
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Quick updates

type QuickUpdate struct {
	Type          *model.UpdateType `validate:"omitempty,oneof=admission course scholarship facility announcement"`
	Priority      *model.Priority   `validate:"omitempty,oneof=low medium high"`
	InstitutionID *uuid.UUID
	Status        *model.Status `validate:"omitempty,oneof=active inactive"`
	Search        string        `validate:"max=200"`
}

func QuickUpdateFromQuery(get Getter) (QuickUpdate, error) {
	var f QuickUpdate
	var err error
	f.Type = stringParam[model.UpdateType](get, "type")
	f.Priority = stringParam[model.Priority](get, "priority")
	f.Status = stringParam[model.Status](get, "status")
	f.Search = get("search")
	if f.InstitutionID, err = uuidParam(get, "institution_id"); err != nil {
		return f, err
	}
	return f, f.Validate()
}

func (f QuickUpdate) Validate() error { return check(f) }

func (f QuickUpdate) Apply(db *gorm.DB) *gorm.DB {
	db = eq(db, "type", f.Type)
	db = eq(db, "priority", f.Priority)
	db = eq(db, "institution_id", f.InstitutionID)
	return eq(db, "status", f.Status)
}

func (f QuickUpdate) Match(u model.QuickUpdate) bool {
	return same(f.Type, u.Type) &&
		same(f.Priority, u.Priority) &&
		sameOptional(f.InstitutionID, u.InstitutionID) &&
		same(f.Status, u.Status) &&
		containsFold(f.Search, u.Title, u.Description)
}

// Media gallery

type Media struct {
	MediaType *model.MediaType `validate:"omitempty,oneof=image video"`
	Category  *string
	Featured  *bool
	Status    *model.Status `validate:"omitempty,oneof=active inactive"`
	Search    string        `validate:"max=200"`
}

func MediaFromQuery(get Getter) (Media, error) {
	var f Media
	var err error
	f.MediaType = stringParam[model.MediaType](get, "media_type")
	f.Category = stringParam[string](get, "category")
	f.Status = stringParam[model.Status](get, "status")
	f.Search = get("search")
	if f.Featured, err = boolParam(get, "featured"); err != nil {
		return f, err
	}
	return f, f.Validate()
}

func (f Media) Validate() error { return check(f) }

func (f Media) Apply(db *gorm.DB) *gorm.DB {
	db = eq(db, "media_type", f.MediaType)
	db = eq(db, "category", f.Category)
	db = eq(db, "featured", f.Featured)
	return eq(db, "status", f.Status)
}

func (f Media) Match(m model.MediaItem) bool {
	return same(f.MediaType, m.MediaType) &&
		same(f.Category, m.Category) &&
		same(f.Featured, m.Featured) &&
		same(f.Status, m.Status) &&
		containsFold(f.Search, m.Title, m.Description, m.AltText)
}

// Carousel images

type Carousel struct {
	Status *model.Status `validate:"omitempty,oneof=active inactive"`
	Search string        `validate:"max=200"`
}

func CarouselFromQuery(get Getter) (Carousel, error) {
	f := Carousel{
		Status: stringParam[model.Status](get, "status"),
		Search: get("search"),
	}
	return f, f.Validate()
}

func (f Carousel) Validate() error { return check(f) }

func (f Carousel) Apply(db *gorm.DB) *gorm.DB {
	return eq(db, "status", f.Status)
}

func (f Carousel) Match(c model.CarouselImage) bool {
	return same(f.Status, c.Status) &&
		containsFold(f.Search, c.Title, c.Caption, c.AltText)
}

// News

type News struct {
	Category *string
	Status   *model.NewsStatus `validate:"omitempty,oneof=published draft scheduled"`
	Search   string            `validate:"max=200"`
}

func NewsFromQuery(get Getter) (News, error) {
	f := News{
		Category: stringParam[string](get, "category"),
		Status:   stringParam[model.NewsStatus](get, "status"),
		Search:   get("search"),
	}
	return f, f.Validate()
}

func (f News) Validate() error { return check(f) }

func (f News) Apply(db *gorm.DB) *gorm.DB {
	db = eq(db, "category", f.Category)
	return eq(db, "status", f.Status)
}

func (f News) Match(n model.News) bool {
	return same(f.Category, n.Category) &&
		same(f.Status, n.Status) &&
		containsFold(f.Search, n.Title, n.Excerpt, n.Category)
}

// Admission forms

type Admission struct {
	InstitutionCode *string
	Course          *string
	Status          *model.AdmissionStatus `validate:"omitempty,oneof=pending reviewed accepted rejected"`
	Search          string                 `validate:"max=200"`
}

func AdmissionFromQuery(get Getter) (Admission, error) {
	f := Admission{
		InstitutionCode: stringParam[string](get, "institution_code"),
		Course:          stringParam[string](get, "course"),
		Status:          stringParam[model.AdmissionStatus](get, "status"),
		Search:          get("search"),
	}
	return f, f.Validate()
}

func (f Admission) Validate() error { return check(f) }

func (f Admission) Apply(db *gorm.DB) *gorm.DB {
	db = eq(db, "institution_code", f.InstitutionCode)
	db = eq(db, "course", f.Course)
	return eq(db, "status", f.Status)
}

func (f Admission) Match(a model.AdmissionForm) bool {
	return same(f.InstitutionCode, a.InstitutionCode) &&
		same(f.Course, a.Course) &&
		same(f.Status, a.Status) &&
		containsFold(f.Search, a.StudentName, a.ParentName, a.Email, a.Phone)
}
