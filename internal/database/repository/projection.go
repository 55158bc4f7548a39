package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Logical user fields accepted by GetUser
const (
	FieldAll              = "all"
	FieldID               = "id"
	FieldRoleName         = "roleName"
	FieldName             = "name"
	FieldEmail            = "email"
	FieldHashedPassword   = "hashedPassword"
	FieldSkills           = "skills"
	FieldLanguageNames    = "languageNames"
	FieldSocialLinks      = "socialLinks"
	FieldEducationDegrees = "educationDegrees"
	FieldWorkExperiences  = "workExperiences"
	FieldPortfolios       = "portfolios"
	FieldPhoneNumber      = "phoneNumber"
	FieldPostalCode       = "postalCode"
	FieldHomeAddress      = "homeAddress"
	FieldGenderName       = "genderName"
	FieldJobTitle         = "jobTitle"
	FieldBio              = "bio"
	FieldBirthDate        = "birthDate"
	FieldCreatedAt        = "createdAt"
	FieldUpdatedAt        = "updatedAt"
	FieldLastLoginAt      = "lastLoginAt"
)

// DefaultFields is the projection used when a caller has no specific needs.
// id and roleName are always added on top.
var DefaultFields = []string{FieldName, FieldEmail, FieldCreatedAt, FieldUpdatedAt, FieldLastLoginAt}

// UserView is a partial user record. Only the fields listed in Fields were
// selected; a nil pointer is either unselected or NULL, use Has to tell.
type UserView struct {
	Fields []string `json:"-"`

	ID               uint                   `json:"id"`
	RoleName         string                 `json:"roleName"`
	Name             *string                `json:"name,omitempty"`
	Email            *string                `json:"email,omitempty"`
	HashedPassword   *string                `json:"hashedPassword,omitempty"`
	Skills           *[]string              `json:"skills,omitempty"`
	LanguageNames    *[]string              `json:"languageNames,omitempty"`
	SocialLinks      *[]string              `json:"socialLinks,omitempty"`
	EducationDegrees *[]EducationDegreeView `json:"educationDegrees,omitempty"`
	WorkExperiences  *[]WorkExperienceView  `json:"workExperiences,omitempty"`
	Portfolios       *[]PortfolioView       `json:"portfolios,omitempty"`
	PhoneNumber      *string                `json:"phoneNumber,omitempty"`
	PostalCode       *string                `json:"postalCode,omitempty"`
	HomeAddress      *string                `json:"homeAddress,omitempty"`
	GenderName       *string                `json:"genderName,omitempty"`
	JobTitle         *string                `json:"jobTitle,omitempty"`
	Bio              *string                `json:"bio,omitempty"`
	BirthDate        *string                `json:"birthDate,omitempty"`
	CreatedAt        *time.Time             `json:"createdAt,omitempty"`
	UpdatedAt        *time.Time             `json:"updatedAt,omitempty"`
	LastLoginAt      *time.Time             `json:"lastLoginAt,omitempty"`
}

// Has reports whether field was part of the projection
func (v *UserView) Has(field string) bool {
	for _, f := range v.Fields {
		if f == field {
			return true
		}
	}
	return false
}

type EducationDegreeView struct {
	Title     string  `json:"title"`
	StartDate string  `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

type WorkExperienceView struct {
	JobTitle  string  `json:"jobTitle"`
	Company   string  `json:"company"`
	StartDate string  `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

type PortfolioView struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Skills      []string `json:"skills"`
}

// projectedRow receives one selected user row; column aliases match field names
type projectedRow struct {
	ID               uint
	RoleName         string
	Name             sql.NullString
	Email            sql.NullString
	HashedPassword   sql.NullString
	Skills           sql.NullString
	LanguageNames    sql.NullString
	SocialLinks      sql.NullString
	EducationDegrees sql.NullString
	WorkExperiences  sql.NullString
	Portfolios       sql.NullString
	PhoneNumber      sql.NullString
	PostalCode       sql.NullString
	HomeAddress      sql.NullString
	GenderName       sql.NullString
	JobTitle         sql.NullString
	Bio              sql.NullString
	BirthDate        sql.NullString
	CreatedAt        sql.NullTime
	UpdatedAt        sql.NullTime
	LastLoginAt      sql.NullTime
}

// dialect renders the few expressions that differ between PostgreSQL and SQLite
type dialect string

const (
	dialectPostgres dialect = "postgres"
	dialectSQLite   dialect = "sqlite"
)

func dialectOf(db *gorm.DB) dialect {
	if db.Dialector != nil && db.Dialector.Name() == string(dialectSQLite) {
		return dialectSQLite
	}
	return dialectPostgres
}

// aggregate collects value over the user's rows of table, in insertion order
func (d dialect) aggregate(table, value string) string {
	if d == dialectSQLite {
		return fmt.Sprintf(
			"COALESCE((SELECT json_group_array(%s ORDER BY c.id) FROM %s c WHERE c.user_id = users.id), '[]')",
			value, table)
	}
	return fmt.Sprintf(
		"COALESCE((SELECT json_agg(%s ORDER BY c.id) FROM %s c WHERE c.user_id = users.id), '[]'::json)::text",
		value, table)
}

func (d dialect) object(pairs ...string) string {
	fn := "json_build_object"
	if d == dialectSQLite {
		fn = "json_object"
	}
	return fn + "(" + strings.Join(pairs, ", ") + ")"
}

func (d dialect) date(column string) string {
	if d == dialectSQLite {
		return "date(" + column + ")"
	}
	return "to_char(" + column + ", 'YYYY-MM-DD')"
}

// embedJSON keeps a stored JSON document nested instead of quoting it
func (d dialect) embedJSON(column string) string {
	if d == dialectSQLite {
		return "json(" + column + ")"
	}
	return column
}

type projectedField struct {
	name       string
	alias      string
	privileged bool
	expr       func(d dialect) string
	assign     func(v *UserView, r *projectedRow) error
}

func column(expr string) func(dialect) string {
	return func(dialect) string { return expr }
}

// userFields maps each logical field to its SQL and its place in UserView.
// Order is the column order of the generated SELECT.
var userFields = []projectedField{
	{name: FieldID, alias: "id", expr: column("users.id"),
		assign: func(v *UserView, r *projectedRow) error { v.ID = r.ID; return nil }},
	{name: FieldRoleName, alias: "role_name", expr: column("roles.role_name"),
		assign: func(v *UserView, r *projectedRow) error { v.RoleName = r.RoleName; return nil }},
	{name: FieldName, alias: "name", expr: column("users.name"),
		assign: func(v *UserView, r *projectedRow) error { v.Name = nullString(r.Name); return nil }},
	{name: FieldEmail, alias: "email", expr: column("users.email"),
		assign: func(v *UserView, r *projectedRow) error { v.Email = nullString(r.Email); return nil }},
	{name: FieldHashedPassword, alias: "hashed_password", privileged: true, expr: column("users.password"),
		assign: func(v *UserView, r *projectedRow) error { v.HashedPassword = nullString(r.HashedPassword); return nil }},
	{name: FieldSkills, alias: "skills",
		expr:   func(d dialect) string { return d.aggregate("user_skills", "c.skill") },
		assign: func(v *UserView, r *projectedRow) error {
			return decodeCollection(FieldSkills, r.Skills, &v.Skills)
		}},
	{name: FieldLanguageNames, alias: "language_names",
		expr:   func(d dialect) string { return d.aggregate("user_languages", "c.language_name") },
		assign: func(v *UserView, r *projectedRow) error {
			return decodeCollection(FieldLanguageNames, r.LanguageNames, &v.LanguageNames)
		}},
	{name: FieldSocialLinks, alias: "social_links",
		expr:   func(d dialect) string { return d.aggregate("user_social_links", "c.link") },
		assign: func(v *UserView, r *projectedRow) error {
			return decodeCollection(FieldSocialLinks, r.SocialLinks, &v.SocialLinks)
		}},
	{name: FieldEducationDegrees, alias: "education_degrees",
		expr: func(d dialect) string {
			return d.aggregate("user_education_degrees", d.object(
				"'title'", "c.title",
				"'startDate'", d.date("c.start_date"),
				"'endDate'", d.date("c.end_date"),
			))
		},
		assign: func(v *UserView, r *projectedRow) error {
			return decodeCollection(FieldEducationDegrees, r.EducationDegrees, &v.EducationDegrees)
		}},
	{name: FieldWorkExperiences, alias: "work_experiences",
		expr: func(d dialect) string {
			return d.aggregate("user_work_experiences", d.object(
				"'jobTitle'", "c.job_title",
				"'company'", "c.company",
				"'startDate'", d.date("c.start_date"),
				"'endDate'", d.date("c.end_date"),
			))
		},
		assign: func(v *UserView, r *projectedRow) error {
			return decodeCollection(FieldWorkExperiences, r.WorkExperiences, &v.WorkExperiences)
		}},
	{name: FieldPortfolios, alias: "portfolios",
		expr: func(d dialect) string {
			return d.aggregate("user_portfolios", d.object(
				"'title'", "c.title",
				"'description'", "c.description",
				"'url'", "c.url",
				"'skills'", d.embedJSON("c.skills"),
			))
		},
		assign: func(v *UserView, r *projectedRow) error {
			return decodeCollection(FieldPortfolios, r.Portfolios, &v.Portfolios)
		}},
	{name: FieldPhoneNumber, alias: "phone_number", expr: column("users.phone_number"),
		assign: func(v *UserView, r *projectedRow) error { v.PhoneNumber = nullString(r.PhoneNumber); return nil }},
	{name: FieldPostalCode, alias: "postal_code", expr: column("users.postal_code"),
		assign: func(v *UserView, r *projectedRow) error { v.PostalCode = nullString(r.PostalCode); return nil }},
	{name: FieldHomeAddress, alias: "home_address", expr: column("users.home_address"),
		assign: func(v *UserView, r *projectedRow) error { v.HomeAddress = nullString(r.HomeAddress); return nil }},
	{name: FieldGenderName, alias: "gender_name", expr: column("genders.gender_name"),
		assign: func(v *UserView, r *projectedRow) error { v.GenderName = nullString(r.GenderName); return nil }},
	{name: FieldJobTitle, alias: "job_title", expr: column("users.job_title"),
		assign: func(v *UserView, r *projectedRow) error { v.JobTitle = nullString(r.JobTitle); return nil }},
	{name: FieldBio, alias: "bio", expr: column("users.bio"),
		assign: func(v *UserView, r *projectedRow) error { v.Bio = nullString(r.Bio); return nil }},
	{name: FieldBirthDate, alias: "birth_date",
		expr:   func(d dialect) string { return d.date("users.birth_date") },
		assign: func(v *UserView, r *projectedRow) error { v.BirthDate = nullString(r.BirthDate); return nil }},
	{name: FieldCreatedAt, alias: "created_at", expr: column("users.created_at"),
		assign: func(v *UserView, r *projectedRow) error { v.CreatedAt = nullTime(r.CreatedAt); return nil }},
	{name: FieldUpdatedAt, alias: "updated_at", expr: column("users.updated_at"),
		assign: func(v *UserView, r *projectedRow) error { v.UpdatedAt = nullTime(r.UpdatedAt); return nil }},
	{name: FieldLastLoginAt, alias: "last_login_at", expr: column("users.last_login_at"),
		assign: func(v *UserView, r *projectedRow) error { v.LastLoginAt = nullTime(r.LastLoginAt); return nil }},
}

// alwaysIncluded fields are projected whatever the request says
var alwaysIncluded = map[string]bool{FieldID: true, FieldRoleName: true}

// Projection is the resolved set of user fields for one query
type Projection struct {
	fields []projectedField
}

// BuildProjection resolves requested field names into a projection.
// "all" selects every non-privileged field. The password hash is selected only
// when withPassword is set and the caller asked for it by name or through "all".
// Unknown names are ignored.
func BuildProjection(requested []string, withPassword bool) Projection {
	wanted := make(map[string]bool, len(requested))
	for _, name := range requested {
		wanted[name] = true
	}
	all := wanted[FieldAll]

	p := Projection{fields: make([]projectedField, 0, len(userFields))}
	for _, f := range userFields {
		switch {
		case alwaysIncluded[f.name]:
		case f.privileged:
			if !withPassword || !(all || wanted[f.name]) {
				continue
			}
		case !all && !wanted[f.name]:
			continue
		}
		p.fields = append(p.fields, f)
	}
	return p
}

// Names lists the logical fields of the projection in column order
func (p Projection) Names() []string {
	names := make([]string, 0, len(p.fields))
	for _, f := range p.fields {
		names = append(names, f.name)
	}
	return names
}

// Includes reports whether field is part of the projection
func (p Projection) Includes(field string) bool {
	for _, f := range p.fields {
		if f.name == field {
			return true
		}
	}
	return false
}

// query renders the SELECT for one user; where must hold exactly one placeholder
func (p Projection) query(d dialect, where string) string {
	cols := make([]string, 0, len(p.fields))
	for _, f := range p.fields {
		cols = append(cols, f.expr(d)+" AS "+f.alias)
	}

	return "SELECT " + strings.Join(cols, ", ") +
		" FROM users" +
		" INNER JOIN roles ON roles.id = users.role_id" +
		" LEFT JOIN genders ON genders.id = users.gender_id" +
		" WHERE " + where +
		" LIMIT 1"
}

// fetch runs the projection; a missing user yields (nil, nil)
func (p Projection) fetch(tx *gorm.DB, where string, arg interface{}) (*UserView, error) {
	var row projectedRow
	result := tx.Raw(p.query(dialectOf(tx), where), arg).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	view := &UserView{Fields: p.Names()}
	for _, f := range p.fields {
		if err := f.assign(view, &row); err != nil {
			return nil, err
		}
	}
	return view, nil
}

// UserLookup selects a user by id or by email, never both
type UserLookup struct {
	ID    uint
	Email string
}

// ByID looks a user up by primary key
func ByID(id uint) UserLookup {
	return UserLookup{ID: id}
}

// ByEmail looks a user up by email
func ByEmail(email string) UserLookup {
	return UserLookup{Email: email}
}

func (l UserLookup) predicate() (string, interface{}, error) {
	switch {
	case l.ID != 0 && l.Email != "":
		return "", nil, ErrLookupAmbiguous
	case l.ID != 0:
		return "users.id = ?", l.ID, nil
	case l.Email != "":
		return "users.email = ?", l.Email, nil
	default:
		return "", nil, ErrLookupEmpty
	}
}

func decodeCollection[T any](field string, raw sql.NullString, dest **[]T) error {
	items := make([]T, 0)
	if raw.Valid && raw.String != "" {
		if err := json.Unmarshal([]byte(raw.String), &items); err != nil {
			return fmt.Errorf("decode %s: %w", field, err)
		}
	}
	*dest = &items
	return nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
