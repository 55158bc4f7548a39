package models

// UserUpdate is a partial user change. A nil field is left untouched; a non-nil
// collection replaces the stored one, so an empty list clears it.
type UserUpdate struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email          *string `json:"email" validate:"omitempty,email,max=255"`
	HashedPassword *string `json:"-" validate:"omitempty,min=1"`
	GenderID       *uint   `json:"genderId" validate:"omitempty,min=1"`
	PhoneNumber    *string `json:"phoneNumber" validate:"omitempty,phone"`
	PostalCode     *string `json:"postalCode" validate:"omitempty,digits,max=10"`
	HomeAddress    *string `json:"homeAddress" validate:"omitempty,max=500"`
	JobTitle       *string `json:"jobTitle" validate:"omitempty,max=255"`
	Bio            *string `json:"bio" validate:"omitempty,max=2000"`
	BirthDate      *string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`

	Skills           *[]string               `json:"skills" validate:"omitempty,unique,dive,min=1,max=30"`
	LanguageNames    *[]string               `json:"languageNames" validate:"omitempty,unique,dive,min=1,max=50"`
	SocialLinks      *[]string               `json:"socialLinks" validate:"omitempty,unique,dive,url"`
	EducationDegrees *[]EducationDegreeInput `json:"educationDegrees" validate:"omitempty,dive"`
	WorkExperiences  *[]WorkExperienceInput  `json:"workExperiences" validate:"omitempty,dive"`
	Portfolios       *[]PortfolioInput       `json:"portfolios" validate:"omitempty,dive"`
}

// HasCollections reports whether the update replaces any owned collection
func (u UserUpdate) HasCollections() bool {
	return u.Skills != nil || u.LanguageNames != nil || u.SocialLinks != nil ||
		u.EducationDegrees != nil || u.WorkExperiences != nil || u.Portfolios != nil
}
