package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the wire format of every calendar date
const DateLayout = "2006-01-02"

// EducationDegreeInput is the accepted shape of one education entry.
// UserID is overwritten with the owner when the row is stored.
type EducationDegreeInput struct {
	UserID    uint    `json:"userId"`
	Title     string  `json:"title" validate:"required,max=255"`
	StartDate string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   *string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

// Row converts the input into a storable row
func (in EducationDegreeInput) Row() (UserEducationDegree, error) {
	start, end, err := parseRange(in.StartDate, in.EndDate)
	if err != nil {
		return UserEducationDegree{}, err
	}
	return UserEducationDegree{UserID: in.UserID, Title: in.Title, StartDate: start, EndDate: end}, nil
}

// WorkExperienceInput is the accepted shape of one work experience entry.
// UserID is overwritten with the owner when the row is stored.
type WorkExperienceInput struct {
	UserID    uint    `json:"userId"`
	JobTitle  string  `json:"jobTitle" validate:"required,max=255"`
	Company   string  `json:"company" validate:"required,max=255"`
	StartDate string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   *string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

// Row converts the input into a storable row
func (in WorkExperienceInput) Row() (UserWorkExperience, error) {
	start, end, err := parseRange(in.StartDate, in.EndDate)
	if err != nil {
		return UserWorkExperience{}, err
	}
	return UserWorkExperience{
		UserID:    in.UserID,
		JobTitle:  in.JobTitle,
		Company:   in.Company,
		StartDate: start,
		EndDate:   end,
	}, nil
}

// PortfolioInput is the accepted shape of one portfolio entry
type PortfolioInput struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Description string   `json:"description" validate:"max=2000"`
	URL         string   `json:"url" validate:"omitempty,url"`
	Skills      []string `json:"skills" validate:"required,min=1,unique,dive,min=1,max=30"`
}

// Row converts the input into a storable row
func (in PortfolioInput) Row() (UserPortfolio, error) {
	skills, err := json.Marshal(in.Skills)
	if err != nil {
		return UserPortfolio{}, err
	}
	return UserPortfolio{
		Title:       in.Title,
		Description: in.Description,
		URL:         in.URL,
		Skills:      datatypes.JSON(skills),
	}, nil
}

// ParseDate parses a YYYY-MM-DD date in UTC
func ParseDate(value string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return datatypes.Date(t), nil
}

func parseRange(startValue string, endValue *string) (datatypes.Date, *datatypes.Date, error) {
	start, err := ParseDate(startValue)
	if err != nil {
		return datatypes.Date{}, nil, err
	}
	if endValue == nil {
		return start, nil, nil
	}
	end, err := ParseDate(*endValue)
	if err != nil {
		return datatypes.Date{}, nil, err
	}
	return start, &end, nil
}
