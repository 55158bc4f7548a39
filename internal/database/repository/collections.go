package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/database/models"
)

// ownedRow is a collection row that can be stamped with its owning user
type ownedRow[T any] interface {
	*T
	SetOwner(userID uint)
}

// replaceSet makes rows the complete collection of userID inside tx.
// nil leaves the stored rows alone; an empty slice deletes them all.
func replaceSet[T any, PT ownedRow[T]](tx *gorm.DB, userID uint, rows *[]T) error {
	if rows == nil {
		return nil
	}

	if err := tx.Where("user_id = ?", userID).Delete(PT(new(T))).Error; err != nil {
		return err
	}

	if len(*rows) == 0 {
		return nil
	}

	for i := range *rows {
		PT(&(*rows)[i]).SetOwner(userID)
	}
	return tx.Create(rows).Error
}

// collectionSet holds the replacement rows of one update
type collectionSet struct {
	skills           *[]models.UserSkill
	languages        *[]models.UserLanguage
	socialLinks      *[]models.UserSocialLink
	educationDegrees *[]models.UserEducationDegree
	workExperiences  *[]models.UserWorkExperience
	portfolios       *[]models.UserPortfolio
}

func collectionsOf(u models.UserUpdate) (collectionSet, error) {
	var (
		set collectionSet
		err error
	)

	set.skills = mapRows(u.Skills, func(s string) models.UserSkill {
		return models.UserSkill{Skill: s}
	})
	set.languages = mapRows(u.LanguageNames, func(s string) models.UserLanguage {
		return models.UserLanguage{LanguageName: s}
	})
	set.socialLinks = mapRows(u.SocialLinks, func(s string) models.UserSocialLink {
		return models.UserSocialLink{Link: s}
	})

	if set.educationDegrees, err = convertRows(u.EducationDegrees, models.EducationDegreeInput.Row); err != nil {
		return collectionSet{}, fmt.Errorf("education degrees: %w", err)
	}
	if set.workExperiences, err = convertRows(u.WorkExperiences, models.WorkExperienceInput.Row); err != nil {
		return collectionSet{}, fmt.Errorf("work experiences: %w", err)
	}
	if set.portfolios, err = convertRows(u.Portfolios, models.PortfolioInput.Row); err != nil {
		return collectionSet{}, fmt.Errorf("portfolios: %w", err)
	}

	return set, nil
}

// apply replaces every present collection, stopping at the first failure
func (s collectionSet) apply(tx *gorm.DB, userID uint) error {
	if err := replaceSet(tx, userID, s.skills); err != nil {
		return fmt.Errorf("replace skills: %w", err)
	}
	if err := replaceSet(tx, userID, s.languages); err != nil {
		return fmt.Errorf("replace languages: %w", err)
	}
	if err := replaceSet(tx, userID, s.socialLinks); err != nil {
		return fmt.Errorf("replace social links: %w", err)
	}
	if err := replaceSet(tx, userID, s.educationDegrees); err != nil {
		return fmt.Errorf("replace education degrees: %w", err)
	}
	if err := replaceSet(tx, userID, s.workExperiences); err != nil {
		return fmt.Errorf("replace work experiences: %w", err)
	}
	if err := replaceSet(tx, userID, s.portfolios); err != nil {
		return fmt.Errorf("replace portfolios: %w", err)
	}
	return nil
}

func mapRows[In, Out any](in *[]In, conv func(In) Out) *[]Out {
	if in == nil {
		return nil
	}
	out := make([]Out, 0, len(*in))
	for _, v := range *in {
		out = append(out, conv(v))
	}
	return &out
}

func convertRows[In, Out any](in *[]In, conv func(In) (Out, error)) (*[]Out, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]Out, 0, len(*in))
	for _, v := range *in {
		row, err := conv(v)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return &out, nil
}
