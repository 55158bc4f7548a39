package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/database/models"
)

var (
	educationDegreeKeys = []string{"userId", "title", "startDate", "endDate"}
	workExperienceKeys  = []string{"userId", "jobTitle", "company", "startDate", "endDate"}
)

// ShapeError reports a JSON object whose key set differs from the expected one
type ShapeError struct {
	Kind       string
	Missing    []string
	Unexpected []string
}

func (e *ShapeError) Error() string {
	parts := make([]string, 0, 2)
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unexpected) > 0 {
		parts = append(parts, "unexpected "+strings.Join(e.Unexpected, ", "))
	}
	return fmt.Sprintf("invalid %s: %s", e.Kind, strings.Join(parts, "; "))
}

// DecodeExact decodes a JSON object into dest after checking that it carries
// exactly the given keys. A key with a null value still counts as present.
func DecodeExact(data []byte, kind string, keys []string, dest interface{}) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid %s: %w", kind, err)
	}

	expected := make(map[string]struct{}, len(keys))
	shapeErr := &ShapeError{Kind: kind}
	for _, key := range keys {
		expected[key] = struct{}{}
		if _, ok := raw[key]; !ok {
			shapeErr.Missing = append(shapeErr.Missing, key)
		}
	}
	for key := range raw {
		if _, ok := expected[key]; !ok {
			shapeErr.Unexpected = append(shapeErr.Unexpected, key)
		}
	}
	if len(shapeErr.Missing) > 0 || len(shapeErr.Unexpected) > 0 {
		sort.Strings(shapeErr.Unexpected)
		return shapeErr
	}

	return DecodeStrict(data, kind, dest)
}

// DecodeEducationDegree accepts only {userId, title, startDate, endDate}
func (v *Validator) DecodeEducationDegree(data []byte) (models.EducationDegreeInput, error) {
	var in models.EducationDegreeInput
	if err := DecodeExact(data, "education degree", educationDegreeKeys, &in); err != nil {
		return models.EducationDegreeInput{}, err
	}
	if err := v.Struct(in); err != nil {
		return models.EducationDegreeInput{}, err
	}
	return in, nil
}

// DecodeWorkExperience accepts only {userId, jobTitle, company, startDate, endDate}
func (v *Validator) DecodeWorkExperience(data []byte) (models.WorkExperienceInput, error) {
	var in models.WorkExperienceInput
	if err := DecodeExact(data, "work experience", workExperienceKeys, &in); err != nil {
		return models.WorkExperienceInput{}, err
	}
	if err := v.Struct(in); err != nil {
		return models.WorkExperienceInput{}, err
	}
	return in, nil
}

// userUpdatePayload keeps the nested entries raw so each one gets the exact
// key check of its own decoder
type userUpdatePayload struct {
	models.UserUpdate
	EducationDegrees *[]json.RawMessage `json:"educationDegrees"`
	WorkExperiences  *[]json.RawMessage `json:"workExperiences"`
}

// DecodeUserUpdate decodes a profile change. Unknown keys are rejected at every
// level and the result is validated.
func (v *Validator) DecodeUserUpdate(data []byte) (models.UserUpdate, error) {
	var payload userUpdatePayload
	if err := DecodeStrict(data, "user update", &payload); err != nil {
		return models.UserUpdate{}, err
	}

	update := payload.UserUpdate
	if payload.EducationDegrees != nil {
		degrees := make([]models.EducationDegreeInput, 0, len(*payload.EducationDegrees))
		for i, raw := range *payload.EducationDegrees {
			degree, err := v.DecodeEducationDegree(raw)
			if err != nil {
				return models.UserUpdate{}, fmt.Errorf("educationDegrees[%d]: %w", i, err)
			}
			degrees = append(degrees, degree)
		}
		update.EducationDegrees = &degrees
	}
	if payload.WorkExperiences != nil {
		experiences := make([]models.WorkExperienceInput, 0, len(*payload.WorkExperiences))
		for i, raw := range *payload.WorkExperiences {
			experience, err := v.DecodeWorkExperience(raw)
			if err != nil {
				return models.UserUpdate{}, fmt.Errorf("workExperiences[%d]: %w", i, err)
			}
			experiences = append(experiences, experience)
		}
		update.WorkExperiences = &experiences
	}

	if err := v.Struct(update); err != nil {
		return models.UserUpdate{}, err
	}
	return update, nil
}

// DecodeStrict decodes a JSON object into dest, rejecting unknown keys
func DecodeStrict(data []byte, kind string, dest interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("invalid %s: %w", kind, err)
	}
	return nil
}
