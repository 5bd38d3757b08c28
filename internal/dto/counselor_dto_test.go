package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func completeRequest() *CreateCounselorRequest {
	return &CreateCounselorRequest{
		FirstName:          "Thara",
		LastName:           "Menon",
		Gender:             "female",
		DateOfBirth:        "1988-04-12",
		MailID:             "thara@example.com",
		ContactNumber:      "9876543210",
		Experience:         "8 years",
		AddressLine1:       "12 Lake View Road",
		City:               "Chennai",
		State:              "Tamil Nadu",
		PostalCode:         "600001",
		Country:            "India",
		Price:              "1500",
		Specialization:     "career counseling",
		Qualification:      "MSc Psychology",
		LanguagesSpoken:    "English, Tamil",
		Achievements:       "Best counselor award 2022",
		JoiningDate:        "2020-01-15",
		AvailabilityStatus: "available",
	}
}

func TestMissingRequiredFields_Complete(t *testing.T) {
	assert.Empty(t, completeRequest().MissingRequiredFields())
}

func TestMissingRequiredFields_OptionalFieldsNotRequired(t *testing.T) {
	req := completeRequest()
	req.AlternateContactNumber = ""
	req.EducationHistory = ""
	req.About = ""
	req.Rating = ""

	assert.Empty(t, req.MissingRequiredFields())
}

func TestMissingRequiredFields_ReportsAllMissing(t *testing.T) {
	req := completeRequest()
	req.FirstName = ""
	req.Price = ""
	req.JoiningDate = "   " // whitespace counts as absent

	missing := req.MissingRequiredFields()

	assert.Equal(t, []string{"first_name", "price", "joining_date"}, missing)
}

func TestMissingRequiredFields_EmptyRequest(t *testing.T) {
	missing := (&CreateCounselorRequest{}).MissingRequiredFields()

	assert.Len(t, missing, 19)
	assert.Equal(t, "first_name", missing[0])
}
