// Package dto defines the request and response shapes of the HTTP surface.
package dto

import (
	"io"
	"strings"

	"counselor-api/internal/domain"
)

// CreateCounselorRequest carries the multipart form fields of a create call
type CreateCounselorRequest struct {
	FirstName              string `form:"first_name"`
	LastName               string `form:"last_name"`
	Gender                 string `form:"gender"`
	DateOfBirth            string `form:"date_of_birth"`
	MailID                 string `form:"mail_id"`
	ContactNumber          string `form:"contact_number"`
	AlternateContactNumber string `form:"alternate_contact_number"`
	AddressLine1           string `form:"address_line1"`
	City                   string `form:"city"`
	State                  string `form:"state"`
	PostalCode             string `form:"postal_code"`
	Country                string `form:"country"`
	Specialization         string `form:"specialization"`
	Qualification          string `form:"qualification"`
	Experience             string `form:"experience"`
	EducationHistory       string `form:"education_history"`
	About                  string `form:"about"`
	Achievements           string `form:"achievements"`
	Price                  string `form:"price"`
	Rating                 string `form:"rating"`
	LanguagesSpoken        string `form:"languages_spoken"`
	AvailabilityStatus     string `form:"availability_status"`
	JoiningDate            string `form:"joining_date"`
}

// MissingRequiredFields returns the names of required creation fields
// that are absent or empty, in a stable order.
func (r *CreateCounselorRequest) MissingRequiredFields() []string {
	required := []struct {
		name  string
		value string
	}{
		{"first_name", r.FirstName},
		{"last_name", r.LastName},
		{"gender", r.Gender},
		{"mail_id", r.MailID},
		{"contact_number", r.ContactNumber},
		{"experience", r.Experience},
		{"date_of_birth", r.DateOfBirth},
		{"address_line1", r.AddressLine1},
		{"city", r.City},
		{"state", r.State},
		{"postal_code", r.PostalCode},
		{"country", r.Country},
		{"price", r.Price},
		{"specialization", r.Specialization},
		{"qualification", r.Qualification},
		{"languages_spoken", r.LanguagesSpoken},
		{"achievements", r.Achievements},
		{"joining_date", r.JoiningDate},
		{"availability_status", r.AvailabilityStatus},
	}

	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// UpdateCounselorRequest carries the multipart form fields of an update
// call. An empty field means "not supplied"; only supplied fields whose
// value differs from the stored one are written.
type UpdateCounselorRequest struct {
	FirstName              string `form:"first_name"`
	LastName               string `form:"last_name"`
	Gender                 string `form:"gender"`
	DateOfBirth            string `form:"date_of_birth"`
	MailID                 string `form:"mail_id"`
	ContactNumber          string `form:"contact_number"`
	AlternateContactNumber string `form:"alternate_contact_number"`
	AddressLine1           string `form:"address_line1"`
	City                   string `form:"city"`
	State                  string `form:"state"`
	PostalCode             string `form:"postal_code"`
	Country                string `form:"country"`
	Specialization         string `form:"specialization"`
	Qualification          string `form:"qualification"`
	Experience             string `form:"experience"`
	EducationHistory       string `form:"education_history"`
	About                  string `form:"about"`
	Achievements           string `form:"achievements"`
	Price                  string `form:"price"`
	Rating                 string `form:"rating"`
	LanguagesSpoken        string `form:"languages_spoken"`
	AvailabilityStatus     string `form:"availability_status"`
	JoiningDate            string `form:"joining_date"`
}

// PhotoUpload describes an attachment file accompanying a create or
// update call. File carries the bytes in direct-upload mode; in presign
// mode only the name is used.
type PhotoUpload struct {
	FileName string
	File     io.Reader
}

// CounselorResult is returned by create and update operations. UploadURL
// is set when an attachment was supplied in presign mode: the caller
// must PUT the file bytes to that URL.
type CounselorResult struct {
	Counselor *domain.Counselor `json:"counselor"`
	UploadURL string            `json:"uploadUrl,omitempty"`
	// NoChanges is true when an update matched every stored value and no
	// write was performed.
	NoChanges bool `json:"-"`
}

// DeleteCounselorResult confirms a soft delete
type DeleteCounselorResult struct {
	CounselorID string `json:"counselorId"`
	DeletedBy   string `json:"deletedBy"`
	DeletedAt   string `json:"deletedAt"`
}

// ListCounselorsResult wraps the full scan result
type ListCounselorsResult struct {
	Counselors []*domain.Counselor `json:"counselors"`
	Count      int                 `json:"count"`
}
