// Package domain defines the core entities of the counselor service.
package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// TimestampFormat is the sortable textual form used for all audit stamps.
const TimestampFormat = time.RFC3339

// Counselor is the sole entity of the service, persisted as a flat
// DynamoDB item keyed by CounselorID. All attributes are scalars.
type Counselor struct {
	CounselorID string `dynamodbav:"counselor_id" json:"counselorId"`

	// Personal fields
	FirstName              string `dynamodbav:"first_name" json:"firstName"`
	LastName               string `dynamodbav:"last_name" json:"lastName"`
	Gender                 string `dynamodbav:"gender" json:"gender"`
	DateOfBirth            string `dynamodbav:"date_of_birth" json:"dateOfBirth"`
	MailID                 string `dynamodbav:"mail_id" json:"mailId"`
	ContactNumber          string `dynamodbav:"contact_number" json:"contactNumber"`
	AlternateContactNumber string `dynamodbav:"alternate_contact_number" json:"alternateContactNumber,omitempty"`
	AddressLine1           string `dynamodbav:"address_line1" json:"addressLine1"`
	City                   string `dynamodbav:"city" json:"city"`
	State                  string `dynamodbav:"state" json:"state"`
	PostalCode             string `dynamodbav:"postal_code" json:"postalCode"`
	Country                string `dynamodbav:"country" json:"country"`

	// Professional fields
	Specialization     string `dynamodbav:"specialization" json:"specialization"`
	Qualification      string `dynamodbav:"qualification" json:"qualification"`
	Experience         string `dynamodbav:"experience" json:"experience"`
	EducationHistory   string `dynamodbav:"education_history" json:"educationHistory,omitempty"`
	About              string `dynamodbav:"about" json:"about,omitempty"`
	Achievements       string `dynamodbav:"achievements" json:"achievements"`
	Price              string `dynamodbav:"price" json:"price"`
	Rating             string `dynamodbav:"rating" json:"rating"`
	LanguagesSpoken    string `dynamodbav:"languages_spoken" json:"languagesSpoken"`
	AvailabilityStatus string `dynamodbav:"availability_status" json:"availabilityStatus"`
	JoiningDate        string `dynamodbav:"joining_date" json:"joiningDate"`

	// Attachment reference: S3 object key, empty when no photo exists
	PhotoKey string `dynamodbav:"photo_key" json:"photoKey,omitempty"`

	// Audit fields. Deleted stamps stay empty until soft deletion.
	CreatedBy string `dynamodbav:"created_by" json:"createdBy"`
	CreatedAt string `dynamodbav:"created_at" json:"createdAt"`
	UpdatedBy string `dynamodbav:"updated_by" json:"updatedBy"`
	UpdatedAt string `dynamodbav:"updated_at" json:"updatedAt"`
	DeletedBy string `dynamodbav:"deleted_by" json:"deletedBy,omitempty"`
	DeletedAt string `dynamodbav:"deleted_at" json:"deletedAt,omitempty"`

	Active bool `dynamodbav:"active" json:"active"`
}

// AllowedPhotoExtensions is the attachment extension allow-list.
var AllowedPhotoExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".pdf":  true,
}

// IsAllowedPhotoFilename reports whether the file name carries an
// extension from the allow-list. Matching is case-insensitive.
func IsAllowedPhotoFilename(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	return AllowedPhotoExtensions[ext]
}

// PhotoContentType returns the Content-Type to use when storing an
// allowed attachment, keyed by file extension.
func PhotoContentType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".jpeg", ".jpg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Now returns the current time formatted as an audit stamp.
func Now() string {
	return time.Now().UTC().Format(TimestampFormat)
}
